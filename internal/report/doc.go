// Package report renders verification findings and fix results: the plain
// console format, a table, JSON, SARIF and a highlighted change preview.
package report

package core

import (
	"encoding/json"
	"io"
)

// MarshalFindings pretty-prints findings as JSON for pipelines.
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes findings JSON written by MarshalFindings or by
// `relink verify --json` (the "findings" member of the report object).
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	var fs []Finding
	if err := json.Unmarshal(raw, &fs); err == nil {
		return fs, nil
	}
	var rep struct {
		Findings []Finding `json:"findings"`
	}
	if err := json.Unmarshal(raw, &rep); err != nil {
		return nil, err
	}
	return rep.Findings, nil
}

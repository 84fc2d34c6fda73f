package report

import (
	"encoding/json"
	"io"

	"github.com/relink/relink/internal/rewrite"
	"github.com/relink/relink/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Version        string      `json:"version"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// Version is the relink release stamped into --version, SARIF and JSON
// output. Override with -ldflags "-X github.com/relink/relink/internal/report.Version=...".
var Version = "0.1.0"

// WriteSARIF writes findings as SARIF 2.1.0. Every recognizer is listed as a
// rule; findings without a known line carry no region.
func WriteSARIF(w io.Writer, findings []types.Finding, domain string) error {
	driver := sarifDriver{Name: "relink", Version: Version}
	index := map[string]int{}
	for i, c := range rewrite.Categories() {
		index[string(c)] = i
		driver.Rules = append(driver.Rules, sarifRule{
			ID:               string(c),
			ShortDescription: sarifMessage{Text: rewrite.Describe(c)},
		})
	}
	run := sarifRun{
		Tool:       sarifTool{Driver: driver},
		Results:    []sarifResult{},
		Properties: map[string]any{"domain": domain},
	}
	for _, f := range findings {
		loc := sarifLoc{PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: f.Path}}}
		if f.Line > 0 {
			loc.PhysicalLocation.Region = &sarifRegion{StartLine: f.Line}
		}
		res := sarifResult{
			RuleID:    f.Category,
			RuleIndex: index[f.Category],
			Level:     "warning",
			Message:   sarifMessage{Text: "absolute link to " + domain + ": " + f.Match},
			Locations: []sarifLoc{loc},
		}
		if f.Fingerprint != "" {
			res.PartialFingerprints = map[string]string{"relinkFingerprint/v1": f.Fingerprint}
		}
		run.Results = append(run.Results, res)
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

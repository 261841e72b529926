// Package report renders hunt and enrichment results for humans and for
// machines. Text goes to terminals, JSON goes to whatever reads it next.
package report

import (
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/detect"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/osquery"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/risk"
)

// HuntReport summarizes one fetch-and-detect run.
type HuntReport struct {
	ID          string           `json:"id"`
	GeneratedAt string           `json:"generated_at"`
	Source      string           `json:"source"`
	TotalEvents int              `json:"total_events"`
	Pages       int              `json:"pages"`
	Synthetic   bool             `json:"synthetic"`
	Degraded    bool             `json:"degraded"`
	Findings    []detect.Finding `json:"findings"`
	Notes       []string         `json:"notes,omitempty"`
}

// NewHuntReport builds the report document for a completed hunt run.
func NewHuntReport(source string, result *osquery.FetchResult, findings []detect.Finding) *HuntReport {
	r := &HuntReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		TotalEvents: len(result.Events),
		Pages:       result.Pages,
		Synthetic:   result.Synthetic,
		Degraded:    result.Degraded(),
		Findings:    findings,
	}

	if result.Synthetic {
		r.Notes = append(r.Notes, "events api unreachable, findings are from synthetic fallback data")
	} else if result.Degraded() {
		r.Notes = append(r.Notes, "fetch stopped on an upstream error, results may be partial")
	}

	return r
}

// EnrichmentReport carries one enriched alert and its risk assessment.
type EnrichmentReport struct {
	ID          string               `json:"id"`
	GeneratedAt string               `json:"generated_at"`
	Alert       models.EnrichedAlert `json:"alert"`
	Assessment  risk.Assessment      `json:"assessment"`
}

// NewEnrichmentReport builds the report document for one enriched alert.
func NewEnrichmentReport(alert models.EnrichedAlert, assessment risk.Assessment) *EnrichmentReport {
	return &EnrichmentReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Alert:       alert,
		Assessment:  assessment,
	}
}

// WriteJSON writes any report document as indented JSON.
func WriteJSON(w io.Writer, doc interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

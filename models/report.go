package models

import "time"

// Period is the date window a report covers.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// Report is the transient bundle every report endpoint and exporter
// consumes. It is never persisted and never mutated after construction.
type Report struct {
	Type        string      `json:"type"`
	Period      Period      `json:"period"`
	Data        interface{} `json:"data"`
	Summary     string      `json:"summary"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

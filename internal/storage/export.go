package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times        []float64   `json:"times"`
	Order        []float64   `json:"order"`
	AveragePhase []float64   `json:"average_phase"`
	Phases       [][]float64 `json:"phases,omitempty"`
}

// ExportJSON writes a run's metadata and trace as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, tr *Trace) error {
	data := ExportData{
		RunMetadata:  *meta,
		Times:        tr.Times,
		Order:        tr.Order,
		AveragePhase: tr.AveragePhase,
		Phases:       tr.Phases,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

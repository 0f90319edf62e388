package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/san-kum/kuramoto/internal/config"
	"github.com/san-kum/kuramoto/internal/sim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

// Store keeps one directory per run holding its metadata and sampled trace.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Mode      string             `json:"mode"`
	Steps     int                `json:"steps"`
	Config    config.Config      `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Trace is the sampled time series of a run.
type Trace struct {
	Times        []float64
	Order        []float64
	AveragePhase []float64
	Phases       [][]float64
}

func TraceFromResult(r *sim.Result) *Trace {
	return &Trace{
		Times:        r.Times,
		Order:        r.Order,
		AveragePhase: r.AveragePhase,
		Phases:       r.Phases,
	}
}

func (s *Store) Save(name, mode string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := xid.New().String()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Mode:      mode,
		Steps:     result.StepsTaken,
		Config:    *cfg,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, TraceFromResult(result)); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// WriteCSV writes one row per sample: time, order, psi and then one column
// per oscillator when phases were recorded.
func WriteCSV(w io.Writer, tr *Trace) error {
	cw := csv.NewWriter(w)

	header := []string{"time", "order", "psi"}
	if len(tr.Phases) > 0 {
		for i := range tr.Phases[0] {
			header = append(header, fmt.Sprintf("theta%d", i))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range tr.Times {
		row := []string{
			formatFloat(tr.Times[i]),
			formatFloat(tr.Order[i]),
			formatFloat(tr.AveragePhase[i]),
		}
		if i < len(tr.Phases) {
			for _, v := range tr.Phases[i] {
				row = append(row, formatFloat(v))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (*Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &Trace{}
	if len(records) < 2 {
		return tr, nil
	}

	for line, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("trace line %d: want at least 3 columns, got %d", line+2, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("trace line %d: %w", line+2, err)
			}
			vals[j] = v
		}
		tr.Times = append(tr.Times, vals[0])
		tr.Order = append(tr.Order, vals[1])
		tr.AveragePhase = append(tr.AveragePhase, vals[2])
		if len(vals) > 3 {
			tr.Phases = append(tr.Phases, vals[3:])
		}
	}

	return tr, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

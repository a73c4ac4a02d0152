package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/cylsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

// ErrInvalidRunID indicates a run ID that does not name a single directory
// inside the store.
var ErrInvalidRunID = errors.New("storage: invalid run id")

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
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Rate       float64            `json:"rate"`
	SampleRate uint32             `json:"sample_rate"`
	Steps      int                `json:"steps"`
	Decimate   int                `json:"decimate"`
	RPM        float64            `json:"rpm"`
	Cylinders  int                `json:"cylinders"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Dt is the time between recorded samples in seconds.
func (m *RunMetadata) Dt() float64 {
	return float64(m.Decimate) / m.Rate
}

// Save writes meta and the recorded trace under a new run directory. ID,
// Timestamp, Cylinders and Metrics are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", dirName(meta.Name), now.UnixNano())
	meta.Timestamp = now
	meta.Cylinders = len(result.Cylinders)
	meta.Metrics = result.Metrics

	runDir, err := s.runDir(meta.ID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns all readable runs, oldest first.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	runDir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(runDir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads a saved trace back into a result. Metrics are not part of
// the trace file; use Load for those.
func (s *Store) LoadTrace(runID string) (*sim.Result, error) {
	runDir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(runDir, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty trace", runID)
	}

	cols := len(records[0])
	if cols < 2 || (cols-2)%3 != 0 {
		return nil, fmt.Errorf("%s: malformed trace header %v", runID, records[0])
	}
	n := (cols - 2) / 3

	result := &sim.Result{
		Times:     make([]float64, 0, len(records)-1),
		Positions: make([]float64, 0, len(records)-1),
		Cylinders: make([]sim.Trace, n),
		Metrics:   make(map[string]float64),
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", runID, line+2, err)
			}
			vals[j] = v
		}

		result.Times = append(result.Times, vals[0])
		result.Positions = append(result.Positions, vals[1])
		for c := 0; c < n; c++ {
			tr := &result.Cylinders[c]
			tr.Pressure = append(tr.Pressure, vals[2+3*c])
			tr.Temperature = append(tr.Temperature, vals[3+3*c])
			tr.Volume = append(tr.Volume, vals[4+3*c])
		}
	}

	return result, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

// dirName turns a free-form run name into a single path element.
func dirName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "run"
	}
	return name
}

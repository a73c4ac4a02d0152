package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/cylsim/internal/sim"
)

type ExportData struct {
	Name      string             `json:"name"`
	RPM       float64            `json:"rpm"`
	Rate      float64            `json:"rate"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Samples   int                `json:"samples"`
	Times     []float64          `json:"times"`
	Positions []float64          `json:"positions"`
	Cylinders []ExportCylinder   `json:"cylinders"`
	Metrics   map[string]float64 `json:"metrics"`
}

type ExportCylinder struct {
	Pressure    []float64 `json:"pressure"`
	Temperature []float64 `json:"temperature"`
	Volume      []float64 `json:"volume"`
}

func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Name:      meta.Name,
		RPM:       meta.RPM,
		Rate:      meta.Rate,
		Steps:     result.StepsTaken,
		Samples:   result.Samples(),
		Times:     result.Times,
		Positions: result.Positions,
		Cylinders: make([]ExportCylinder, len(result.Cylinders)),
		Metrics:   result.Metrics,
	}
	if meta.Rate > 0 && meta.Decimate > 0 {
		data.Dt = meta.Dt()
	}

	for i, c := range result.Cylinders {
		data.Cylinders[i] = ExportCylinder{
			Pressure:    c.Pressure,
			Temperature: c.Temperature,
			Volume:      c.Volume,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Header is the CSV header for a trace of n cylinders.
func Header(n int) []string {
	header := []string{"time", "position"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("p%d", i), fmt.Sprintf("t%d", i), fmt.Sprintf("v%d", i))
	}
	return header
}

// WriteCSV writes the trace with full float precision so LoadTrace
// reproduces it exactly.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(len(result.Cylinders))); err != nil {
		return err
	}

	for i := 0; i < result.Samples(); i++ {
		row := []string{formatFloat(result.Times[i])}
		for _, v := range result.Row(i) {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

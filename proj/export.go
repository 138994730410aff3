package proj

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// projectionColumns is the stable header for the projection table export.
// Field names and units are a downstream contract; do not rename.
var projectionColumns = []string{
	"frequency",
	"frequency_str",
	"total_simulation_duration",
	"resource_analysis_available",
	"hw_calibrated_baseline_tgs",
	"hw_calibrated_improved_tgs",
	"hw_calibrated_improvement",
	"pure_sim_current_tgs",
	"pure_sim_improved_tgs",
	"pure_sim_improvement",
	"hybrid_baseline_tgs",
	"hybrid_improved_tgs",
	"hybrid_improvement",
}

// WriteProjectionsCSV writes the per-frequency, per-strategy projection table.
// Not-computed strategy values become empty cells so downstream consumers can
// drop them without sentinel filtering.
func WriteProjectionsCSV(path string, res *RunResult) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create projections CSV %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(projectionColumns); err != nil {
		return fmt.Errorf("write projections header: %w", err)
	}

	for _, fp := range res.Projections {
		row := []string{
			strconv.Itoa(fp.FrequencyMHz),
			fmt.Sprintf("%dMHz", fp.FrequencyMHz),
			formatFloat(fp.TotalDuration),
			strconv.FormatBool(fp.ClassificationAvailable),
		}
		for _, name := range []string{StrategyHardwareCalibrated, StrategyPureSimulation, StrategyHybridCorrelation} {
			r, ok := fp.Result(name)
			if !ok || !r.Computed {
				row = append(row, "", "", "")
				continue
			}
			row = append(row,
				formatFloat(r.BaselineTGS),
				formatFloat(r.ImprovedTGS),
				formatFloat(r.ImprovementFactor),
			)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write projections row %dMHz: %w", fp.FrequencyMHz, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush projections CSV %q: %w", path, err)
	}
	return nil
}

// correlationExport mirrors the correlation summary record's wire shape.
type correlationExport struct {
	BaselineFrequencyMHz   int     `json:"baseline_frequency_mhz"`
	MeasuredTGS            float64 `json:"measured_tgs"`
	SimulationDerivedTGS   float64 `json:"simulation_derived_tgs"`
	TGSCorrelationRatio    float64 `json:"tgs_correlation_ratio"`
	CorrelationAccuracyPct float64 `json:"correlation_accuracy_percent"`
	MeasuredTotalTimeSec   float64 `json:"measured_total_time_sec"`
	SimulationTimeSec      float64 `json:"simulation_time_sec"`
	SimulationDuration     float64 `json:"simulation_duration_units"`
	CorrelationFactorUsed  float64 `json:"correlation_factor_used"`
	CorrelationValid       bool    `json:"correlation_valid"`
}

// WriteCorrelationJSON writes the correlation summary record.
func WriteCorrelationJSON(path string, c CorrelationResult) error {
	out := correlationExport{
		BaselineFrequencyMHz:   c.BaselineFrequencyMHz,
		MeasuredTGS:            c.MeasuredTGS,
		SimulationDerivedTGS:   c.SimulationDerivedTGS,
		TGSCorrelationRatio:    c.Ratio,
		CorrelationAccuracyPct: c.AccuracyPercent,
		MeasuredTotalTimeSec:   c.MeasuredTotalTime,
		SimulationTimeSec:      c.SimulationTime,
		SimulationDuration:     c.SimulationDuration,
		CorrelationFactorUsed:  c.CorrelationFactor,
		CorrelationValid:       c.IsValid,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal correlation summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write correlation summary %q: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

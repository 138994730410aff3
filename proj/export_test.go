package proj

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() *RunResult {
	return &RunResult{
		Correlation: CorrelationResult{
			BaselineFrequencyMHz: 1600,
			CorrelationFactor:    2.311296913926394e-06,
			MeasuredTGS:          13.5,
			SimulationDerivedTGS: 13.5,
			MeasuredTotalTime:    8.44292,
			SimulationTime:       8.44292,
			SimulationDuration:   3652892.86,
			Ratio:                1.0,
			AccuracyPercent:      100.0,
			IsValid:              true,
		},
		Projections: []FrequencyProjection{
			{
				FrequencyMHz:            1600,
				TotalDuration:           3652892.86,
				ClassificationAvailable: true,
				Results: []ProjectionResult{
					{Strategy: StrategyHardwareCalibrated, FrequencyMHz: 1600, BaselineTGS: 13.5, ImprovedTGS: 27.0, ImprovementFactor: 2.0, Computed: true},
					{Strategy: StrategyPureSimulation, FrequencyMHz: 1600, BaselineTGS: 13.5, ImprovedTGS: 21.9, ImprovementFactor: 1.62, Computed: true},
					{Strategy: StrategyHybridCorrelation, FrequencyMHz: 1600, Computed: false, Flagged: true, ImprovementFactor: 1},
				},
			},
		},
	}
}

// TestWriteProjectionsCSV verifies the header contract and that not-computed
// strategies export as empty cells.
func TestWriteProjectionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hardware_projections.csv")
	require.NoError(t, WriteProjectionsCSV(path, exportFixture()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, projectionColumns, rows[0])

	row := rows[1]
	require.Len(t, row, len(projectionColumns))
	assert.Equal(t, "1600", row[0])
	assert.Equal(t, "1600MHz", row[1])
	assert.Equal(t, "true", row[3])
	// hardware-calibrated block populated
	assert.Equal(t, "13.5", row[4])
	assert.Equal(t, "27", row[5])
	assert.Equal(t, "2", row[6])
	// hybrid block empty (not computed)
	assert.Equal(t, "", row[10])
	assert.Equal(t, "", row[11])
	assert.Equal(t, "", row[12])
}

// TestWriteCorrelationJSON verifies field names and values on the wire.
func TestWriteCorrelationJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tgs_correlation_analysis.json")
	require.NoError(t, WriteCorrelationJSON(path, exportFixture().Correlation))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, float64(1600), got["baseline_frequency_mhz"])
	assert.InDelta(t, 2.311296913926394e-06, got["correlation_factor_used"].(float64), 1e-18)
	assert.InDelta(t, 1.0, got["tgs_correlation_ratio"].(float64), 1e-12)
	assert.InDelta(t, 100.0, got["correlation_accuracy_percent"].(float64), 1e-12)
	assert.Equal(t, true, got["correlation_valid"])
	assert.Contains(t, got, "measured_total_time_sec")
	assert.Contains(t, got, "simulation_duration_units")
}

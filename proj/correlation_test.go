package proj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceBaseline is the measured 1600MHz data point used throughout the
// correlation tests.
func referenceBaseline() BaselineMeasurement {
	return BaselineMeasurement{
		TTFTSeconds:          8.336,
		TPOTSeconds:          0.05346,
		BaselineFrequencyMHz: 1600,
		InputTokens:          112,
		OutputTokens:         2,
	}
}

// TestEstablishCorrelation_ReferenceScenario verifies the worked calibration
// numbers: 1600MHz with total simulated duration 3652892.86 units.
func TestEstablishCorrelation_ReferenceScenario(t *testing.T) {
	b := referenceBaseline()

	result, err := EstablishCorrelation(b, 3652892.86, 0)
	require.NoError(t, err)

	// measured_total_time = 8.336 + 0.05346×2 = 8.44292 s
	assert.InDelta(t, 8.44292, result.MeasuredTotalTime, 1e-9)
	// measured_tgs = 114 / 8.44292
	assert.InDelta(t, 114.0/8.44292, result.MeasuredTGS, 1e-9)
	assert.InDelta(t, 13.5024, result.MeasuredTGS, 1e-4)
	// correlation_factor = 8.44292 / 3652892.86 ≈ 2.3113e-6 s/unit
	assert.InEpsilon(t, 2.311296913926394e-06, result.CorrelationFactor, 1e-4)

	// Identity at the calibration point: simulation-derived equals measured
	assert.InDelta(t, result.MeasuredTGS, result.SimulationDerivedTGS, 1e-9)
	assert.InDelta(t, 1.0, result.Ratio, 1e-12)
	assert.InDelta(t, 100.0, result.AccuracyPercent, 1e-9)
	assert.True(t, result.IsValid)
}

// TestEstablishCorrelation_NonPositiveSimDuration verifies the division
// guard on the simulator duration.
func TestEstablishCorrelation_NonPositiveSimDuration(t *testing.T) {
	for _, dur := range []float64{0, -100} {
		_, err := EstablishCorrelation(referenceBaseline(), dur, 0)
		require.Error(t, err, "duration %v", dur)
		assert.ErrorIs(t, err, ErrDivision)
	}
}

// TestEstablishCorrelation_ZeroMeasuredTime verifies an all-zero baseline
// cannot divide by zero.
func TestEstablishCorrelation_ZeroMeasuredTime(t *testing.T) {
	b := BaselineMeasurement{BaselineFrequencyMHz: 1600, InputTokens: 112, OutputTokens: 2}

	_, err := EstablishCorrelation(b, 3652892.86, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDivision)
}

// TestEstablishCorrelation_DefaultTolerance verifies tolerance ≤ 0 selects
// the 10% default.
func TestEstablishCorrelation_DefaultTolerance(t *testing.T) {
	result, err := EstablishCorrelation(referenceBaseline(), 1e6, -1)
	require.NoError(t, err)
	// Ratio is 1 by construction, so any positive tolerance validates.
	assert.True(t, result.IsValid)
}

// TestBaselineMeasurement_Derived verifies the helper arithmetic.
func TestBaselineMeasurement_Derived(t *testing.T) {
	b := referenceBaseline()

	assert.Equal(t, 114, b.TotalTokens())
	assert.InDelta(t, 8.44292, b.MeasuredTotalTime(), 1e-12)
	assert.False(t, math.IsNaN(b.MeasuredTGS()))
}

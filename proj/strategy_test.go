package proj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext builds a ProjectionContext around simpleFactors and an
// easily hand-checked baseline: ttft=10s, tpot=1s, 8+2 tokens at 1000MHz.
// Simulated baseline duration 1.2e6 units makes the correlation factor
// exactly 1e-5 s/unit (measured total time is 12s).
func testContext(t *testing.T) *ProjectionContext {
	t.Helper()

	baseline := BaselineMeasurement{
		TTFTSeconds:          10,
		TPOTSeconds:          1,
		BaselineFrequencyMHz: 1000,
		InputTokens:          8,
		OutputTokens:         2,
	}
	correlation, err := EstablishCorrelation(baseline, 1.2e6, 0)
	require.NoError(t, err)
	require.InDelta(t, 1e-5, correlation.CorrelationFactor, 1e-15)

	model, err := NewImprovementModel(simpleFactors())
	require.NoError(t, err)

	return &ProjectionContext{
		Baseline:        baseline,
		Correlation:     correlation,
		Model:           model,
		FallbackWeights: Weights{Compute: 0.4, Memory: 0.3, Communication: 0.3},
	}
}

// TestHardwareCalibrated_BaselinePoint verifies the calibrated baseline TGS
// at the baseline frequency itself.
func TestHardwareCalibrated_BaselinePoint(t *testing.T) {
	ctx := testContext(t)

	r := HardwareCalibrated{}.Compute(FrequencyRecord{FrequencyMHz: 1000, TotalDuration: 1.2e6}, ctx)

	require.True(t, r.Computed)
	// total time = 10 + 1×2 = 12s → TGS = 10/12
	assert.InDelta(t, 10.0/12.0, r.BaselineTGS, 1e-12)
	// all-2x factors, fab neutral → overall improvement exactly 2
	assert.InDelta(t, 2, r.ImprovementFactor, 1e-12)
	assert.InDelta(t, 20.0/12.0, r.ImprovedTGS, 1e-12)
}

// TestHardwareCalibrated_LinearFrequencyScaling verifies baseline TGS scales
// linearly with frequency relative to the baseline point.
func TestHardwareCalibrated_LinearFrequencyScaling(t *testing.T) {
	ctx := testContext(t)

	at1000 := HardwareCalibrated{}.Compute(FrequencyRecord{FrequencyMHz: 1000}, ctx)
	at2000 := HardwareCalibrated{}.Compute(FrequencyRecord{FrequencyMHz: 2000}, ctx)
	at500 := HardwareCalibrated{}.Compute(FrequencyRecord{FrequencyMHz: 500}, ctx)

	assert.InDelta(t, 2*at1000.BaselineTGS, at2000.BaselineTGS, 1e-12)
	assert.InDelta(t, 0.5*at1000.BaselineTGS, at500.BaselineTGS, 1e-12)
}

// TestPureSimulation_DerivesFromCorrelation verifies the simulated duration
// drives baseline TGS through the correlation factor.
func TestPureSimulation_DerivesFromCorrelation(t *testing.T) {
	ctx := testContext(t)

	r := PureSimulation{}.Compute(FrequencyRecord{FrequencyMHz: 1000, TotalDuration: 1.2e6}, ctx)

	require.True(t, r.Computed)
	// sim_time = 1.2e6 × 1e-5 = 12s → TGS = 10/12
	assert.InDelta(t, 10.0/12.0, r.BaselineTGS, 1e-12)
	// combined = 2^0.4 × 2^0.3 × 1 = 2^0.7 (comm term not applied)
	assert.InDelta(t, math.Pow(2, 0.7), r.ImprovementFactor, 1e-12)
	assert.InDelta(t, r.BaselineTGS*math.Pow(2, 0.7), r.ImprovedTGS, 1e-12)
}

// TestPureSimulation_ZeroDurationSentinel verifies the zero-division guard:
// a zero simulated duration yields a defined not-computed sentinel, never NaN.
func TestPureSimulation_ZeroDurationSentinel(t *testing.T) {
	ctx := testContext(t)

	r := PureSimulation{}.Compute(FrequencyRecord{FrequencyMHz: 1000, TotalDuration: 0}, ctx)

	assert.False(t, r.Computed)
	assert.True(t, r.Flagged)
	assert.Equal(t, 1.0, r.ImprovementFactor)
	assert.False(t, math.IsNaN(r.BaselineTGS))
	assert.False(t, math.IsNaN(r.ImprovedTGS))
}

// TestHybrid_WithClassification verifies the detailed bucket-based
// improvement path.
func TestHybrid_WithClassification(t *testing.T) {
	ctx := testContext(t)
	ctx.Classification = &ResourceClassification{
		ComputeDuration:       100,
		MemoryDuration:        40,
		CommunicationDuration: 60,
		OtherDuration:         10,
	}

	r := HybridCorrelation{}.Compute(FrequencyRecord{FrequencyMHz: 1000, TotalDuration: 1.2e6}, ctx)

	require.True(t, r.Computed)
	// improved buckets: 50+20+30+10 = 110 → detailed = 210/110
	assert.InDelta(t, 210.0/110.0, r.ImprovementFactor, 1e-12)
	assert.InDelta(t, 10.0/12.0, r.BaselineTGS, 1e-12)
	assert.InDelta(t, (10.0/12.0)*(210.0/110.0), r.ImprovedTGS, 1e-12)
	assert.False(t, r.Flagged)
}

// TestHybrid_AveragingFallback verifies that without classification the
// hybrid factor is the mean of the other two strategies' factors.
func TestHybrid_AveragingFallback(t *testing.T) {
	ctx := testContext(t)
	require.Nil(t, ctx.Classification)

	freq := FrequencyRecord{FrequencyMHz: 1000, TotalDuration: 1.2e6}
	hw := HardwareCalibrated{}.Compute(freq, ctx)
	sim := PureSimulation{}.Compute(freq, ctx)
	r := HybridCorrelation{}.Compute(freq, ctx)

	require.True(t, r.Computed)
	want := (hw.ImprovementFactor + sim.ImprovementFactor) / 2
	assert.InDelta(t, want, r.ImprovementFactor, 1e-12)
	assert.InDelta(t, hw.BaselineTGS*want, r.ImprovedTGS, 1e-12)
}

// TestHybrid_ZeroClassificationFlagged verifies an all-zero classification
// forces the no-op factor with a flag instead of dividing by zero.
func TestHybrid_ZeroClassificationFlagged(t *testing.T) {
	ctx := testContext(t)
	ctx.Classification = &ResourceClassification{}

	r := HybridCorrelation{}.Compute(FrequencyRecord{FrequencyMHz: 1000}, ctx)

	require.True(t, r.Computed)
	assert.Equal(t, 1.0, r.ImprovementFactor)
	assert.True(t, r.Flagged)
	assert.InDelta(t, r.BaselineTGS, r.ImprovedTGS, 1e-12)
}

// TestStrategies_Names verifies the closed strategy set and its canonical
// order.
func TestStrategies_Names(t *testing.T) {
	var names []string
	for _, s := range DefaultStrategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		StrategyHardwareCalibrated,
		StrategyPureSimulation,
		StrategyHybridCorrelation,
	}, names)
}

package proj

import "math"

// Strategy names, used as stable keys in results and exports.
const (
	StrategyHardwareCalibrated = "hardware_calibrated"
	StrategyPureSimulation     = "pure_simulation"
	StrategyHybridCorrelation  = "hybrid_correlation"
)

// PureSimulationWeights are the fixed workload weights the pure-simulation
// strategy assumes, independent of any measured classification.
var PureSimulationWeights = Weights{Compute: 0.4, Memory: 0.3, Communication: 0.3}

// ProjectionContext carries the per-run read-only inputs shared by every
// strategy: the trusted baseline, the established correlation, the validated
// improvement model, and the configured fallback weights. Classification is
// per-frequency and may be nil.
type ProjectionContext struct {
	Baseline        BaselineMeasurement
	Correlation     CorrelationResult
	Model           *ImprovementModel
	FallbackWeights Weights
	Classification  *ResourceClassification
}

// ProjectionResult is one strategy's projection for one frequency.
// Computed distinguishes "no data" from a legitimate value; Flagged marks
// results where a zero or negative denominator forced ImprovementFactor to
// the no-op value 1 instead of propagating NaN.
type ProjectionResult struct {
	Strategy     string
	FrequencyMHz int

	BaselineTGS       float64
	ImprovedTGS       float64
	ImprovementFactor float64

	Computed bool
	Flagged  bool
}

// notComputed returns the sentinel result for a strategy that could not
// produce a value for this frequency.
func notComputed(strategy string, freqMHz int) ProjectionResult {
	return ProjectionResult{
		Strategy:          strategy,
		FrequencyMHz:      freqMHz,
		ImprovementFactor: 1,
		Flagged:           true,
	}
}

// Strategy is one of the closed set of projection calculation strategies.
// Compute never returns an error: a strategy that cannot produce a value for
// a frequency reports a not-computed result so the batch continues.
type Strategy interface {
	Name() string
	Compute(freq FrequencyRecord, ctx *ProjectionContext) ProjectionResult
}

// DefaultStrategies returns all three strategies in their canonical order.
func DefaultStrategies() []Strategy {
	return []Strategy{HardwareCalibrated{}, PureSimulation{}, HybridCorrelation{}}
}

// HardwareCalibrated scales the real baseline measurement linearly with
// frequency and applies the fallback-weighted overall improvement factor.
type HardwareCalibrated struct{}

// Name implements Strategy.
func (HardwareCalibrated) Name() string { return StrategyHardwareCalibrated }

// Compute implements Strategy. TTFT and TPOT shrink as frequency rises above
// the baseline frequency, so baseline TGS scales by freq/baseline_freq.
func (s HardwareCalibrated) Compute(freq FrequencyRecord, ctx *ProjectionContext) ProjectionResult {
	b := ctx.Baseline
	freqScale := float64(freq.FrequencyMHz) / float64(b.BaselineFrequencyMHz)
	if freqScale <= 0 {
		return notComputed(s.Name(), freq.FrequencyMHz)
	}

	scaledTTFT := b.TTFTSeconds / freqScale
	scaledTPOT := b.TPOTSeconds / freqScale
	totalTime := scaledTTFT + scaledTPOT*float64(b.OutputTokens)
	if totalTime <= 0 {
		return notComputed(s.Name(), freq.FrequencyMHz)
	}

	baselineTGS := float64(b.TotalTokens()) / totalTime
	factor := ctx.Model.OverallImprovementFactor(ctx.FallbackWeights)

	return ProjectionResult{
		Strategy:          s.Name(),
		FrequencyMHz:      freq.FrequencyMHz,
		BaselineTGS:       baselineTGS,
		ImprovedTGS:       baselineTGS * factor,
		ImprovementFactor: factor,
		Computed:          true,
	}
}

// PureSimulation derives throughput from the simulated duration alone via the
// correlation factor, then applies a fixed-weight improvement combination.
type PureSimulation struct{}

// Name implements Strategy.
func (PureSimulation) Name() string { return StrategyPureSimulation }

// Compute implements Strategy. The combination omits the communication term;
// communication effects are already present in the correlated durations this
// strategy scales.
func (s PureSimulation) Compute(freq FrequencyRecord, ctx *ProjectionContext) ProjectionResult {
	simTime := freq.TotalDuration * ctx.Correlation.CorrelationFactor
	if simTime <= 0 {
		return notComputed(s.Name(), freq.FrequencyMHz)
	}

	baselineTGS := float64(ctx.Baseline.TotalTokens()) / simTime

	f := ctx.Model.Factors()
	w := PureSimulationWeights
	combined := math.Pow(1/f.ComputeRatio, w.Compute) *
		math.Pow(f.MemoryMultiplier, w.Memory) *
		(1 / f.FabricationRatio)

	return ProjectionResult{
		Strategy:          s.Name(),
		FrequencyMHz:      freq.FrequencyMHz,
		BaselineTGS:       baselineTGS,
		ImprovedTGS:       baselineTGS * combined,
		ImprovementFactor: combined,
		Computed:          true,
	}
}

// HybridCorrelation starts from the hardware-calibrated baseline and refines
// the improvement with the actual classified buckets when available, falling
// back to averaging the other two strategies' improvement factors otherwise.
type HybridCorrelation struct{}

// Name implements Strategy.
func (HybridCorrelation) Name() string { return StrategyHybridCorrelation }

// Compute implements Strategy.
func (s HybridCorrelation) Compute(freq FrequencyRecord, ctx *ProjectionContext) ProjectionResult {
	hw := HardwareCalibrated{}.Compute(freq, ctx)
	if !hw.Computed {
		return notComputed(s.Name(), freq.FrequencyMHz)
	}

	if ctx.Classification != nil {
		buckets := ctx.Classification.Buckets()
		applied := ctx.Model.Apply(buckets)

		totalOriginal := buckets.Total()
		totalImproved := applied.Improved.Total()

		detailed := 1.0
		flagged := false
		if totalImproved > 0 {
			detailed = totalOriginal / totalImproved
		} else {
			flagged = true
		}

		return ProjectionResult{
			Strategy:          s.Name(),
			FrequencyMHz:      freq.FrequencyMHz,
			BaselineTGS:       hw.BaselineTGS,
			ImprovedTGS:       hw.BaselineTGS * detailed,
			ImprovementFactor: detailed,
			Computed:          true,
			Flagged:           flagged,
		}
	}

	// No classification: average the two other strategies' factors.
	sim := PureSimulation{}.Compute(freq, ctx)
	avg := (hw.ImprovementFactor + sim.ImprovementFactor) / 2

	return ProjectionResult{
		Strategy:          s.Name(),
		FrequencyMHz:      freq.FrequencyMHz,
		BaselineTGS:       hw.BaselineTGS,
		ImprovedTGS:       hw.BaselineTGS * avg,
		ImprovementFactor: avg,
		Computed:          true,
		Flagged:           sim.Flagged,
	}
}

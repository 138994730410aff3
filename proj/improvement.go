package proj

import (
	"fmt"
	"math"
)

// ImprovementFactors is the set of hardware improvement factors describing
// the target generation relative to the current one. ComputeRatio and
// FabricationRatio are time ratios (smaller = faster); the multipliers are
// throughput ratios (larger = faster). All must be strictly positive.
type ImprovementFactors struct {
	ComputeRatio            float64
	MemoryMultiplier        float64
	FabricationRatio        float64
	CommBandwidthMultiplier float64
	CommLatencyMultiplier   float64
}

// Weights are workload fractions for combining per-category improvements.
type Weights struct {
	Compute       float64
	Memory        float64
	Communication float64
}

// BucketDurations holds per-category durations in simulation units.
type BucketDurations struct {
	Compute       float64
	Memory        float64
	Communication float64
	Other         float64
}

// Total returns the sum across buckets.
func (d BucketDurations) Total() float64 {
	return d.Compute + d.Memory + d.Communication + d.Other
}

// AppliedImprovement is the result of applying the factor set to a set of
// bucket durations. Per-bucket ratios are original/improved; a ratio is 1
// when the improved duration is not positive (division guard).
type AppliedImprovement struct {
	Improved BucketDurations

	ComputeRatio       float64
	MemoryRatio        float64
	CommunicationRatio float64
	OtherRatio         float64
}

// ImprovementModel exposes pure functions over a validated factor set.
type ImprovementModel struct {
	factors ImprovementFactors
}

// NewImprovementModel validates that every factor is strictly positive and
// finite. A zero or negative factor would silently turn later divisions into
// NaN or infinity, so construction fails instead.
func NewImprovementModel(f ImprovementFactors) (*ImprovementModel, error) {
	check := func(name string, v float64) error {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidFactor, name, v)
		}
		return nil
	}
	if err := check("compute ratio", f.ComputeRatio); err != nil {
		return nil, err
	}
	if err := check("memory multiplier", f.MemoryMultiplier); err != nil {
		return nil, err
	}
	if err := check("fabrication ratio", f.FabricationRatio); err != nil {
		return nil, err
	}
	if err := check("communication bandwidth multiplier", f.CommBandwidthMultiplier); err != nil {
		return nil, err
	}
	if err := check("communication latency multiplier", f.CommLatencyMultiplier); err != nil {
		return nil, err
	}
	return &ImprovementModel{factors: f}, nil
}

// Factors returns the validated factor set.
func (m *ImprovementModel) Factors() ImprovementFactors {
	return m.factors
}

// CommCombinedFactor is the geometric mean of the communication bandwidth
// and latency multipliers.
func (m *ImprovementModel) CommCombinedFactor() float64 {
	return math.Sqrt(m.factors.CommBandwidthMultiplier * m.factors.CommLatencyMultiplier)
}

// Apply converts a set of bucket durations into improved durations on the
// target hardware:
//
//	compute:       d × compute_ratio × fabrication_ratio
//	memory:        d ÷ memory_multiplier × fabrication_ratio
//	communication: d ÷ sqrt(bw × lat) × fabrication_ratio
//	other:         d × fabrication_ratio
//
// Fabrication gain applies uniformly; it is the only factor that touches the
// "other" bucket.
func (m *ImprovementModel) Apply(d BucketDurations) AppliedImprovement {
	f := m.factors
	improved := BucketDurations{
		Compute:       d.Compute * f.ComputeRatio * f.FabricationRatio,
		Memory:        d.Memory / f.MemoryMultiplier * f.FabricationRatio,
		Communication: d.Communication / m.CommCombinedFactor() * f.FabricationRatio,
		Other:         d.Other * f.FabricationRatio,
	}
	return AppliedImprovement{
		Improved:           improved,
		ComputeRatio:       safeRatio(d.Compute, improved.Compute),
		MemoryRatio:        safeRatio(d.Memory, improved.Memory),
		CommunicationRatio: safeRatio(d.Communication, improved.Communication),
		OtherRatio:         safeRatio(d.Other, improved.Other),
	}
}

// OverallImprovementFactor derives a single scalar improvement via a
// workload-weighted geometric mean:
//
//	(1/compute_ratio)^w_c × memory_multiplier^w_m × comm_combined^w_comm × (1/fabrication_ratio)
//
// The fabrication term carries no weight: it applies to every category.
// Strictly positive for any valid factor set and any weight vector.
func (m *ImprovementModel) OverallImprovementFactor(w Weights) float64 {
	f := m.factors
	return math.Pow(1/f.ComputeRatio, w.Compute) *
		math.Pow(f.MemoryMultiplier, w.Memory) *
		math.Pow(m.CommCombinedFactor(), w.Communication) *
		(1 / f.FabricationRatio)
}

// safeRatio returns original/improved, or 1 when improved is not positive.
func safeRatio(original, improved float64) float64 {
	if improved <= 0 {
		return 1
	}
	return original / improved
}

package proj

import (
	"fmt"
	"math"
)

// DefaultCorrelationTolerance is the |ratio - 1| bound under which the
// correlation is considered valid.
const DefaultCorrelationTolerance = 0.10

// correlationIdentityTolerance bounds the floating-point disagreement allowed
// between measured TGS and simulation-derived TGS at the calibration point,
// where the two are equal by construction.
const correlationIdentityTolerance = 1e-9

// BaselineMeasurement is the single trusted real-hardware data point used to
// anchor the correlation factor. Times are in seconds.
type BaselineMeasurement struct {
	TTFTSeconds          float64
	TPOTSeconds          float64
	BaselineFrequencyMHz int
	InputTokens          int
	OutputTokens         int
}

// TotalTokens returns input + output token count.
func (b BaselineMeasurement) TotalTokens() int {
	return b.InputTokens + b.OutputTokens
}

// MeasuredTotalTime is the wall-clock time of the measured run:
// TTFT plus TPOT for each output token.
func (b BaselineMeasurement) MeasuredTotalTime() float64 {
	return b.TTFTSeconds + b.TPOTSeconds*float64(b.OutputTokens)
}

// MeasuredTGS is the measured throughput in tokens per second.
func (b BaselineMeasurement) MeasuredTGS() float64 {
	return float64(b.TotalTokens()) / b.MeasuredTotalTime()
}

// CorrelationResult is the scalar mapping from abstract simulation units to
// wall-clock seconds, computed once per run and never mutated afterward.
type CorrelationResult struct {
	BaselineFrequencyMHz int

	// CorrelationFactor converts simulation units to seconds.
	CorrelationFactor float64

	MeasuredTGS          float64
	SimulationDerivedTGS float64
	MeasuredTotalTime    float64 // seconds
	SimulationTime       float64 // seconds, after applying the factor
	SimulationDuration   float64 // abstract units

	// Ratio is measured/simulation-derived TGS; 1.0 at the calibration
	// point by construction.
	Ratio           float64
	AccuracyPercent float64
	IsValid         bool
}

// EstablishCorrelation computes the time-per-simulation-unit factor from the
// trusted baseline measurement and the simulator's total duration at the same
// operating point. tolerance ≤ 0 selects DefaultCorrelationTolerance.
//
// The resulting factor is reused unchanged for every other frequency; it is a
// single scalar carried through the whole run.
func EstablishCorrelation(b BaselineMeasurement, baselineSimDuration, tolerance float64) (CorrelationResult, error) {
	if tolerance <= 0 {
		tolerance = DefaultCorrelationTolerance
	}
	if baselineSimDuration <= 0 {
		return CorrelationResult{}, fmt.Errorf("%w: baseline simulation duration %v",
			ErrDivision, baselineSimDuration)
	}
	measuredTotal := b.MeasuredTotalTime()
	if measuredTotal <= 0 {
		return CorrelationResult{}, fmt.Errorf("%w: measured total time %v",
			ErrDivision, measuredTotal)
	}

	measuredTGS := b.MeasuredTGS()
	factor := measuredTotal / baselineSimDuration
	simTime := baselineSimDuration * factor
	simDerivedTGS := float64(b.TotalTokens()) / simTime

	// By construction simDerivedTGS equals measuredTGS here; anything beyond
	// floating-point noise means the arithmetic above is broken.
	if math.Abs(simDerivedTGS-measuredTGS) > correlationIdentityTolerance*measuredTGS {
		return CorrelationResult{}, fmt.Errorf(
			"correlation identity violated: measured %v vs simulation-derived %v",
			measuredTGS, simDerivedTGS)
	}

	ratio := measuredTGS / simDerivedTGS
	accuracy := (1 - math.Abs(measuredTGS-simDerivedTGS)/measuredTGS) * 100

	return CorrelationResult{
		BaselineFrequencyMHz: b.BaselineFrequencyMHz,
		CorrelationFactor:    factor,
		MeasuredTGS:          measuredTGS,
		SimulationDerivedTGS: simDerivedTGS,
		MeasuredTotalTime:    measuredTotal,
		SimulationTime:       simTime,
		SimulationDuration:   baselineSimDuration,
		Ratio:                ratio,
		AccuracyPercent:      accuracy,
		IsValid:              math.Abs(ratio-1.0) < tolerance,
	}, nil
}

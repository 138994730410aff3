// Package proj provides the hardware projection and correlation engine.
//
// # Reading Guide
//
// Start with these three files to understand the projection kernel:
//   - classifier.go: rule-table classification of simulated resource records
//   - correlation.go: the single measured-vs-simulated calibration point
//   - strategy.go: the three projection strategies and their arithmetic
//
// # Architecture
//
// The engine is a single-pass, synchronous batch pipeline:
//
//	load → classify → correlate → project (×3 strategies ×N frequencies) → compare
//
// projector.go orchestrates the pipeline. The only values shared across
// frequency iterations are the CorrelationResult (computed once upfront) and
// the ImprovementModel, both immutable during projection.
//
// Projection strategies form a closed set behind the Strategy interface:
//   - HardwareCalibrated: frequency-scales a trusted real-hardware measurement
//   - PureSimulation: derives throughput from simulated duration alone
//   - HybridCorrelation: calibrated baseline refined by classified buckets
//
// Per-frequency, per-strategy failures become not-computed markers; they never
// abort the batch. Configuration-level failures (bad factors, baseline
// frequency missing from the summary) abort the run.
package proj

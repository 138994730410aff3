package proj

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// FrequencyProjection bundles the per-strategy results for one frequency.
type FrequencyProjection struct {
	FrequencyMHz            int
	TotalDuration           float64
	ClassificationAvailable bool
	Classification          *ResourceClassification

	// Results holds one entry per strategy, in DefaultStrategies order.
	Results []ProjectionResult
}

// Result returns the projection for the named strategy, if present.
func (p FrequencyProjection) Result(strategy string) (ProjectionResult, bool) {
	for _, r := range p.Results {
		if r.Strategy == strategy {
			return r, true
		}
	}
	return ProjectionResult{}, false
}

// RunInput is the materialized input table set for one projection run.
// Resources maps frequency (MHz) to its raw per-resource records; a missing
// entry means the resource table for that frequency is absent.
type RunInput struct {
	Frequencies []FrequencyRecord
	Resources   map[int][]ResourceDurationRecord
}

// RunResult is the complete output of one projection run.
type RunResult struct {
	Hardware    HardwareNames
	Correlation CorrelationResult
	Projections []FrequencyProjection
	Comparison  ComparisonSummary
}

// Projector is the single-pass projection pipeline. All fields are immutable
// after construction; a Projector may be reused across runs.
type Projector struct {
	cfg        *Config
	classifier *ResourceClassifier
	model      *ImprovementModel
	strategies []Strategy
}

// NewProjector validates the configuration and builds the pipeline
// components.
func NewProjector(cfg *Config) (*Projector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	classifier, err := NewResourceClassifier(cfg.ResourceDistribution.ExU1Split)
	if err != nil {
		return nil, err
	}
	model, err := NewImprovementModel(cfg.Factors())
	if err != nil {
		return nil, err
	}
	return &Projector{
		cfg:        cfg,
		classifier: classifier,
		model:      model,
		strategies: DefaultStrategies(),
	}, nil
}

// Classifier exposes the pipeline's classifier, mainly for the correlate
// command and for tests.
func (p *Projector) Classifier() *ResourceClassifier { return p.classifier }

// Model exposes the pipeline's improvement model.
func (p *Projector) Model() *ImprovementModel { return p.model }

// Run executes classify → correlate → project → compare over the input
// tables.
//
// The baseline frequency must appear in the frequency summary: every strategy
// depends on the single correlation factor or on the calibrated baseline it
// anchors, so its absence is fatal to the run (ErrCorrelationUnavailable)
// rather than being worked around per strategy.
func (p *Projector) Run(in RunInput) (*RunResult, error) {
	if len(in.Frequencies) == 0 {
		return nil, fmt.Errorf("%w: frequency summary is empty", ErrMissingData)
	}

	freqs := make([]FrequencyRecord, len(in.Frequencies))
	copy(freqs, in.Frequencies)
	sort.Slice(freqs, func(i, j int) bool { return freqs[i].FrequencyMHz < freqs[j].FrequencyMHz })

	baseline := p.cfg.BaselineMeasurement()
	baselineRec, ok := findFrequency(freqs, baseline.BaselineFrequencyMHz)
	if !ok {
		return nil, fmt.Errorf("%w: %dMHz", ErrCorrelationUnavailable, baseline.BaselineFrequencyMHz)
	}

	correlation, err := EstablishCorrelation(baseline, baselineRec.TotalDuration, p.cfg.CorrelationTolerance)
	if err != nil {
		return nil, fmt.Errorf("establish correlation at %dMHz: %w", baseline.BaselineFrequencyMHz, err)
	}
	logrus.Infof("correlation established at %dMHz: factor=%.6e s/unit, measured=%.4f tok/s, ratio=%.4f, valid=%v",
		correlation.BaselineFrequencyMHz, correlation.CorrelationFactor,
		correlation.MeasuredTGS, correlation.Ratio, correlation.IsValid)
	if !correlation.IsValid {
		logrus.Warnf("correlation ratio %.4f outside tolerance %.2f; projections may be unreliable",
			correlation.Ratio, p.cfg.CorrelationTolerance)
	}

	projections := make([]FrequencyProjection, 0, len(freqs))
	for _, freq := range freqs {
		ctx := &ProjectionContext{
			Baseline:        baseline,
			Correlation:     correlation,
			Model:           p.model,
			FallbackWeights: p.cfg.Weights(),
		}

		fp := FrequencyProjection{
			FrequencyMHz:  freq.FrequencyMHz,
			TotalDuration: freq.TotalDuration,
		}

		if records, ok := in.Resources[freq.FrequencyMHz]; ok && len(records) > 0 {
			cls := p.classifier.Classify(records)
			ctx.Classification = &cls
			fp.Classification = &cls
			fp.ClassificationAvailable = true
			logrus.Debugf("%dMHz classified: compute=%.1f%%, memory_comm=%.1f%%, %d records dropped",
				freq.FrequencyMHz, cls.ComputePercent, cls.MemoryCommPercent, cls.DroppedCount)
		} else {
			logrus.Debugf("%dMHz: no resource table, hybrid strategy will use averaging fallback", freq.FrequencyMHz)
		}

		for _, s := range p.strategies {
			r := s.Compute(freq, ctx)
			if !r.Computed {
				logrus.Warnf("%dMHz: strategy %s produced no result", freq.FrequencyMHz, s.Name())
			}
			fp.Results = append(fp.Results, r)
		}
		projections = append(projections, fp)
	}

	return &RunResult{
		Hardware:    p.cfg.Hardware,
		Correlation: correlation,
		Projections: projections,
		Comparison:  Compare(projections),
	}, nil
}

func findFrequency(freqs []FrequencyRecord, mhz int) (FrequencyRecord, bool) {
	for _, f := range freqs {
		if f.FrequencyMHz == mhz {
			return f, true
		}
	}
	return FrequencyRecord{}, false
}

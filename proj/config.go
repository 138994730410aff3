package proj

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// FactorValue is one improvement factor entry in the config document.
// Description is informational only.
type FactorValue struct {
	Value       float64 `yaml:"value"`
	Description string  `yaml:"description,omitempty"`
}

// CommunicationFactors groups the two communication improvement factors.
type CommunicationFactors struct {
	BandwidthImprovement FactorValue `yaml:"bandwidth_improvement"`
	LatencyImprovement   FactorValue `yaml:"latency_improvement"`
}

// ImprovementFactorsConfig mirrors the improvement-factor document shape.
type ImprovementFactorsConfig struct {
	XeCoreCompute      FactorValue          `yaml:"xecore_compute"`
	HBMBandwidth       FactorValue          `yaml:"hbm_bandwidth"`
	FabricationProcess FactorValue          `yaml:"fabrication_process"`
	Communication      CommunicationFactors `yaml:"communication"`
}

// ExU1Split configures the memory-vs-communication split of the combined
// memory+communication bucket. Must sum to 1.0.
type ExU1Split struct {
	MemoryCopy    float64 `yaml:"memory_copy"`
	Communication float64 `yaml:"communication"`
}

// FallbackWeights are the workload-fraction weights used when no measured
// classification is available.
type FallbackWeights struct {
	Compute       float64 `yaml:"compute"`
	Memory        float64 `yaml:"memory"`
	Communication float64 `yaml:"communication"`
}

// ResourceDistribution groups the workload-distribution settings.
type ResourceDistribution struct {
	ExU1Split       ExU1Split       `yaml:"ex_u1_split"`
	FallbackWeights FallbackWeights `yaml:"fallback_weights"`
}

// BaselineConfig is the trusted real-hardware measurement as configured.
// Times are in milliseconds to match the measurement source.
type BaselineConfig struct {
	TTFTMs            float64 `yaml:"ttft_ms"`
	TPOTMs            float64 `yaml:"tpot_ms"`
	BaselineFrequency int     `yaml:"baseline_frequency"`
	TokensInput       int     `yaml:"tokens_input"`
	TokensOutput      int     `yaml:"tokens_output"`
}

// HardwareNames labels the current and future hardware generations in
// reports and exports.
type HardwareNames struct {
	Current string `yaml:"current"`
	Future  string `yaml:"future"`
}

// Config is the full projection configuration. It is an immutable value
// threaded through the pipeline by parameter; load it once, validate, and
// do not mutate afterward.
type Config struct {
	Hardware             HardwareNames            `yaml:"hardware"`
	ImprovementFactors   ImprovementFactorsConfig `yaml:"improvement_factors"`
	ResourceDistribution ResourceDistribution     `yaml:"resource_distribution"`
	Baseline             BaselineConfig           `yaml:"baseline_measurements"`
	CorrelationTolerance float64                  `yaml:"correlation_tolerance"`
}

// DefaultConfig returns the built-in projection configuration.
func DefaultConfig() *Config {
	return &Config{
		Hardware: HardwareNames{Current: "PVC", Future: "JGS"},
		ImprovementFactors: ImprovementFactorsConfig{
			XeCoreCompute:      FactorValue{Value: 0.375, Description: "35-40% faster compute (time ratio)"},
			HBMBandwidth:       FactorValue{Value: 6.5, Description: "6-7x higher memory bandwidth"},
			FabricationProcess: FactorValue{Value: 0.75, Description: "25% performance gain (time ratio)"},
			Communication: CommunicationFactors{
				BandwidthImprovement: FactorValue{Value: 12.5, Description: "12x communication bandwidth"},
				LatencyImprovement:   FactorValue{Value: 150, Description: "150x lower latency"},
			},
		},
		ResourceDistribution: ResourceDistribution{
			ExU1Split:       ExU1Split{MemoryCopy: 0.30, Communication: 0.70},
			FallbackWeights: FallbackWeights{Compute: 0.4, Memory: 0.3, Communication: 0.3},
		},
		Baseline: BaselineConfig{
			TTFTMs:            8336,
			TPOTMs:            53.46,
			BaselineFrequency: 1600,
			TokensInput:       112,
			TokensOutput:      2,
		},
		CorrelationTolerance: DefaultCorrelationTolerance,
	}
}

// LoadConfig reads a YAML config file and merges it over the defaults:
// fields present in the file override, everything else keeps its default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projection config %q: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse projection config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("projection config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks factor positivity, the split sum, and baseline sanity.
func (c *Config) Validate() error {
	factors := map[string]float64{
		"xecore_compute":                      c.ImprovementFactors.XeCoreCompute.Value,
		"hbm_bandwidth":                       c.ImprovementFactors.HBMBandwidth.Value,
		"fabrication_process":                 c.ImprovementFactors.FabricationProcess.Value,
		"communication.bandwidth_improvement": c.ImprovementFactors.Communication.BandwidthImprovement.Value,
		"communication.latency_improvement":   c.ImprovementFactors.Communication.LatencyImprovement.Value,
	}
	for name, v := range factors {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrConfiguration, name, v)
		}
	}
	split := c.ResourceDistribution.ExU1Split
	if math.Abs(split.MemoryCopy+split.Communication-1.0) > splitEpsilon {
		return fmt.Errorf("%w: ex_u1_split must sum to 1.0, got %v + %v",
			ErrConfiguration, split.MemoryCopy, split.Communication)
	}
	w := c.ResourceDistribution.FallbackWeights
	if w.Compute < 0 || w.Memory < 0 || w.Communication < 0 {
		return fmt.Errorf("%w: fallback weights must be non-negative", ErrConfiguration)
	}
	if c.Baseline.BaselineFrequency <= 0 {
		return fmt.Errorf("%w: baseline_frequency must be > 0, got %d",
			ErrConfiguration, c.Baseline.BaselineFrequency)
	}
	if c.Baseline.TTFTMs < 0 || c.Baseline.TPOTMs < 0 {
		return fmt.Errorf("%w: baseline times must be non-negative", ErrConfiguration)
	}
	if c.Baseline.TokensInput+c.Baseline.TokensOutput <= 0 {
		return fmt.Errorf("%w: token counts must sum to > 0", ErrConfiguration)
	}
	if c.CorrelationTolerance <= 0 {
		return fmt.Errorf("%w: correlation_tolerance must be > 0, got %v",
			ErrConfiguration, c.CorrelationTolerance)
	}
	return nil
}

// Factors converts the config document into the model's value object.
func (c *Config) Factors() ImprovementFactors {
	return ImprovementFactors{
		ComputeRatio:            c.ImprovementFactors.XeCoreCompute.Value,
		MemoryMultiplier:        c.ImprovementFactors.HBMBandwidth.Value,
		FabricationRatio:        c.ImprovementFactors.FabricationProcess.Value,
		CommBandwidthMultiplier: c.ImprovementFactors.Communication.BandwidthImprovement.Value,
		CommLatencyMultiplier:   c.ImprovementFactors.Communication.LatencyImprovement.Value,
	}
}

// Weights returns the fallback workload weights as a model value.
func (c *Config) Weights() Weights {
	return Weights{
		Compute:       c.ResourceDistribution.FallbackWeights.Compute,
		Memory:        c.ResourceDistribution.FallbackWeights.Memory,
		Communication: c.ResourceDistribution.FallbackWeights.Communication,
	}
}

// BaselineMeasurement converts the configured baseline into engine units
// (seconds).
func (c *Config) BaselineMeasurement() BaselineMeasurement {
	return BaselineMeasurement{
		TTFTSeconds:          c.Baseline.TTFTMs / 1000,
		TPOTSeconds:          c.Baseline.TPOTMs / 1000,
		BaselineFrequencyMHz: c.Baseline.BaselineFrequency,
		InputTokens:          c.Baseline.TokensInput,
		OutputTokens:         c.Baseline.TokensOutput,
	}
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/hwproj/proj"
)

var (
	correlateConfigPath  string
	correlateSummaryPath string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Establish the measured-vs-simulated correlation only",
	Long: "Computes the time-per-simulation-unit correlation factor from the configured " +
		"baseline measurement and the matching frequency summary row, without projecting.",
	Run: func(cmd *cobra.Command, args []string) {
		var cfg *proj.Config
		var err error
		if correlateConfigPath == "" {
			cfg = proj.DefaultConfig()
		} else if cfg, err = proj.LoadConfig(correlateConfigPath); err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}

		freqs, err := proj.LoadFrequencySummary(correlateSummaryPath)
		if err != nil {
			logrus.Fatalf("Failed to load frequency summary: %v", err)
		}

		baseline := cfg.BaselineMeasurement()
		var simDuration float64
		found := false
		for _, f := range freqs {
			if f.FrequencyMHz == baseline.BaselineFrequencyMHz {
				simDuration = f.TotalDuration
				found = true
				break
			}
		}
		if !found {
			logrus.Fatalf("Baseline frequency %dMHz not in frequency summary", baseline.BaselineFrequencyMHz)
		}

		result, err := proj.EstablishCorrelation(baseline, simDuration, cfg.CorrelationTolerance)
		if err != nil {
			logrus.Fatalf("Correlation failed: %v", err)
		}

		fmt.Printf("Baseline frequency:     %dMHz\n", result.BaselineFrequencyMHz)
		fmt.Printf("Measured TGS:           %.4f tok/s\n", result.MeasuredTGS)
		fmt.Printf("Simulation-derived TGS: %.4f tok/s\n", result.SimulationDerivedTGS)
		fmt.Printf("Correlation factor:     %.6e s/unit\n", result.CorrelationFactor)
		fmt.Printf("Ratio:                  %.4f\n", result.Ratio)
		fmt.Printf("Accuracy:               %.2f%%\n", result.AccuracyPercent)
		fmt.Printf("Valid:                  %v\n", result.IsValid)
	},
}

func init() {
	correlateCmd.Flags().StringVar(&correlateConfigPath, "config", "", "Projection config YAML (default: built-in)")
	correlateCmd.Flags().StringVar(&correlateSummaryPath, "summary", filepath.Join("output", "master_summary.csv"), "Frequency summary CSV")

	rootCmd.AddCommand(correlateCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/hwproj/proj"
)

var (
	configPath   string // Projection config YAML (empty = built-in defaults)
	summaryPath  string // Frequency summary CSV
	resourcesDir string // Directory holding per-frequency resource tables
	outputDir    string // Export directory ("" disables export)
	showScaling  bool   // Print multi-tile scaling tables
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the full projection pipeline",
	Long: "Classify simulator resource records, establish the measured-vs-simulated correlation, " +
		"project throughput for the target hardware under all three strategies, and compare them.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadProjectionConfig()
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}

		freqs, err := proj.LoadFrequencySummary(summaryPath)
		if err != nil {
			logrus.Fatalf("Failed to load frequency summary: %v", err)
		}
		logrus.Infof("loaded frequency summary for %d frequencies", len(freqs))

		var resources map[int][]proj.ResourceDurationRecord
		if resourcesDir != "" {
			resources = proj.LoadResourceTables(resourcesDir, freqs)
		}

		projector, err := proj.NewProjector(cfg)
		if err != nil {
			logrus.Fatalf("Failed to build projector: %v", err)
		}

		result, err := projector.Run(proj.RunInput{Frequencies: freqs, Resources: resources})
		if err != nil {
			logrus.Fatalf("Projection run failed: %v", err)
		}

		printReport(cfg, result)

		if outputDir != "" {
			if err := exportResults(result); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
		}
	},
}

func loadProjectionConfig() (*proj.Config, error) {
	if configPath == "" {
		return proj.DefaultConfig(), nil
	}
	return proj.LoadConfig(configPath)
}

func exportResults(result *proj.RunResult) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	csvPath := filepath.Join(outputDir, "hardware_projections.csv")
	if err := proj.WriteProjectionsCSV(csvPath, result); err != nil {
		return err
	}
	jsonPath := filepath.Join(outputDir, "tgs_correlation_analysis.json")
	if err := proj.WriteCorrelationJSON(jsonPath, result.Correlation); err != nil {
		return err
	}
	fmt.Printf("\nResults exported to %s and %s\n", csvPath, jsonPath)
	return nil
}

func printReport(cfg *proj.Config, result *proj.RunResult) {
	c := result.Correlation
	fmt.Printf("Hardware projection: %s -> %s\n\n", result.Hardware.Current, result.Hardware.Future)
	fmt.Printf("Correlation at %dMHz:\n", c.BaselineFrequencyMHz)
	fmt.Printf("  measured TGS:           %.4f tok/s\n", c.MeasuredTGS)
	fmt.Printf("  simulation-derived TGS: %.4f tok/s\n", c.SimulationDerivedTGS)
	fmt.Printf("  correlation factor:     %.6e s/unit\n", c.CorrelationFactor)
	fmt.Printf("  ratio: %.4f  accuracy: %.2f%%  valid: %v\n\n", c.Ratio, c.AccuracyPercent, c.IsValid)

	fmt.Printf("%-10s %-12s %-12s %-12s %-12s\n", "Frequency", "Current HW", "HW-Calib", "Pure-Sim", "Hybrid")
	for _, fp := range result.Projections {
		row := fmt.Sprintf("%-10s ", fmt.Sprintf("%dMHz", fp.FrequencyMHz))
		if hw, ok := fp.Result(proj.StrategyHardwareCalibrated); ok && hw.Computed {
			row += fmt.Sprintf("%-12.2f ", hw.BaselineTGS)
		} else {
			row += fmt.Sprintf("%-12s ", "N/A")
		}
		for _, name := range []string{proj.StrategyHardwareCalibrated, proj.StrategyPureSimulation, proj.StrategyHybridCorrelation} {
			if r, ok := fp.Result(name); ok && r.Computed {
				row += fmt.Sprintf("%-12.2f ", r.ImprovedTGS)
			} else {
				row += fmt.Sprintf("%-12s ", "N/A")
			}
		}
		fmt.Println(row)
	}

	fmt.Println()
	for _, s := range result.Comparison.Stats {
		fmt.Printf("  %-20s: %.2f - %.2f tok/s (avg: %.2f, std: %.2f)\n",
			s.Strategy, s.MinTGS, s.MaxTGS, s.MeanTGS, s.StdTGS)
	}
	for _, rec := range result.Comparison.Recommendations {
		fmt.Printf("  * %s\n", rec)
	}

	if showScaling {
		printScalingTables(cfg, result)
	}
}

func printScalingTables(cfg *proj.Config, result *proj.RunResult) {
	fmt.Printf("\nMulti-tile scaling (%s hybrid projection):\n", result.Hardware.Future)
	baseline := cfg.BaselineMeasurement()
	for _, fp := range result.Projections {
		r, ok := fp.Result(proj.StrategyHybridCorrelation)
		if !ok || !r.Computed {
			continue
		}
		freqScale := float64(fp.FrequencyMHz) / float64(baseline.BaselineFrequencyMHz)
		ttft := baseline.TTFTSeconds / freqScale / r.ImprovementFactor
		fmt.Printf("  %dMHz:\n", fp.FrequencyMHz)
		for _, sc := range proj.ScaleAcrossTiles(r, ttft, proj.DefaultTileConfigs()) {
			fmt.Printf("    %-6s: %7.1f -> %7.1f tok/s | TTFT %.3fs\n",
				sc.Config.Label, sc.BaselineTGS, sc.ImprovedTGS, sc.ScaledTTFTSeconds)
		}
	}
}

func init() {
	projectCmd.Flags().StringVar(&configPath, "config", "", "Projection config YAML (default: built-in)")
	projectCmd.Flags().StringVar(&summaryPath, "summary", filepath.Join("output", "master_summary.csv"), "Frequency summary CSV")
	projectCmd.Flags().StringVar(&resourcesDir, "resources-dir", "temp_data", "Directory with per-frequency resource tables (<freq>mhz/simulation_results.csv)")
	projectCmd.Flags().StringVar(&outputDir, "output", "output", "Directory for exported results (empty to disable)")
	projectCmd.Flags().BoolVar(&showScaling, "scaling", false, "Print multi-tile scaling tables")

	rootCmd.AddCommand(projectCmd)
}

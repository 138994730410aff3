package proj

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StrategyStats summarizes one strategy's projected throughput across all
// frequencies where it produced a value.
type StrategyStats struct {
	Strategy string
	Count    int

	MeanTGS  float64
	MinTGS   float64
	MaxTGS   float64
	StdTGS   float64
	RangeTGS float64
}

// ComparisonSummary ranks strategies by mean projected throughput. Purely
// descriptive; nothing here recomputes projections.
type ComparisonSummary struct {
	Stats []StrategyStats

	MostConservative    string
	MostOptimistic      string
	ConservativeMeanTGS float64
	OptimisticMeanTGS   float64
	MeanGapTGS          float64

	Recommendations []string
}

// Compare aggregates per-strategy statistics of improved TGS across
// frequencies and derives conservative/optimistic recommendations.
// Not-computed results are skipped.
func Compare(projections []FrequencyProjection) ComparisonSummary {
	byStrategy := make(map[string][]float64)
	var order []string
	for _, fp := range projections {
		for _, r := range fp.Results {
			if _, seen := byStrategy[r.Strategy]; !seen {
				order = append(order, r.Strategy)
				byStrategy[r.Strategy] = nil
			}
			if r.Computed {
				byStrategy[r.Strategy] = append(byStrategy[r.Strategy], r.ImprovedTGS)
			}
		}
	}

	var summary ComparisonSummary
	for _, name := range order {
		values := byStrategy[name]
		if len(values) == 0 {
			continue
		}
		s := StrategyStats{
			Strategy: name,
			Count:    len(values),
			MeanTGS:  stat.Mean(values, nil),
			MinTGS:   minOf(values),
			MaxTGS:   maxOf(values),
		}
		if len(values) > 1 {
			s.StdTGS = stat.StdDev(values, nil)
		}
		s.RangeTGS = s.MaxTGS - s.MinTGS
		summary.Stats = append(summary.Stats, s)
	}

	if len(summary.Stats) < 2 {
		return summary
	}

	conservative := summary.Stats[0]
	optimistic := summary.Stats[0]
	for _, s := range summary.Stats[1:] {
		if s.MeanTGS < conservative.MeanTGS {
			conservative = s
		}
		if s.MeanTGS > optimistic.MeanTGS {
			optimistic = s
		}
	}

	summary.MostConservative = conservative.Strategy
	summary.MostOptimistic = optimistic.Strategy
	summary.ConservativeMeanTGS = conservative.MeanTGS
	summary.OptimisticMeanTGS = optimistic.MeanTGS
	summary.MeanGapTGS = optimistic.MeanTGS - conservative.MeanTGS

	summary.Recommendations = []string{
		fmt.Sprintf("Most conservative estimate: %s (avg: %.2f tok/s)", conservative.Strategy, conservative.MeanTGS),
		fmt.Sprintf("Most optimistic estimate: %s (avg: %.2f tok/s)", optimistic.Strategy, optimistic.MeanTGS),
		fmt.Sprintf("Range between approaches: %.2f tok/s", summary.MeanGapTGS),
	}
	for _, s := range summary.Stats {
		if s.Strategy == StrategyHybridCorrelation {
			summary.Recommendations = append(summary.Recommendations,
				"Hybrid approach recommended for balanced accuracy using both hardware and simulation data")
			break
		}
	}
	return summary
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

package proj

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// splitEpsilon bounds how far the memory/communication ratio pair may drift
// from summing to exactly 1.0.
const splitEpsilon = 1e-9

// ResourceCategory is the functional category a resource record belongs to.
type ResourceCategory int

const (
	// CategoryExcluded marks records outside the graphics/tile domain; they
	// are not counted in any total.
	CategoryExcluded ResourceCategory = iota
	// CategoryCompute marks compute-execution-unit records.
	CategoryCompute
	// CategoryMemoryComm marks combined memory+communication records, later
	// split by the configured ratio.
	CategoryMemoryComm
	// CategoryOther marks tile-domain records that are neither compute nor
	// memory+communication.
	CategoryOther
)

func (c ResourceCategory) String() string {
	switch c {
	case CategoryCompute:
		return "compute"
	case CategoryMemoryComm:
		return "memory_comm"
	case CategoryOther:
		return "other"
	default:
		return "excluded"
	}
}

// ClassificationRule maps a resource-path pattern to a category. A rule
// matches when the path carries the Prefix (if set) and contains every
// substring in Contains. Rules are evaluated in order; first match wins.
type ClassificationRule struct {
	Category ResourceCategory
	Prefix   string
	Contains []string
}

// Matches reports whether the resource path satisfies the rule.
func (r ClassificationRule) Matches(path string) bool {
	if r.Prefix != "" && !strings.HasPrefix(path, r.Prefix) {
		return false
	}
	for _, sub := range r.Contains {
		if !strings.Contains(path, sub) {
			return false
		}
	}
	return true
}

// DefaultClassificationRules is the tile-domain rule table:
// compute execution units (ex_u0) on a tile, memory+communication execution
// units (ex_u1) on a tile, then any remaining tile-domain resource.
func DefaultClassificationRules() []ClassificationRule {
	return []ClassificationRule{
		{Category: CategoryCompute, Contains: []string{"GT_TILE_", "/ex_u0"}},
		{Category: CategoryMemoryComm, Contains: []string{"GT_TILE_", "/ex_u1"}},
		{Category: CategoryOther, Prefix: "gt/"},
	}
}

// ResourceClassifier categorizes raw per-resource duration records and splits
// the combined memory+communication bucket by a configured ratio.
type ResourceClassifier struct {
	rules []ClassificationRule
	split ExU1Split
}

// NewResourceClassifier builds a classifier with the default rule table.
// The split pair must sum to 1.0 within epsilon.
func NewResourceClassifier(split ExU1Split) (*ResourceClassifier, error) {
	return NewResourceClassifierWithRules(DefaultClassificationRules(), split)
}

// NewResourceClassifierWithRules builds a classifier with a custom rule table.
func NewResourceClassifierWithRules(rules []ClassificationRule, split ExU1Split) (*ResourceClassifier, error) {
	if math.Abs(split.MemoryCopy+split.Communication-1.0) > splitEpsilon {
		return nil, fmt.Errorf("%w: memory/communication split must sum to 1.0, got %v + %v",
			ErrConfiguration, split.MemoryCopy, split.Communication)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: classification rule table is empty", ErrConfiguration)
	}
	return &ResourceClassifier{rules: rules, split: split}, nil
}

// Categorize returns the category of a single resource path, or
// CategoryExcluded when no rule matches.
func (c *ResourceClassifier) Categorize(path string) ResourceCategory {
	for _, r := range c.rules {
		if r.Matches(path) {
			return r.Category
		}
	}
	return CategoryExcluded
}

// Classify aggregates record durations into classified buckets. Records with
// non-finite or negative durations are dropped with a warning rather than
// failing the frequency. The returned classification satisfies
// compute + memory + communication + other == sum of kept record durations.
func (c *ResourceClassifier) Classify(records []ResourceDurationRecord) ResourceClassification {
	var cls ResourceClassification
	var memoryComm float64

	for _, rec := range records {
		if math.IsNaN(rec.Duration) || math.IsInf(rec.Duration, 0) || rec.Duration < 0 {
			cls.DroppedCount++
			continue
		}
		switch c.Categorize(rec.ResourcePath) {
		case CategoryCompute:
			cls.ComputeDuration += rec.Duration
			cls.ComputeCount++
		case CategoryMemoryComm:
			memoryComm += rec.Duration
			cls.MemoryCommCount++
		case CategoryOther:
			cls.OtherDuration += rec.Duration
			cls.OtherCount++
		}
	}

	if cls.DroppedCount > 0 {
		logrus.Warnf("classification dropped %d records with invalid durations", cls.DroppedCount)
	}

	cls.MemoryDuration = memoryComm * c.split.MemoryCopy
	cls.CommunicationDuration = memoryComm * c.split.Communication

	// Percentages are defined as 0 for an empty total.
	total := cls.ComputeDuration + memoryComm + cls.OtherDuration
	if total > 0 {
		cls.ComputePercent = cls.ComputeDuration / total * 100
		cls.MemoryCommPercent = memoryComm / total * 100
	}
	return cls
}

package proj

// FrequencyRecord is one row of the frequency summary table: the aggregate
// simulated duration observed at a single operating frequency. Durations are
// in abstract simulator units until multiplied by the correlation factor.
type FrequencyRecord struct {
	FrequencyMHz  int
	TotalDuration float64
}

// ResourceDurationRecord is one row of a per-frequency resource table: the
// execution duration attributed to a single simulated execution unit.
type ResourceDurationRecord struct {
	ResourcePath string
	Duration     float64
	Transition   string
}

// ResourceClassification aggregates classified record durations for one
// frequency. MemoryDuration and CommunicationDuration are the configured-ratio
// split of the combined memory+communication bucket.
type ResourceClassification struct {
	ComputeDuration       float64
	MemoryDuration        float64
	CommunicationDuration float64
	OtherDuration         float64

	ComputeCount    int
	MemoryCommCount int
	OtherCount      int
	DroppedCount    int // records with non-finite or negative durations

	ComputePercent    float64
	MemoryCommPercent float64
}

// MemoryCommDuration returns the combined memory+communication bucket,
// i.e. the total before ratio splitting.
func (c ResourceClassification) MemoryCommDuration() float64 {
	return c.MemoryDuration + c.CommunicationDuration
}

// TotalDuration returns the sum of all classified durations.
func (c ResourceClassification) TotalDuration() float64 {
	return c.ComputeDuration + c.MemoryDuration + c.CommunicationDuration + c.OtherDuration
}

// Buckets returns the classification as model-ready bucket durations.
func (c ResourceClassification) Buckets() BucketDurations {
	return BucketDurations{
		Compute:       c.ComputeDuration,
		Memory:        c.MemoryDuration,
		Communication: c.CommunicationDuration,
		Other:         c.OtherDuration,
	}
}

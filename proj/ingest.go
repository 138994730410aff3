package proj

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ResourceTableName is the per-frequency resource table file name produced by
// the simulator.
const ResourceTableName = "simulation_results.csv"

// LoadFrequencySummary reads the frequency summary table: one row per
// frequency with a label column (e.g. "1600MHz") and an aggregate duration.
// Column lookup is by header name ("Frequency", "total_duration"),
// case-insensitive. Rows with an unparsable duration are skipped with a
// warning.
func LoadFrequencySummary(path string) ([]FrequencyRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open frequency summary: %v", ErrMissingData, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read frequency summary %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: frequency summary %q empty or missing header", ErrMissingData, path)
	}

	freqCol, err := columnIndex(records[0], "Frequency")
	if err != nil {
		return nil, fmt.Errorf("frequency summary %q: %w", path, err)
	}
	durCol, err := columnIndex(records[0], "total_duration")
	if err != nil {
		return nil, fmt.Errorf("frequency summary %q: %w", path, err)
	}

	var freqs []FrequencyRecord
	for i, record := range records[1:] {
		if len(record) <= freqCol || len(record) <= durCol {
			return nil, fmt.Errorf("frequency summary %q row %d: too few columns", path, i+2)
		}
		mhz, err := ParseFrequencyLabel(record[freqCol])
		if err != nil {
			return nil, fmt.Errorf("frequency summary %q row %d: %w", path, i+2, err)
		}
		dur, err := strconv.ParseFloat(strings.TrimSpace(record[durCol]), 64)
		if err != nil {
			logrus.Warnf("frequency summary row %d (%dMHz): non-numeric total_duration %q, skipping",
				i+2, mhz, record[durCol])
			continue
		}
		freqs = append(freqs, FrequencyRecord{FrequencyMHz: mhz, TotalDuration: dur})
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: frequency summary %q has no usable rows", ErrMissingData, path)
	}
	return freqs, nil
}

// ParseFrequencyLabel converts a "1600MHz"-style label (or a bare number)
// into MHz.
func ParseFrequencyLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	lower := strings.ToLower(s)
	lower = strings.TrimSuffix(lower, "mhz")
	mhz, err := strconv.Atoi(strings.TrimSpace(lower))
	if err != nil || mhz <= 0 {
		return 0, fmt.Errorf("invalid frequency label %q", label)
	}
	return mhz, nil
}

// LoadResourceTable reads one per-frequency resource table with RESOURCE,
// DURATION and TRANSITION columns. Rows whose duration is non-numeric are
// dropped (soft warning); the remaining rows keep their raw string fields for
// the classifier.
func LoadResourceTable(path string) ([]ResourceDurationRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open resource table: %v", ErrClassificationUnavailable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // simulator output occasionally pads columns
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read resource table %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: resource table %q empty or missing header", ErrClassificationUnavailable, path)
	}

	resCol, err := columnIndex(records[0], "RESOURCE")
	if err != nil {
		return nil, fmt.Errorf("resource table %q: %w", path, err)
	}
	durCol, err := columnIndex(records[0], "DURATION")
	if err != nil {
		return nil, fmt.Errorf("resource table %q: %w", path, err)
	}
	transCol, _ := columnIndex(records[0], "TRANSITION") // optional

	var rows []ResourceDurationRecord
	dropped := 0
	for _, record := range records[1:] {
		if len(record) <= resCol || len(record) <= durCol {
			dropped++
			continue
		}
		dur, err := strconv.ParseFloat(strings.TrimSpace(record[durCol]), 64)
		if err != nil {
			dropped++
			continue
		}
		rec := ResourceDurationRecord{
			ResourcePath: strings.TrimSpace(record[resCol]),
			Duration:     dur,
		}
		if transCol >= 0 && len(record) > transCol {
			rec.Transition = strings.TrimSpace(record[transCol])
		}
		rows = append(rows, rec)
	}
	if dropped > 0 {
		logrus.Warnf("resource table %q: dropped %d rows with missing or non-numeric durations", path, dropped)
	}
	return rows, nil
}

// LoadResourceTables loads per-frequency resource tables from
// dir/<freq>mhz/simulation_results.csv for each frequency in the summary.
// An absent or unreadable table is soft: the frequency simply has no
// classification and the hybrid strategy falls back.
func LoadResourceTables(dir string, freqs []FrequencyRecord) map[int][]ResourceDurationRecord {
	tables := make(map[int][]ResourceDurationRecord)
	for _, f := range freqs {
		path := filepath.Join(dir, fmt.Sprintf("%dmhz", f.FrequencyMHz), ResourceTableName)
		rows, err := LoadResourceTable(path)
		if err != nil {
			logrus.Infof("no resource table for %dMHz (%v)", f.FrequencyMHz, err)
			continue
		}
		tables[f.FrequencyMHz] = rows
		logrus.Debugf("loaded %d resource records for %dMHz", len(rows), f.FrequencyMHz)
	}
	return tables
}

// columnIndex finds a header column by case-insensitive name. Returns -1 and
// an error when absent.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("missing column %q", name)
}

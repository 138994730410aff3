package proj

import "errors"

var (
	// ErrConfiguration indicates a malformed or missing improvement-factor
	// field, or a non-positive factor value. Fatal for any run that would
	// use the offending value.
	ErrConfiguration = errors.New("proj: invalid configuration")

	// ErrInvalidFactor indicates an improvement factor ≤ 0 at model
	// construction time. Wraps ErrConfiguration semantics for factor inputs
	// specifically.
	ErrInvalidFactor = errors.New("proj: improvement factor must be > 0")

	// ErrMissingData indicates an absent or empty frequency-summary table.
	// Fatal: there is nothing to project without it.
	ErrMissingData = errors.New("proj: missing data")

	// ErrClassificationUnavailable indicates the per-resource table is absent
	// for a frequency. Soft: the hybrid strategy downgrades to its averaging
	// fallback.
	ErrClassificationUnavailable = errors.New("proj: classification unavailable")

	// ErrDivision indicates a computed denominator was zero or negative.
	ErrDivision = errors.New("proj: zero or negative denominator")

	// ErrCorrelationUnavailable indicates the baseline frequency has no row
	// in the frequency summary. Fatal to the run: every strategy depends on
	// the single correlation factor or the calibrated baseline it anchors.
	ErrCorrelationUnavailable = errors.New("proj: baseline frequency absent from frequency summary")
)

package common

// Default request parameters, matching the registry's most common usage.
const (
	// DefaultState is the jurisdiction used when a request names none.
	DefaultState = "Karnataka"

	// DefaultDay is the relative-day selector used when a request names none.
	DefaultDay = "today"
)

// SampleSize is the number of records returned in a cause-list preview.
const SampleSize = 5

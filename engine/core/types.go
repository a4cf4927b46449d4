package core

import "time"

// ConfigTree is the JSON-like settings tree shared across the engine. Values
// are scalars, arrays of scalars, or nested trees. The alias keeps trees
// interchangeable with decoded JSON maps without conversions.
type ConfigTree = map[string]any

// DefaultMaxDepth bounds recursive tree walks (merge, sanitization).
const DefaultMaxDepth = 10

// PreviewSnapshot is an immutable deep copy of the canonical tree taken at
// commit time, paired with the edit that triggered it. Snapshots supersede
// each other; they are never merged.
type PreviewSnapshot struct {
	Tree    ConfigTree `json:"tree"`
	Field   string     `json:"field"`
	Value   any        `json:"value"`
	TakenAt time.Time  `json:"takenAt"`
}

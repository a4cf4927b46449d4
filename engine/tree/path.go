// Package tree implements guarded access to nested configuration trees:
// dot-path parsing, get/set through the property guard, and a
// non-destructive deep merge. It is the only component permitted to mutate
// tree structure.
package tree

import (
	"strings"

	"github.com/searchpro/settings/engine/core"
)

// Path is an ordered sequence of key segments addressing a tree location.
// Immutable once parsed; callers must not modify the backing slice. Array
// indices are not addressable; arrays are leaf values.
type Path []string

// ParsePath splits a dot-delimited path into segments. Empty input or an
// empty segment (leading, trailing, or double dots) yields a
// MalformedPathError.
func ParsePath(text string) (Path, error) {
	if text == "" {
		return nil, core.NewMalformedPathError(text, "path is empty")
	}
	segments := strings.Split(text, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, core.NewMalformedPathError(text, "empty path segment")
		}
	}
	return Path(segments), nil
}

// String serializes the path back to dot-delimited text.
func (p Path) String() string {
	return strings.Join(p, ".")
}

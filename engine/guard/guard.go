// Package guard classifies tree keys as safe or unsafe. Every structural
// read and mutation on a configuration tree must pass each path segment
// through this predicate; a rejected segment aborts the whole operation.
package guard

import (
	"strings"

	"github.com/searchpro/settings/engine/core"
)

// MaxKeyLength is the ceiling on a single key. Anything longer is treated as
// hostile input rather than a legitimate field name.
const MaxKeyLength = 100

// ReservedPrefix marks keys reserved for the underlying object model.
const ReservedPrefix = "__"

// reservedKeys mirrors the dangerous own-property names of the JS object
// prototype chain the emitted configuration is consumed under. Assigning
// through any of these from an attacker-controlled field name is how
// prototype pollution happens, so they are denied outright.
var reservedKeys = map[string]struct{}{
	"__proto__":            {},
	"prototype":            {},
	"constructor":          {},
	"__defineGetter__":     {},
	"__defineSetter__":     {},
	"__lookupGetter__":     {},
	"__lookupSetter__":     {},
	"valueOf":              {},
	"toString":             {},
	"hasOwnProperty":       {},
	"isPrototypeOf":        {},
	"propertyIsEnumerable": {},
}

// IsSafeKey reports whether a single key may be used as a tree node name.
func IsSafeKey(key string) bool {
	if key == "" || len(key) > MaxKeyLength {
		return false
	}
	if strings.HasPrefix(key, ReservedPrefix) {
		return false
	}
	_, reserved := reservedKeys[key]
	return !reserved
}

// CheckPath validates every segment of a path. It returns a
// BlockedPropertyError naming the first offending segment, or nil.
func CheckPath(segments []string) error {
	for _, seg := range segments {
		if !IsSafeKey(seg) {
			return core.NewBlockedPropertyError(seg, strings.Join(segments, "."))
		}
	}
	return nil
}

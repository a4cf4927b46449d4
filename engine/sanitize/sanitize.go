// Package sanitize validates and neutralizes untrusted field content before
// it reaches the configuration tree, persisted storage, or the preview
// channel.
package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/guard"
	"github.com/searchpro/settings/pkg/logger"
)

// DefaultMaxTextLength is the global ceiling for string values. Individual
// call sites may pass a tighter limit (identifier fields use 100).
const DefaultMaxTextLength = 10000

// TruncationMarker is appended to values clipped by Text.
const TruncationMarker = "..."

// strictPolicy neutralizes markup through a parse-and-re-encode round trip:
// active tags are dropped and remaining text is entity-encoded. The round
// trip is idempotent, which keeps repeated sanitization stable.
var strictPolicy = bluemonday.StrictPolicy()

// Text coerces value to a string, neutralizes markup, and truncates to
// maxLength (DefaultMaxTextLength when maxLength <= 0), appending
// TruncationMarker when clipped.
func Text(value any, maxLength int) string {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			return ""
		}
		s = fmt.Sprintf("%v", value)
	}
	s = strictPolicy.Sanitize(s)
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	if len(s) <= maxLength {
		return s
	}
	// Already-clipped output passes through unchanged so sanitizing twice
	// equals sanitizing once.
	if strings.HasSuffix(s, TruncationMarker) && len(s) <= maxLength+len(TruncationMarker) {
		return s
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncationMarker
}

// IsContentSafe reports whether text is free of the blocked injection
// patterns. Pure predicate, no mutation.
func IsContentSafe(text string) bool {
	_, found := findDangerousPattern(text)
	return !found
}

// DangerousPattern returns the name of the first blocked pattern found in
// text, for callers that report which pattern triggered a rejection.
func DangerousPattern(text string) (string, bool) {
	return findDangerousPattern(text)
}

// Tree recursively sanitizes tree in place: every key must pass the guard and
// every string must pass IsContentSafe, or the whole validation is rejected.
// String leaves that pass are rewritten with Text. Recursion is bounded by
// maxDepth (core.DefaultMaxDepth when maxDepth <= 0).
func Tree(tree core.ConfigTree, maxDepth int) bool {
	if tree == nil {
		return true
	}
	if maxDepth <= 0 {
		maxDepth = core.DefaultMaxDepth
	}
	return sanitizeNode(tree, 0, maxDepth)
}

func sanitizeNode(node map[string]any, depth, maxDepth int) bool {
	if depth > maxDepth {
		logger.Warn("tree sanitization rejected: structure exceeds maximum depth", "max_depth", maxDepth)
		return false
	}
	for key, value := range node {
		if !guard.IsSafeKey(key) {
			logger.Warn("tree sanitization rejected", "error", core.NewBlockedPropertyError(key, ""))
			return false
		}
		switch v := value.(type) {
		case string:
			if !sanitizeLeaf(node, key, v) {
				return false
			}
		case map[string]any:
			if !sanitizeNode(v, depth+1, maxDepth) {
				return false
			}
		case []any:
			for i, item := range v {
				switch it := item.(type) {
				case string:
					if pattern, found := findDangerousPattern(it); found {
						logger.Warn("tree sanitization rejected",
							"error", core.NewUnsafeContentError(key, pattern))
						return false
					}
					v[i] = Text(it, DefaultMaxTextLength)
				case map[string]any:
					if !sanitizeNode(it, depth+1, maxDepth) {
						return false
					}
				}
			}
		}
	}
	return true
}

func sanitizeLeaf(node map[string]any, key, value string) bool {
	if pattern, found := findDangerousPattern(value); found {
		logger.Warn("tree sanitization rejected",
			"error", core.NewUnsafeContentError(key, pattern))
		return false
	}
	node[key] = Text(value, DefaultMaxTextLength)
	return true
}

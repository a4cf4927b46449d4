package tree

import (
	"fmt"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/guard"
	"github.com/searchpro/settings/engine/sanitize"
	"github.com/searchpro/settings/pkg/logger"
)

// Merge deep-merges source into a copy of target and returns the new tree.
// Target is never mutated, so an aborted operation cannot leave a partially
// applied merge behind. Unsafe source keys are skipped and logged. When both
// sides carry tree values the merge recurses, bounded by maxDepth
// (core.DefaultMaxDepth when maxDepth <= 0); beyond the bound the subtree is
// skipped with a warning. Otherwise the source value overwrites the target's,
// with strings sanitized.
func Merge(target, source core.ConfigTree, maxDepth int) (core.ConfigTree, error) {
	if maxDepth <= 0 {
		maxDepth = core.DefaultMaxDepth
	}
	merged, err := core.DeepCopyTree(target)
	if err != nil {
		return nil, fmt.Errorf("failed to copy merge target: %w", err)
	}
	mergeInto(merged, source, 0, maxDepth)
	return merged, nil
}

func mergeInto(dst, src map[string]any, depth, maxDepth int) {
	for key, value := range src {
		if !guard.IsSafeKey(key) {
			logger.Warn("merge skipped unsafe key", "error", core.NewBlockedPropertyError(key, ""))
			continue
		}
		srcTree, srcIsTree := value.(map[string]any)
		dstTree, dstIsTree := dst[key].(map[string]any)
		if srcIsTree && dstIsTree {
			if depth+1 > maxDepth {
				logger.Warn("merge skipped subtree beyond maximum depth", "key", key, "max_depth", maxDepth)
				continue
			}
			mergeInto(dstTree, srcTree, depth+1, maxDepth)
			continue
		}
		dst[key] = copySanitized(value, depth+1, maxDepth)
	}
}

// copySanitized deep-copies a source value so the merged tree never aliases
// the source, dropping unsafe keys and sanitizing strings along the way.
func copySanitized(value any, depth, maxDepth int) any {
	switch v := value.(type) {
	case string:
		return sanitize.Text(v, sanitize.DefaultMaxTextLength)
	case map[string]any:
		out := make(map[string]any, len(v))
		if depth > maxDepth {
			logger.Warn("merge skipped subtree beyond maximum depth", "max_depth", maxDepth)
			return out
		}
		for key, item := range v {
			if !guard.IsSafeKey(key) {
				logger.Warn("merge skipped unsafe key", "error", core.NewBlockedPropertyError(key, ""))
				continue
			}
			out[key] = copySanitized(item, depth+1, maxDepth)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copySanitized(item, depth, maxDepth)
		}
		return out
	default:
		return value
	}
}

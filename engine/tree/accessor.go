package tree

import (
	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/guard"
	"github.com/searchpro/settings/engine/sanitize"
	"github.com/searchpro/settings/pkg/logger"
)

// Get walks path through tree and returns the addressed value. The second
// return is false when the path is malformed, any segment fails the guard,
// any intermediate node is absent, or an intermediate node is not itself a
// tree. Get never panics and never mutates.
func Get(tree core.ConfigTree, path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	if err := guard.CheckPath(p); err != nil {
		logger.Warn("tree read declined", "error", err)
		return nil, false
	}
	node := tree
	for _, seg := range p[:len(p)-1] {
		child, ok := node[seg]
		if !ok {
			return nil, false
		}
		m, ok := child.(map[string]any)
		if !ok {
			return nil, false
		}
		node = m
	}
	value, ok := node[p[len(p)-1]]
	return value, ok
}

// Set writes value at path, creating intermediate tree nodes as needed. The
// whole operation is rejected (false, no mutation) when the path is malformed
// or any segment fails the guard. String values pass through the sanitizer
// before assignment; a string still matching an injection pattern after
// markup neutralization (a javascript: URI survives as plain text) is
// declined and the previous value stays. An existing non-tree intermediate
// is replaced by an empty tree node.
func Set(tree core.ConfigTree, path string, value any) bool {
	p, err := ParsePath(path)
	if err != nil {
		logger.Warn("tree write declined", "error", err)
		return false
	}
	if err := guard.CheckPath(p); err != nil {
		logger.Warn("tree write declined", "error", err)
		return false
	}
	if s, ok := value.(string); ok {
		cleaned := sanitize.Text(s, sanitize.DefaultMaxTextLength)
		if pattern, found := sanitize.DangerousPattern(cleaned); found {
			logger.Warn("tree write declined", "error", core.NewUnsafeContentError(path, pattern))
			return false
		}
		value = cleaned
	}
	node := tree
	for _, seg := range p[:len(p)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[seg] = child
		}
		node = child
	}
	node[p[len(p)-1]] = value
	return true
}

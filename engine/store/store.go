// Package store owns the canonical configuration tree for an editing
// session: factory defaults, structural validation, guarded subtree
// replacement, and resets. The root tree reference is never swapped, so
// handler references stay valid for the life of the session.
package store

import (
	"encoding/json"
	"sync"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/sanitize"
	"github.com/searchpro/settings/engine/tree"
	"github.com/searchpro/settings/pkg/logger"
)

// DefaultMaxTreeBytes is the serialized-size ceiling for the canonical tree
// and any load candidate (1 MiB).
const DefaultMaxTreeBytes = 1 << 20

// wellKnownSections are expected top-level sections; their absence in a load
// candidate is worth a warning but is not an error.
var wellKnownSections = []string{"searchBar", "appearance", "content"}

// Config carries the store limits.
type Config struct {
	MaxTreeBytes int
	MaxDepth     int
}

// Store holds the canonical configuration tree.
type Store struct {
	mu           sync.RWMutex
	tree         core.ConfigTree
	maxTreeBytes int
	maxDepth     int
}

// New creates a store seeded from the factory defaults.
func New(cfg *Config) *Store {
	s := &Store{
		tree:         FactoryDefaults(),
		maxTreeBytes: DefaultMaxTreeBytes,
		maxDepth:     core.DefaultMaxDepth,
	}
	if cfg != nil {
		if cfg.MaxTreeBytes > 0 {
			s.maxTreeBytes = cfg.MaxTreeBytes
		}
		if cfg.MaxDepth > 0 {
			s.maxDepth = cfg.MaxDepth
		}
	}
	return s
}

// MaxTreeBytes returns the serialized-size ceiling.
func (s *Store) MaxTreeBytes() int { return s.maxTreeBytes }

// MaxDepth returns the recursion bound for tree walks.
func (s *Store) MaxDepth() int { return s.maxDepth }

// Get reads the value at path from the canonical tree.
func (s *Store) Get(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tree.Get(s.tree, path)
}

// Set writes value at path in the canonical tree through the guarded
// accessor. False means the operation was declined and nothing changed.
func (s *Store) Set(path string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tree.Set(s.tree, path, value)
}

// Snapshot returns a deep copy of the canonical tree.
func (s *Store) Snapshot() (core.ConfigTree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.DeepCopyTree(s.tree)
}

// LoadTree validates and sanitizes candidate, then replaces the matching
// top-level subtrees of the canonical tree. The root reference is kept. On
// any failure the canonical tree is left untouched and false is returned.
func (s *Store) LoadTree(candidate core.ConfigTree) bool {
	if candidate == nil {
		return false
	}
	if err := s.validateStructure(candidate); err != nil {
		logger.Warn("config load rejected", "error", err)
		return false
	}
	// Sanitization rewrites string leaves, so work on a copy and leave the
	// caller's candidate alone.
	cleaned, err := core.DeepCopyTree(candidate)
	if err != nil {
		logger.Error("config load failed", "error", err)
		return false
	}
	if !sanitize.Tree(cleaned, s.maxDepth) {
		logger.Warn("config load rejected by sanitizer")
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for section, subtree := range cleaned {
		s.tree[section] = subtree
	}
	return true
}

// MergeTree deep-merges overlay into the canonical tree: keys absent from
// the overlay keep their current values. The root reference is kept. On any
// failure the canonical tree is left untouched and false is returned.
func (s *Store) MergeTree(overlay core.ConfigTree) bool {
	if overlay == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := tree.Merge(s.tree, overlay, s.maxDepth)
	if err != nil {
		logger.Error("config merge failed", "error", err)
		return false
	}
	data, err := json.Marshal(merged)
	if err != nil {
		logger.Error("config merge failed", "error", err)
		return false
	}
	if len(data) > s.maxTreeBytes {
		logger.Warn("config merge rejected",
			"error", core.NewStorageQuotaError("merged", len(data), s.maxTreeBytes))
		return false
	}
	for section, subtree := range merged {
		s.tree[section] = subtree
	}
	return true
}

// ResetSubtree replaces the subtree at sectionPath with the corresponding
// factory-default subtree, leaving siblings untouched.
func (s *Store) ResetSubtree(sectionPath string) bool {
	defaults := FactoryDefaults()
	value, ok := tree.Get(defaults, sectionPath)
	if !ok {
		logger.Warn("reset declined: no factory default for section", "section", sectionPath)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return tree.Set(s.tree, sectionPath, value)
}

// validateStructure checks the serialized size against the ceiling and warns
// about missing well-known sections.
func (s *Store) validateStructure(candidate core.ConfigTree) error {
	data, err := json.Marshal(candidate)
	if err != nil {
		return err
	}
	if len(data) > s.maxTreeBytes {
		return core.NewStorageQuotaError("candidate", len(data), s.maxTreeBytes)
	}
	for _, section := range wellKnownSections {
		if _, ok := candidate[section]; !ok {
			logger.Warn("config candidate is missing a well-known section", "section", section)
		}
	}
	return nil
}

// Package preview debounces edit bursts into eventually consistent preview
// commits: the canonical tree is snapshotted, sanitized, persisted under the
// live key, and broadcast to embedding contexts.
package preview

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/romdo/go-debounce"

	"github.com/searchpro/settings/engine/bridge"
	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/sanitize"
	"github.com/searchpro/settings/engine/storage"
	"github.com/searchpro/settings/engine/store"
	"github.com/searchpro/settings/engine/tree"
	"github.com/searchpro/settings/pkg/logger"
)

const (
	// DefaultWindow coalesces text edits.
	DefaultWindow = 300 * time.Millisecond
	// DefaultNumericWindow is the tighter window for numeric fields, which
	// arrive in rapid slider bursts.
	DefaultNumericWindow = 150 * time.Millisecond
	// DefaultMaxWait bounds how long a sustained edit burst can postpone a
	// commit.
	DefaultMaxWait = 2 * time.Second
)

// Policy selects how concurrent edits to different fields share timers.
type Policy string

const (
	// PolicyShared runs one timer for the whole session: any edit resets it
	// and a commit carries every pending field.
	PolicyShared Policy = "shared"
	// PolicyPerField runs an independent timer per field path, so edits to
	// one field do not postpone commits of another.
	PolicyPerField Policy = "per-field"
)

// Config tunes the sync. Zero values fall back to the defaults above.
type Config struct {
	Policy        Policy
	Window        time.Duration
	NumericWindow time.Duration
	MaxWait       time.Duration
}

type fieldDebouncer struct {
	window time.Duration
	fire   func()
	cancel func()
}

// Sync owns the debounce timers and the commit pipeline for one editing
// session.
type Sync struct {
	mu        sync.Mutex
	cfg       Config
	store     *store.Store
	storage   storage.Store
	messenger bridge.Messenger

	pending   map[string]any
	lastField string
	lastValue any

	fire     func()
	cancel   func()
	perField map[string]*fieldDebouncer

	closed     bool
	commits    atomic.Int64
	lastCommit core.PreviewSnapshot
	hasCommit  bool
}

// New wires a sync over the canonical store, the persistence layer, and the
// broadcast messenger.
func New(st *store.Store, persist storage.Store, messenger bridge.Messenger, cfg *Config) *Sync {
	s := &Sync{
		cfg: Config{
			Policy:        PolicyShared,
			Window:        DefaultWindow,
			NumericWindow: DefaultNumericWindow,
			MaxWait:       DefaultMaxWait,
		},
		store:     st,
		storage:   persist,
		messenger: messenger,
		pending:   make(map[string]any),
		perField:  make(map[string]*fieldDebouncer),
	}
	if cfg != nil {
		if cfg.Policy != "" {
			s.cfg.Policy = cfg.Policy
		}
		if cfg.Window > 0 {
			s.cfg.Window = cfg.Window
		}
		if cfg.NumericWindow > 0 {
			s.cfg.NumericWindow = cfg.NumericWindow
		}
		if cfg.MaxWait > 0 {
			s.cfg.MaxWait = cfg.MaxWait
		}
	}
	s.fire, s.cancel = debounce.NewWithMaxWait(s.cfg.Window, s.cfg.MaxWait, s.commitShared)
	return s
}

// Schedule records an edit and arms the debounce timer. Edits scheduled
// after Close are dropped.
func (s *Sync) Schedule(path string, value any) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending[path] = value
	s.lastField = path
	s.lastValue = value
	if s.cfg.Policy != PolicyPerField {
		s.mu.Unlock()
		s.fire()
		return
	}
	// The window is derived per edit, so a field that switches between
	// string and numeric values picks up the matching window immediately.
	window := s.cfg.Window
	if isNumeric(value) {
		window = s.cfg.NumericWindow
	}
	d, ok := s.perField[path]
	if ok && d.window != window {
		d.cancel()
		ok = false
	}
	if !ok {
		fire, cancel := debounce.NewWithMaxWait(window, s.cfg.MaxWait, func() {
			s.commitField(path)
		})
		d = &fieldDebouncer{window: window, fire: fire, cancel: cancel}
		s.perField[path] = d
	}
	s.mu.Unlock()
	d.fire()
}

// Flush commits everything pending immediately, bypassing the timers.
func (s *Sync) Flush() {
	s.commitShared()
}

// Close cancels every armed timer without firing it. Pending edits are
// dropped; the canonical tree already holds them, only the broadcast is
// lost.
func (s *Sync) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancels := make([]func(), 0, len(s.perField)+1)
	cancels = append(cancels, s.cancel)
	for _, d := range s.perField {
		cancels = append(cancels, d.cancel)
	}
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// Commits reports how many commits have completed.
func (s *Sync) Commits() int64 {
	return s.commits.Load()
}

// LastCommit returns the most recent committed snapshot, for diagnostics.
func (s *Sync) LastCommit() (core.PreviewSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCommit, s.hasCommit
}

func (s *Sync) commitShared() {
	s.mu.Lock()
	if s.closed || len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = make(map[string]any)
	field, value := s.lastField, s.lastValue
	s.mu.Unlock()
	s.commit(batch, field, value)
}

func (s *Sync) commitField(path string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	value, ok := s.pending[path]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, path)
	s.mu.Unlock()
	s.commit(map[string]any{path: value}, path, value)
}

// commit snapshots the canonical tree, applies the pending edits to the
// snapshot, sanitizes, persists, and broadcasts. Persist and broadcast
// failures are logged and swallowed; the in-memory state is never rolled
// back.
func (s *Sync) commit(batch map[string]any, field string, value any) {
	snap, err := s.store.Snapshot()
	if err != nil {
		logger.Error("preview commit failed to snapshot config", "error", err)
		return
	}
	for path, v := range batch {
		if !tree.Set(snap, path, v) {
			logger.Warn("preview edit declined", "field", path)
		}
	}
	if !sanitize.Tree(snap, s.store.MaxDepth()) {
		logger.Warn("preview commit rejected by sanitizer", "field", field)
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		logger.Error("preview commit failed to serialize config", "error", err)
		return
	}
	if len(data) > s.store.MaxTreeBytes() {
		err := core.NewStorageQuotaError(storage.LiveConfigKey, len(data), s.store.MaxTreeBytes())
		logger.Warn("preview commit skipped", "error", err)
		return
	}
	ctx := context.Background()
	if err := s.storage.Set(ctx, storage.LiveConfigKey, data); err != nil {
		logger.Warn("failed to persist live config", "error", err)
	}
	if err := s.messenger.Publish(ctx, bridge.NewPreviewMessage(snap, field, value)); err != nil {
		logger.Warn("failed to broadcast preview", "error", err)
	}
	s.mu.Lock()
	s.lastCommit = core.PreviewSnapshot{Tree: snap, Field: field, Value: value, TakenAt: time.Now()}
	s.hasCommit = true
	s.mu.Unlock()
	s.commits.Add(1)
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	default:
		return false
	}
}

// Package editor composes one editing session: the canonical store, the
// debounced preview sync, persistence, broadcast, and the tab-handler
// registry, behind the core surface handlers call.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/searchpro/settings/engine/bridge"
	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/preview"
	"github.com/searchpro/settings/engine/registry"
	"github.com/searchpro/settings/engine/sanitize"
	"github.com/searchpro/settings/engine/storage"
	"github.com/searchpro/settings/engine/store"
	"github.com/searchpro/settings/pkg/logger"
)

// ToastFunc surfaces a user-facing notification. Level is one of "info",
// "warning", "error".
type ToastFunc func(level, message string)

// Config assembles a session. Nil fields fall back to in-memory storage, a
// no-op messenger, and a log-backed toast.
type Config struct {
	Store         *store.Config
	Preview       *preview.Config
	Storage       storage.Store
	Messenger     bridge.Messenger
	Toast         ToastFunc
	MaxTextLength int
}

// Session is one live editing session over the configuration tree. It
// implements registry.Core.
type Session struct {
	store         *store.Store
	sync          *preview.Sync
	storage       storage.Store
	messenger     bridge.Messenger
	registry      *registry.Registry
	toast         ToastFunc
	maxTextLength int
}

// NewSession builds the session and restores the persisted configuration
// when a compatible wrapper exists.
func NewSession(ctx context.Context, cfg *Config) *Session {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Session{
		store:         store.New(cfg.Store),
		storage:       cfg.Storage,
		messenger:     cfg.Messenger,
		toast:         cfg.Toast,
		maxTextLength: cfg.MaxTextLength,
	}
	if s.storage == nil {
		s.storage = storage.NewMemStore()
	}
	if s.messenger == nil {
		s.messenger = bridge.NopMessenger{}
	}
	if s.toast == nil {
		s.toast = func(level, message string) {
			logger.Info("toast", "level", level, "message", message)
		}
	}
	if s.maxTextLength <= 0 {
		s.maxTextLength = sanitize.DefaultMaxTextLength
	}
	s.sync = preview.New(s.store, s.storage, s.messenger, cfg.Preview)
	s.registry = registry.New(s)

	if persisted, ok := storage.LoadWrapped(ctx, s.storage); ok {
		if !s.store.LoadTree(persisted) {
			logger.Warn("persisted config rejected, keeping factory defaults")
		}
	}
	return s
}

// Store exposes the canonical configuration store.
func (s *Session) Store() *store.Store { return s.store }

// Registry exposes the tab-handler registry.
func (s *Session) Registry() *registry.Registry { return s.registry }

// Preview exposes the debounced preview sync.
func (s *Session) Preview() *preview.Sync { return s.sync }

// SanitizeInput neutralizes markup and clips a single field value.
func (s *Session) SanitizeInput(value string) string {
	return sanitize.Text(value, s.maxTextLength)
}

// GetNestedProperty reads a dot-path from the canonical tree.
func (s *Session) GetNestedProperty(path string) (any, bool) {
	return s.store.Get(path)
}

// SafeSetNestedProperty writes a dot-path through the guarded accessor.
func (s *Session) SafeSetNestedProperty(path string, value any) bool {
	return s.store.Set(path, value)
}

// DefaultConfig returns a fresh factory-default tree.
func (s *Session) DefaultConfig() map[string]any {
	return store.FactoryDefaults()
}

// ScheduleLivePreview fans the edit out to registered handlers immediately
// and arms the debounced commit.
func (s *Session) ScheduleLivePreview(path string, value any) {
	s.registry.ApplyLivePreview(path, value)
	s.sync.Schedule(path, value)
}

// StorageGet reads a raw session value. Absence and read failures both
// report false; storage is best effort.
func (s *Session) StorageGet(key string) ([]byte, bool) {
	data, err := s.storage.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("storage read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// StorageSet writes a raw session value, reporting success.
func (s *Session) StorageSet(key string, value []byte) bool {
	if err := s.storage.Set(context.Background(), key, value); err != nil {
		logger.Warn("storage write failed", "key", key, "error", err)
		return false
	}
	return true
}

// ShowToast surfaces a user-facing notification.
func (s *Session) ShowToast(level, message string) {
	s.toast(level, message)
}

// UpdateField writes value at path and schedules a preview commit. A
// declined write surfaces a toast and schedules nothing.
func (s *Session) UpdateField(path string, value any) bool {
	if !s.store.Set(path, value) {
		s.toast("warning", fmt.Sprintf("Could not update %s", path))
		return false
	}
	s.ScheduleLivePreview(path, value)
	return true
}

// ResetSection restores one section to factory defaults and previews it.
func (s *Session) ResetSection(sectionPath string) bool {
	if !s.store.ResetSubtree(sectionPath) {
		s.toast("warning", fmt.Sprintf("No defaults for %s", sectionPath))
		return false
	}
	value, _ := s.store.Get(sectionPath)
	s.ScheduleLivePreview(sectionPath, value)
	return true
}

// LoadJSON validates and applies an imported configuration document.
func (s *Session) LoadJSON(data []byte) bool {
	var candidate core.ConfigTree
	if err := json.Unmarshal(data, &candidate); err != nil {
		logger.Warn("config import is not a JSON object", "error", err)
		s.toast("error", "Imported configuration is not valid JSON")
		return false
	}
	if !s.store.LoadTree(candidate) {
		s.toast("error", "Imported configuration was rejected")
		return false
	}
	return true
}

// MergeJSON deep-merges an imported configuration document into the
// canonical tree, keeping values the document does not mention.
func (s *Session) MergeJSON(data []byte) bool {
	var overlay core.ConfigTree
	if err := json.Unmarshal(data, &overlay); err != nil {
		logger.Warn("config import is not a JSON object", "error", err)
		s.toast("error", "Imported configuration is not valid JSON")
		return false
	}
	if !s.store.MergeTree(overlay) {
		s.toast("error", "Imported configuration was rejected")
		return false
	}
	return true
}

// Save flushes pending previews and persists the versioned wrapper. The
// snapshot is content-gated before it is written, so a tree that would be
// rejected at the next session start is never persisted.
func (s *Session) Save(ctx context.Context) error {
	s.sync.Flush()
	snap, err := s.store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot config: %w", err)
	}
	if !sanitize.Tree(snap, s.store.MaxDepth()) {
		return fmt.Errorf("configuration failed content validation, not persisted")
	}
	if err := storage.SaveWrapped(ctx, s.storage, snap); err != nil {
		return fmt.Errorf("failed to persist config: %w", err)
	}
	return nil
}

// Close tears the session down: timers are cancelled and the messenger is
// released. The canonical tree is left to the garbage collector.
func (s *Session) Close() error {
	s.sync.Close()
	return s.messenger.Close()
}

package registry

import (
	"sync"

	"github.com/searchpro/settings/pkg/logger"
)

// Registry stores tab handlers keyed by tab ID and routes shared lifecycle
// calls to them.
type Registry struct {
	mu       sync.RWMutex
	core     Core
	handlers map[string]Handler
}

func New(core Core) *Registry {
	return &Registry{
		core:     core,
		handlers: make(map[string]Handler),
	}
}

// Register stores handler under tabID and binds it to the shared core
// exactly once. Re-registering a tab replaces the prior handler; its Cleanup
// is not called implicitly; callers must do so first or its timers leak.
func (r *Registry) Register(tabID string, handler Handler) {
	if handler == nil {
		logger.Warn("ignoring nil handler registration", "tab", tabID)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[tabID]; exists {
		logger.Warn("replacing registered tab handler; prior handler was not cleaned up", "tab", tabID)
	}
	handler.SetCore(r.core)
	r.handlers[tabID] = handler
}

// Activate initializes the handler for tabID against its container. An
// unregistered tab is a warning no-op: tabs with pure static content have no
// handler by design.
func (r *Registry) Activate(tabID string, container Container) bool {
	r.mu.RLock()
	handler, ok := r.handlers[tabID]
	r.mu.RUnlock()
	if !ok {
		logger.Warn("no handler registered for tab", "tab", tabID)
		return false
	}
	handler.Init(container)
	return true
}

// Deactivate tears a handler down on tab unload or page navigation.
func (r *Registry) Deactivate(tabID string) {
	r.mu.RLock()
	handler, ok := r.handlers[tabID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	handler.Cleanup()
}

// ValidateAll AND-reduces ValidateForm across every registered handler that
// exposes it. Handlers without the capability are trivially valid.
func (r *Registry) ValidateAll(container Container) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	valid := true
	for tabID, handler := range r.handlers {
		validator, ok := handler.(FormValidator)
		if !ok {
			continue
		}
		if !validator.ValidateForm(container) {
			logger.Warn("tab form failed validation", "tab", tabID)
			valid = false
		}
	}
	return valid
}

// UpdateFromForm asks every handler that owns form state to copy its field
// values into the shared tree. Called before a save so the tree reflects the
// latest form content.
func (r *Registry) UpdateFromForm(container Container) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, handler := range r.handlers {
		if updater, ok := handler.(FormUpdater); ok {
			updater.UpdateConfigFromForm(container)
		}
	}
}

// ResetAllToDefaults fans a factory reset out to every handler that supports
// it, so each tab can refresh its own form state afterwards.
func (r *Registry) ResetAllToDefaults() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for tabID, handler := range r.handlers {
		resetter, ok := handler.(DefaultsResetter)
		if !ok {
			continue
		}
		logger.Debug("resetting tab to defaults", "tab", tabID)
		resetter.ResetToDefaults()
	}
}

// ApplyLivePreview fans a preview edit out to every handler that reacts to
// live previews.
func (r *Registry) ApplyLivePreview(path string, value any) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, handler := range r.handlers {
		if previewer, ok := handler.(LivePreviewer); ok {
			previewer.ApplyLivePreview(path, value)
		}
	}
}

// CollectSummary merges per-handler diagnostic reports, keyed by tab ID.
// Diagnostics only; never used for persistence.
func (r *Registry) CollectSummary() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary := make(map[string]any)
	for tabID, handler := range r.handlers {
		provider, ok := handler.(SummaryProvider)
		if !ok {
			continue
		}
		summary[tabID] = provider.ConfigSummary()
	}
	return summary
}

// Tabs lists the registered tab IDs.
func (r *Registry) Tabs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tabs := make([]string, 0, len(r.handlers))
	for tabID := range r.handlers {
		tabs = append(tabs, tabID)
	}
	return tabs
}

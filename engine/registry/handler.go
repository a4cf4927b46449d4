// Package registry routes shared lifecycle calls to independently authored
// tab editors composed over one shared configuration tree.
package registry

// Core is the stable surface a tab handler may call. It is handed to each
// handler exactly once at registration time via SetCore.
type Core interface {
	// SanitizeInput neutralizes markup and clips a single field value.
	SanitizeInput(value string) string
	// GetNestedProperty reads a dot-path from the canonical tree.
	GetNestedProperty(path string) (any, bool)
	// SafeSetNestedProperty writes a dot-path through the guarded accessor.
	// False means the write was declined and nothing changed.
	SafeSetNestedProperty(path string, value any) bool
	// DefaultConfig returns a fresh factory-default tree.
	DefaultConfig() map[string]any
	// ScheduleLivePreview debounces a preview commit for an edited field.
	ScheduleLivePreview(path string, value any)
	// StorageGet and StorageSet access session-scoped persisted values.
	StorageGet(key string) ([]byte, bool)
	StorageSet(key string, value []byte) bool
	// ShowToast surfaces a user-facing notification.
	ShowToast(level, message string)
}

// Container abstracts the form a tab renders into. Rendering itself is out
// of scope; handlers only read and write field values by name.
type Container interface {
	FieldValue(name string) (string, bool)
	SetFieldValue(name, value string)
	Fields() []string
}

// Handler is the required tab-handler contract. Optional capabilities are
// separate interfaces asserted at call time; a handler lacking one is
// treated as a no-op for that call.
type Handler interface {
	SetCore(core Core)
	Init(container Container)
	Cleanup()
}

// FormValidator reports whether the tab's form content is acceptable.
type FormValidator interface {
	ValidateForm(container Container) bool
}

// FormUpdater copies form field values into the shared tree.
type FormUpdater interface {
	UpdateConfigFromForm(container Container)
}

// LivePreviewer receives preview edits for tab-local reactions.
type LivePreviewer interface {
	ApplyLivePreview(path string, value any)
}

// DefaultsResetter restores the tab's section to factory defaults.
type DefaultsResetter interface {
	ResetToDefaults()
}

// SummaryProvider contributes to the diagnostics summary. Never used for
// persistence.
type SummaryProvider interface {
	ConfigSummary() map[string]any
}

// MapContainer is a map-backed Container for tests and headless use.
type MapContainer struct {
	values map[string]string
}

func NewMapContainer(values map[string]string) *MapContainer {
	if values == nil {
		values = map[string]string{}
	}
	return &MapContainer{values: values}
}

func (c *MapContainer) FieldValue(name string) (string, bool) {
	v, ok := c.values[name]
	return v, ok
}

func (c *MapContainer) SetFieldValue(name, value string) {
	c.values[name] = value
}

func (c *MapContainer) Fields() []string {
	fields := make([]string, 0, len(c.values))
	for name := range c.values {
		fields = append(fields, name)
	}
	return fields
}

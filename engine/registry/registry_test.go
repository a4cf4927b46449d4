package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCore records the calls handlers make against the shared surface.
type fakeCore struct {
	sets map[string]any
}

func newFakeCore() *fakeCore { return &fakeCore{sets: map[string]any{}} }

func (f *fakeCore) SanitizeInput(value string) string { return value }
func (f *fakeCore) GetNestedProperty(path string) (any, bool) {
	v, ok := f.sets[path]
	return v, ok
}
func (f *fakeCore) SafeSetNestedProperty(path string, value any) bool {
	f.sets[path] = value
	return true
}
func (f *fakeCore) DefaultConfig() map[string]any    { return map[string]any{} }
func (f *fakeCore) ScheduleLivePreview(string, any)  {}
func (f *fakeCore) StorageGet(string) ([]byte, bool) { return nil, false }
func (f *fakeCore) StorageSet(string, []byte) bool   { return true }
func (f *fakeCore) ShowToast(level, message string)  {}

// baseHandler implements only the required contract.
type baseHandler struct {
	core     Core
	setCores int
	inits    int
	cleanups int
}

func (h *baseHandler) SetCore(core Core) { h.core = core; h.setCores++ }
func (h *baseHandler) Init(Container)    { h.inits++ }
func (h *baseHandler) Cleanup()          { h.cleanups++ }

// fullHandler adds every optional capability.
type fullHandler struct {
	baseHandler
	valid    bool
	previews []string
	resets   int
}

func (h *fullHandler) ValidateForm(Container) bool { return h.valid }
func (h *fullHandler) UpdateConfigFromForm(c Container) {
	if v, ok := c.FieldValue("searchBar.width"); ok {
		h.core.SafeSetNestedProperty("searchBar.width", v)
	}
}
func (h *fullHandler) ApplyLivePreview(path string, _ any) { h.previews = append(h.previews, path) }
func (h *fullHandler) ResetToDefaults()                    { h.resets++ }
func (h *fullHandler) ConfigSummary() map[string]any {
	return map[string]any{"valid": h.valid}
}

func Test_Register(t *testing.T) {
	t.Run("Should bind the core exactly once per registration", func(t *testing.T) {
		r := New(newFakeCore())
		h := &baseHandler{}
		r.Register("general", h)
		assert.Equal(t, 1, h.setCores)
		assert.NotNil(t, h.core)
	})
	t.Run("Should replace a prior handler without implicit cleanup", func(t *testing.T) {
		r := New(newFakeCore())
		first := &baseHandler{}
		second := &baseHandler{}
		r.Register("general", first)
		r.Register("general", second)
		assert.Zero(t, first.cleanups)
		require.True(t, r.Activate("general", NewMapContainer(nil)))
		assert.Zero(t, first.inits)
		assert.Equal(t, 1, second.inits)
	})
	t.Run("Should ignore nil handlers", func(t *testing.T) {
		r := New(newFakeCore())
		r.Register("general", nil)
		assert.Empty(t, r.Tabs())
	})
}

func Test_ActivateDeactivate(t *testing.T) {
	t.Run("Should init the handler for an active tab", func(t *testing.T) {
		r := New(newFakeCore())
		h := &baseHandler{}
		r.Register("appearance", h)
		assert.True(t, r.Activate("appearance", NewMapContainer(nil)))
		assert.Equal(t, 1, h.inits)
	})
	t.Run("Should treat an unregistered tab as a warning no-op", func(t *testing.T) {
		r := New(newFakeCore())
		assert.False(t, r.Activate("static-help", NewMapContainer(nil)))
	})
	t.Run("Should call Cleanup on deactivation", func(t *testing.T) {
		r := New(newFakeCore())
		h := &baseHandler{}
		r.Register("display", h)
		r.Deactivate("display")
		assert.Equal(t, 1, h.cleanups)
	})
}

func Test_ValidateAll(t *testing.T) {
	t.Run("Should AND-reduce across validating handlers", func(t *testing.T) {
		r := New(newFakeCore())
		r.Register("general", &baseHandler{}) // no validator: trivially valid
		r.Register("display", &fullHandler{valid: true})
		assert.True(t, r.ValidateAll(NewMapContainer(nil)))

		r.Register("filtering", &fullHandler{valid: false})
		assert.False(t, r.ValidateAll(NewMapContainer(nil)))
	})
}

func Test_ApplyLivePreview(t *testing.T) {
	t.Run("Should fan out only to handlers with the capability", func(t *testing.T) {
		r := New(newFakeCore())
		plain := &baseHandler{}
		reactive := &fullHandler{}
		r.Register("general", plain)
		r.Register("appearance", reactive)
		r.ApplyLivePreview("appearance.colors.background", "#000000")
		assert.Equal(t, []string{"appearance.colors.background"}, reactive.previews)
	})
}

func Test_CollectSummary(t *testing.T) {
	t.Run("Should merge per-handler reports keyed by tab", func(t *testing.T) {
		r := New(newFakeCore())
		r.Register("general", &baseHandler{})
		r.Register("display", &fullHandler{valid: true})
		summary := r.CollectSummary()
		assert.NotContains(t, summary, "general")
		require.Contains(t, summary, "display")
		assert.Equal(t, map[string]any{"valid": true}, summary["display"])
	})
}

func Test_MapContainer(t *testing.T) {
	t.Run("Should store and list field values", func(t *testing.T) {
		c := NewMapContainer(map[string]string{"searchBar.width": "350"})
		c.SetFieldValue("searchBar.placeholder", "Search...")
		v, ok := c.FieldValue("searchBar.width")
		require.True(t, ok)
		assert.Equal(t, "350", v)
		assert.ElementsMatch(t, []string{"searchBar.width", "searchBar.placeholder"}, c.Fields())
	})
}

func Test_UpdateFromForm(t *testing.T) {
	t.Run("Should copy form values through handlers owning form state", func(t *testing.T) {
		core := newFakeCore()
		r := New(core)
		r.Register("general", &baseHandler{})
		r.Register("searchBar", &fullHandler{})

		container := NewMapContainer(map[string]string{"searchBar.width": "350"})
		r.UpdateFromForm(container)

		v, ok := core.sets["searchBar.width"]
		require.True(t, ok)
		assert.Equal(t, "350", v)
	})
}

func Test_ResetAllToDefaults(t *testing.T) {
	t.Run("Should fan out only to handlers with the capability", func(t *testing.T) {
		r := New(newFakeCore())
		plain := &baseHandler{}
		resettable := &fullHandler{}
		r.Register("general", plain)
		r.Register("display", resettable)
		r.ResetAllToDefaults()
		assert.Equal(t, 1, resettable.resets)
	})
}

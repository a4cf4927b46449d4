package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/sanitize"
)

func Test_Get(t *testing.T) {
	tr := core.ConfigTree{
		"searchBar": map[string]any{
			"width":    350,
			"position": map[string]any{"top": 70},
		},
		"tags": []any{"a", "b"},
	}

	t.Run("Should return nested values", func(t *testing.T) {
		v, ok := Get(tr, "searchBar.position.top")
		require.True(t, ok)
		assert.Equal(t, 70, v)
	})
	t.Run("Should return false for absent intermediates", func(t *testing.T) {
		_, ok := Get(tr, "searchBar.missing.deep")
		assert.False(t, ok)
	})
	t.Run("Should return false when an intermediate is a scalar", func(t *testing.T) {
		_, ok := Get(tr, "searchBar.width.px")
		assert.False(t, ok)
	})
	t.Run("Should return false when an intermediate is an array", func(t *testing.T) {
		_, ok := Get(tr, "tags.0")
		assert.False(t, ok)
	})
	t.Run("Should decline guarded segments", func(t *testing.T) {
		_, ok := Get(tr, "searchBar.__proto__")
		assert.False(t, ok)
	})
	t.Run("Should decline malformed paths", func(t *testing.T) {
		_, ok := Get(tr, "searchBar..width")
		assert.False(t, ok)
	})
}

func Test_Set(t *testing.T) {
	t.Run("Should set and read back a nested value", func(t *testing.T) {
		tr := core.ConfigTree{}
		require.True(t, Set(tr, "searchBar.width", 350))
		v, ok := Get(tr, "searchBar.width")
		require.True(t, ok)
		assert.Equal(t, 350, v)
	})
	t.Run("Should sanitize string values on write", func(t *testing.T) {
		tr := core.ConfigTree{}
		raw := `<b>Search the tour</b>`
		require.True(t, Set(tr, "searchBar.placeholder", raw))
		v, ok := Get(tr, "searchBar.placeholder")
		require.True(t, ok)
		assert.Equal(t, sanitize.Text(raw, 0), v)
	})
	t.Run("Should reject reserved segments without mutating the tree", func(t *testing.T) {
		tr := core.ConfigTree{"searchBar": map[string]any{"width": 350}}
		before, err := json.Marshal(tr)
		require.NoError(t, err)
		for _, path := range []string{
			"__proto__.polluted",
			"constructor.prototype.polluted",
			"searchBar.__defineGetter__",
			"prototype.x",
		} {
			assert.False(t, Set(tr, path, true), "path %q", path)
		}
		after, err := json.Marshal(tr)
		require.NoError(t, err)
		assert.Equal(t, before, after, "tree must be byte-for-byte unchanged")
	})
	t.Run("Should not leak into fresh maps after a declined proto write", func(t *testing.T) {
		tr := core.ConfigTree{}
		assert.False(t, Set(tr, "__proto__.polluted", true))
		fresh := map[string]any{}
		_, leaked := fresh["polluted"]
		assert.False(t, leaked)
		assert.Empty(t, tr)
	})
	t.Run("Should replace a scalar intermediate with a tree node", func(t *testing.T) {
		tr := core.ConfigTree{"searchBar": map[string]any{"width": 350}}
		require.True(t, Set(tr, "searchBar.width.unit", "px"))
		v, ok := Get(tr, "searchBar.width.unit")
		require.True(t, ok)
		assert.Equal(t, "px", v)
	})
	t.Run("Should decline malformed paths", func(t *testing.T) {
		tr := core.ConfigTree{}
		assert.False(t, Set(tr, "", 1))
		assert.False(t, Set(tr, "a..b", 1))
		assert.Empty(t, tr)
	})
	t.Run("Should decline strings still dangerous after markup neutralization", func(t *testing.T) {
		tr := core.ConfigTree{"dataSources": map[string]any{"externalUrl": "https://example.com"}}
		before, err := json.Marshal(tr)
		require.NoError(t, err)
		for _, value := range []string{
			"javascript:alert(1)",
			"eval(document.cookie)",
			"data:text/html,<h1>x</h1>",
		} {
			assert.False(t, Set(tr, "dataSources.externalUrl", value), "value %q", value)
		}
		after, err := json.Marshal(tr)
		require.NoError(t, err)
		assert.Equal(t, before, after, "previous value must stay")
	})
	t.Run("Should accept a value once neutralization strips the dangerous markup", func(t *testing.T) {
		tr := core.ConfigTree{}
		require.True(t, Set(tr, "content.label", `<script>alert(1)</script>Rooms`))
		v, ok := Get(tr, "content.label")
		require.True(t, ok)
		assert.Equal(t, "Rooms", v)
	})
}

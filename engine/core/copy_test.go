package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DeepCopyTree(t *testing.T) {
	t.Run("Should isolate the copy from the original", func(t *testing.T) {
		original := ConfigTree{
			"searchBar": map[string]any{"width": 350, "placeholder": "Search..."},
			"tags":      []any{"a", "b"},
		}
		copied, err := DeepCopyTree(original)
		require.NoError(t, err)
		copied["searchBar"].(map[string]any)["width"] = 900
		assert.Equal(t, 350, original["searchBar"].(map[string]any)["width"])
	})
	t.Run("Should return an empty tree for nil input", func(t *testing.T) {
		copied, err := DeepCopyTree(nil)
		require.NoError(t, err)
		assert.NotNil(t, copied)
		assert.Empty(t, copied)
	})
}

func Test_AsMapDefault_And_FromMapDefault(t *testing.T) {
	t.Run("Should convert a struct to a tree using AsMapDefault", func(t *testing.T) {
		type section struct {
			Width       int    `json:"width"`
			Placeholder string `json:"placeholder"`
		}
		m, err := AsMapDefault(section{Width: 350, Placeholder: "Search..."})
		require.NoError(t, err)
		assert.Equal(t, float64(350), m["width"]) // json numbers decode as float64
		assert.Equal(t, "Search...", m["placeholder"])
	})
	t.Run("Should decode weakly typed form values using FromMapDefault", func(t *testing.T) {
		type section struct {
			Width   int  `mapstructure:"width"`
			Enabled bool `mapstructure:"enabled"`
		}
		in := map[string]any{"width": "420", "enabled": "true"}
		got, err := FromMapDefault[section](in)
		require.NoError(t, err)
		assert.Equal(t, 420, got.Width)
		assert.True(t, got.Enabled)
	})
}

func Test_ErrorTaxonomy(t *testing.T) {
	t.Run("Should carry stable codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeMalformedPath, NewMalformedPathError("a..b", "empty segment").Code())
		assert.Equal(t, ErrCodeBlockedProperty, NewBlockedPropertyError("__proto__", "__proto__.x").Code())
		assert.Equal(t, ErrCodeUnsafeContent, NewUnsafeContentError("searchBar.placeholder", "script tag").Code())
		assert.Equal(t, ErrCodeStorageQuota, NewStorageQuotaError("searchProLiveConfig", 2<<20, 1<<20).Code())
	})
	t.Run("Should render readable messages", func(t *testing.T) {
		err := NewBlockedPropertyError("constructor", "constructor.bad")
		assert.Contains(t, err.Error(), "constructor")
	})
}

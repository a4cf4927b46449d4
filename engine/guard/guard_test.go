package guard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchpro/settings/engine/core"
)

func Test_IsSafeKey(t *testing.T) {
	t.Run("Should reject every reserved prototype-chain name", func(t *testing.T) {
		for key := range reservedKeys {
			assert.False(t, IsSafeKey(key), "expected %q to be rejected", key)
		}
	})
	t.Run("Should reject keys with the reserved prefix", func(t *testing.T) {
		assert.False(t, IsSafeKey("__anything"))
		assert.False(t, IsSafeKey("__"))
	})
	t.Run("Should reject empty and oversized keys", func(t *testing.T) {
		assert.False(t, IsSafeKey(""))
		assert.False(t, IsSafeKey(strings.Repeat("k", MaxKeyLength+1)))
		assert.True(t, IsSafeKey(strings.Repeat("k", MaxKeyLength)))
	})
	t.Run("Should allow ordinary configuration keys", func(t *testing.T) {
		for _, key := range []string{"searchBar", "width", "placeholder", "dataSources", "toStringValue", "_internal"} {
			assert.True(t, IsSafeKey(key), "expected %q to be allowed", key)
		}
	})
}

func Test_CheckPath(t *testing.T) {
	t.Run("Should name the first offending segment", func(t *testing.T) {
		err := CheckPath([]string{"searchBar", "__proto__", "polluted"})
		require.Error(t, err)
		var blocked *core.BlockedPropertyError
		require.ErrorAs(t, err, &blocked)
		assert.Equal(t, "__proto__", blocked.Key)
	})
	t.Run("Should pass a clean path", func(t *testing.T) {
		assert.NoError(t, CheckPath([]string{"searchBar", "width"}))
	})
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/pkg/logger"
)

const (
	// LiveConfigKey holds the latest preview snapshot, overwritten on every
	// commit. No history is retained.
	LiveConfigKey = "searchProLiveConfig"
	// WrappedConfigKey holds the versioned {version, settings} wrapper
	// consulted at session start.
	WrappedConfigKey = "searchPro.config"
	// ConfigVersion gates the wrapper; a stored value with any other version
	// is discarded.
	ConfigVersion = 2
)

// SaveWrapped serializes tree into the versioned wrapper and persists it.
func SaveWrapped(ctx context.Context, s Store, tr core.ConfigTree) error {
	settings, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	out, err := sjson.SetBytes([]byte(`{}`), "version", ConfigVersion)
	if err != nil {
		return fmt.Errorf("failed to build wrapper: %w", err)
	}
	out, err = sjson.SetRawBytes(out, "settings", settings)
	if err != nil {
		return fmt.Errorf("failed to build wrapper: %w", err)
	}
	return s.Set(ctx, WrappedConfigKey, out)
}

// LoadWrapped reads the versioned wrapper. A missing key, an unreadable
// payload, or a version mismatch yields (nil, false); the mismatched value
// is discarded so the next session starts clean.
func LoadWrapped(ctx context.Context, s Store) (core.ConfigTree, bool) {
	raw, err := s.Get(ctx, WrappedConfigKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("failed to read persisted config", "error", err)
		}
		return nil, false
	}
	version := gjson.GetBytes(raw, "version")
	if !version.Exists() || int(version.Int()) != ConfigVersion {
		logger.Warn("discarding persisted config with mismatched version",
			"found", version.Raw, "want", ConfigVersion)
		if err := s.Delete(ctx, WrappedConfigKey); err != nil {
			logger.Warn("failed to discard persisted config", "error", err)
		}
		return nil, false
	}
	settings := gjson.GetBytes(raw, "settings")
	if !settings.Exists() || !settings.IsObject() {
		logger.Warn("discarding persisted config without a settings object")
		return nil, false
	}
	var tr core.ConfigTree
	if err := json.Unmarshal([]byte(settings.Raw), &tr); err != nil {
		logger.Warn("failed to decode persisted settings", "error", err)
		return nil, false
	}
	return tr, true
}

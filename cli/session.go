package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"github.com/searchpro/settings/engine/bridge"
	"github.com/searchpro/settings/engine/editor"
	"github.com/searchpro/settings/engine/preview"
	"github.com/searchpro/settings/engine/storage"
	"github.com/searchpro/settings/engine/store"
	"github.com/searchpro/settings/pkg/config"
)

// buildSession assembles an editing session from the runtime configuration.
func buildSession(ctx context.Context, cfg *config.Config) (*editor.Session, error) {
	persist, err := storage.NewFileStore(afero.NewOsFs(), cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	messenger, err := buildMessenger(cfg)
	if err != nil {
		return nil, err
	}
	session := editor.NewSession(ctx, &editor.Config{
		Store: &store.Config{
			MaxTreeBytes: cfg.Limits.MaxTreeBytes,
			MaxDepth:     cfg.Limits.MaxDepth,
		},
		Preview: &preview.Config{
			Policy:        preview.Policy(cfg.Preview.Policy),
			Window:        cfg.Preview.Window,
			NumericWindow: cfg.Preview.NumericWindow,
			MaxWait:       cfg.Preview.MaxWait,
		},
		Storage:       persist,
		Messenger:     messenger,
		MaxTextLength: cfg.Limits.MaxTextLength,
	})
	return session, nil
}

func buildMessenger(cfg *config.Config) (bridge.Messenger, error) {
	if cfg.Broadcast.RedisURL == "" {
		return bridge.NopMessenger{}, nil
	}
	opts, err := redis.ParseURL(cfg.Broadcast.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid broadcast redis URL: %w", err)
	}
	return bridge.NewRedisMessenger(redis.NewClient(opts), cfg.Broadcast.Channel), nil
}

func loadConfig() (*config.Config, error) {
	return config.NewLoader().Load(nil)
}

// Package bridge broadcasts committed preview snapshots to embedding
// contexts. The editor does not know whether anyone is listening; delivery
// is fire-and-forget and failures are logged, never surfaced to the editing
// flow.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/pkg/logger"
)

const (
	// PreviewMessageType discriminates preview messages so listeners can
	// ignore unrelated traffic on the channel.
	PreviewMessageType = "searchProConfigPreview"
	// PreviewChannel is the pub/sub channel preview snapshots are sent on.
	PreviewChannel = "searchpro.config.preview"
)

// PreviewMessage carries one committed preview: the full sanitized tree plus
// the field that triggered the commit.
type PreviewMessage struct {
	Type   string          `json:"type"`
	Config core.ConfigTree `json:"config"`
	Field  string          `json:"field,omitempty"`
	Value  any             `json:"value,omitempty"`
}

// NewPreviewMessage stamps the message type.
func NewPreviewMessage(tree core.ConfigTree, field string, value any) *PreviewMessage {
	return &PreviewMessage{Type: PreviewMessageType, Config: tree, Field: field, Value: value}
}

// Messenger delivers preview messages to whoever embeds the widget.
type Messenger interface {
	Publish(ctx context.Context, msg *PreviewMessage) error
	Close() error
}

// RedisMessenger publishes preview messages on a redis channel.
type RedisMessenger struct {
	client  *redis.Client
	channel string
}

// NewRedisMessenger wraps client. An empty channel falls back to
// PreviewChannel.
func NewRedisMessenger(client *redis.Client, channel string) *RedisMessenger {
	if channel == "" {
		channel = PreviewChannel
	}
	return &RedisMessenger{client: client, channel: channel}
}

func (m *RedisMessenger) Publish(ctx context.Context, msg *PreviewMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize preview message: %w", err)
	}
	if err := m.client.Publish(ctx, m.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish preview message: %w", err)
	}
	return nil
}

func (m *RedisMessenger) Close() error {
	return m.client.Close()
}

// NopMessenger drops every message. Used when no embedding context is
// configured.
type NopMessenger struct{}

func (NopMessenger) Publish(context.Context, *PreviewMessage) error { return nil }
func (NopMessenger) Close() error                                   { return nil }

// ChanMessenger delivers messages on an in-process channel. When the buffer
// is full the message is dropped: a slow listener must never stall the
// editing flow.
type ChanMessenger struct {
	ch chan *PreviewMessage
}

func NewChanMessenger(buffer int) *ChanMessenger {
	if buffer <= 0 {
		buffer = 16
	}
	return &ChanMessenger{ch: make(chan *PreviewMessage, buffer)}
}

// Messages exposes the delivery channel for the listening side.
func (m *ChanMessenger) Messages() <-chan *PreviewMessage { return m.ch }

func (m *ChanMessenger) Publish(_ context.Context, msg *PreviewMessage) error {
	select {
	case m.ch <- msg:
	default:
		logger.Warn("dropping preview message, listener buffer full", "field", msg.Field)
	}
	return nil
}

func (m *ChanMessenger) Close() error {
	close(m.ch)
	return nil
}

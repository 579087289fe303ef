package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bambawatch/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// flakyTransport fails for one recipient and records the rest.
type flakyTransport struct {
	mu        sync.Mutex
	failFor   string
	delivered []string
}

func (ft *flakyTransport) Send(_ context.Context, msg Message) error {
	if msg.To == ft.failFor {
		return errors.New("mailbox on fire")
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.delivered = append(ft.delivered, msg.To)
	return nil
}

func TestDispatcher_OneFailureDoesNotBlockOthers(t *testing.T) {
	transport := &flakyTransport{failFor: "b@example.com"}
	dispatcher := NewDispatcher(transport, config.NotificationConfig{SendsPerSecond: 1000, SendBurst: 10}, zerolog.Nop())

	messages := []Message{
		{To: "a@example.com", Subject: "s", Body: "b"},
		{To: "b@example.com", Subject: "s", Body: "b"},
		{To: "c@example.com", Subject: "s", Body: "b"},
	}

	sent := dispatcher.Dispatch(context.Background(), messages)

	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"a@example.com", "c@example.com"}, transport.delivered)
}

func TestDispatcher_NoMessages(t *testing.T) {
	transport := &flakyTransport{}
	dispatcher := NewDispatcher(transport, config.NotificationConfig{SendsPerSecond: 1000, SendBurst: 10}, zerolog.Nop())

	sent := dispatcher.Dispatch(context.Background(), nil)
	assert.Zero(t, sent)
}

func TestDispatcher_CancelledContextStopsLaunching(t *testing.T) {
	transport := &flakyTransport{}
	dispatcher := NewDispatcher(transport, config.NotificationConfig{SendsPerSecond: 0.001, SendBurst: 1}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent := dispatcher.Dispatch(ctx, []Message{
		{To: "a@example.com"},
		{To: "b@example.com"},
	})
	assert.Zero(t, sent)
}

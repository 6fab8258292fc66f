package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/metrics"
	"github.com/hanafy/storefront/internal/port"
)

// flakyNotifier fails the first failures calls, then succeeds.
type flakyNotifier struct {
	mu       sync.Mutex
	failures int
	calls    int
	sent     []port.Notification
}

func (f *flakyNotifier) Send(_ context.Context, n port.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *flakyNotifier) delivered() []port.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]port.Notification(nil), f.sent...)
}

func (f *flakyNotifier) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// blockingNotifier holds every Send until released.
type blockingNotifier struct {
	release chan struct{}
}

func (b *blockingNotifier) Send(ctx context.Context, _ port.Notification) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func testEnvelope(orderID string) port.Notification {
	return port.Notification{
		Kind:      port.NotificationStatusChanged,
		Recipient: "sara@shop.test",
		Order:     domain.Order{ID: orderID, Status: domain.OrderStatusShipped},
		Status:    domain.OrderStatusShipped,
	}
}

func fastOptions() Options {
	return Options{
		QueueSize:   4,
		Workers:     1,
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
		SendTimeout: time.Second,
	}
}

func TestDispatcherDelivers(t *testing.T) {
	notifier := &flakyNotifier{}
	d := NewDispatcher(notifier, fastOptions(), zap.NewNop(), metrics.NewCommerce(prometheus.NewRegistry()))

	d.Enqueue(testEnvelope("o1"))
	d.Close()

	sent := notifier.delivered()
	require.Len(t, sent, 1)
	assert.Equal(t, "o1", sent[0].Order.ID)
}

func TestDispatcherRetriesThenSucceeds(t *testing.T) {
	notifier := &flakyNotifier{failures: 2}
	m := metrics.NewCommerce(prometheus.NewRegistry())
	d := NewDispatcher(notifier, fastOptions(), zap.NewNop(), m)

	d.Enqueue(testEnvelope("o1"))
	d.Close()

	require.Len(t, notifier.delivered(), 1)
	assert.Equal(t, 3, notifier.attempts())
	assert.Zero(t, testutil.ToFloat64(m.NotificationsDead))
}

func TestDispatcherDeadLettersAfterBudget(t *testing.T) {
	notifier := &flakyNotifier{failures: 100}
	m := metrics.NewCommerce(prometheus.NewRegistry())
	d := NewDispatcher(notifier, fastOptions(), zap.NewNop(), m)

	d.Enqueue(testEnvelope("o1"))
	d.Close()

	assert.Empty(t, notifier.delivered())
	assert.Equal(t, 3, notifier.attempts(), "attempts stop at the budget")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.NotificationsDead))
}

func TestDispatcherEnqueueNeverBlocks(t *testing.T) {
	notifier := &blockingNotifier{release: make(chan struct{})}
	m := metrics.NewCommerce(prometheus.NewRegistry())
	opts := fastOptions()
	opts.QueueSize = 1
	d := NewDispatcher(notifier, opts, zap.NewNop(), m)

	// One envelope occupies the worker, one fills the queue; the rest must
	// return immediately as dead letters.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			d.Enqueue(testEnvelope("overflow"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.Positive(t, testutil.ToFloat64(m.NotificationsDead))

	close(notifier.release)
	d.Close()
}

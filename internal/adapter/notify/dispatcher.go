package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/metrics"
	"github.com/hanafy/storefront/internal/port"
)

// Dispatcher delivers notification envelopes asynchronously: a buffered
// queue drained by a worker pool, each delivery retried a bounded number
// of times with linear backoff before the envelope is dead-lettered.
//
// Enqueue never blocks and never reports delivery outcome to the caller;
// commerce operations do not depend on it. An envelope that cannot even be
// queued is dead-lettered immediately rather than stalling the caller.
type Dispatcher struct {
	notifier    port.Notifier
	queue       chan port.Notification
	maxAttempts int
	backoff     time.Duration
	sendTimeout time.Duration
	logger      *zap.Logger
	metrics     *metrics.Commerce
	wg          sync.WaitGroup
}

type Options struct {
	QueueSize   int
	Workers     int
	MaxAttempts int
	Backoff     time.Duration
	SendTimeout time.Duration
}

func NewDispatcher(notifier port.Notifier, opts Options, logger *zap.Logger, m *metrics.Commerce) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 5 * time.Second
	}

	d := &Dispatcher{
		notifier:    notifier,
		queue:       make(chan port.Notification, opts.QueueSize),
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
		sendTimeout: opts.SendTimeout,
		logger:      logger,
		metrics:     m,
	}
	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.worker(i)
	}
	return d
}

// Enqueue hands an envelope to the worker pool. A full queue dead-letters
// the envelope instead of blocking the commerce path.
func (d *Dispatcher) Enqueue(n port.Notification) {
	select {
	case d.queue <- n:
		d.metrics.NotificationQueue.Inc()
	default:
		d.deadLetter(n, "queue full")
	}
}

// Close stops accepting deliveries and waits for in-flight ones. Callers
// must stop producing before closing, which the server shutdown ordering
// guarantees.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for n := range d.queue {
		d.metrics.NotificationQueue.Dec()
		d.deliver(id, n)
	}
}

func (d *Dispatcher) deliver(worker int, n port.Notification) {
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.notifier.Send(ctx, n)
		cancel()

		if err == nil {
			d.metrics.Notifications.WithLabelValues("sent").Inc()
			d.logger.Info("notification delivered",
				zap.Int("worker", worker),
				zap.String("kind", string(n.Kind)),
				zap.String("order_id", n.Order.ID),
				zap.Int("attempt", attempt))
			return
		}

		d.metrics.Notifications.WithLabelValues("failed").Inc()
		d.logger.Warn("notification attempt failed",
			zap.Int("worker", worker),
			zap.String("kind", string(n.Kind)),
			zap.String("order_id", n.Order.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < d.maxAttempts {
			time.Sleep(d.backoff * time.Duration(attempt))
		}
	}
	d.deadLetter(n, "retries exhausted")
}

// deadLetter is the sink of last resort: the envelope is logged in full so
// an operator can replay it by hand, and counted.
func (d *Dispatcher) deadLetter(n port.Notification, reason string) {
	d.metrics.NotificationsDead.Inc()
	d.logger.Error("notification dead-lettered",
		zap.String("reason", reason),
		zap.String("kind", string(n.Kind)),
		zap.String("recipient", n.Recipient),
		zap.String("order_id", n.Order.ID),
		zap.String("status", string(n.Status)))
}

package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"fxbot/internal/adapters"
	"fxbot/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	defaultWorkers     = 2
	defaultQueueSize   = 64
	defaultSendTimeout = 10 * time.Second
)

var ErrDispatcherClosed = errors.New("dispatcher is closed")

type NotificationRecorder interface {
	RecordNotification(err error)
}

// Dispatcher delivers replies in the background so the webhook can be acknowledged
// without waiting on the chat API. Delivery failures stay inside the dispatcher.
type Dispatcher struct {
	notifier    adapters.Notifier
	recorder    NotificationRecorder
	workers     int
	sendTimeout time.Duration
	// -----
	queue  chan domain.OutboundMessage
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// Start launches the workers. Sends use a context detached from ctx cancellation, so
// a reply already queued is still attempted during shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	baseCtx := context.WithoutCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func(workerID int) {
			defer d.wg.Done()
			d.runWorker(baseCtx, workerID)
		}(i)
	}
}

// Submit queues a reply without blocking. It reports false when the queue is full
// or the dispatcher is already shut down.
func (d *Dispatcher) Submit(msg domain.OutboundMessage) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- msg:
		return true
	default:
		logrus.WithField("recipient", msg.Recipient).Warn("Reply queue is full, dropping message")
		if d.recorder != nil {
			d.recorder.RecordNotification(errors.New("queue full"))
		}
		return false
	}
}

// Shutdown stops accepting replies and waits for queued ones to be sent.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, workerID int) {
	for msg := range d.queue {
		d.send(ctx, workerID, msg)
	}
}

func (d *Dispatcher) send(ctx context.Context, workerID int, msg domain.OutboundMessage) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	err := d.notifier.SendMessage(sendCtx, msg)
	if d.recorder != nil {
		d.recorder.RecordNotification(err)
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"worker": workerID, "recipient": msg.Recipient}).Error("Failed to deliver reply")
	}
}

func NewDispatcher(notifier adapters.Notifier, recorder NotificationRecorder, workers, queueSize int, sendTimeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &Dispatcher{
		notifier:    notifier,
		recorder:    recorder,
		workers:     workers,
		sendTimeout: sendTimeout,
		queue:       make(chan domain.OutboundMessage, queueSize),
	}
}

package event

import (
	"context"
	"sync"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// retryEntry is an event waiting for another publish attempt
type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps an event bus with bounded retry and dead-letter
// capture. Failed publishes are queued and retried with exponential backoff
// by a background worker; events that exhaust their retries, or that arrive
// while the queue is full, are appended to a JSONL dead-letter file so they
// can be replayed after an outage.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker.
// The dead-letter file is opened immediately so a bad path fails at startup
// rather than on the first lost event.
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes an event, queuing it for retry on failure.
// The caller never blocks on retries; delivery is best-effort with
// dead-letter capture once retries are exhausted.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	if err := p.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
			"event_type", evt.Type,
			"error", err)
		p.enqueue(retryEntry{event: evt, attempt: 1, lastErr: err})
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// Shutdown stops the retry worker, draining queued events first. Returns
// the context error if the drain does not finish in time.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Error(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		log := logger.FromContext(context.Background())
		log.Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		if err := p.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", err)
		}
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drainQueue()
			return
		case entry := <-p.retryQueue:
			p.processRetry(entry)
		}
	}
}

func (p *ResilientPublisher) processRetry(entry retryEntry) {
	log := logger.FromContext(context.Background())

	// Backoff before the attempt; shutdown cuts the wait short and the
	// entry gets its final attempt in the drain below.
	select {
	case <-p.shutdown:
		p.finalAttempt(entry)
		return
	case <-time.After(CalculateRetryDelay(p.retryDelay, entry.attempt)):
	}

	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded,
			"event_type", entry.event.Type,
			"attempt", entry.attempt)
		return
	}

	if entry.attempt >= p.maxRetries {
		log.Warn(LogMsgEventRetryExhausted,
			"event_type", entry.event.Type,
			"attempts", entry.attempt+1)
		if dlErr := p.deadLetter.Write(entry.event, entry.attempt+1, err); dlErr != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
		return
	}

	log.Warn(LogMsgEventRetryFailed,
		"event_type", entry.event.Type,
		"attempt", entry.attempt,
		"error", err)
	p.enqueue(retryEntry{event: entry.event, attempt: entry.attempt + 1, lastErr: err})
}

// drainQueue gives every queued event one last publish attempt, then
// dead-letters the ones that still fail.
func (p *ResilientPublisher) drainQueue() {
	log := logger.FromContext(context.Background())

	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.finalAttempt(entry)
			drained++
		default:
			if drained > 0 {
				log.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) finalAttempt(entry retryEntry) {
	if err := p.bus.Publish(context.Background(), entry.event); err != nil {
		log := logger.FromContext(context.Background())
		log.Warn(LogMsgEventDeadLettered,
			"event_type", entry.event.Type,
			"attempts", entry.attempt,
			"error", err)
		if dlErr := p.deadLetter.Write(entry.event, entry.attempt, err); dlErr != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

package event

import "time"

// EventSchemaVersion is stamped into every envelope so consumers of the
// dead-letter file can tell which layout they are reading.
const EventSchemaVersion = "1.0"

const (
	// RetryQueueBufferSize bounds the in-flight retry queue. A full queue
	// dead-letters new failures rather than blocking publishers.
	RetryQueueBufferSize = 1000

	RetryMaxAttempts = 5
)

// DeadLetterFilePermissions applies to the JSONL dead-letter file.
const DeadLetterFilePermissions = 0644

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDeadLettered     = "Event dead-lettered during shutdown drain"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles the base delay per attempt, so with a 2s base
// the schedule runs 2s, 4s, 8s, 16s, 32s.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}

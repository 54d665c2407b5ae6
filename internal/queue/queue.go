// Package queue is the tracker's background task queue: work items an
// announce/scrape handler wants done but not on the request's critical
// path get enqueued here and drained by a separate consumer.
//
// Grounded on original_source/hanekawa-queue/src/lib.rs's AmqpTaskQueue
// (enqueue/consume over a single durable "tasks" queue, JSON-encoded
// payloads) and the TaskQueue trait in
// original_source/hanekawa-common/src/task/mod.rs.
package queue

import "context"

// Task is one unit of background work. Kind selects how a consumer
// interprets Payload; this mirrors the original's #[typetag::serde(tag =
// "type")] trait-object tasks, generalized to Go's lack of a serializable
// trait-object equivalent by carrying an explicit discriminant alongside an
// opaque JSON payload.
type Task struct {
	Kind    string
	Payload []byte
}

// TaskQueue enqueues tasks for later processing and hands them to a
// consumer one at a time.
type TaskQueue interface {
	Enqueue(ctx context.Context, task Task) error

	// Consume delivers tasks to handle until ctx is done. A nil return
	// from handle acknowledges the task; a non-nil error puts it back on
	// the queue for redelivery.
	Consume(ctx context.Context, handle func(Task) error) error
}

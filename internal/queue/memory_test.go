package queue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryQueueEnqueueConsume(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	if err := q.Enqueue(ctx, Task{Kind: "purge-stale-peers", Payload: []byte("1")}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	var got Task
	err := q.Consume(consumeCtx, func(task Task) error {
		got = task
		cancel()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Consume: %v", err)
	}
	if got.Kind != "purge-stale-peers" {
		t.Errorf("Kind = %q", got.Kind)
	}
}

func TestMemoryQueueRedeliversOnError(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	if err := q.Enqueue(ctx, Task{Kind: "retry-me"}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	attempts := 0
	consumeCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()

	_ = q.Consume(consumeCtx, func(task Task) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient failure")
		}
		cancel()
		return nil
	})

	if attempts < 2 {
		t.Errorf("expected at least 2 attempts, got %d", attempts)
	}
}

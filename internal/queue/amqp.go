package queue

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const tasksQueueName = "tasks"

// AMQPQueue is a TaskQueue backed by a single durable "tasks" queue,
// matching the original's initialize_topology (a single queue_declare, no
// exchange). Task.Kind is carried in the AMQP message's Type field rather
// than folded into the payload, since Go has no serde-style typetag to
// mirror directly.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialAMQPQueue connects to url and declares the tasks queue.
func DialAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(tasksQueueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("queue: declare %q: %w", tasksQueueName, err)
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

// Close tears down the channel and connection.
func (q *AMQPQueue) Close() error {
	_ = q.ch.Close()
	return q.conn.Close()
}

func (q *AMQPQueue) Enqueue(ctx context.Context, task Task) error {
	err := q.ch.PublishWithContext(ctx, "", tasksQueueName, false, false, amqp.Publishing{
		Type: task.Kind,
		Body: task.Payload,
	})
	if err != nil {
		return fmt.Errorf("queue: publish: %w", err)
	}
	return nil
}

func (q *AMQPQueue) Consume(ctx context.Context, handle func(Task) error) error {
	deliveries, err := q.ch.ConsumeWithContext(ctx, tasksQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue: consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			task := Task{Kind: d.Type, Payload: d.Body}
			if handle(task) != nil {
				_ = d.Nack(false, true)
			} else {
				_ = d.Ack(false)
			}
		}
	}
}

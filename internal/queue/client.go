package queue

import (
	"context"
	"io"
)

// Client hands analysis messages to a worker backend (SQS or asynq).
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Close releases the client's connections when the backend holds any.
func Close(c Client) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

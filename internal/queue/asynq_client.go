package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskTypeProcessAnalysis is the asynq task type carrying a Message payload.
const TaskTypeProcessAnalysis = "analysis:process"

const (
	defaultTaskMaxRetry = 3
	defaultTaskTimeout  = 2 * time.Minute
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqClient sends queue messages as asynq tasks backed by Redis.
type AsynqClient struct {
	client   taskEnqueuer
	closer   func() error
	MaxRetry int
	Timeout  time.Duration
}

// NewAsynqClient connects to the Redis instance described by redisURL.
func NewAsynqClient(redisURL string) (*AsynqClient, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := asynq.NewClient(opt)
	return &AsynqClient{
		client:   client,
		closer:   client.Close,
		MaxRetry: defaultTaskMaxRetry,
		Timeout:  defaultTaskTimeout,
	}, nil
}

// NewTask wraps msg in an asynq task.
func NewTask(msg Message) (*asynq.Task, error) {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("encode task payload: %w", err)
	}
	return asynq.NewTask(TaskTypeProcessAnalysis, payload), nil
}

// Send enqueues msg. The analysis id doubles as the task id, so a duplicate
// enqueue of a pending analysis is a no-op.
func (a *AsynqClient) Send(ctx context.Context, msg Message) error {
	task, err := NewTask(msg)
	if err != nil {
		return err
	}
	_, err = a.client.EnqueueContext(ctx, task,
		asynq.TaskID(msg.AnalysisID),
		asynq.MaxRetry(a.MaxRetry),
		asynq.Timeout(a.Timeout),
	)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) && !errors.Is(err, asynq.ErrDuplicateTask) {
		return fmt.Errorf("asynq enqueue: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (a *AsynqClient) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

var _ Client = (*AsynqClient)(nil)

package queue

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/hibiken/asynq"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := NewMessage("analysis-123", "request-456", time.Date(2026, 1, 30, 22, 0, 0, 0, time.UTC))
	if msg.EnqueuedAt != "2026-01-30T22:00:00Z" || msg.Version != MessageVersion {
		t.Fatalf("unexpected message %+v", msg)
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestDecodeMessageVersions(t *testing.T) {
	got, err := DecodeMessage([]byte(`{"analysisId":"a-1"}`))
	if err != nil {
		t.Fatalf("decode unversioned: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("expected unversioned payload to read as version 1, got %d", got.Version)
	}

	if _, err := DecodeMessage([]byte(`{"analysisId":"a-1","version":99}`)); err == nil {
		t.Fatal("expected future version to be rejected")
	}
	if _, err := DecodeMessage([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

type closingClient struct{ closed bool }

func (c *closingClient) Send(context.Context, Message) error { return nil }
func (c *closingClient) Close() error                        { c.closed = true; return nil }

type plainClient struct{}

func (plainClient) Send(context.Context, Message) error { return nil }

func TestClose(t *testing.T) {
	c := &closingClient{}
	if err := Close(c); err != nil || !c.closed {
		t.Fatalf("expected closer to be called, err=%v", err)
	}
	if err := Close(plainClient{}); err != nil {
		t.Fatalf("expected no-op close, got %v", err)
	}
}

type fakeSQSSender struct {
	input *sqs.SendMessageInput
}

func (f *fakeSQSSender) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSClientSendsEncodedBody(t *testing.T) {
	fake := &fakeSQSSender{}
	client := newSQSClient(fake, "https://sqs.example/queue")

	if err := client.Send(context.Background(), Message{AnalysisID: "a-1", Version: 1}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if aws.ToString(fake.input.QueueUrl) != "https://sqs.example/queue" {
		t.Fatalf("unexpected queue url %q", aws.ToString(fake.input.QueueUrl))
	}
	got, err := DecodeMessage([]byte(aws.ToString(fake.input.MessageBody)))
	if err != nil || got.AnalysisID != "a-1" {
		t.Fatalf("unexpected body %q (%v)", aws.ToString(fake.input.MessageBody), err)
	}
}

func TestSQSClientFIFOUsesAnalysisID(t *testing.T) {
	fake := &fakeSQSSender{}
	client := newSQSClient(fake, "https://sqs.example/analyses.fifo")

	if err := client.Send(context.Background(), NewMessage("a-9", "", time.Now())); err != nil {
		t.Fatalf("send: %v", err)
	}
	if aws.ToString(fake.input.MessageGroupId) != "a-9" || aws.ToString(fake.input.MessageDeduplicationId) != "a-9" {
		t.Fatalf("expected fifo ids, got group=%q dedup=%q", aws.ToString(fake.input.MessageGroupId), aws.ToString(fake.input.MessageDeduplicationId))
	}
	if got := aws.ToString(fake.input.MessageAttributes["analysisId"].StringValue); got != "a-9" {
		t.Fatalf("expected analysisId attribute, got %q", got)
	}
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t"}, nil
}

func TestAsynqClientEnqueuesTask(t *testing.T) {
	fake := &fakeEnqueuer{}
	client := &AsynqClient{client: fake, MaxRetry: 1}

	if err := client.Send(context.Background(), Message{AnalysisID: "a-2", RequestID: "r"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(fake.tasks) != 1 || fake.tasks[0].Type() != TaskTypeProcessAnalysis {
		t.Fatalf("unexpected tasks %+v", fake.tasks)
	}
	got, err := DecodeMessage(fake.tasks[0].Payload())
	if err != nil || got.AnalysisID != "a-2" {
		t.Fatalf("unexpected payload %s", fake.tasks[0].Payload())
	}
}

func TestAsynqClientTreatsConflictAsEnqueued(t *testing.T) {
	client := &AsynqClient{client: &fakeEnqueuer{err: asynq.ErrTaskIDConflict}}
	if err := client.Send(context.Background(), Message{AnalysisID: "a-3"}); err != nil {
		t.Fatalf("expected conflict to be ignored, got %v", err)
	}

	client = &AsynqClient{client: &fakeEnqueuer{err: errors.New("redis down")}}
	if err := client.Send(context.Background(), Message{AnalysisID: "a-4"}); err == nil {
		t.Fatal("expected enqueue error")
	}
}

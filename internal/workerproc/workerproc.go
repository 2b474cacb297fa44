package workerproc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/analyses"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/queue"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/util"
)

// Processor runs a queued analysis to completion.
type Processor interface {
	ProcessAnalysis(ctx context.Context, analysisID string) error
}

// Reasons a payload is rejected before processing.
var (
	ErrEmptyBody         = errors.New("empty message body")
	ErrDecode            = errors.New("undecodable message")
	ErrMissingAnalysisID = errors.New("message has no analysis id")
)

// MessageMeta identifies a payload in logs without logging its contents.
type MessageMeta struct {
	Len    int
	Digest string
}

func metaFor(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	return MessageMeta{Len: len(body), Digest: util.Digest(body)}
}

// LogFields adds the payload size and digest to fields.
func (m MessageMeta) LogFields(fields map[string]any) map[string]any {
	fields["body_len"] = m.Len
	if m.Digest != "" {
		fields["body_sha256"] = m.Digest
	}
	return fields
}

// MessageError is a payload that can never be processed. Reason is one of
// the Err* sentinels above.
type MessageError struct {
	Reason    error
	Meta      MessageMeta
	RequestID string
	Err       error
}

func (e *MessageError) Error() string {
	if e.Err == nil {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Err.Error()
}

func (e *MessageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

// ProcessError wraps a failure of the processor itself.
type ProcessError struct {
	AnalysisID string
	RequestID  string
	Err        error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process analysis %s: %v", e.AnalysisID, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ParseMessage decodes and validates a queue payload. The returned meta is
// filled in even on error.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := metaFor(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, &MessageError{Reason: ErrEmptyBody, Meta: meta}
	}
	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, &MessageError{Reason: ErrDecode, Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return msg, meta, &MessageError{Reason: ErrMissingAnalysisID, Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

// Process hands a decoded message to p under the request ID it was
// enqueued with.
func Process(ctx context.Context, p Processor, msg queue.Message) error {
	if p == nil {
		return errors.New("analysis processor not configured")
	}
	if err := p.ProcessAnalysis(analyses.WithRequestID(ctx, msg.RequestID), msg.AnalysisID); err != nil {
		return &ProcessError{AnalysisID: msg.AnalysisID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}

// HandleMessage parses body and processes it.
func HandleMessage(ctx context.Context, p Processor, body string) error {
	msg, _, err := ParseMessage(body)
	if err != nil {
		return err
	}
	return Process(ctx, p, msg)
}

// Unrecoverable reports whether a message can never succeed and should be
// dropped instead of redelivered. Analyses that no longer exist count too.
func Unrecoverable(err error) bool {
	var bad *MessageError
	return errors.As(err, &bad) || errors.Is(err, analyses.ErrNotFound)
}

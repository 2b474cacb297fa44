package workerproc

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/queue"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/metrics"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// TaskHandler adapts a Processor to asynq.
type TaskHandler struct {
	Processor Processor
}

// ProcessTask implements asynq.Handler. Unrecoverable payloads skip retries.
func (h TaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	metrics.IncAnalysisJobsReceived()
	body := string(task.Payload())
	retry, _ := asynq.GetRetryCount(ctx)

	msg, meta, err := ParseMessage(body)
	if err != nil {
		telemetry.Error("worker.analysis.invalid_message", meta.LogFields(map[string]any{
			"task_type": task.Type(),
			"error":     err.Error(),
		}))
		metrics.IncAnalysisJobsDeletedUnrecoverable()
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	fields := map[string]any{
		"analysis_id": msg.AnalysisID,
		"request_id":  msg.RequestID,
		"retry":       retry,
	}
	telemetry.Info("worker.analysis.received", fields)

	if err := Process(ctx, h.Processor, msg); err != nil {
		fields["error"] = err.Error()
		telemetry.Error("worker.analysis.failed", fields)
		metrics.IncAnalysisJobsFailed()
		if Unrecoverable(err) {
			metrics.IncAnalysisJobsDeletedUnrecoverable()
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}
	telemetry.Info("worker.analysis.completed", fields)
	metrics.IncAnalysisJobsCompleted()
	return nil
}

// NewServeMux routes analysis tasks to h.
func NewServeMux(p Processor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(queue.TaskTypeProcessAnalysis, TaskHandler{Processor: p})
	return mux
}

// Command lambda-worker processes analysis jobs delivered by an SQS event
// source mapping. The mapping must enable ReportBatchItemFailures.
//
//	GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker
package main

import (
	"context"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/bootstrap"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/metrics"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/workerproc"
)

var coldStart = sync.OnceValues(func() (workerproc.Processor, error) {
	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		return nil, err
	}
	telemetry.Info("lambda.cold_start", map[string]any{"env": cfg.Env, "worker": true})
	return app.AnalysesService, nil
})

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	p, err := coldStart()
	if err != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": err.Error(), "records": len(event.Records)})
		return failAll(event), err
	}
	return handleBatch(ctx, p, event), nil
}

func failAll(event events.SQSEvent) events.SQSEventResponse {
	resp := events.SQSEventResponse{BatchItemFailures: make([]events.SQSBatchItemFailure, 0, len(event.Records))}
	for _, record := range event.Records {
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
	}
	return resp
}

// handleBatch reports only retryable failures. Unrecoverable records are
// acknowledged so a single bad payload cannot poison the batch.
func handleBatch(ctx context.Context, p workerproc.Processor, event events.SQSEvent) events.SQSEventResponse {
	resp := events.SQSEventResponse{BatchItemFailures: []events.SQSBatchItemFailure{}}
	for _, record := range event.Records {
		metrics.IncAnalysisJobsReceived()
		fields := map[string]any{
			"sqs_message_id": record.MessageId,
			"receive_count":  record.Attributes["ApproximateReceiveCount"],
		}

		msg, meta, err := workerproc.ParseMessage(record.Body)
		if err == nil {
			fields["analysis_id"] = msg.AnalysisID
			fields["request_id"] = msg.RequestID
			err = workerproc.Process(ctx, p, msg)
		} else {
			meta.LogFields(fields)
		}

		switch {
		case err == nil:
			metrics.IncAnalysisJobsCompleted()
		case workerproc.Unrecoverable(err):
			fields["error"] = err.Error()
			telemetry.Error("lambda.analysis.dropped", fields)
			metrics.IncAnalysisJobsDeletedUnrecoverable()
		default:
			fields["error"] = err.Error()
			telemetry.Error("lambda.analysis.failed", fields)
			metrics.IncAnalysisJobsFailed()
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return resp
}

func main() {
	lambda.Start(handler)
}

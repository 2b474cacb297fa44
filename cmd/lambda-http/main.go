// Command lambda-http serves the HTTP API from AWS Lambda behind an API
// Gateway HTTP API (payload format 2.0).
//
//	GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/bootstrap"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/config"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/server/respond"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/telemetry"
)

// coldStart builds the app once per execution environment. A failed build is
// cached too, so every invocation of a broken environment fails fast.
var coldStart = sync.OnceValues(func() (*ginadapter.GinLambdaV2, error) {
	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		return nil, err
	}
	telemetry.Info("lambda.cold_start", map[string]any{"env": cfg.Env, "queue": cfg.QueueBackend})
	return ginadapter.NewV2(app.Router), nil
})

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	adapter, err := coldStart()
	if err != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": err.Error()})
		return bootstrapFailure(), nil
	}
	return adapter.ProxyWithContext(ctx, req)
}

func bootstrapFailure() events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{
		Code:    respond.CodeInternal,
		Message: "service unavailable",
	}})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func main() {
	lambda.Start(handler)
}

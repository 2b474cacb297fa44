package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusWithoutChecksIsHealthy(t *testing.T) {
	report := NewService().Status(context.Background())
	if !report.OK {
		t.Fatalf("expected healthy report, got %+v", report)
	}
}

func TestStatusReportsFailingCheck(t *testing.T) {
	svc := NewService()
	svc.Register("db", CheckFunc(func(ctx context.Context) error { return nil }))
	svc.Register("redis", CheckFunc(func(ctx context.Context) error { return errors.New("connection refused") }))
	svc.Register("skipped", nil)

	report := svc.Status(context.Background())
	if report.OK {
		t.Fatal("expected unhealthy report")
	}
	if report.Checks["db"] != "ok" {
		t.Fatalf("expected db ok, got %q", report.Checks["db"])
	}
	if report.Checks["redis"] != "error: connection refused" {
		t.Fatalf("unexpected redis status %q", report.Checks["redis"])
	}
	if _, ok := report.Checks["skipped"]; ok {
		t.Fatal("nil checker should not be registered")
	}
}

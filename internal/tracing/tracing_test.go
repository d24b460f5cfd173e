package tracing

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/namefreezers/forecast-qr-api/internal/config"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(&config.Config{ServiceName: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() = %v, want nil", err)
	}
}

func TestInit_Zipkin(t *testing.T) {
	cfg := &config.Config{
		ZipkinURL:   "http://127.0.0.1:9411/api/v2/spans",
		ServiceName: "test",
		Env:         config.EnvDevelopment,
	}
	shutdown, err := Init(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	// No spans were recorded, so shutdown has nothing to export.
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() = %v, want nil", err)
	}
}

func TestInit_InvalidURL(t *testing.T) {
	if _, err := Init(&config.Config{ZipkinURL: "://bad", ServiceName: "test"}, zap.NewNop()); err == nil {
		t.Error("Init() expected error for malformed zipkin URL")
	}
}

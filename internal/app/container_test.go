package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 3000, Environment: "development", ShutdownTimeout: time.Second},
		Cache:   config.CacheConfig{TTL: time.Minute},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestBuildServesEmbeddedDataset(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer container.Close()

	srv, err := container.NewServer()
	if err != nil {
		t.Fatalf("expected server, got %v", err)
	}
	if srv.Addr != ":3000" {
		t.Fatalf("unexpected addr %q", srv.Addr)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/characters/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBuildFailsOnMissingDataDir(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Dir = t.TempDir()

	if _, err := Build(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for empty data directory")
	}
}

func TestBuildRequiresDependencies(t *testing.T) {
	if _, err := Build(context.Background(), nil, zap.NewNop()); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := Build(context.Background(), testConfig(), nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

package database

import (
	"context"
	"os"
	"testing"

	"github.com/wonny/newslens/pkg/config"
)

func TestNew_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			URL:      url,
			MaxConns: 2,
			MinConns: 1,
		},
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	status, err := db.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}
	if !status.Healthy {
		t.Error("Expected healthy database")
	}
}

func TestNew_InvalidURL(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			URL: "://not-a-url",
		},
	}

	if _, err := New(cfg); err == nil {
		t.Error("Expected error for invalid database URL")
	}
}

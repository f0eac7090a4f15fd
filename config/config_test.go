package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_DefaultsAndRequiredFields(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/caseflow")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default server port, got %q", cfg.ServerPort)
	}
	if cfg.TransferNoticeQueue != "caseflow.transfer_notices" {
		t.Fatalf("expected default queue name, got %q", cfg.TransferNoticeQueue)
	}
	if cfg.AMQPURL != "" {
		t.Fatalf("expected empty AMQP URL by default, got %q", cfg.AMQPURL)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/caseflow")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

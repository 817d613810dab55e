package config_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gleaner/pkg/cli/config"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
)

func TestStorage_Configure_LocalFallback(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Storage{OutputDir: dir}

	publisher, err := cfg.Configure(context.Background())
	if err != nil {
		t.Fatalf("Configure() unexpected error = %v", err)
	}

	if err := publisher.Publish(context.Background(), "out.csv", []byte("id\n")); err != nil {
		t.Fatalf("Publish() unexpected error = %v", err)
	}

	loc := publisher.Location("out.csv")
	if !strings.HasPrefix(loc, dir) {
		t.Errorf("Location() = %q, want a path under %q", loc, dir)
	}
}

func TestFirestore_Configure_MemoryFallback(t *testing.T) {
	cfg := &config.Firestore{}

	repo, err := cfg.Configure(context.Background())
	if err != nil {
		t.Fatalf("Configure() unexpected error = %v", err)
	}

	run := model.NewHarvestRun(&model.HarvestRequest{})
	if err := repo.PutRun(context.Background(), run); err != nil {
		t.Fatalf("PutRun() unexpected error = %v", err)
	}

	got, err := repo.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun() unexpected error = %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("GetRun() ID = %v, want %v", got.ID, run.ID)
	}
}

func TestSlack_Configure(t *testing.T) {
	cfg := &config.Slack{}
	if notifier := cfg.Configure(); notifier != nil {
		t.Error("Configure() should return nil without a webhook URL")
	}

	cfg.WebhookURL = "https://hooks.example.com/services/T0/B0/secret"
	if notifier := cfg.Configure(); notifier == nil {
		t.Error("Configure() should return a notifier when a webhook URL is set")
	}
}

func TestCatalog_Flags_Defaults(t *testing.T) {
	cfg := &config.Catalog{}
	flags := cfg.Flags()

	if len(flags) != 2 {
		t.Errorf("Flags() returned %d flags, want 2", len(flags))
	}

	if client := cfg.Configure(); client == nil {
		t.Error("Configure() returned nil catalog client")
	}
}

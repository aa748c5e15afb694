package service_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/service"
	"github.com/jkratochvil/karty/server/internal/karty/store/memory"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAuditPruner_DisabledWhenRetentionZero(t *testing.T) {
	al := memory.NewAuditLog()
	pruner := service.NewAuditPruner(al, service.PrunerConfig{
		RetentionDays: 0,
		IntervalHours: 1,
	}, silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pruner.Start(ctx)
	// Stop should return immediately without error.
	pruner.Stop()
}

func TestAuditPruner_PrunesOldLines(t *testing.T) {
	al := memory.NewAuditLog()
	ctx := context.Background()

	if err := al.Append(ctx, time.Now().UTC().AddDate(0, 0, -120), "old line"); err != nil {
		t.Fatalf("append old: %v", err)
	}
	if err := al.Append(ctx, time.Now().UTC().AddDate(0, 0, -1), "recent line"); err != nil {
		t.Fatalf("append recent: %v", err)
	}

	// Prune directly via the store (same operation the pruner calls).
	cutoff := time.Now().UTC().AddDate(0, 0, -90)
	deleted, err := al.PruneOlderThan(ctx, cutoff)
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned, got %d", deleted)
	}

	lines := al.Lines()
	if len(lines) != 1 || lines[0].Text != "recent line" {
		t.Errorf("expected only the recent line to survive, got %+v", lines)
	}
}

func TestAuditPruner_StopIsIdempotent(t *testing.T) {
	al := memory.NewAuditLog()
	pruner := service.NewAuditPruner(al, service.PrunerConfig{
		RetentionDays: 90,
		IntervalHours: 1,
	}, silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	// Multiple stops should not panic.
	pruner.Stop()
	pruner.Stop()
}

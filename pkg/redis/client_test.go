package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
)

func TestLockReportKey(t *testing.T) {
	if got := lockReportKey("seq-1"); got != "broadcast:last_run:seq-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

// Runs against a real server only when REDIS_TEST_HOST is set.
func TestLockReportRoundTrip(t *testing.T) {
	host := os.Getenv("REDIS_TEST_HOST")
	if host == "" {
		t.Skip("REDIS_TEST_HOST not set")
	}

	client, err := NewRedisClient(environments.RedisConfig{
		Host:      host,
		Port:      environments.GetEnv("REDIS_TEST_PORT", "6379"),
		ReportTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	sequenceID := "test-" + time.Now().Format("150405.000000")

	missing, err := client.GetLockReport(ctx, sequenceID)
	if err != nil || missing != nil {
		t.Fatalf("expected nil report before caching, got %+v, %v", missing, err)
	}

	report := domain.LockReport{SequenceID: sequenceID, TotalLeads: 3, TotalFlows: 2, TotalScheduled: 5, TotalFailed: 1}
	if err := client.CacheLockReport(ctx, report); err != nil {
		t.Fatalf("cache: %v", err)
	}

	got, err := client.GetLockReport(ctx, sequenceID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.TotalScheduled != 5 || got.TotalFailed != 1 {
		t.Fatalf("unexpected report %+v", got)
	}
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

type Client struct {
	client    valkey.Client
	reportTTL time.Duration
}

const lockReportKeyPrefix = "broadcast:last_run:"

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return NewWithClient(client, cfg.ReportTTL), nil
}

// NewWithClient wraps an existing valkey client.
func NewWithClient(client valkey.Client, reportTTL time.Duration) *Client {
	return &Client{client: client, reportTTL: reportTTL}
}

func lockReportKey(sequenceID string) string {
	return lockReportKeyPrefix + sequenceID
}

// CacheLockReport stores the latest lock run of a sequence, replacing any
// earlier one.
func (c *Client) CacheLockReport(ctx context.Context, report domain.LockReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal lock report: %w", err)
	}

	key := lockReportKey(report.SequenceID)

	cmd := c.client.B().Set().Key(key).Value(string(data))
	if c.reportTTL > 0 {
		err = c.client.Do(ctx, cmd.Ex(c.reportTTL).Build()).Error()
	} else {
		err = c.client.Do(ctx, cmd.Build()).Error()
	}
	if err != nil {
		return fmt.Errorf("failed to cache lock report: %w", err)
	}

	logger.Debugf("Cached lock report for sequence %s", report.SequenceID)

	return nil
}

// GetLockReport returns nil, nil when no report is cached.
func (c *Client) GetLockReport(ctx context.Context, sequenceID string) (*domain.LockReport, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(lockReportKey(sequenceID)).Build())
	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lock report: %w", result.Error())
	}

	data, err := result.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read lock report: %w", err)
	}

	var report domain.LockReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lock report: %w", err)
	}

	return &report, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

// Client posts run alerts to an operator webhook. With no URL configured
// every call is a no-op.
type Client struct {
	httpClient *resty.Client
	webhookURL string
}

func NewWebhookClient(cfg environments.AlertConfig) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		webhookURL: cfg.WebhookURL,
	}
}

func (c *Client) SendAlert(ctx context.Context, alert domain.RunAlert) error {
	if c.webhookURL == "" {
		return nil
	}

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.webhookURL)

	duration := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}

	logger.Infof("Alert to %s completed in %v (status: %d)", c.webhookURL, duration, resp.StatusCode())

	if !resp.IsSuccess() {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String())
	}

	return nil
}

func (c *Client) Enabled() bool {
	return c.webhookURL != ""
}

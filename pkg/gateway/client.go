package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

const sendPath = "/api/send"

// Client schedules future-dated sends on the WhatsApp Center gateway.
type Client struct {
	httpClient *resty.Client
	baseURL    string
}

func NewClient(cfg environments.GatewayConfig) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Schedule submits one message. A returned error means the request never got
// an answer; provider rejections come back as a result with Success false.
func (c *Client) Schedule(ctx context.Context, req domain.GatewayRequest) (domain.GatewayResult, error) {
	form := map[string]string{
		"device_id": req.Instance,
		"number":    req.Number,
		"message":   req.Message,
		"schedule":  req.Schedule,
	}
	if req.ImageURL != "" {
		form["file"] = req.ImageURL
	}

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		Post(c.baseURL + sendPath)

	duration := time.Since(startTime)

	if err != nil {
		return domain.GatewayResult{}, fmt.Errorf("failed to send request: %w", err)
	}

	logger.Debugf("Gateway request for %s completed in %v (status: %d)", req.Number, duration, resp.StatusCode())

	if !resp.IsSuccess() {
		return domain.GatewayResult{
			Success: false,
			Error:   fmt.Sprintf("unexpected status code: %d, body: %s", resp.StatusCode(), resp.String()),
		}, nil
	}

	return NormalizeResponse(resp.Body()), nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

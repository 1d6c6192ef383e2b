package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type healthBody struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Components map[string]struct {
		Status string `json:"status"`
	} `json:"components"`
}

func runHealth(t *testing.T, handler *HealthHandler) healthBody {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Health(c); err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return body
}

func TestHealth_NoDatabaseIsDown(t *testing.T) {
	body := runHealth(t, NewHealthHandler(nil))

	if body.Status != "down" || body.Service != "broadcast-hub" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Components["redis"].Status != "disabled" {
		t.Fatalf("expected redis disabled, got %q", body.Components["redis"].Status)
	}
}

func TestHealth_AllUp(t *testing.T) {
	body := runHealth(t, NewHealthHandler(fakePinger{}).WithCache(fakePinger{}))

	if body.Status != "ok" {
		t.Fatalf("expected ok, got %q", body.Status)
	}
	if body.Components["database"].Status != "up" || body.Components["redis"].Status != "up" {
		t.Fatalf("unexpected components %+v", body.Components)
	}
}

func TestHealth_CacheDownIsDegraded(t *testing.T) {
	body := runHealth(t, NewHealthHandler(fakePinger{}).WithCache(fakePinger{err: errors.New("refused")}))

	if body.Status != "degraded" || body.Components["redis"].Status != "down" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHealth_DatabaseDownWinsOverCache(t *testing.T) {
	body := runHealth(t, NewHealthHandler(fakePinger{err: errors.New("refused")}).WithCache(fakePinger{err: errors.New("refused")}))

	if body.Status != "down" {
		t.Fatalf("expected down, got %q", body.Status)
	}
}

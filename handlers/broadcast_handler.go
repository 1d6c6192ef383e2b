package handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/broadcast-hub/internal/domain"
	"github.com/onurcolak/broadcast-hub/pkg/response"
	"github.com/onurcolak/broadcast-hub/pkg/validator"
)

type broadcastLocker interface {
	LockBroadcast(ctx context.Context, sequenceID string) (*domain.LockReport, error)
}

type summaryGetter interface {
	GetSummary(ctx context.Context, sequenceID string) (*domain.Summary, error)
}

type BroadcastHandler struct {
	locker    broadcastLocker
	summaries summaryGetter
}

func NewBroadcastHandler(locker broadcastLocker, summaries summaryGetter) *BroadcastHandler {
	return &BroadcastHandler{locker: locker, summaries: summaries}
}

type LockRequest struct {
	SequenceID string `json:"sequence_id" validate:"required,notblank"`
}

type SummaryRequest struct {
	SequenceID string `json:"sequence_id" query:"sequence_id" validate:"required,notblank"`
}

type LockResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TotalLeads     int    `json:"total_leads"`
	TotalFlows     int    `json:"total_flows"`
	TotalScheduled int    `json:"total_scheduled"`
	TotalFailed    int    `json:"total_failed"`
}

type SummaryResponse struct {
	Success bool `json:"success"`
	*domain.Summary
}

// LockBroadcast godoc
// @Summary Lock a broadcast sequence
// @Description Schedules every flow of a pending sequence for every lead of its category at the gateway, then marks it finished
// @Tags broadcast
// @Accept json
// @Produce json
// @Param x-broadcast-key header string false "API key, required when BROADCAST_API_KEY is set"
// @Param request body LockRequest true "Sequence to lock"
// @Success 200 {object} LockResponse
// @Failure 400 {object} validator.ValidationErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/broadcast/lock [post]
func (h *BroadcastHandler) LockBroadcast(c echo.Context) error {
	var req LockRequest
	if err := c.Bind(&req); err != nil {
		return response.InternalServerError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	report, err := h.locker.LockBroadcast(c.Request().Context(), req.SequenceID)
	if err != nil {
		return writeBroadcastError(c, err)
	}

	return response.Ok(c, LockResponse{
		Success:        true,
		Message:        "Broadcast finished and messages scheduled",
		TotalLeads:     report.TotalLeads,
		TotalFlows:     report.TotalFlows,
		TotalScheduled: report.TotalScheduled,
		TotalFailed:    report.TotalFailed,
	})
}

// GetSummary godoc
// @Summary Get broadcast summary
// @Description Returns overall and per-step delivery progress of a sequence
// @Tags broadcast
// @Produce json
// @Param x-broadcast-key header string false "API key, required when BROADCAST_API_KEY is set"
// @Param sequence_id query string true "Sequence ID"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} validator.ValidationErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/broadcast/summary [get]
func (h *BroadcastHandler) GetSummary(c echo.Context) error {
	var req SummaryRequest
	if err := c.Bind(&req); err != nil {
		return response.InternalServerError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	summary, err := h.summaries.GetSummary(c.Request().Context(), req.SequenceID)
	if err != nil {
		return writeBroadcastError(c, err)
	}

	return response.Ok(c, SummaryResponse{Success: true, Summary: summary})
}

func writeBroadcastError(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrSequenceNotPending):
		return response.Conflict(c, err)
	case errors.Is(err, domain.ErrInvalidSchedule):
		return response.UnprocessableEntity(c, err)
	default:
		return response.InternalServerError(c, err)
	}
}

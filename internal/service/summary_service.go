package service

import (
	"context"
	"fmt"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

// UnknownCategory is shown when a sequence points at a missing category.
const UnknownCategory = "Unknown"

type summaryRepository interface {
	GetSequence(ctx context.Context, id string) (*domain.Sequence, error)
	GetCategoryName(ctx context.Context, id string) (string, error)
	GetFlows(ctx context.Context, sequenceID string) ([]domain.Flow, error)
	CountMessagesByStepAndStatus(ctx context.Context, sequenceID string) ([]domain.StepStatusCount, error)
	CountDistinctEnrolledLeads(ctx context.Context, sequenceID string) (int64, error)
}

type reportReader interface {
	GetLockReport(ctx context.Context, sequenceID string) (*domain.LockReport, error)
}

type SummaryService struct {
	repo   summaryRepository
	cache  reportReader
	config environments.BroadcastConfig
}

func NewSummaryService(repo summaryRepository, config environments.BroadcastConfig) *SummaryService {
	return &SummaryService{repo: repo, config: config}
}

// WithReportCache adds the last lock report to every summary.
func (s *SummaryService) WithReportCache(cache reportReader) *SummaryService {
	s.cache = cache
	return s
}

// GetSummary reports progress of a sequence from its stored messages. It
// never writes.
func (s *SummaryService) GetSummary(ctx context.Context, sequenceID string) (*domain.Summary, error) {
	sequence, err := s.repo.GetSequence(ctx, sequenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sequence: %w", err)
	}
	if sequence == nil {
		return nil, &domain.NotFoundError{Resource: domain.ResourceSequence}
	}

	categoryName, err := s.repo.GetCategoryName(ctx, sequence.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	flows, err := s.repo.GetFlows(ctx, sequence.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flows: %w", err)
	}

	counts, err := s.repo.CountMessagesByStepAndStatus(ctx, sequence.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message counts: %w", err)
	}

	totalLeads, err := s.repo.CountDistinctEnrolledLeads(ctx, sequence.ID)
	if err != nil {
		logger.Warnf("Failed to count enrolled leads of sequence %s: %v", sequence.ID, err)
		totalLeads = 0
	}

	summary := BuildSummary(sequence, categoryName, flows, counts, totalLeads, s.config.StepNameLength)

	if s.cache != nil {
		report, err := s.cache.GetLockReport(ctx, sequence.ID)
		if err != nil {
			logger.Warnf("Failed to read cached lock report of sequence %s: %v", sequence.ID, err)
		} else {
			summary.LastRun = report
		}
	}

	return summary, nil
}

type statusCounts struct {
	total     int64
	scheduled int64
	sent      int64
	failed    int64
	cancelled int64
}

func (c *statusCounts) add(status domain.MessageStatus, n int64) {
	c.total += n
	switch status {
	case domain.MessageStatusScheduled:
		c.scheduled += n
	case domain.MessageStatusSent:
		c.sent += n
	case domain.MessageStatusFailed:
		c.failed += n
	case domain.MessageStatusCancelled:
		c.cancelled += n
	}
}

// BuildSummary assembles the summary from already loaded rows. Every stored
// message counts toward should_send whatever its status.
func BuildSummary(
	sequence *domain.Sequence,
	categoryName string,
	flows []domain.Flow,
	counts []domain.StepStatusCount,
	totalLeads int64,
	stepNameLength int,
) *domain.Summary {
	if categoryName == "" {
		categoryName = UnknownCategory
	}

	var overall statusCounts
	perStep := make(map[int]*statusCounts)
	for _, c := range counts {
		overall.add(c.Status, c.Count)

		step, ok := perStep[c.FlowNumber]
		if !ok {
			step = &statusCounts{}
			perStep[c.FlowNumber] = step
		}
		step.add(c.Status, c.Count)
	}

	summary := &domain.Summary{
		Sequence: domain.SequenceInfo{
			ID:           sequence.ID,
			Name:         sequence.Name,
			Status:       sequence.Status,
			ScheduleDate: sequence.ScheduleDate,
			ScheduleTime: sequence.ScheduleTime,
			CategoryName: categoryName,
		},
		Overall: domain.OverallStats{
			ShouldSend:          overall.total,
			Sent:                overall.sent,
			SentPercentage:      percentage(overall.sent, overall.total),
			Failed:              overall.failed,
			FailedPercentage:    percentage(overall.failed, overall.total),
			Remaining:           overall.scheduled,
			RemainingPercentage: percentage(overall.scheduled, overall.total),
			Cancelled:           overall.cancelled,
			TotalLeads:          totalLeads,
			SuccessRate:         percentage(overall.sent, overall.total),
		},
		StepProgress: make([]domain.StepStats, 0, len(flows)),
	}

	for _, flow := range flows {
		step := perStep[flow.FlowNumber]
		if step == nil {
			step = &statusCounts{}
		}

		summary.StepProgress = append(summary.StepProgress, domain.StepStats{
			Step:                flow.FlowNumber,
			StepName:            truncateStepName(flow.Message, stepNameLength),
			ImageURL:            flow.ImageURL,
			ShouldSend:          step.total,
			Sent:                step.sent,
			SentPercentage:      percentage(step.sent, step.total),
			Failed:              step.failed,
			FailedPercentage:    percentage(step.failed, step.total),
			Remaining:           step.scheduled,
			RemainingPercentage: percentage(step.scheduled, step.total),
			Progress:            percentage(step.sent, step.total),
		})
	}

	return summary
}

// percentage renders part/total with one decimal, "0.0" for an empty total.
func percentage(part, total int64) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

func truncateStepName(message string, limit int) string {
	if limit <= 0 {
		return message
	}
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit]) + "..."
}

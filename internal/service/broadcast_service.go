package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
	"github.com/onurcolak/broadcast-hub/internal/scheduler"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

// Small internal interfaces so we can test without touching real DB/Valkey/gateway.
type broadcastRepository interface {
	GetSequence(ctx context.Context, id string) (*domain.Sequence, error)
	GetDevice(ctx context.Context, id string) (*domain.Device, error)
	GetFlows(ctx context.Context, sequenceID string) ([]domain.Flow, error)
	GetLeadsByCategory(ctx context.Context, categoryID string) ([]domain.Lead, error)

	ClaimSequence(ctx context.Context, id string) error
	UpdateSequenceStatus(ctx context.Context, id string, status domain.SequenceStatus) error
	CreateEnrollment(ctx context.Context, sequenceID, prospectNum string, enrolledAt, scheduleMessage time.Time) (*domain.Enrollment, error)
	CreateScheduledMessage(ctx context.Context, msg *domain.ScheduledMessage) error
}

type gatewayClient interface {
	Schedule(ctx context.Context, req domain.GatewayRequest) (domain.GatewayResult, error)
}

type messageRandomizer interface {
	Randomize(template, recipientName string) string
}

type schedulePlanner interface {
	Plan(timing scheduler.Timing, leadCount int, steps []scheduler.Step) (*scheduler.Plan, error)
	StorageLocation() *time.Location
}

type reportCache interface {
	CacheLockReport(ctx context.Context, report domain.LockReport) error
}

type alertSender interface {
	SendAlert(ctx context.Context, alert domain.RunAlert) error
}

type BroadcastService struct {
	repo       broadcastRepository
	gateway    gatewayClient
	randomizer messageRandomizer
	planner    schedulePlanner
	cache      reportCache
	alerts     alertSender
	config     environments.BroadcastConfig
	now        func() time.Time
}

func NewBroadcastService(
	repo broadcastRepository,
	gateway gatewayClient,
	randomizer messageRandomizer,
	planner schedulePlanner,
	config environments.BroadcastConfig,
) *BroadcastService {
	return &BroadcastService{
		repo:       repo,
		gateway:    gateway,
		randomizer: randomizer,
		planner:    planner,
		config:     config,
		now:        time.Now,
	}
}

// WithReportCache keeps the report of every run for the summary endpoint.
func (s *BroadcastService) WithReportCache(cache reportCache) *BroadcastService {
	s.cache = cache
	return s
}

// WithAlerts notifies when a run schedules nothing at all.
func (s *BroadcastService) WithAlerts(alerts alertSender) *BroadcastService {
	s.alerts = alerts
	return s
}

// LockBroadcast schedules every flow of the sequence for every lead of its
// category. Nothing is written until all preconditions pass. Per-message
// failures are counted in the report and never abort the run.
//
// Unless StopOnDisconnect is set, cancellation of ctx is ignored and the run
// always completes. When it is set and ctx ends mid-run, no further gateway
// calls are made, the sequence stays locked and the partial report is
// returned together with the context error.
func (s *BroadcastService) LockBroadcast(ctx context.Context, sequenceID string) (*domain.LockReport, error) {
	if !s.config.StopOnDisconnect {
		ctx = context.WithoutCancel(ctx)
	}

	sequence, err := s.repo.GetSequence(ctx, sequenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sequence: %w", err)
	}
	if sequence == nil {
		return nil, &domain.NotFoundError{Resource: domain.ResourceSequence}
	}

	device, err := s.repo.GetDevice(ctx, sequence.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load device: %w", err)
	}
	if device == nil {
		return nil, &domain.NotFoundError{Resource: domain.ResourceDevice}
	}

	flows, err := s.repo.GetFlows(ctx, sequence.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flows: %w", err)
	}
	if len(flows) == 0 {
		return nil, &domain.NotFoundError{Resource: domain.ResourceFlows}
	}
	flows = slices.Clone(flows)
	slices.SortStableFunc(flows, func(a, b domain.Flow) int { return a.FlowNumber - b.FlowNumber })

	leads, err := s.repo.GetLeadsByCategory(ctx, sequence.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leads: %w", err)
	}
	if len(leads) == 0 {
		return nil, &domain.NotFoundError{Resource: domain.ResourceLeads}
	}

	steps := make([]scheduler.Step, len(flows))
	for i, f := range flows {
		steps[i] = scheduler.Step{FlowNumber: f.FlowNumber, DelayHours: f.DelayHours}
	}

	plan, err := s.planner.Plan(scheduler.Timing{
		ScheduleDate: sequence.ScheduleDate,
		ScheduleTime: sequence.ScheduleTime,
		MinDelay:     sequence.MinDelay,
		MaxDelay:     sequence.MaxDelay,
	}, len(leads), steps)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClaimSequence(ctx, sequence.ID); err != nil {
		return nil, err
	}

	logger.Infof("Locking sequence %s: %d leads x %d flows, base time %s UTC",
		sequence.ID, len(leads), len(flows), plan.BaseUTC.Format(time.DateTime))

	report := &domain.LockReport{
		SequenceID: sequence.ID,
		TotalLeads: len(leads),
		TotalFlows: len(flows),
		StartedAt:  s.now(),
	}

	runErr := s.processLeads(ctx, sequence, device, flows, leads, plan, report)
	report.FinishedAt = s.now()

	// Follow-up writes must happen even if the caller went away.
	bg := context.WithoutCancel(ctx)

	if runErr != nil {
		report.Aborted = true
		logger.Warnf("Lock of sequence %s aborted after %d scheduled, %d failed: %v",
			sequence.ID, report.TotalScheduled, report.TotalFailed, runErr)
		s.cacheReport(bg, *report)
		return report, runErr
	}

	if err := s.repo.UpdateSequenceStatus(bg, sequence.ID, domain.SequenceStatusFinished); err != nil {
		logger.Errorf("Failed to update status of sequence %s: %v", sequence.ID, err)
	}

	logger.Infof("Lock of sequence %s complete: %d scheduled, %d failed",
		sequence.ID, report.TotalScheduled, report.TotalFailed)

	s.cacheReport(bg, *report)
	s.alertIfNothingScheduled(bg, sequence, *report)

	return report, nil
}

func (s *BroadcastService) processLeads(
	ctx context.Context,
	sequence *domain.Sequence,
	device *domain.Device,
	flows []domain.Flow,
	leads []domain.Lead,
	plan *scheduler.Plan,
	report *domain.LockReport,
) error {
	storage := s.planner.StorageLocation()

	for i, lead := range leads {
		if err := ctx.Err(); err != nil {
			return err
		}

		slot := plan.Leads[i]

		enrollment, err := s.repo.CreateEnrollment(ctx, sequence.ID, lead.ProspectNum, s.now().In(storage), slot.BaseStorage)
		if err != nil {
			logger.Errorf("Failed to enroll %s in sequence %s: %v", lead.ProspectNum, sequence.ID, err)
			report.TotalFailed++
			continue
		}

		for j, flow := range flows {
			if err := ctx.Err(); err != nil {
				return err
			}

			if s.scheduleStep(ctx, sequence, device, enrollment, lead, flow, slot.Steps[j]) {
				report.TotalScheduled++
			} else {
				report.TotalFailed++
			}
		}
	}

	return nil
}

// scheduleStep sends one flow message to one lead and records it. It reports
// whether the message is both scheduled at the gateway and stored locally.
func (s *BroadcastService) scheduleStep(
	ctx context.Context,
	sequence *domain.Sequence,
	device *domain.Device,
	enrollment *domain.Enrollment,
	lead domain.Lead,
	flow domain.Flow,
	slot scheduler.StepSlot,
) bool {
	text := s.randomizer.Randomize(flow.Message, lead.ProspectName)

	req := domain.GatewayRequest{
		Instance: device.Instance,
		Number:   lead.ProspectNum,
		Message:  text,
		Schedule: slot.Delivery,
	}
	if flow.ImageURL != nil {
		req.ImageURL = *flow.ImageURL
	}

	result, err := s.gateway.Schedule(ctx, req)
	if err != nil {
		logger.Errorf("Gateway call for %s flow %d failed: %v", lead.ProspectNum, flow.FlowNumber, err)
		return false
	}
	if !result.Success {
		logger.Errorf("Gateway rejected %s flow %d: %s", lead.ProspectNum, flow.FlowNumber, result.Error)
		return false
	}

	messageID := result.MessageID
	if messageID == "" {
		messageID = domain.UnknownGatewayMessageID
	}

	msg := &domain.ScheduledMessage{
		EnrollmentID:     enrollment.ID,
		SequenceID:       sequence.ID,
		FlowNumber:       flow.FlowNumber,
		ProspectNum:      lead.ProspectNum,
		DeviceID:         sequence.DeviceID,
		GatewayMessageID: &messageID,
		Message:          text,
		ImageURL:         flow.ImageURL,
		ScheduledTime:    slot.Storage,
		Status:           domain.MessageStatusScheduled,
	}

	if err := s.repo.CreateScheduledMessage(ctx, msg); err != nil {
		// Already scheduled at the gateway; there is no local record of it.
		logger.Errorf("Failed to store scheduled message %s for %s flow %d: %v",
			messageID, lead.ProspectNum, flow.FlowNumber, err)
		return false
	}

	logger.Debugf("Scheduled %s flow %d at %s (gateway id %s)",
		lead.ProspectNum, flow.FlowNumber, slot.Delivery, messageID)

	return true
}

func (s *BroadcastService) cacheReport(ctx context.Context, report domain.LockReport) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheLockReport(ctx, report); err != nil {
		logger.Warnf("Failed to cache lock report of sequence %s: %v", report.SequenceID, err)
	}
}

func (s *BroadcastService) alertIfNothingScheduled(ctx context.Context, sequence *domain.Sequence, report domain.LockReport) {
	if s.alerts == nil || report.TotalScheduled > 0 || report.TotalFailed == 0 {
		return
	}

	alert := domain.RunAlert{
		Alert:          "broadcast_all_failed",
		SequenceID:     sequence.ID,
		SequenceName:   sequence.Name,
		TotalLeads:     report.TotalLeads,
		TotalFlows:     report.TotalFlows,
		TotalScheduled: report.TotalScheduled,
		TotalFailed:    report.TotalFailed,
		Timestamp:      report.FinishedAt,
		Message:        fmt.Sprintf("Sequence %q scheduled no messages (%d failed)", sequence.Name, report.TotalFailed),
	}

	if err := s.alerts.SendAlert(ctx, alert); err != nil {
		logger.Warnf("Failed to send alert for sequence %s: %v", sequence.ID, err)
	}
}

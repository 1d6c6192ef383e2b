package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/broadcast-hub/internal/domain"
)

// BroadcastRepository handles database operations for sequences, leads and
// the messages scheduled for them.
type BroadcastRepository struct {
	db *sqlx.DB
}

func NewBroadcastRepository(db *sqlx.DB) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

func (r *BroadcastRepository) GetSequence(ctx context.Context, id string) (*domain.Sequence, error) {
	query := `
		SELECT id, user_id, device_id, category_id, name, schedule_date, schedule_time,
		       min_delay, max_delay, status, created_at, updated_at
		FROM sequences
		WHERE id = ?
	`

	var sequence domain.Sequence
	if err := r.db.GetContext(ctx, &sequence, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sequence: %w", err)
	}

	return &sequence, nil
}

func (r *BroadcastRepository) GetDevice(ctx context.Context, id string) (*domain.Device, error) {
	query := `
		SELECT id, user_id, device_id, instance
		FROM device_setting
		WHERE id = ?
	`

	var device domain.Device
	if err := r.db.GetContext(ctx, &device, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &device, nil
}

// GetCategoryName returns an empty string when the category does not exist.
func (r *BroadcastRepository) GetCategoryName(ctx context.Context, id string) (string, error) {
	var name string
	if err := r.db.GetContext(ctx, &name, "SELECT name FROM contact_categories WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get category: %w", err)
	}

	return name, nil
}

func (r *BroadcastRepository) GetFlows(ctx context.Context, sequenceID string) ([]domain.Flow, error) {
	query := `
		SELECT id, sequence_id, flow_number, message, image_url, delay_hours
		FROM sequence_flows
		WHERE sequence_id = ?
		ORDER BY flow_number ASC
	`

	var flows []domain.Flow
	if err := r.db.SelectContext(ctx, &flows, query, sequenceID); err != nil {
		return nil, fmt.Errorf("failed to get flows: %w", err)
	}

	return flows, nil
}

func (r *BroadcastRepository) GetLeadsByCategory(ctx context.Context, categoryID string) ([]domain.Lead, error) {
	query := `
		SELECT id, category_id, COALESCE(prospect_name, '') AS prospect_name, prospect_num, created_at
		FROM leads
		WHERE category_id = ?
		ORDER BY created_at ASC
	`

	var leads []domain.Lead
	if err := r.db.SelectContext(ctx, &leads, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get leads: %w", err)
	}

	return leads, nil
}

// ClaimSequence moves a pending sequence to locked. It returns
// domain.ErrSequenceNotPending when the row is in any other state.
func (r *BroadcastRepository) ClaimSequence(ctx context.Context, id string) error {
	query := `
		UPDATE sequences
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, domain.SequenceStatusLocked, id, domain.SequenceStatusPending)
	if err != nil {
		return fmt.Errorf("failed to claim sequence: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrSequenceNotPending
	}

	return nil
}

func (r *BroadcastRepository) UpdateSequenceStatus(ctx context.Context, id string, status domain.SequenceStatus) error {
	query := `
		UPDATE sequences
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update sequence status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("no sequence found with id %s", id)
	}

	return nil
}

// CreateEnrollment inserts an active enrollment. Both timestamps are
// persisted as the wall clock of the zone they carry.
func (r *BroadcastRepository) CreateEnrollment(
	ctx context.Context,
	sequenceID, prospectNum string,
	enrolledAt, scheduleMessage time.Time,
) (*domain.Enrollment, error) {
	enrollment := domain.Enrollment{
		ID:              uuid.NewString(),
		SequenceID:      sequenceID,
		ProspectNum:     prospectNum,
		EnrolledAt:      wallClock(enrolledAt),
		ScheduleMessage: wallClock(scheduleMessage),
		Status:          domain.EnrollmentStatusActive,
	}

	query := `
		INSERT INTO sequence_enrollments (id, sequence_id, prospect_num, enrolled_at, schedule_message, status)
		VALUES (:id, :sequence_id, :prospect_num, :enrolled_at, :schedule_message, :status)
	`

	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	return &enrollment, nil
}

// CreateScheduledMessage inserts msg, assigning an id when it has none.
func (r *BroadcastRepository) CreateScheduledMessage(ctx context.Context, msg *domain.ScheduledMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	row := *msg
	row.ScheduledTime = wallClock(msg.ScheduledTime)

	query := `
		INSERT INTO sequence_scheduled_messages (
			id, enrollment_id, sequence_id, flow_number, prospect_num, device_id,
			whacenter_message_id, message, image_url, scheduled_time, status
		) VALUES (
			:id, :enrollment_id, :sequence_id, :flow_number, :prospect_num, :device_id,
			:whacenter_message_id, :message, :image_url, :scheduled_time, :status
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create scheduled message: %w", err)
	}

	return nil
}

func (r *BroadcastRepository) GetScheduledMessages(ctx context.Context, sequenceID string) ([]domain.ScheduledMessage, error) {
	query := `
		SELECT id, enrollment_id, sequence_id, flow_number, prospect_num, device_id,
		       whacenter_message_id, message, image_url, scheduled_time, status
		FROM sequence_scheduled_messages
		WHERE sequence_id = ?
		ORDER BY scheduled_time ASC, flow_number ASC
	`

	var messages []domain.ScheduledMessage
	if err := r.db.SelectContext(ctx, &messages, query, sequenceID); err != nil {
		return nil, fmt.Errorf("failed to get scheduled messages: %w", err)
	}

	return messages, nil
}

// CountMessagesByStepAndStatus returns one row per (flow_number, status)
// pair that has at least one scheduled message.
func (r *BroadcastRepository) CountMessagesByStepAndStatus(ctx context.Context, sequenceID string) ([]domain.StepStatusCount, error) {
	query := `
		SELECT flow_number, status, COUNT(*) AS total
		FROM sequence_scheduled_messages
		WHERE sequence_id = ?
		GROUP BY flow_number, status
		ORDER BY flow_number ASC
	`

	var counts []domain.StepStatusCount
	if err := r.db.SelectContext(ctx, &counts, query, sequenceID); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	return counts, nil
}

func (r *BroadcastRepository) CountDistinctEnrolledLeads(ctx context.Context, sequenceID string) (int64, error) {
	var total int64
	query := "SELECT COUNT(DISTINCT prospect_num) FROM sequence_enrollments WHERE sequence_id = ?"
	if err := r.db.GetContext(ctx, &total, query, sequenceID); err != nil {
		return 0, fmt.Errorf("failed to count enrolled leads: %w", err)
	}

	return total, nil
}

func (r *BroadcastRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// wallClock keeps the calendar fields of t and drops its offset, so the
// DATETIME column holds the same wall clock the caller sees.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

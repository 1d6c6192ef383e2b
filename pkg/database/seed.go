package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/broadcast-hub/pkg/logger"
)

// SeedResult identifies the demo rows inserted by SeedTestData.
type SeedResult struct {
	SequenceID string
	DeviceID   string
	CategoryID string
	Leads      int
	Flows      int
}

// SeedTestData inserts one pending demo sequence scheduled at scheduleAt,
// unless a sequence already exists.
func SeedTestData(db *sqlx.DB, scheduleAt time.Time) (*SeedResult, error) {
	var count int

	if err := db.Get(&count, "SELECT COUNT(*) FROM sequences"); err != nil {
		return nil, err
	}

	if count > 0 {
		logger.Infof("Database already has %d sequences, skipping seed", count)
		return nil, nil
	}

	userID := uuid.NewString()
	result := &SeedResult{
		SequenceID: uuid.NewString(),
		DeviceID:   uuid.NewString(),
		CategoryID: uuid.NewString(),
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		"INSERT INTO device_setting (id, user_id, device_id, instance) VALUES (?, ?, ?, ?)",
		result.DeviceID, userID, "demo-phone", "demo-instance",
	); err != nil {
		return nil, fmt.Errorf("failed to seed device: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO contact_categories (id, user_id, name) VALUES (?, ?, ?)",
		result.CategoryID, userID, "Demo Customers",
	); err != nil {
		return nil, fmt.Errorf("failed to seed category: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO sequences (id, user_id, device_id, category_id, name, schedule_date, schedule_time, min_delay, max_delay, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending')`,
		result.SequenceID, userID, result.DeviceID, result.CategoryID, "Demo broadcast",
		scheduleAt.Format("2006-01-02"), scheduleAt.Format("15:04"), 10, 30,
	); err != nil {
		return nil, fmt.Errorf("failed to seed sequence: %w", err)
	}

	flows := []struct {
		message    string
		imageURL   *string
		delayHours int
	}{
		{"{Hi|Hello|Salam} {name}! We have a special offer for you this week.", nil, 1},
		{"Just a reminder {nama}, the offer ends soon. Reply YES to join.", nil, 24},
		{"Last call! {Thank you|Terima kasih} for being with us.", nil, 48},
	}
	for i, f := range flows {
		if _, err := tx.Exec(
			"INSERT INTO sequence_flows (id, sequence_id, flow_number, message, image_url, delay_hours) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), result.SequenceID, i+1, f.message, f.imageURL, f.delayHours,
		); err != nil {
			return nil, fmt.Errorf("failed to seed flows: %w", err)
		}
	}
	result.Flows = len(flows)

	leads := []struct {
		name   string
		number string
	}{
		{"Ahmad", "60123456701"},
		{"Siti", "60123456702"},
		{"", "60123456703"},
		{"Budi", "60123456704"},
		{"Mei Ling", "60123456705"},
	}
	created := time.Now().UTC().Add(-time.Hour)
	for i, l := range leads {
		var name *string
		if l.name != "" {
			name = &l.name
		}
		if _, err := tx.Exec(
			"INSERT INTO leads (id, category_id, prospect_name, prospect_num, created_at) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), result.CategoryID, name, l.number, created.Add(time.Duration(i)*time.Second),
		); err != nil {
			return nil, fmt.Errorf("failed to seed leads: %w", err)
		}
	}
	result.Leads = len(leads)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed data: %w", err)
	}

	logger.Infof("Seeded sequence %s with %d flows and %d leads", result.SequenceID, result.Flows, result.Leads)
	return result, nil
}

// NextMorning returns 09:00 of the day after now on the given wall clock.
func NextMorning(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 9, 0, 0, 0, loc)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/broadcast-hub/internal/domain"
)

const sqliteSchema = `
CREATE TABLE device_setting (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	device_id TEXT NOT NULL,
	instance TEXT NOT NULL
);
CREATE TABLE contact_categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE sequences (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	device_id TEXT NOT NULL,
	category_id TEXT NOT NULL,
	name TEXT NOT NULL,
	schedule_date TEXT NOT NULL,
	schedule_time TEXT NOT NULL,
	min_delay INTEGER NOT NULL DEFAULT 0,
	max_delay INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE sequence_flows (
	id TEXT PRIMARY KEY,
	sequence_id TEXT NOT NULL,
	flow_number INTEGER NOT NULL,
	message TEXT NOT NULL,
	image_url TEXT,
	delay_hours INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE leads (
	id TEXT PRIMARY KEY,
	category_id TEXT NOT NULL,
	prospect_name TEXT,
	prospect_num TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE sequence_enrollments (
	id TEXT PRIMARY KEY,
	sequence_id TEXT NOT NULL,
	prospect_num TEXT NOT NULL,
	enrolled_at DATETIME NOT NULL,
	schedule_message DATETIME NOT NULL,
	status TEXT NOT NULL
);
CREATE TABLE sequence_scheduled_messages (
	id TEXT PRIMARY KEY,
	enrollment_id TEXT NOT NULL,
	sequence_id TEXT NOT NULL,
	flow_number INTEGER NOT NULL,
	prospect_num TEXT NOT NULL,
	device_id TEXT NOT NULL,
	whacenter_message_id TEXT,
	message TEXT NOT NULL,
	image_url TEXT,
	scheduled_time DATETIME NOT NULL,
	status TEXT NOT NULL
);
`

func newTestRepository(t *testing.T) (*BroadcastRepository, *sqlx.DB) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a new database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)

	return NewBroadcastRepository(db), db
}

func seedSequence(t *testing.T, db *sqlx.DB, id, status string) {
	t.Helper()

	db.MustExec(`INSERT INTO device_setting (id, user_id, device_id, instance) VALUES ('dev-1', 'user-1', 'phone-1', 'inst-abc')`)
	db.MustExec(`INSERT INTO contact_categories (id, name) VALUES ('cat-1', 'VIP Customers')`)
	db.MustExec(`
		INSERT INTO sequences (id, user_id, device_id, category_id, name, schedule_date, schedule_time, min_delay, max_delay, status)
		VALUES (?, 'user-1', 'dev-1', 'cat-1', 'June promo', '2025-06-01', '09:00', 5, 15, ?)`, id, status)
}

func TestGetSequence(t *testing.T) {
	repo, db := newTestRepository(t)
	seedSequence(t, db, "seq-1", "pending")
	ctx := context.Background()

	sequence, err := repo.GetSequence(ctx, "seq-1")
	require.NoError(t, err)
	require.NotNil(t, sequence)
	assert.Equal(t, "June promo", sequence.Name)
	assert.Equal(t, "2025-06-01", sequence.ScheduleDate)
	assert.Equal(t, "09:00", sequence.ScheduleTime)
	assert.Equal(t, 5, sequence.MinDelay)
	assert.Equal(t, 15, sequence.MaxDelay)
	assert.Equal(t, domain.SequenceStatusPending, sequence.Status)

	missing, err := repo.GetSequence(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetDeviceAndCategory(t *testing.T) {
	repo, db := newTestRepository(t)
	seedSequence(t, db, "seq-1", "pending")
	ctx := context.Background()

	device, err := repo.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	require.NotNil(t, device)
	assert.Equal(t, "inst-abc", device.Instance)

	missing, err := repo.GetDevice(ctx, "dev-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	name, err := repo.GetCategoryName(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "VIP Customers", name)

	name, err = repo.GetCategoryName(ctx, "cat-2")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestGetFlows_OrderedByFlowNumber(t *testing.T) {
	repo, db := newTestRepository(t)
	db.MustExec(`INSERT INTO sequence_flows (id, sequence_id, flow_number, message, image_url, delay_hours) VALUES
		('f3', 'seq-1', 3, 'third', NULL, 24),
		('f1', 'seq-1', 1, 'first', 'https://cdn.example.com/a.jpg', 1),
		('f2', 'seq-1', 2, 'second', NULL, 2),
		('fx', 'seq-2', 1, 'other', NULL, 1)`)

	flows, err := repo.GetFlows(context.Background(), "seq-1")
	require.NoError(t, err)
	require.Len(t, flows, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{flows[0].FlowNumber, flows[1].FlowNumber, flows[2].FlowNumber})
	require.NotNil(t, flows[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/a.jpg", *flows[0].ImageURL)
	assert.Nil(t, flows[1].ImageURL)
}

func TestGetLeadsByCategory_OrderedByCreatedAt(t *testing.T) {
	repo, db := newTestRepository(t)
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	db.MustExec(`INSERT INTO leads (id, category_id, prospect_name, prospect_num, created_at) VALUES (?, 'cat-1', ?, ?, ?)`,
		"l2", "Siti", "60122222222", base.Add(time.Hour))
	db.MustExec(`INSERT INTO leads (id, category_id, prospect_name, prospect_num, created_at) VALUES (?, 'cat-1', NULL, ?, ?)`,
		"l1", "60111111111", base)
	db.MustExec(`INSERT INTO leads (id, category_id, prospect_name, prospect_num, created_at) VALUES (?, 'cat-9', 'X', '1', ?)`,
		"l9", base)

	leads, err := repo.GetLeadsByCategory(context.Background(), "cat-1")
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, "l1", leads[0].ID)
	assert.Equal(t, "", leads[0].ProspectName)
	assert.Equal(t, "l2", leads[1].ID)
	assert.Equal(t, "Siti", leads[1].ProspectName)
}

func TestClaimSequence(t *testing.T) {
	repo, db := newTestRepository(t)
	seedSequence(t, db, "seq-1", "pending")
	ctx := context.Background()

	require.NoError(t, repo.ClaimSequence(ctx, "seq-1"))

	sequence, err := repo.GetSequence(ctx, "seq-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SequenceStatusLocked, sequence.Status)

	err = repo.ClaimSequence(ctx, "seq-1")
	assert.ErrorIs(t, err, domain.ErrSequenceNotPending)
}

func TestUpdateSequenceStatus(t *testing.T) {
	repo, db := newTestRepository(t)
	seedSequence(t, db, "seq-1", "locked")
	ctx := context.Background()

	require.NoError(t, repo.UpdateSequenceStatus(ctx, "seq-1", domain.SequenceStatusFinished))

	sequence, err := repo.GetSequence(ctx, "seq-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SequenceStatusFinished, sequence.Status)

	assert.Error(t, repo.UpdateSequenceStatus(ctx, "missing", domain.SequenceStatusFinished))
}

func TestCreateScheduledMessage_PersistsWallClock(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	storage := time.FixedZone("storage", 8*60*60)

	enrollment, err := repo.CreateEnrollment(ctx, "seq-1", "60111111111",
		time.Date(2025, 5, 30, 12, 0, 0, 0, storage),
		time.Date(2025, 6, 1, 9, 0, 0, 0, storage))
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, domain.EnrollmentStatusActive, enrollment.Status)

	gatewayID := "wa-123"
	msg := &domain.ScheduledMessage{
		EnrollmentID:     enrollment.ID,
		SequenceID:       "seq-1",
		FlowNumber:       1,
		ProspectNum:      "60111111111",
		DeviceID:         "dev-1",
		GatewayMessageID: &gatewayID,
		Message:          "Hello Ali",
		ScheduledTime:    time.Date(2025, 6, 1, 10, 0, 0, 0, storage),
		Status:           domain.MessageStatusScheduled,
	}
	require.NoError(t, repo.CreateScheduledMessage(ctx, msg))
	assert.NotEmpty(t, msg.ID)

	stored, err := repo.GetScheduledMessages(ctx, "seq-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got := stored[0]
	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, "2025-06-01 10:00:00", got.ScheduledTime.Format("2006-01-02 15:04:05"))
	require.NotNil(t, got.GatewayMessageID)
	assert.Equal(t, "wa-123", *got.GatewayMessageID)
	assert.Nil(t, got.ImageURL)
	assert.Equal(t, domain.MessageStatusScheduled, got.Status)
}

func TestSummaryCounts(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	insert := func(prospect string, flow int, status domain.MessageStatus) {
		t.Helper()
		require.NoError(t, repo.CreateScheduledMessage(ctx, &domain.ScheduledMessage{
			EnrollmentID:  "e-" + prospect,
			SequenceID:    "seq-1",
			FlowNumber:    flow,
			ProspectNum:   prospect,
			DeviceID:      "dev-1",
			Message:       "hi",
			ScheduledTime: at,
			Status:        status,
		}))
	}

	insert("a", 1, domain.MessageStatusSent)
	insert("b", 1, domain.MessageStatusSent)
	insert("c", 1, domain.MessageStatusFailed)
	insert("a", 2, domain.MessageStatusScheduled)

	for _, prospect := range []string{"a", "b", "c", "a"} {
		_, err := repo.CreateEnrollment(ctx, "seq-1", prospect, at, at)
		require.NoError(t, err)
	}

	counts, err := repo.CountMessagesByStepAndStatus(ctx, "seq-1")
	require.NoError(t, err)

	byKey := map[int]map[domain.MessageStatus]int64{}
	for _, c := range counts {
		if byKey[c.FlowNumber] == nil {
			byKey[c.FlowNumber] = map[domain.MessageStatus]int64{}
		}
		byKey[c.FlowNumber][c.Status] = c.Count
	}
	assert.Equal(t, int64(2), byKey[1][domain.MessageStatusSent])
	assert.Equal(t, int64(1), byKey[1][domain.MessageStatusFailed])
	assert.Equal(t, int64(1), byKey[2][domain.MessageStatusScheduled])

	leads, err := repo.CountDistinctEnrolledLeads(ctx, "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), leads)

	none, err := repo.CountDistinctEnrolledLeads(ctx, "seq-2")
	require.NoError(t, err)
	assert.Zero(t, none)
}

package domain

import (
	"errors"
	"fmt"
	"time"
)

type SequenceStatus string

const (
	SequenceStatusPending  SequenceStatus = "pending"
	SequenceStatusLocked   SequenceStatus = "locked"
	SequenceStatusFinished SequenceStatus = "finished"
)

type EnrollmentStatus string

const (
	EnrollmentStatusActive EnrollmentStatus = "active"
)

type MessageStatus string

const (
	MessageStatusScheduled MessageStatus = "scheduled"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusFailed    MessageStatus = "failed"
	MessageStatusCancelled MessageStatus = "cancelled"
)

// UnknownGatewayMessageID is stored when the gateway accepted a message but
// did not return an identifier.
const UnknownGatewayMessageID = "unknown"

type Device struct {
	ID       string `db:"id" json:"id"`
	UserID   string `db:"user_id" json:"userId"`
	DeviceID string `db:"device_id" json:"deviceId"`
	Instance string `db:"instance" json:"instance"`
}

type Sequence struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	DeviceID     string         `db:"device_id" json:"device_id"`
	CategoryID   string         `db:"category_id" json:"category_id"`
	Name         string         `db:"name" json:"name"`
	ScheduleDate string         `db:"schedule_date" json:"schedule_date"`
	ScheduleTime string         `db:"schedule_time" json:"schedule_time"`
	MinDelay     int            `db:"min_delay" json:"min_delay"`
	MaxDelay     int            `db:"max_delay" json:"max_delay"`
	Status       SequenceStatus `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Flow is one step of a sequence. DelayHours is measured from the previous
// step, or from the sequence base time for the first step.
type Flow struct {
	ID         string  `db:"id" json:"id"`
	SequenceID string  `db:"sequence_id" json:"sequence_id"`
	FlowNumber int     `db:"flow_number" json:"flow_number"`
	Message    string  `db:"message" json:"message"`
	ImageURL   *string `db:"image_url" json:"image_url"`
	DelayHours int     `db:"delay_hours" json:"delay_hours"`
}

type Lead struct {
	ID           string    `db:"id" json:"id"`
	CategoryID   string    `db:"category_id" json:"category_id"`
	ProspectName string    `db:"prospect_name" json:"prospect_name"`
	ProspectNum  string    `db:"prospect_num" json:"prospect_num"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Enrollment struct {
	ID              string           `db:"id" json:"id"`
	SequenceID      string           `db:"sequence_id" json:"sequence_id"`
	ProspectNum     string           `db:"prospect_num" json:"prospect_num"`
	EnrolledAt      time.Time        `db:"enrolled_at" json:"enrolled_at"`
	ScheduleMessage time.Time        `db:"schedule_message" json:"schedule_message"`
	Status          EnrollmentStatus `db:"status" json:"status"`
}

type ScheduledMessage struct {
	ID               string        `db:"id" json:"id"`
	EnrollmentID     string        `db:"enrollment_id" json:"enrollment_id"`
	SequenceID       string        `db:"sequence_id" json:"sequence_id"`
	FlowNumber       int           `db:"flow_number" json:"flow_number"`
	ProspectNum      string        `db:"prospect_num" json:"prospect_num"`
	DeviceID         string        `db:"device_id" json:"device_id"`
	GatewayMessageID *string       `db:"whacenter_message_id" json:"whacenter_message_id"`
	Message          string        `db:"message" json:"message"`
	ImageURL         *string       `db:"image_url" json:"image_url"`
	ScheduledTime    time.Time     `db:"scheduled_time" json:"scheduled_time"`
	Status           MessageStatus `db:"status" json:"status"`
}

// StepStatusCount is one row of the per-step status aggregation.
type StepStatusCount struct {
	FlowNumber int           `db:"flow_number"`
	Status     MessageStatus `db:"status"`
	Count      int64         `db:"total"`
}

// LockReport is the outcome of one lock run.
type LockReport struct {
	SequenceID     string    `json:"sequence_id"`
	TotalLeads     int       `json:"total_leads"`
	TotalFlows     int       `json:"total_flows"`
	TotalScheduled int       `json:"total_scheduled"`
	TotalFailed    int       `json:"total_failed"`
	Aborted        bool      `json:"aborted,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// GatewayRequest is a single future-dated send.
type GatewayRequest struct {
	Instance string
	Number   string
	Message  string
	ImageURL string
	// Schedule is "YYYY-MM-DD HH:MM:SS" in the delivery timezone.
	Schedule string
}

// GatewayResult is the normalized gateway answer. MessageID may be empty on
// success when the provider did not return one.
type GatewayResult struct {
	Success   bool
	MessageID string
	Error     string
}

// RunAlert is posted to the alert webhook when a lock run scheduled nothing.
type RunAlert struct {
	Alert          string    `json:"alert"`
	SequenceID     string    `json:"sequenceId"`
	SequenceName   string    `json:"sequenceName"`
	TotalLeads     int       `json:"totalLeads"`
	TotalFlows     int       `json:"totalFlows"`
	TotalScheduled int       `json:"totalScheduled"`
	TotalFailed    int       `json:"totalFailed"`
	Timestamp      time.Time `json:"timestamp"`
	Message        string    `json:"message"`
}

var (
	ErrSequenceNotPending = errors.New("sequence is not pending")
	ErrInvalidSchedule    = errors.New("invalid sequence schedule")
)

// NotFoundError reports a missing precondition of a lock run or summary.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	switch e.Resource {
	case ResourceSequence:
		return "Sequence not found"
	case ResourceDevice:
		return "Device not found"
	case ResourceFlows:
		return "No flows found for this sequence"
	case ResourceLeads:
		return "No leads found in this category"
	default:
		return fmt.Sprintf("%s not found", e.Resource)
	}
}

const (
	ResourceSequence = "sequence"
	ResourceDevice   = "device"
	ResourceFlows    = "flows"
	ResourceLeads    = "leads"
)

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

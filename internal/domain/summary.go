package domain

type SequenceInfo struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Status       SequenceStatus `json:"status"`
	ScheduleDate string         `json:"schedule_date"`
	ScheduleTime string         `json:"schedule_time"`
	CategoryName string         `json:"category_name"`
}

// Percentages are one-decimal strings, "0.0" when the denominator is zero.
type OverallStats struct {
	ShouldSend          int64  `json:"should_send"`
	Sent                int64  `json:"sent"`
	SentPercentage      string `json:"sent_percentage"`
	Failed              int64  `json:"failed"`
	FailedPercentage    string `json:"failed_percentage"`
	Remaining           int64  `json:"remaining"`
	RemainingPercentage string `json:"remaining_percentage"`
	Cancelled           int64  `json:"cancelled"`
	TotalLeads          int64  `json:"total_leads"`
	SuccessRate         string `json:"success_rate"`
}

type StepStats struct {
	Step                int     `json:"step"`
	StepName            string  `json:"step_name"`
	ImageURL            *string `json:"image_url"`
	ShouldSend          int64   `json:"should_send"`
	Sent                int64   `json:"sent"`
	SentPercentage      string  `json:"sent_percentage"`
	Failed              int64   `json:"failed"`
	FailedPercentage    string  `json:"failed_percentage"`
	Remaining           int64   `json:"remaining"`
	RemainingPercentage string  `json:"remaining_percentage"`
	Progress            string  `json:"progress"`
}

type Summary struct {
	Sequence     SequenceInfo `json:"sequence"`
	Overall      OverallStats `json:"overall"`
	StepProgress []StepStats  `json:"step_progress"`
	LastRun      *LockReport  `json:"last_run,omitempty"`
}

package scheduler

import (
	"fmt"
	"slices"
	"time"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/internal/domain"
)

// DeliveryLayout is the schedule format the gateway accepts.
const DeliveryLayout = "2006-01-02 15:04:05"

var clockLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05"}

// Rand draws the inter-lead gaps. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Timing is the part of a sequence that drives the send times.
type Timing struct {
	ScheduleDate string
	ScheduleTime string
	MinDelay     int
	MaxDelay     int
}

type Step struct {
	FlowNumber int
	DelayHours int
}

type StepSlot struct {
	FlowNumber           int
	CumulativeDelayHours int
	UTC                  time.Time
	Storage              time.Time
	Delivery             string
}

type LeadSlot struct {
	Index int
	// GapSeconds is the cumulative gap from the first lead.
	GapSeconds  int
	BaseUTC     time.Time
	BaseStorage time.Time
	Steps       []StepSlot
}

type Plan struct {
	BaseUTC time.Time
	Leads   []LeadSlot
}

// Planner turns a sequence timing into absolute send times. All arithmetic is
// done in UTC; storage and delivery zones are fixed offsets.
type Planner struct {
	storage  *time.Location
	delivery *time.Location
	rng      Rand
}

func NewPlanner(cfg environments.TimezoneConfig, rng Rand) *Planner {
	return &Planner{
		storage:  fixedZone("storage", cfg.StorageOffset),
		delivery: fixedZone("delivery", cfg.DeliveryOffset),
		rng:      rng,
	}
}

func fixedZone(name string, offset time.Duration) *time.Location {
	return time.FixedZone(name, int(offset/time.Second))
}

// StorageLocation is the zone persisted timestamps are expressed in.
func (p *Planner) StorageLocation() *time.Location {
	return p.storage
}

// BaseTime interprets date and clock as storage-zone wall clock and returns
// the matching UTC instant.
func (p *Planner) BaseTime(date, clock string) (time.Time, error) {
	value := date + " " + clock
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, value, p.storage); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse schedule %q", domain.ErrInvalidSchedule, value)
}

// Plan computes the send time of every (lead, step) pair. Leads are taken in
// index order and steps in ascending FlowNumber; gaps accumulate across leads
// and step delays accumulate within a lead.
func (p *Planner) Plan(timing Timing, leadCount int, steps []Step) (*Plan, error) {
	if timing.MinDelay < 0 || timing.MaxDelay < 0 || timing.MinDelay > timing.MaxDelay {
		return nil, fmt.Errorf("%w: delay range [%d, %d]", domain.ErrInvalidSchedule, timing.MinDelay, timing.MaxDelay)
	}

	ordered := slices.Clone(steps)
	slices.SortStableFunc(ordered, func(a, b Step) int { return a.FlowNumber - b.FlowNumber })
	for _, s := range ordered {
		if s.DelayHours < 0 {
			return nil, fmt.Errorf("%w: flow %d has negative delay", domain.ErrInvalidSchedule, s.FlowNumber)
		}
	}

	baseUTC, err := p.BaseTime(timing.ScheduleDate, timing.ScheduleTime)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		BaseUTC: baseUTC,
		Leads:   make([]LeadSlot, 0, leadCount),
	}

	gapSeconds := 0
	for i := 0; i < leadCount; i++ {
		if i > 0 {
			gapSeconds += p.drawGap(timing.MinDelay, timing.MaxDelay)
		}

		leadBase := baseUTC.Add(time.Duration(gapSeconds) * time.Second)
		lead := LeadSlot{
			Index:       i,
			GapSeconds:  gapSeconds,
			BaseUTC:     leadBase,
			BaseStorage: leadBase.In(p.storage),
			Steps:       make([]StepSlot, 0, len(ordered)),
		}

		delayHours := 0
		for _, s := range ordered {
			delayHours += s.DelayHours
			at := leadBase.Add(time.Duration(delayHours) * time.Hour)

			lead.Steps = append(lead.Steps, StepSlot{
				FlowNumber:           s.FlowNumber,
				CumulativeDelayHours: delayHours,
				UTC:                  at,
				Storage:              at.In(p.storage),
				Delivery:             at.In(p.delivery).Format(DeliveryLayout),
			})
		}

		plan.Leads = append(plan.Leads, lead)
	}

	return plan, nil
}

// drawGap returns an integer in [lo, hi], both inclusive.
func (p *Planner) drawGap(lo, hi int) int {
	return p.rng.IntN(hi-lo+1) + lo
}

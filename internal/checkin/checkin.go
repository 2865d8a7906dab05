// Package checkin classifies a check-in as in time or made up and builds the
// resulting Check record.
package checkin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/scheduler"
	"github.com/julianstephens/upbeat/internal/utils"
	"github.com/julianstephens/upbeat/internal/validation"
)

const (
	MessageCheckedIn = "Checked in ✅"
	MessageMadeUp    = "Made up ✅"
)

type Evaluator struct {
	clock utils.Clock
	newID func() string
}

func New(clock utils.Clock) *Evaluator {
	return &Evaluator{
		clock: clock,
		newID: uuid.NewString,
	}
}

// Evaluate builds the check for entry. An empty target means today; any
// other target must be a YYYY-MM-DD date no later than today, and a target
// other than today marks the check as a make-up.
//
// For a windowed entry InTime reflects the current time of day, also when
// the check is made up for an earlier date.
func (e *Evaluator) Evaluate(entry scheduler.Entry, target string) (models.Check, error) {
	now := e.clock.Now()
	today := utils.FormatDate(now)

	date := today
	if target != "" {
		if err := validation.ValidateCheckDate(target, now); err != nil {
			return models.Check{}, err
		}
		date = target
	}

	inTime := true
	if w := entry.Window(); w.Enabled {
		within, err := utils.Within(utils.TimeOfDay(e.clock), w.Start, w.End)
		if err != nil {
			return models.Check{}, fmt.Errorf("evaluate window of %q: %w", entry.Title(), err)
		}
		inTime = within
	}

	return models.Check{
		ID:       e.newID(),
		Date:     date,
		TaskID:   entry.Ref(),
		Template: entry.IsTemplate(),
		InTime:   inTime,
		MakeUp:   date != today,
	}, nil
}

// Message is the confirmation shown after check was recorded.
func Message(check models.Check) string {
	if check.MakeUp {
		return MessageMadeUp
	}
	return MessageCheckedIn
}

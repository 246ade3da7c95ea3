package booking

import (
	"fmt"
	"net/http"

	"github.com/studiobook/studio-booking-backend/internal/pkg/apperror"
	"github.com/studiobook/studio-booking-backend/internal/pkg/tzdisplay"
)

// WizardState names a step of the checkout flow.
type WizardState string

const (
	StateSelectHours WizardState = "select_hours"
	StateSelectTime  WizardState = "select_time"
	StateReview      WizardState = "review"
	StatePaying      WizardState = "paying"
	StateSucceeded   WizardState = "succeeded"
	StateFailed      WizardState = "failed"
)

var ErrBadTransition = apperror.New(http.StatusUnprocessableEntity, "step not allowed from the current state")

// Wizard drives one customer's checkout: pick a duration, pick a start
// time, review, pay. It holds the selections; availability and payment are
// the caller's job at the transition points. A failed attempt is terminal,
// the customer starts over from time selection.
type Wizard struct {
	state        WizardState
	minimumHours int

	Hours     int
	Date      string
	StartTime string
	EndTime   string
}

func NewWizard(minimumHours int) *Wizard {
	if minimumHours < 1 {
		minimumHours = 1
	}
	return &Wizard{
		state:        StateSelectHours,
		minimumHours: minimumHours,
	}
}

func (w *Wizard) State() WizardState {
	return w.state
}

func (w *Wizard) SelectHours(hours int) error {
	if w.state != StateSelectHours {
		return ErrBadTransition
	}
	if hours < w.minimumHours {
		return ErrBelowMinimumHours
	}
	w.Hours = hours
	w.state = StateSelectTime
	return nil
}

// SelectTime fixes the date and room-local start time. The end time is
// derived from the chosen duration and must stay on the same calendar
// date.
func (w *Wizard) SelectTime(date, startTime string) error {
	if w.state != StateSelectTime {
		return ErrBadTransition
	}
	if _, err := tzdisplay.ParseDate(date); err != nil {
		return ErrMalformedDate
	}
	startHour, startMin, err := tzdisplay.ParseTimeOfDay(startTime)
	if err != nil {
		return ErrMalformedTime
	}

	endHour := startHour + w.Hours
	if endHour > 24 || (endHour == 24 && startMin > 0) {
		return ErrCrossesMidnight
	}
	end := fmt.Sprintf("%02d:%02d", endHour, startMin)
	if endHour == 24 {
		end = "24:00"
	}

	w.Date = date
	w.StartTime = startTime
	w.EndTime = end
	w.state = StateReview
	return nil
}

// Back returns to the previous selection step. Only the two selection
// states can go back; once payment started the attempt runs to its end.
func (w *Wizard) Back() error {
	switch w.state {
	case StateSelectTime:
		w.state = StateSelectHours
	case StateReview:
		w.state = StateSelectTime
	default:
		return ErrBadTransition
	}
	return nil
}

func (w *Wizard) BeginPayment() error {
	if w.state != StateReview {
		return ErrBadTransition
	}
	w.state = StatePaying
	return nil
}

func (w *Wizard) Complete(succeeded bool) error {
	if w.state != StatePaying {
		return ErrBadTransition
	}
	if succeeded {
		w.state = StateSucceeded
	} else {
		w.state = StateFailed
	}
	return nil
}

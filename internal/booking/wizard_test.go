package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardHappyPath(t *testing.T) {
	w := NewWizard(2)
	assert.Equal(t, StateSelectHours, w.State())

	require.NoError(t, w.SelectHours(2))
	assert.Equal(t, StateSelectTime, w.State())

	require.NoError(t, w.SelectTime("2026-03-10", "10:00"))
	assert.Equal(t, StateReview, w.State())
	assert.Equal(t, "12:00", w.EndTime)

	require.NoError(t, w.BeginPayment())
	assert.Equal(t, StatePaying, w.State())

	require.NoError(t, w.Complete(true))
	assert.Equal(t, StateSucceeded, w.State())
}

func TestWizardFailedPayment(t *testing.T) {
	w := NewWizard(1)
	require.NoError(t, w.SelectHours(1))
	require.NoError(t, w.SelectTime("2026-03-10", "09:00"))
	require.NoError(t, w.BeginPayment())
	require.NoError(t, w.Complete(false))
	assert.Equal(t, StateFailed, w.State())
}

func TestWizardMinimumHours(t *testing.T) {
	w := NewWizard(3)
	err := w.SelectHours(2)
	assert.ErrorIs(t, err, ErrBelowMinimumHours)
	assert.Equal(t, StateSelectHours, w.State(), "failed selection leaves the state alone")

	require.NoError(t, w.SelectHours(3))
}

func TestWizardSelectTimeValidation(t *testing.T) {
	w := NewWizard(1)
	require.NoError(t, w.SelectHours(2))

	assert.ErrorIs(t, w.SelectTime("03/10/2026", "10:00"), ErrMalformedDate)
	assert.ErrorIs(t, w.SelectTime("2026-03-10", "10am"), ErrMalformedTime)

	// 23:00 + 2h runs past midnight.
	assert.ErrorIs(t, w.SelectTime("2026-03-10", "23:00"), ErrCrossesMidnight)

	// 22:00 + 2h ends exactly at midnight, which is allowed.
	require.NoError(t, w.SelectTime("2026-03-10", "22:00"))
	assert.Equal(t, "24:00", w.EndTime)
}

func TestWizardBadTransitions(t *testing.T) {
	w := NewWizard(1)

	assert.ErrorIs(t, w.SelectTime("2026-03-10", "10:00"), ErrBadTransition)
	assert.ErrorIs(t, w.BeginPayment(), ErrBadTransition)
	assert.ErrorIs(t, w.Complete(true), ErrBadTransition)
	assert.ErrorIs(t, w.Back(), ErrBadTransition)

	require.NoError(t, w.SelectHours(1))
	assert.ErrorIs(t, w.SelectHours(1), ErrBadTransition)
}

func TestWizardBack(t *testing.T) {
	w := NewWizard(1)
	require.NoError(t, w.SelectHours(2))
	require.NoError(t, w.SelectTime("2026-03-10", "10:00"))

	require.NoError(t, w.Back())
	assert.Equal(t, StateSelectTime, w.State())

	require.NoError(t, w.Back())
	assert.Equal(t, StateSelectHours, w.State())

	// Once payment starts there is no going back.
	require.NoError(t, w.SelectHours(2))
	require.NoError(t, w.SelectTime("2026-03-10", "11:00"))
	require.NoError(t, w.BeginPayment())
	assert.ErrorIs(t, w.Back(), ErrBadTransition)
}

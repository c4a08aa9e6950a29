package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReservationStatus(t *testing.T) {
	got, err := ParseReservationStatus(" selesai ")
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusSelesai, got)

	_, err = ParseReservationStatus("DONE")
	assert.Error(t, err)

	_, err = ParseReservationStatus("")
	assert.Error(t, err)
}

func TestReservationStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		allowed  bool
	}{
		{ReservationStatusPending, ReservationStatusProses, true},
		{ReservationStatusPending, ReservationStatusSelesai, true},
		{ReservationStatusPending, ReservationStatusBatal, true},
		{ReservationStatusProses, ReservationStatusSelesai, true},
		{ReservationStatusProses, ReservationStatusBatal, true},
		{ReservationStatusProses, ReservationStatusPending, false},
		{ReservationStatusSelesai, ReservationStatusBatal, false},
		{ReservationStatusSelesai, ReservationStatusPending, false},
		{ReservationStatusBatal, ReservationStatusProses, false},
		{ReservationStatusPending, ReservationStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, ReservationStatusPending.IsTerminal())
	assert.False(t, ReservationStatusProses.IsTerminal())
	assert.True(t, ReservationStatusSelesai.IsTerminal())
	assert.True(t, ReservationStatusBatal.IsTerminal())
}

func TestParseExpenseCategory(t *testing.T) {
	got, err := ParseExpenseCategory("utilities")
	require.NoError(t, err)
	assert.Equal(t, ExpenseCategoryUtilities, got)

	_, err = ParseExpenseCategory("TRAVEL")
	assert.Error(t, err)
}

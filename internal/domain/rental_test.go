package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalStatusIsLive(t *testing.T) {
	assert.True(t, RentalStatusReserved.IsLive())
	assert.True(t, RentalStatusActive.IsLive())
	assert.False(t, RentalStatusReturned.IsLive())
	assert.False(t, RentalStatusCancelled.IsLive())
}

func TestOverdue(t *testing.T) {
	end := time.Date(2026, 8, 25, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		rental Rental
		now    time.Time
		want   bool
	}{
		{
			name:   "same calendar day is not overdue",
			rental: Rental{Status: RentalStatusActive, EndDate: &end},
			now:    time.Date(2026, 8, 25, 23, 59, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "next day is overdue even before the due hour",
			rental: Rental{Status: RentalStatusActive, EndDate: &end},
			now:    time.Date(2026, 8, 26, 1, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "returned rental never overdue",
			rental: Rental{Status: RentalStatusReturned, EndDate: &end},
			now:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "reservation has no due date",
			rental: Rental{Status: RentalStatusReserved},
			now:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rental.Overdue(tt.now))
		})
	}
}

func TestOverdueDays(t *testing.T) {
	end := time.Date(2026, 8, 25, 15, 0, 0, 0, time.UTC)
	rt := Rental{Status: RentalStatusActive, EndDate: &end}

	assert.Equal(t, 0, rt.OverdueDays(time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, rt.OverdueDays(time.Date(2026, 8, 26, 0, 30, 0, 0, time.UTC)))
	assert.Equal(t, 3, rt.OverdueDays(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)))
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusReserved  RentalStatus = "RESERVED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// ReservationGracePeriod is how long a reservation holds a copy before the
// expiry sweep cancels it. Measured from CreatedAt, not from day boundaries.
const ReservationGracePeriod = 24 * time.Hour

type Rental struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	BookID    int64        `json:"book_id"`
	CreatedAt time.Time    `json:"created_at"`
	// StartDate and EndDate are nil while the rental is still a reservation.
	// Both are set exactly once, at pickup.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	// Penalty only grows, and only while the rental is ACTIVE.
	Penalty decimal.Decimal `json:"penalty"`
	// LastAccruedOn is the UTC date up to which overdue penalty has been
	// charged. Nil until the first accrual run touches the rental.
	LastAccruedOn *time.Time   `json:"last_accrued_on,omitempty"`
	Status        RentalStatus `json:"status"`
}

// IsLive reports whether the rental still blocks a new reservation of the
// same book by the same user.
func (s RentalStatus) IsLive() bool {
	return s == RentalStatusReserved || s == RentalStatusActive
}

// Overdue reports whether the rental is past due at the given instant.
// Comparison is by UTC calendar date, matching the accrual formula.
func (r *Rental) Overdue(now time.Time) bool {
	if r.Status != RentalStatusActive || r.EndDate == nil {
		return false
	}
	return dateOf(now).After(dateOf(*r.EndDate))
}

// OverdueDays returns the number of whole calendar days the rental is past
// due at the given instant, zero if it is not overdue.
func (r *Rental) OverdueDays(now time.Time) int {
	if !r.Overdue(now) {
		return 0
	}
	return int(dateOf(now).Sub(dateOf(*r.EndDate)).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

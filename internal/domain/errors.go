package domain

import "errors"

// Business-rule violations surfaced to callers. All are expected,
// recoverable failures; the core never retries them.
var (
	// ErrInvalidStateTransition is returned when an operation finds the
	// rental in a state its transition does not start from, including the
	// case where the expiry sweep cancelled a reservation first.
	ErrInvalidStateTransition = errors.New("rental is not in a valid state for this transition")

	// ErrInvalidDuration is returned by pickup when the rental duration is
	// missing or not a positive number of days.
	ErrInvalidDuration = errors.New("rental duration must be a positive number of days")

	// ErrDebtBlocksReservation is returned when the user carries outstanding
	// penalty debt on any active rental.
	ErrDebtBlocksReservation = errors.New("outstanding penalty debt blocks this operation")

	// ErrNoCopiesAvailable is returned when the book has no free copies left.
	ErrNoCopiesAvailable = errors.New("no copies of this book are available")

	// ErrDuplicateRental is returned when the user already holds a reserved
	// or active rental for the same book.
	ErrDuplicateRental = errors.New("user already has a live rental for this book")

	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateBasketItem is returned when the book is already in the
	// user's basket.
	ErrDuplicateBasketItem = errors.New("book is already in the basket")

	// ErrInvalidRating is returned when a review rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

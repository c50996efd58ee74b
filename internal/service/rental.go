package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/logger"
	"github.com/temirovuz/library/internal/repository"
)

type rentalService struct {
	db          *sql.DB
	rentals     repository.RentalRepository
	books       repository.BookRepository
	penaltyRate decimal.Decimal
	now         func() time.Time
}

func NewRentalService(db *sql.DB, rentals repository.RentalRepository, books repository.BookRepository, penaltyRate decimal.Decimal) RentalService {
	return &rentalService{
		db:          db,
		rentals:     rentals,
		books:       books,
		penaltyRate: penaltyRate,
		now:         time.Now,
	}
}

// Reserve takes one copy out of the pool and creates a RESERVED rental.
// The book row is locked first so two concurrent reserves of the last copy
// serialize and the loser fails with ErrNoCopiesAvailable.
func (s *rentalService) Reserve(ctx context.Context, userID, bookID int64) (rt *domain.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	book, err := s.books.GetForUpdate(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}

	live, err := s.rentals.HasLiveRental(ctx, tx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, domain.ErrDuplicateRental
	}

	debt, err := s.rentals.ActiveDebtTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if debt.IsPositive() {
		return nil, domain.ErrDebtBlocksReservation
	}

	if book.AvailableCopies <= 0 {
		return nil, domain.ErrNoCopiesAvailable
	}
	if err = s.books.AdjustCopies(ctx, tx, bookID, -1); err != nil {
		return nil, err
	}

	rt = &domain.Rental{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: s.now().UTC(),
		Penalty:   decimal.Zero,
		Status:    domain.RentalStatusReserved,
	}
	if err = s.rentals.Insert(ctx, tx, rt); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rt, nil
}

// PickUp converts a reservation into an active rental. The row lock makes a
// pickup racing the expiry sweep lose cleanly: whichever commits first wins,
// the other sees a non-RESERVED status.
func (s *rentalService) PickUp(ctx context.Context, userID, rentalID int64, rentalDays int32) (rt *domain.Rental, err error) {
	if rentalDays <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rt, err = s.rentals.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.ErrNotFound
	}

	debt, err := s.rentals.ActiveDebtTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if debt.IsPositive() {
		return nil, domain.ErrDebtBlocksReservation
	}

	if rt.Status != domain.RentalStatusReserved {
		return nil, domain.ErrInvalidStateTransition
	}

	start := s.now().UTC()
	end := start.AddDate(0, 0, int(rentalDays))
	rt.StartDate = &start
	rt.EndDate = &end
	rt.Status = domain.RentalStatusActive
	if err = s.rentals.Update(ctx, tx, rt); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rt, nil
}

// Cancel cancels a reservation and puts its copy back into the pool.
func (s *rentalService) Cancel(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	return s.cancelReserved(ctx, rentalID, &userID)
}

// cancelReserved is the shared RESERVED -> CANCELLED transition used by both
// the explicit cancel and the expiry sweep. A nil ownerID skips the ownership
// check (the sweep cancels on behalf of the system).
func (s *rentalService) cancelReserved(ctx context.Context, rentalID int64, ownerID *int64) (rt *domain.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rt, err = s.rentals.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if ownerID != nil && rt.UserID != *ownerID {
		return nil, domain.ErrNotFound
	}
	if rt.Status != domain.RentalStatusReserved {
		return nil, domain.ErrInvalidStateTransition
	}

	rt.Status = domain.RentalStatusCancelled
	if err = s.rentals.Update(ctx, tx, rt); err != nil {
		return nil, err
	}
	if err = s.books.AdjustCopies(ctx, tx, rt.BookID, +1); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rt, nil
}

// CompleteReturn ends the active period of a rental. The copy count is not
// incremented: the reservation's decrement represents the copy leaving the
// pool, and a completed rental does not re-enter it.
func (s *rentalService) CompleteReturn(ctx context.Context, userID, rentalID int64) (rt *domain.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rt, err = s.rentals.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if rt.Status != domain.RentalStatusActive {
		return nil, domain.ErrInvalidStateTransition
	}

	rt.Status = domain.RentalStatusReturned
	if err = s.rentals.Update(ctx, tx, rt); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) Debt(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.rentals.ActiveDebt(ctx, userID)
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	rt, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, userID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentals.ListByUser(ctx, userID, status, page, pageSize)
}

// AccruePenalties sweeps active rentals past their due date and charges
// daily_price * rate per overdue day. Accrual is idempotent per elapsed day:
// each rental carries the date it has been charged up to, and a sweep only
// adds the delta since then.
func (s *rentalService) AccruePenalties(ctx context.Context) (int, error) {
	today := s.now().UTC()
	ids, err := s.rentals.ListAccrualCandidateIDs(ctx, today)
	if err != nil {
		return 0, err
	}

	accrued := 0
	for _, id := range ids {
		if err := s.accrueOne(ctx, id, today); err != nil {
			logger.Error("penalty accrual failed for rental", "rental_id", id, "error", err)
			continue
		}
		accrued++
	}
	return accrued, nil
}

func (s *rentalService) accrueOne(ctx context.Context, rentalID int64, today time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rt, err := s.rentals.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		return err
	}
	// The rental may have been returned between listing and locking.
	if rt.Status != domain.RentalStatusActive || !rt.Overdue(today) {
		return tx.Commit()
	}

	from := dateOnly(*rt.EndDate)
	if rt.LastAccruedOn != nil && rt.LastAccruedOn.After(from) {
		from = dateOnly(*rt.LastAccruedOn)
	}
	days := int64(dateOnly(today).Sub(from).Hours() / 24)
	if days <= 0 {
		return tx.Commit()
	}

	book, err := s.books.GetByID(ctx, rt.BookID)
	if err != nil {
		return err
	}

	dailyPenalty := book.DailyPrice.Mul(s.penaltyRate)
	rt.Penalty = rt.Penalty.Add(dailyPenalty.Mul(decimal.NewFromInt(days)))
	accruedOn := dateOnly(today)
	rt.LastAccruedOn = &accruedOn
	if err = s.rentals.Update(ctx, tx, rt); err != nil {
		return err
	}

	return tx.Commit()
}

// ExpireStaleReservations cancels reservations whose grace window has run
// out. Each rental is handled in its own transaction so one failure does not
// abort the sweep, and a reservation picked up mid-sweep is skipped.
func (s *rentalService) ExpireStaleReservations(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-domain.ReservationGracePeriod)
	ids, err := s.rentals.ListStaleReservedIDs(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		_, err := s.cancelReserved(ctx, id, nil)
		if errors.Is(err, domain.ErrInvalidStateTransition) {
			// Picked up or cancelled between listing and locking.
			continue
		}
		if err != nil {
			logger.Error("reservation expiry failed for rental", "rental_id", id, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

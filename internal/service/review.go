package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

type reviewService struct {
	db      *sql.DB
	reviews repository.ReviewRepository
	rentals repository.RentalRepository
	now     func() time.Time
}

func NewReviewService(db *sql.DB, reviews repository.ReviewRepository, rentals repository.RentalRepository) ReviewService {
	return &reviewService{
		db:      db,
		reviews: reviews,
		rentals: rentals,
		now:     time.Now,
	}
}

// Submit stores the review and completes the return of the user's active
// rental of the book, in one transaction. A user with no active rental of
// the book cannot review it.
func (s *reviewService) Submit(ctx context.Context, userID, bookID int64, rating int32, comment string) (rv *domain.Review, err error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
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

	rt, err := s.rentals.GetActiveForUpdate(ctx, tx, userID, bookID)
	if err != nil {
		return nil, err
	}

	rv = &domain.Review{
		UserID:    userID,
		BookID:    bookID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}
	if err = s.reviews.Create(ctx, tx, rv); err != nil {
		return nil, err
	}

	rt.Status = domain.RentalStatusReturned
	if err = s.rentals.Update(ctx, tx, rt); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	return s.reviews.ListByBook(ctx, bookID)
}

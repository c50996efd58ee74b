package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/temirovuz/library/internal/domain"
)

func newTestReviewService(t *testing.T) (*reviewService, sqlmock.Sqlmock, *MockReviewRepo, *MockRentalRepo) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reviews := new(MockReviewRepo)
	rentals := new(MockRentalRepo)

	svc := &reviewService{
		db:      db,
		reviews: reviews,
		rentals: rentals,
		now:     func() time.Time { return testNow },
	}
	return svc, dbMock, reviews, rentals
}

func TestSubmitReview_CompletesReturn(t *testing.T) {
	svc, dbMock, reviews, rentals := newTestReviewService(t)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	start := testNow.AddDate(0, 0, -5)
	end := testNow.AddDate(0, 0, 2)
	rentals.On("GetActiveForUpdate", mock.Anything, mock.Anything, int64(1), int64(5)).
		Return(&domain.Rental{
			ID:        42,
			UserID:    1,
			BookID:    5,
			StartDate: &start,
			EndDate:   &end,
			Penalty:   decimal.Zero,
			Status:    domain.RentalStatusActive,
		}, nil)
	reviews.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Review")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Review).ID = 7
		}).
		Return(nil)

	var updated *domain.Rental
	rentals.On("Update", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Rental")).
		Run(func(args mock.Arguments) {
			updated = args.Get(2).(*domain.Rental)
		}).
		Return(nil)

	rv, err := svc.Submit(context.Background(), 1, 5, 4, "worth the late fee")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), rv.ID)
	assert.Equal(t, int32(4), rv.Rating)
	assert.Equal(t, domain.RentalStatusReturned, updated.Status)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	svc, dbMock, _, rentals := newTestReviewService(t)

	for _, rating := range []int32{0, 6, -1} {
		_, err := svc.Submit(context.Background(), 1, 5, rating, "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}
	rentals.AssertNotCalled(t, "GetActiveForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSubmitReview_NoActiveRental(t *testing.T) {
	svc, dbMock, reviews, rentals := newTestReviewService(t)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	rentals.On("GetActiveForUpdate", mock.Anything, mock.Anything, int64(1), int64(5)).
		Return(nil, domain.ErrNotFound)

	_, err := svc.Submit(context.Background(), 1, 5, 4, "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

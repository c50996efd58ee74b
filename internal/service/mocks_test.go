package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Insert(ctx context.Context, tx *sql.Tx, rental *domain.Rental) error {
	args := m.Called(ctx, tx, rental)
	return args.Error(0)
}

func (m *MockRentalRepo) Update(ctx context.Context, tx *sql.Tx, rental *domain.Rental) error {
	args := m.Called(ctx, tx, rental)
	return args.Error(0)
}

func (m *MockRentalRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) GetActiveForUpdate(ctx context.Context, tx *sql.Tx, userID, bookID int64) (*domain.Rental, error) {
	args := m.Called(ctx, tx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) HasLiveRental(ctx context.Context, tx *sql.Tx, userID, bookID int64) (bool, error) {
	args := m.Called(ctx, tx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepo) ActiveDebt(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRentalRepo) ActiveDebtTx(ctx context.Context, tx *sql.Tx, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListStaleReservedIDs(ctx context.Context, cutoff time.Time) ([]int64, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRentalRepo) ListAccrualCandidateIDs(ctx context.Context, today time.Time) ([]int64, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRentalRepo) ListOverdueForReminder(ctx context.Context, now time.Time) ([]repository.OverdueReminderRow, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OverdueReminderRow), args.Error(1)
}

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookRepo) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Book, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepo) ListByGenre(ctx context.Context, genreID int64) ([]domain.Book, error) {
	args := m.Called(ctx, genreID)
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepo) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Book, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepo) AdjustCopies(ctx context.Context, tx *sql.Tx, bookID int64, delta int32) error {
	args := m.Called(ctx, tx, bookID, delta)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, tx *sql.Tx, review *domain.Review) error {
	args := m.Called(ctx, tx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

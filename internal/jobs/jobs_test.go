package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/temirovuz/library/internal/config"
	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository/postgres"
)

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Reserve(ctx context.Context, userID, bookID int64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) PickUp(ctx context.Context, userID, rentalID int64, rentalDays int32) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID, rentalDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) Cancel(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) CompleteReturn(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) Debt(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRentalService) GetRental(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ListRentals(ctx context.Context, userID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalService) AccruePenalties(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalService) ExpireStaleReservations(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, name, bookName string, dueDate string, penalty decimal.Decimal) error {
	args := m.Called(ctx, email, name, bookName, dueDate, penalty)
	return args.Error(0)
}

func newTestRunner(t *testing.T) (*JobRunner, sqlmock.Sqlmock, *MockRentalService, *MockEmailService) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rental := new(MockRentalService)
	email := new(MockEmailService)
	runner := NewJobRunner(postgres.NewStore(db), &Services{Rental: rental, Email: email}, &config.Config{})
	return runner, dbMock, rental, email
}

func TestAccruePenaltiesJob(t *testing.T) {
	runner, _, rental, _ := newTestRunner(t)

	rental.On("AccruePenalties", mock.Anything).Return(3, nil)

	runner.AccruePenalties()

	rental.AssertExpectations(t)
}

func TestExpireStaleReservationsJob(t *testing.T) {
	runner, _, rental, _ := newTestRunner(t)

	rental.On("ExpireStaleReservations", mock.Anything).Return(2, nil)

	runner.ExpireStaleReservations()

	rental.AssertExpectations(t)
}

func TestSendOverdueRemindersJob(t *testing.T) {
	runner, dbMock, _, email := newTestRunner(t)

	end := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	dbMock.ExpectQuery(`SELECT r\.id, r\.user_id`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "email", "full_name", "name", "end_date", "penalty"}).
			AddRow(int64(42), int64(1), "reader@example.com", "A Reader", "Dune", end, "30.00").
			AddRow(int64(43), int64(2), "other@example.com", "B Reader", "Solaris", end, "10.00"))

	email.On("SendOverdueReminder", mock.Anything,
		"reader@example.com", "A Reader", "Dune", "2026-08-25", mock.Anything).Return(nil)
	email.On("SendOverdueReminder", mock.Anything,
		"other@example.com", "B Reader", "Solaris", "2026-08-25", mock.Anything).Return(nil)

	runner.SendOverdueReminders()

	email.AssertNumberOfCalls(t, "SendOverdueReminder", 2)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRunWithRecovery_SurvivesPanic(t *testing.T) {
	runner, _, _, _ := newTestRunner(t)

	assert.NotPanics(t, func() {
		runner.runWithRecovery("ExplodingJob", func(runID string) {
			panic("boom")
		})
	})
}

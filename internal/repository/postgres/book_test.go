package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/temirovuz/library/internal/domain"
)

func TestBookCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).
		WithArgs("Dune", "desert planet", int64(3), int64(2), sqlmock.AnyArg(), int32(4), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := NewBookRepository(db)
	b := &domain.Book{
		Name:            "Dune",
		Description:     "desert planet",
		AuthorID:        3,
		GenreID:         2,
		DailyPrice:      decimal.RequireFromString("1000"),
		AvailableCopies: 4,
	}
	err = repo.Create(context.Background(), b)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, author_id, genre_id, daily_price, available_copies, is_available FROM books WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewBookRepository(db)
	_, err = repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustCopies_Decrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE books`)).
		WithArgs(int64(5), int32(-1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := NewBookRepository(db)
	err = repo.AdjustCopies(context.Background(), tx, 5, -1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustCopies_Oversell(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// The available_copies >= 0 guard filters the row out, so the decrement
	// of an empty pool affects nothing.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE books`)).
		WithArgs(int64(5), int32(-1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := NewBookRepository(db)
	err = repo.AdjustCopies(context.Background(), tx, 5, -1)

	assert.ErrorIs(t, err, domain.ErrNoCopiesAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM books b`).
		WithArgs("%dune%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
	mock.ExpectQuery(`SELECT b\.id, b\.name`).
		WithArgs("%dune%", int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "author_id", "genre_id", "daily_price", "available_copies", "is_available"}).
			AddRow(int64(5), "Dune", "desert planet", int64(3), int64(2), "1000", int32(4), true))

	repo := NewBookRepository(db)
	books, count, err := repo.Search(context.Background(), "dune", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), count)
	assert.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temirovuz/library/internal/domain"
)

// Methods taking a *sql.Tx participate in a caller-owned transaction; every
// state transition that touches both a rental and its book runs its guarded
// reads and writes through one of these so the check-then-act is atomic.

type RentalRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, rental *domain.Rental) error
	Update(ctx context.Context, tx *sql.Tx, rental *domain.Rental) error

	// GetForUpdate loads a rental and locks its row for the duration of tx.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Rental, error)

	// GetActiveForUpdate loads and locks the single live ACTIVE rental for
	// the (user, book) pair, if any.
	GetActiveForUpdate(ctx context.Context, tx *sql.Tx, userID, bookID int64) (*domain.Rental, error)

	// HasLiveRental reports whether a RESERVED or ACTIVE rental exists for
	// the (user, book) pair.
	HasLiveRental(ctx context.Context, tx *sql.Tx, userID, bookID int64) (bool, error)

	// ActiveDebt sums the penalty over the user's ACTIVE rentals.
	ActiveDebt(ctx context.Context, userID int64) (decimal.Decimal, error)
	// ActiveDebtTx is ActiveDebt inside a caller-owned transaction.
	ActiveDebtTx(ctx context.Context, tx *sql.Tx, userID int64) (decimal.Decimal, error)

	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ListByUser(ctx context.Context, userID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error)

	// ListStaleReservedIDs returns ids of RESERVED rentals created before
	// the cutoff, oldest first.
	ListStaleReservedIDs(ctx context.Context, cutoff time.Time) ([]int64, error)

	// ListAccrualCandidateIDs returns ids of ACTIVE rentals whose due date
	// falls before the given UTC date and which have not yet been accrued up
	// to it.
	ListAccrualCandidateIDs(ctx context.Context, today time.Time) ([]int64, error)

	// ListOverdueForReminder returns reminder rows for ACTIVE rentals past
	// their due date, joined with user and book details.
	ListOverdueForReminder(ctx context.Context, now time.Time) ([]OverdueReminderRow, error)
}

// OverdueReminderRow is the join shape the reminder job mails from.
type OverdueReminderRow struct {
	RentalID int64
	UserID   int64
	Email    string
	FullName string
	BookName string
	EndDate  time.Time
	Penalty  decimal.Decimal
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Book, error)
	ListByGenre(ctx context.Context, genreID int64) ([]domain.Book, error)
	Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error)

	// GetForUpdate loads a book and locks its row for the duration of tx.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Book, error)

	// AdjustCopies moves available_copies by delta (±1) and keeps
	// is_available consistent in the same statement. The caller must hold
	// the row lock via GetForUpdate.
	AdjustCopies(ctx context.Context, tx *sql.Tx, bookID int64, delta int32) error
}

type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) error
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
	List(ctx context.Context) ([]domain.Author, error)
}

type GenreRepository interface {
	Create(ctx context.Context, genre *domain.Genre) error
	GetByID(ctx context.Context, id int64) (*domain.Genre, error)
	List(ctx context.Context) ([]domain.Genre, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx *sql.Tx, review *domain.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
}

type BasketRepository interface {
	Add(ctx context.Context, item *domain.BasketItem) error
	Exists(ctx context.Context, userID, bookID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BasketItem, error)
	Remove(ctx context.Context, userID, bookID int64) error
}

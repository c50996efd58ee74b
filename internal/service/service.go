package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/temirovuz/library/internal/domain"
)

type RentalService interface {
	// Reserve creates a RESERVED rental for the (user, book) pair and takes
	// one copy out of the pool.
	Reserve(ctx context.Context, userID, bookID int64) (*domain.Rental, error)

	// PickUp converts a reservation into an active, timed rental of the
	// given number of days.
	PickUp(ctx context.Context, userID, rentalID int64, rentalDays int32) (*domain.Rental, error)

	// Cancel cancels a reservation and returns its copy to the pool. Only
	// valid while the rental is RESERVED.
	Cancel(ctx context.Context, userID, rentalID int64) (*domain.Rental, error)

	// CompleteReturn marks an active rental RETURNED. The copy is not put
	// back into the pool; ending the active period is the return.
	CompleteReturn(ctx context.Context, userID, rentalID int64) (*domain.Rental, error)

	// Debt returns the sum of accumulated penalties across the user's
	// active rentals, zero if there are none.
	Debt(ctx context.Context, userID int64) (decimal.Decimal, error)

	GetRental(ctx context.Context, userID, rentalID int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, userID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error)

	// AccruePenalties charges overdue penalty on every active rental past
	// its due date. Idempotent per elapsed day; safe to re-run. Returns the
	// number of rentals penalized.
	AccruePenalties(ctx context.Context) (int, error)

	// ExpireStaleReservations cancels reservations older than the grace
	// period and restores their copies. Idempotent; safe to re-run. Returns
	// the number of reservations expired.
	ExpireStaleReservations(ctx context.Context) (int, error)
}

type ReviewService interface {
	// Submit records a review for a book the user currently has on active
	// rental and completes the return of that rental.
	Submit(ctx context.Context, userID, bookID int64, rating int32, comment string) (*domain.Review, error)

	ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
}

type CatalogService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	SearchBooks(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error)

	AddAuthor(ctx context.Context, author *domain.Author) error
	ListAuthors(ctx context.Context) ([]domain.Author, error)
	AuthorBooks(ctx context.Context, authorID int64) (*domain.Author, []domain.Book, error)

	AddGenre(ctx context.Context, genre *domain.Genre) error
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GenreBooks(ctx context.Context, genreID int64) (*domain.Genre, []domain.Book, error)
}

type BasketService interface {
	Add(ctx context.Context, userID, bookID int64) (*domain.BasketItem, error)
	List(ctx context.Context, userID int64) ([]domain.BasketItem, error)
	Remove(ctx context.Context, userID, bookID int64) error
}

type UserService interface {
	// Profile returns the user together with their current outstanding debt.
	Profile(ctx context.Context, userID int64) (*domain.User, decimal.Decimal, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, name, bookName string, dueDate string, penalty decimal.Decimal) error
}

package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/temirovuz/library/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.RentalRepository
	repository.BookRepository
	repository.AuthorRepository
	repository.GenreRepository
	repository.UserRepository
	repository.ReviewRepository
	repository.BasketRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		RentalRepository: NewRentalRepository(db),
		BookRepository:   NewBookRepository(db),
		AuthorRepository: NewAuthorRepository(db),
		GenreRepository:  NewGenreRepository(db),
		UserRepository:   NewUserRepository(db),
		ReviewRepository: NewReviewRepository(db),
		BasketRepository: NewBasketRepository(db),
	}
}

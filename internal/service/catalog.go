package service

import (
	"context"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

type catalogService struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
	genres  repository.GenreRepository
}

func NewCatalogService(books repository.BookRepository, authors repository.AuthorRepository, genres repository.GenreRepository) CatalogService {
	return &catalogService{
		books:   books,
		authors: authors,
		genres:  genres,
	}
}

func (s *catalogService) AddBook(ctx context.Context, book *domain.Book) error {
	if _, err := s.authors.GetByID(ctx, book.AuthorID); err != nil {
		return err
	}
	if _, err := s.genres.GetByID(ctx, book.GenreID); err != nil {
		return err
	}
	return s.books.Create(ctx, book)
}

func (s *catalogService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *catalogService) UpdateBook(ctx context.Context, book *domain.Book) error {
	return s.books.Update(ctx, book)
}

func (s *catalogService) DeleteBook(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}

func (s *catalogService) ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.books.List(ctx, page, pageSize)
}

func (s *catalogService) SearchBooks(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	return s.books.Search(ctx, query, page, pageSize)
}

func (s *catalogService) AddAuthor(ctx context.Context, author *domain.Author) error {
	return s.authors.Create(ctx, author)
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return s.authors.List(ctx)
}

func (s *catalogService) AuthorBooks(ctx context.Context, authorID int64) (*domain.Author, []domain.Book, error) {
	author, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		return nil, nil, err
	}
	books, err := s.books.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

func (s *catalogService) AddGenre(ctx context.Context, genre *domain.Genre) error {
	return s.genres.Create(ctx, genre)
}

func (s *catalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.List(ctx)
}

func (s *catalogService) GenreBooks(ctx context.Context, genreID int64) (*domain.Genre, []domain.Book, error) {
	genre, err := s.genres.GetByID(ctx, genreID)
	if err != nil {
		return nil, nil, err
	}
	books, err := s.books.ListByGenre(ctx, genreID)
	if err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

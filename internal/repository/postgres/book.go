package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

const bookColumns = `id, name, description, author_id, genre_id, daily_price, available_copies, is_available`

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (name, description, author_id, genre_id, daily_price, available_copies, is_available)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		b.Name, b.Description, b.AuthorID, b.GenreID, b.DailyPrice, b.AvailableCopies, b.AvailableCopies > 0).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return scanBook(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`
	return scanBook(tx.QueryRowContext(ctx, query, id))
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET name=$1, description=$2, author_id=$3, genre_id=$4, daily_price=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, b.Name, b.Description, b.AuthorID, b.GenreID, b.DailyPrice, b.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// AdjustCopies keeps available_copies and is_available consistent in one
// statement. The available_copies >= 0 guard makes a concurrent oversell show
// up as zero affected rows instead of a negative count.
func (r *bookRepository) AdjustCopies(ctx context.Context, tx *sql.Tx, bookID int64, delta int32) error {
	query := `UPDATE books
	          SET available_copies = available_copies + $2,
	              is_available = (available_copies + $2) > 0
	          WHERE id = $1 AND available_copies + $2 >= 0`
	res, err := tx.ExecContext(ctx, query, bookID, delta)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNoCopiesAvailable
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY name, id LIMIT $1 OFFSET $2`
	books, err := r.queryBooks(ctx, query, pageSize, offset)
	return books, count, err
}

func (r *bookRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = $1 ORDER BY name`
	return r.queryBooks(ctx, query, authorID)
}

func (r *bookRepository) ListByGenre(ctx context.Context, genreID int64) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE genre_id = $1 ORDER BY name`
	return r.queryBooks(ctx, query, genreID)
}

func (r *bookRepository) Search(ctx context.Context, search string, page, pageSize int32) ([]domain.Book, int32, error) {
	pattern := "%" + search + "%"
	base := `FROM books b
	         JOIN authors a ON a.id = b.author_id
	         JOIN genres g ON g.id = b.genre_id
	         WHERE b.name ILIKE $1 OR b.description ILIKE $1 OR a.name ILIKE $1 OR g.name ILIKE $1`

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, pattern).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT b.id, b.name, b.description, b.author_id, b.genre_id, b.daily_price, b.available_copies, b.is_available
	         %s ORDER BY b.name, b.id LIMIT $2 OFFSET $3`, base)
	books, err := r.queryBooks(ctx, query, pattern, pageSize, offset)
	return books, count, err
}

func (r *bookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.AuthorID, &b.GenreID, &b.DailyPrice, &b.AvailableCopies, &b.IsAvailable); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func scanBook(row rowScanner) (*domain.Book, error) {
	b := &domain.Book{}
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.AuthorID, &b.GenreID, &b.DailyPrice, &b.AvailableCopies, &b.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

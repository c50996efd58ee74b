package postgres

import (
	"context"
	"database/sql"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create runs inside the caller's transaction so the review insert and the
// rental's RETURNED transition commit or roll back together.
func (r *reviewRepository) Create(ctx context.Context, tx *sql.Tx, rv *domain.Review) error {
	query := `INSERT INTO reviews (user_id, book_id, rating, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return tx.QueryRowContext(ctx, query, rv.UserID, rv.BookID, rv.Rating, rv.Comment, rv.CreatedAt).Scan(&rv.ID)
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	query := `SELECT id, user_id, book_id, rating, COALESCE(comment, ''), created_at
	          FROM reviews WHERE book_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

type basketRepository struct {
	db *sql.DB
}

func NewBasketRepository(db *sql.DB) repository.BasketRepository {
	return &basketRepository{db: db}
}

func (r *basketRepository) Add(ctx context.Context, item *domain.BasketItem) error {
	query := `INSERT INTO baskets (user_id, book_id) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.UserID, item.BookID).Scan(&item.ID)
}

func (r *basketRepository) Exists(ctx context.Context, userID, bookID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM baskets WHERE user_id = $1 AND book_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, bookID).Scan(&exists)
	return exists, err
}

func (r *basketRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BasketItem, error) {
	query := `SELECT id, user_id, book_id FROM baskets WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BasketItem
	for rows.Next() {
		var it domain.BasketItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.BookID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *basketRepository) Remove(ctx context.Context, userID, bookID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM baskets WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

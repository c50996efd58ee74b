package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

const rentalColumns = `id, user_id, book_id, created_at, start_date, end_date, penalty, last_accrued_on, status`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Insert(ctx context.Context, tx *sql.Tx, rt *domain.Rental) error {
	query := `INSERT INTO rentals (user_id, book_id, created_at, penalty, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return tx.QueryRowContext(ctx, query, rt.UserID, rt.BookID, rt.CreatedAt, rt.Penalty, rt.Status).Scan(&rt.ID)
}

func (r *rentalRepository) Update(ctx context.Context, tx *sql.Tx, rt *domain.Rental) error {
	query := `UPDATE rentals SET start_date=$1, end_date=$2, penalty=$3, last_accrued_on=$4, status=$5 WHERE id=$6`
	res, err := tx.ExecContext(ctx, query,
		nullTime(rt.StartDate), nullTime(rt.EndDate), rt.Penalty, nullTime(rt.LastAccruedOn), rt.Status, rt.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rentalRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	return scanRental(tx.QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) GetActiveForUpdate(ctx context.Context, tx *sql.Tx, userID, bookID int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE user_id = $1 AND book_id = $2 AND status = $3 FOR UPDATE`
	return scanRental(tx.QueryRowContext(ctx, query, userID, bookID, domain.RentalStatusActive))
}

func (r *rentalRepository) HasLiveRental(ctx context.Context, tx *sql.Tx, userID, bookID int64) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM rentals
	            WHERE user_id = $1 AND book_id = $2 AND status IN ($3, $4)
	          )`
	var exists bool
	err := tx.QueryRowContext(ctx, query, userID, bookID, domain.RentalStatusReserved, domain.RentalStatusActive).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) ActiveDebt(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return activeDebt(ctx, r.db, userID)
}

func (r *rentalRepository) ActiveDebtTx(ctx context.Context, tx *sql.Tx, userID int64) (decimal.Decimal, error) {
	return activeDebt(ctx, tx, userID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func activeDebt(ctx context.Context, q querier, userID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(penalty), 0) FROM rentals WHERE user_id = $1 AND status = $2`
	var debt decimal.Decimal
	err := q.QueryRowContext(ctx, query, userID, domain.RentalStatusActive).Scan(&debt)
	if err != nil {
		return decimal.Zero, err
	}
	return debt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.db.QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1`

	args := []any{userID}
	argIdx := 2
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM (` + query + `) AS sub`
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRentalRows(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListStaleReservedIDs(ctx context.Context, cutoff time.Time) ([]int64, error) {
	query := `SELECT id FROM rentals WHERE status = $1 AND created_at < $2 ORDER BY created_at`
	return r.listIDs(ctx, query, domain.RentalStatusReserved, cutoff)
}

func (r *rentalRepository) ListAccrualCandidateIDs(ctx context.Context, today time.Time) ([]int64, error) {
	query := `SELECT id FROM rentals
	          WHERE status = $1
	            AND end_date::date < $2::date
	            AND (last_accrued_on IS NULL OR last_accrued_on < $2::date)
	          ORDER BY id`
	return r.listIDs(ctx, query, domain.RentalStatusActive, today)
}

func (r *rentalRepository) listIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rentalRepository) ListOverdueForReminder(ctx context.Context, now time.Time) ([]repository.OverdueReminderRow, error) {
	query := `SELECT r.id, r.user_id, u.email, u.full_name, b.name, r.end_date, r.penalty
	          FROM rentals r
	          JOIN users u ON u.id = r.user_id
	          JOIN books b ON b.id = r.book_id
	          WHERE r.status = $1 AND r.end_date::date < $2::date
	          ORDER BY r.end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.OverdueReminderRow
	for rows.Next() {
		var row repository.OverdueReminderRow
		if err := rows.Scan(&row.RentalID, &row.UserID, &row.Email, &row.FullName, &row.BookName, &row.EndDate, &row.Penalty); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var start, end, accrued sql.NullTime
	err := row.Scan(&rt.ID, &rt.UserID, &rt.BookID, &rt.CreatedAt, &start, &end, &rt.Penalty, &accrued, &rt.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rt.StartDate = timePtr(start)
	rt.EndDate = timePtr(end)
	rt.LastAccruedOn = timePtr(accrued)
	return rt, nil
}

func scanRentalRows(rows *sql.Rows) (*domain.Rental, error) {
	return scanRental(rows)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

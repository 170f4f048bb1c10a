package book

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const pgForeignKeyViolation = "23503"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (title, author, year, pages, seller_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.Year, b.Pages, b.SellerID).Scan(&b.ID)
	return pgWriteError(err, "insert book")
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = `
	SELECT id, title, author, year, pages, seller_id
	FROM books
	ORDER BY id
	`
	return r.query(ctx, query)
}

func (r *PostgresRepo) ListBySeller(ctx context.Context, sellerID int64) ([]Book, error) {
	const query = `
	SELECT id, title, author, year, pages, seller_id
	FROM books
	WHERE seller_id = $1
	ORDER BY id
	`
	return r.query(ctx, query, sellerID)
}

func (r *PostgresRepo) query(ctx context.Context, query string, args ...any) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query books")
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Pages, &b.SellerID); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		books = append(books, b)
	}
	return books, errors.Wrap(rows.Err(), "iterate books")
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `
	SELECT id, title, author, year, pages, seller_id
	FROM books
	WHERE id = $1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Pages, &b.SellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrap(err, "get book")
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
	UPDATE books
	SET title = $1, author = $2, year = $3, pages = $4, seller_id = $5, updated_at = now()
	WHERE id = $6
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, b.Title, b.Author, b.Year, b.Pages, b.SellerID, b.ID)
	if err != nil {
		return pgWriteError(err, "update book")
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func pgWriteError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrSellerNotFound
	}
	return errors.Wrap(err, op)
}

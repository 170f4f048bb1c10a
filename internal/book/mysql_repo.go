package book

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// ER_NO_REFERENCED_ROW_2
const mysqlForeignKeyViolation = 1452

// MySQLRepo stores books in MySQL. The DSN must enable clientFoundRows so
// that Update can tell a missing row from an unchanged one.
type MySQLRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewMySQLRepo(db *sql.DB, timeout time.Duration) *MySQLRepo {
	return &MySQLRepo{db: db, timeout: timeout}
}

func (r *MySQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MySQLRepo) Create(ctx context.Context, b *Book) error {
	const query = `INSERT INTO books (title, author, year, pages, seller_id) VALUES (?, ?, ?, ?, ?)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, query, b.Title, b.Author, b.Year, b.Pages, b.SellerID)
	if err != nil {
		return mysqlWriteError(err, "insert book")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "read inserted book id")
	}
	b.ID = id
	return nil
}

func (r *MySQLRepo) List(ctx context.Context) ([]Book, error) {
	return r.query(ctx, `SELECT id, title, author, year, pages, seller_id FROM books ORDER BY id`)
}

func (r *MySQLRepo) ListBySeller(ctx context.Context, sellerID int64) ([]Book, error) {
	return r.query(ctx, `SELECT id, title, author, year, pages, seller_id FROM books WHERE seller_id = ? ORDER BY id`, sellerID)
}

func (r *MySQLRepo) query(ctx context.Context, query string, args ...any) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query, args...)
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

func (r *MySQLRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT id, title, author, year, pages, seller_id FROM books WHERE id = ?`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRowContext(timeoutCtx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Pages, &b.SellerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrap(err, "get book")
	}
	return b, nil
}

func (r *MySQLRepo) Update(ctx context.Context, b *Book) error {
	const query = `UPDATE books SET title = ?, author = ?, year = ?, pages = ?, seller_id = ? WHERE id = ?`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, query, b.Title, b.Author, b.Year, b.Pages, b.SellerID, b.ID)
	if err != nil {
		return mysqlWriteError(err, "update book")
	}
	return affectedOrNotFound(result)
}

func (r *MySQLRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	return affectedOrNotFound(result)
}

func affectedOrNotFound(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mysqlWriteError(err error, op string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlForeignKeyViolation {
		return ErrSellerNotFound
	}
	return errors.Wrap(err, op)
}

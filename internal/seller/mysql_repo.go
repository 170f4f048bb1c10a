package seller

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

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

func (r *MySQLRepo) Create(ctx context.Context, s *Seller) error {
	const query = `INSERT INTO sellers (first_name, last_name, e_mail, password_hash) VALUES (?, ?, ?, ?)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, query, s.FirstName, s.LastName, s.Email, s.PasswordHash)
	if err != nil {
		return mysqlWriteError(err, "insert seller")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "read inserted seller id")
	}
	s.ID = id
	return nil
}

func (r *MySQLRepo) List(ctx context.Context) ([]Seller, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, `SELECT id, first_name, last_name, e_mail FROM sellers ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query sellers")
	}
	defer rows.Close()

	sellers := []Seller{}
	for rows.Next() {
		var s Seller
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email); err != nil {
			return nil, errors.Wrap(err, "scan seller")
		}
		sellers = append(sellers, s)
	}
	return sellers, errors.Wrap(rows.Err(), "iterate sellers")
}

func (r *MySQLRepo) GetByID(ctx context.Context, id int64) (Seller, error) {
	const query = `SELECT id, first_name, last_name, e_mail, password_hash FROM sellers WHERE id = ?`
	var s Seller
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRowContext(timeoutCtx, query, id).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Seller{}, ErrNotFound
		}
		return Seller{}, errors.Wrap(err, "get seller")
	}
	return s, nil
}

func (r *MySQLRepo) Update(ctx context.Context, s *Seller) error {
	const query = `UPDATE sellers SET first_name = ?, last_name = ?, e_mail = ? WHERE id = ?`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, query, s.FirstName, s.LastName, s.Email, s.ID)
	if err != nil {
		return mysqlWriteError(err, "update seller")
	}
	return affectedOrNotFound(result)
}

func (r *MySQLRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, `DELETE FROM sellers WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete seller")
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
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrAlreadyExists
	}
	return errors.Wrap(err, op)
}

package seller

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const pgUniqueViolation = "23505"

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

func (r *PostgresRepo) Create(ctx context.Context, s *Seller) error {
	const query = `
	INSERT INTO sellers (first_name, last_name, e_mail, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, s.FirstName, s.LastName, s.Email, s.PasswordHash).Scan(&s.ID)
	return pgWriteError(err, "insert seller")
}

func (r *PostgresRepo) List(ctx context.Context) ([]Seller, error) {
	const query = `
	SELECT id, first_name, last_name, e_mail
	FROM sellers
	ORDER BY id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
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

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Seller, error) {
	const query = `
	SELECT id, first_name, last_name, e_mail, password_hash
	FROM sellers
	WHERE id = $1
	`
	var s Seller
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Seller{}, ErrNotFound
		}
		return Seller{}, errors.Wrap(err, "get seller")
	}
	return s, nil
}

func (r *PostgresRepo) Update(ctx context.Context, s *Seller) error {
	const query = `
	UPDATE sellers
	SET first_name = $1, last_name = $2, e_mail = $3, updated_at = now()
	WHERE id = $4
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, s.FirstName, s.LastName, s.Email, s.ID)
	if err != nil {
		return pgWriteError(err, "update seller")
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM sellers WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return errors.Wrap(err, "delete seller")
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
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrAlreadyExists
	}
	return errors.Wrap(err, op)
}

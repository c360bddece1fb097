package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mgudino/stock-ledger-api/internal/domain"
)

// Querier abstracts pgxpool.Pool and pgx.Tx so repositories can run either
// standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// nullableUUID maps an optional id to SQL NULL when empty. Empty strings
// must never reach a uuid column; they are not a valid uuid literal.
func nullableUUID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// isUniqueViolation reports whether err is a unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isSerializationFailure reports whether err is a transaction conflict the
// caller may retry: serialization_failure (40001) or deadlock_detected (40P01).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

// storageErr classifies a database error into the domain taxonomy: retryable
// conflicts map to ErrConflict, everything else to ErrStorage. The original
// error stays in the chain.
func storageErr(op string, err error) error {
	if isSerializationFailure(err) || isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrConflict, err))
	}
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStorage, err))
}

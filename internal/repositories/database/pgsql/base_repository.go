package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx so repositories run unchanged inside and
// outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgreSQL error codes translated at the repository boundary.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// entryNumberConstraint guards the per-tenant uniqueness of entry numbers.
const entryNumberConstraint = "journal_entries_tenant_number_key"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db DBTX
	// inTx is set for repositories bound to a transaction; row locks are only taken then.
	inTx bool
}

// lockClause returns suffix inside a transaction and nothing otherwise.
func (r BaseRepository) lockClause(suffix string) string {
	if r.inTx {
		return " " + suffix
	}
	return ""
}

// translateError maps driver errors to apperrors sentinels. what names the object for messages.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if pgErr.ConstraintName == entryNumberConstraint {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateNumber, what)
			}
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case codeForeignKeyViolation, codeCheckViolation:
			return apperrors.NewValidationError("%s violates %s", what, pgErr.ConstraintName)
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrConcurrencyConflict, what, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

// expectRows fails with ErrNotFound when a write touched fewer rows than expected.
func expectRows(tag pgconn.CommandTag, want int64, what string) error {
	if tag.RowsAffected() < want {
		return apperrors.NewNotFoundError(what)
	}
	return nil
}

// queryArgs collects positional arguments of a dynamically built query.
type queryArgs []any

// add appends v and returns its placeholder.
func (a *queryArgs) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

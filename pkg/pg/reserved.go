package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/registry"
)

const (
	existsQuery  = `SELECT EXISTS (SELECT 1 FROM beast_reserved_values WHERE kind = $1 AND value = $2)`
	reserveQuery = `INSERT INTO beast_reserved_values (kind, value) VALUES ($1, $2)`
	releaseQuery = `DELETE FROM beast_reserved_values WHERE kind = $1 AND value = $2`
)

// Querier is the subset of *pgxpool.Pool used for reservations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Normalize lowercases and trims a value before it is stored or compared.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Reserved reports whether value is taken for kind.
func Reserved(ctx context.Context, db Querier, kind, value string) (bool, error) {
	if kind == "" {
		return false, ErrEmptyKind
	}
	var exists bool
	if err := db.QueryRow(ctx, existsQuery, kind, Normalize(value)).Scan(&exists); err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}
		return false, errors.Join(ErrLookupFailed, err)
	}
	return exists, nil
}

// Reserve claims value for kind. Claiming a taken value returns
// ErrValueReserved.
func Reserve(ctx context.Context, db Querier, kind, value string) error {
	if kind == "" {
		return ErrEmptyKind
	}
	if _, err := db.Exec(ctx, reserveQuery, kind, Normalize(value)); err != nil {
		if IsDuplicateKeyError(err) {
			return ErrValueReserved
		}
		return err
	}
	return nil
}

// Release frees a reserved value. Releasing an unknown value is a no-op.
func Release(ctx context.Context, db Querier, kind, value string) error {
	if kind == "" {
		return ErrEmptyKind
	}
	_, err := db.Exec(ctx, releaseQuery, kind, Normalize(value))
	return err
}

// Unique fails when the field value is already reserved for kind.
func Unique(db Querier, kind, message string) registry.Func {
	return check(db, kind, message, false)
}

// Exists fails when the field value is not reserved for kind.
func Exists(db Querier, kind, message string) registry.Func {
	return check(db, kind, message, true)
}

func check(db Querier, kind, message string, want bool) registry.Func {
	return func(ctx context.Context, field form.Field) (registry.Outcome, error) {
		if strings.TrimSpace(field.Value) == "" {
			return registry.Pass(), nil
		}
		found, err := Reserved(ctx, db, kind, field.Value)
		if err != nil {
			return registry.Outcome{}, err
		}
		if found != want {
			return registry.Fail(message), nil
		}
		return registry.Pass(), nil
	}
}

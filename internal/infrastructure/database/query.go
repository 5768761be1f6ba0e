package database

import (
	"context"
	"fmt"
)

// The four query primitives. Every statement borrows a pooled connection for
// its own duration; values are always bound, never interpolated.

// FetchOne executes a query and scans the first row into T. It returns
// (nil, nil) when the query matches no rows.
func FetchOne[T any](ctx context.Context, db *DB, query string, args ...any) (*T, error) {
	var dest T
	tx := db.session().WithContext(ctx).Raw(query, args...).Scan(&dest)
	if tx.Error != nil {
		return nil, fmt.Errorf("fetch one: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &dest, nil
}

// FetchAll executes a query and scans every row into a slice of T.
func FetchAll[T any](ctx context.Context, db *DB, query string, args ...any) ([]T, error) {
	var dest []T
	if err := db.session().WithContext(ctx).Raw(query, args...).Scan(&dest).Error; err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}
	return dest, nil
}

// FetchVal executes a query and scans a single scalar value.
func FetchVal[T any](ctx context.Context, db *DB, query string, args ...any) (T, error) {
	var dest T
	if err := db.session().WithContext(ctx).Raw(query, args...).Scan(&dest).Error; err != nil {
		return dest, fmt.Errorf("fetch val: %w", err)
	}
	return dest, nil
}

// Exec executes a statement without returning rows.
func Exec(ctx context.Context, db *DB, query string, args ...any) error {
	if err := db.session().WithContext(ctx).Exec(query, args...).Error; err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/model"
)

// ErrNotFound is the cause of every apperr.NotFound returned by this package.
var ErrNotFound = errors.New("record not found")

func notFoundErr(kind model.Kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// requireRow turns a mutation that touched no rows into apperr.NotFound.
func requireRow(result sql.Result, op string, kind model.Kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(op, fmt.Errorf("rows affected: %w", err))
	}
	if n == 0 {
		return apperr.E(apperr.NotFound, op, notFoundErr(kind, id))
	}
	return nil
}

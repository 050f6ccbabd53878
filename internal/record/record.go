// Package record decides whether a submitted record is a creation or an update
// and dispatches it to a gateway accordingly.
//
// Callers that know whether they hold a store-assigned identifier should build
// NewRecord or ExistingRecord directly. Resolve infers the answer from the
// identifier's length and exists for callers that only have an id string, such
// as a form that seeds new entries with a short placeholder id.
package record

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dukerupert/dietlog/internal/apperr"
)

// DefaultMinStoredIDLength matches identifiers assigned by the store. Shorter
// identifiers are treated as client placeholders.
const DefaultMinStoredIDLength = 14

// Draft is a record ready to be saved: either NewRecord or ExistingRecord.
type Draft[F any] interface {
	fields() F
}

// NewRecord has never been assigned an identifier by the store.
type NewRecord[F any] struct {
	Fields F
}

func (r NewRecord[F]) fields() F { return r.Fields }

// ExistingRecord refers to a record the store already holds.
type ExistingRecord[F any] struct {
	ID     string
	Fields F
}

func (r ExistingRecord[F]) fields() F { return r.Fields }

// Policy holds the identifier-length heuristic. It is not a correctness
// guarantee: a placeholder at least MinStoredIDLength long is routed to an
// update, which the store then rejects as not found.
type Policy struct {
	MinStoredIDLength int
}

// DefaultPolicy returns the policy matching the store's UUID identifiers.
func DefaultPolicy() Policy {
	return Policy{MinStoredIDLength: DefaultMinStoredIDLength}
}

// IsStored reports whether id looks like a store-assigned identifier. Length
// is counted in characters. A threshold of zero or less means the zero Policy
// and uses DefaultMinStoredIDLength; config rejects such values, so the
// heuristic cannot be switched off.
func (p Policy) IsStored(id string) bool {
	min := p.MinStoredIDLength
	if min <= 0 {
		min = DefaultMinStoredIDLength
	}
	return id != "" && utf8.RuneCountInString(id) >= min
}

// Resolve wraps fields as a NewRecord or ExistingRecord based on id.
func Resolve[F any](p Policy, id string, fields F) Draft[F] {
	if p.IsStored(id) {
		return ExistingRecord[F]{ID: id, Fields: fields}
	}
	return NewRecord[F]{Fields: fields}
}

// Gateway creates and updates records of one kind.
type Gateway[F, R any] interface {
	Create(ctx context.Context, fields F) (R, error)
	Update(ctx context.Context, id string, fields F) (R, error)
}

// Save creates a NewRecord or updates an ExistingRecord. Gateway errors keep
// their kind, so an update of a missing record is reported as apperr.NotFound.
func Save[F, R any](ctx context.Context, g Gateway[F, R], d Draft[F]) (R, error) {
	var zero R
	switch r := d.(type) {
	case NewRecord[F]:
		out, err := g.Create(ctx, r.Fields)
		if err != nil {
			return zero, apperr.Wrap("create record", err)
		}
		return out, nil
	case ExistingRecord[F]:
		out, err := g.Update(ctx, r.ID, r.Fields)
		if err != nil {
			return zero, apperr.Wrap("update record "+r.ID, err)
		}
		return out, nil
	default:
		return zero, apperr.E(apperr.Validation, "save record", fmt.Errorf("unsupported draft %T", d))
	}
}

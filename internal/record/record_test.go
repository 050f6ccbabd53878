package record

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/dietlog/internal/apperr"
)

type fields struct {
	Name     string
	Calories float64
}

type saved struct {
	ID string
	fields
}

type call struct {
	method string
	id     string
	fields fields
}

type fakeGateway struct {
	calls     []call
	createErr error
	updateErr error
}

func (g *fakeGateway) Create(_ context.Context, f fields) (saved, error) {
	g.calls = append(g.calls, call{method: "create", fields: f})
	if g.createErr != nil {
		return saved{}, g.createErr
	}
	return saved{ID: "assigned-uuid-0000000000000", fields: f}, nil
}

func (g *fakeGateway) Update(_ context.Context, id string, f fields) (saved, error) {
	g.calls = append(g.calls, call{method: "update", id: id, fields: f})
	if g.updateErr != nil {
		return saved{}, g.updateErr
	}
	return saved{ID: id, fields: f}, nil
}

func TestResolve(t *testing.T) {
	p := DefaultPolicy()
	f := fields{Name: "Salad", Calories: 400}

	tests := []struct {
		name   string
		id     string
		stored bool
	}{
		{"empty id", "", false},
		{"short placeholder", "1700000000000", false},
		{"exactly threshold", "abcdefghijklmn", true},
		{"cuid", "cuid12345678901234", true},
		{"uuid", "0b7f9a52-4f0e-4f7b-9d55-2f1f3c0c8f61", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(p, tt.id, f)
			if tt.stored {
				r, ok := d.(ExistingRecord[fields])
				require.True(t, ok, "expected ExistingRecord, got %T", d)
				assert.Equal(t, tt.id, r.ID)
				assert.Equal(t, f, r.Fields)
			} else {
				r, ok := d.(NewRecord[fields])
				require.True(t, ok, "expected NewRecord, got %T", d)
				assert.Equal(t, f, r.Fields)
			}
		})
	}
}

func TestPolicyThresholdIsConfigurable(t *testing.T) {
	p := Policy{MinStoredIDLength: 4}
	assert.True(t, p.IsStored("abcd"))
	assert.False(t, p.IsStored("abc"))

	// A zero policy falls back to the default threshold.
	assert.False(t, Policy{}.IsStored("1234567890123"))
	assert.True(t, Policy{}.IsStored("12345678901234"))
	assert.False(t, Policy{MinStoredIDLength: -1}.IsStored("1234567890123"))
}

func TestPolicyCountsCharacters(t *testing.T) {
	p := Policy{MinStoredIDLength: 4}
	// Three characters, nine bytes.
	assert.False(t, p.IsStored("日本語"))
	assert.True(t, p.IsStored("日本語x"))
}

func TestSaveEmptyIDCreatesWithoutIdentifier(t *testing.T) {
	g := &fakeGateway{}
	f := fields{Name: "Oatmeal", Calories: 300}

	out, err := Save[fields, saved](context.Background(), g, Resolve(DefaultPolicy(), "", f))
	require.NoError(t, err)

	require.Len(t, g.calls, 1)
	assert.Equal(t, call{method: "create", fields: f}, g.calls[0])
	assert.NotEmpty(t, out.ID)
}

func TestSaveLongIDUpdates(t *testing.T) {
	g := &fakeGateway{}
	f := fields{Name: "Oatmeal", Calories: 320}

	out, err := Save[fields, saved](context.Background(), g, Resolve(DefaultPolicy(), "cuid12345678901234", f))
	require.NoError(t, err)

	require.Len(t, g.calls, 1)
	assert.Equal(t, call{method: "update", id: "cuid12345678901234", fields: f}, g.calls[0])
	assert.Equal(t, "cuid12345678901234", out.ID)
}

func TestSaveExplicitVariants(t *testing.T) {
	g := &fakeGateway{}

	_, err := Save[fields, saved](context.Background(), g, NewRecord[fields]{Fields: fields{Name: "a"}})
	require.NoError(t, err)
	_, err = Save[fields, saved](context.Background(), g, ExistingRecord[fields]{ID: "x", Fields: fields{Name: "b"}})
	require.NoError(t, err)

	require.Len(t, g.calls, 2)
	assert.Equal(t, "create", g.calls[0].method)
	assert.Equal(t, "update", g.calls[1].method)
	assert.Equal(t, "x", g.calls[1].id)
}

func TestSaveUpdateOfMissingRecordIsNotFound(t *testing.T) {
	g := &fakeGateway{updateErr: apperr.E(apperr.NotFound, "update meal", errors.New("meal missing"))}

	_, err := Save[fields, saved](context.Background(), g, ExistingRecord[fields]{ID: "cuid12345678901234"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestSaveCreateFailure(t *testing.T) {
	cause := errors.New("disk full")
	g := &fakeGateway{createErr: cause}

	_, err := Save[fields, saved](context.Background(), g, NewRecord[fields]{})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperr.Is(err, apperr.Internal))
}

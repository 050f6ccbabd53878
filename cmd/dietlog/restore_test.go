package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukerupert/dietlog/internal/backup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestorer struct {
	enabled bool
	err     error
	gotID   int64
	gotDst  string
}

func (f *fakeRestorer) Enabled() bool { return f.enabled }

func (f *fakeRestorer) Restore(_ context.Context, id int64, dst string) error {
	f.gotID, f.gotDst = id, dst
	return f.err
}

func TestRunRestore(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "restored.db")
	r := &fakeRestorer{enabled: true}
	var out bytes.Buffer

	require.NoError(t, runRestore(context.Background(), r, []string{"7", dst}, &out))
	assert.Equal(t, int64(7), r.gotID)
	assert.Equal(t, dst, r.gotDst)
	assert.Contains(t, out.String(), "restored backup 7")
}

func TestRunRestoreRejectsArgs(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "live.db")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"missing destination", []string{"7"}},
		{"bad id", []string{"seven", "out.db"}},
		{"zero id", []string{"0", "out.db"}},
		{"existing destination", []string{"7", existing}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRestorer{enabled: true}
			err := runRestore(context.Background(), r, tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Zero(t, r.gotID, "restore must not run")
		})
	}
}

func TestRunRestoreNotConfigured(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "restored.db")
	err := runRestore(context.Background(), &fakeRestorer{}, []string{"7", dst}, &bytes.Buffer{})
	assert.ErrorIs(t, err, backup.ErrNotConfigured)
}

func TestRunRestoreWrapsFailure(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "restored.db")
	r := &fakeRestorer{enabled: true, err: backup.ErrNotFound}
	err := runRestore(context.Background(), r, []string{"42", dst}, &bytes.Buffer{})
	assert.ErrorIs(t, err, backup.ErrNotFound)
}

package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/dietlog/internal/backup"
	"github.com/dukerupert/dietlog/internal/model"
)

type fakeBackups struct {
	enabled bool
	history []model.Backup
	runErr  error
	runs    int
}

func (f *fakeBackups) Enabled() bool         { return f.enabled }
func (f *fakeBackups) Status() backup.Status { return backup.Status{State: backup.StateIdle} }
func (f *fakeBackups) History(context.Context, int) ([]model.Backup, error) {
	return f.history, nil
}

func (f *fakeBackups) RunNow(context.Context) (int64, error) {
	f.runs++
	if f.runErr != nil {
		return 0, f.runErr
	}
	return 7, nil
}

func (f *fakeBackups) Download(_ context.Context, id int64) (io.ReadCloser, *model.Backup, error) {
	for _, b := range f.history {
		if b.ID == id {
			return io.NopCloser(strings.NewReader("DLB1payload")), &b, nil
		}
	}
	return nil, nil, backup.ErrNotFound
}

func backupMux(b Backups) *http.ServeMux {
	h := NewBackupHandler(b, discard)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/backups", h.List)
	mux.HandleFunc("POST /api/backups", h.Create)
	mux.HandleFunc("GET /api/backups/{id}/download", h.Download)
	return mux
}

func TestBackupListEmpty(t *testing.T) {
	rec := do(t, backupMux(&fakeBackups{}), "GET", "/api/backups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":{"state":"idle","inProgress":false},"backups":[]}`, rec.Body.String())
}

func TestBackupCreate(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		f := &fakeBackups{}
		rec := do(t, backupMux(f), "POST", "/api/backups", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Zero(t, f.runs)
	})
	t.Run("ok", func(t *testing.T) {
		rec := do(t, backupMux(&fakeBackups{enabled: true}), "POST", "/api/backups", "")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":7}`, rec.Body.String())
	})
	t.Run("busy", func(t *testing.T) {
		rec := do(t, backupMux(&fakeBackups{enabled: true, runErr: backup.ErrInProgress}), "POST", "/api/backups", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("failure", func(t *testing.T) {
		rec := do(t, backupMux(&fakeBackups{enabled: true, runErr: errors.New("s3 down")}), "POST", "/api/backups", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to run backup"}`, rec.Body.String())
	})
}

func TestBackupDownload(t *testing.T) {
	f := &fakeBackups{history: []model.Backup{{ID: 3, Filename: "dietlog-x.db.enc", SizeBytes: 11, Status: model.BackupStatusCompleted}}}
	mux := backupMux(f)

	rec := do(t, mux, "GET", "/api/backups/3/download", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DLB1payload", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dietlog-x.db.enc")

	rec = do(t, mux, "GET", "/api/backups/4/download", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, "GET", "/api/backups/abc/download", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/dietlog/internal/backup"
	"github.com/dukerupert/dietlog/internal/model"
)

// Backups is the backup manager as seen by the HTTP layer.
type Backups interface {
	Enabled() bool
	Status() backup.Status
	History(ctx context.Context, limit int) ([]model.Backup, error)
	RunNow(ctx context.Context) (int64, error)
	Download(ctx context.Context, id int64) (io.ReadCloser, *model.Backup, error)
}

type BackupHandler struct {
	backups Backups
	logger  *slog.Logger
}

func NewBackupHandler(b Backups, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{backups: b, logger: logger}
}

const historyLimit = 50

type backupListResponse struct {
	Status  backup.Status  `json:"status"`
	Backups []model.Backup `json:"backups"`
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	history, err := h.backups.History(r.Context(), historyLimit)
	if err != nil {
		h.logger.Error("list backups", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch backups")
		return
	}
	if history == nil {
		history = []model.Backup{}
	}
	writeJSON(w, http.StatusOK, backupListResponse{Status: h.backups.Status(), Backups: history})
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.backups.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "Backups are not configured")
		return
	}

	id, err := h.backups.RunNow(r.Context())
	switch {
	case errors.Is(err, backup.ErrInProgress):
		writeError(w, http.StatusConflict, "Backup already in progress")
		return
	case err != nil:
		h.logger.Error("run backup", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to run backup")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Download streams the encrypted archive as stored.
func (h *BackupHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid backup id")
		return
	}

	body, rec, err := h.backups.Download(r.Context(), id)
	switch {
	case errors.Is(err, backup.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "Backups are not configured")
		return
	case errors.Is(err, backup.ErrNotFound):
		writeError(w, http.StatusNotFound, "Backup not found")
		return
	case err != nil:
		h.logger.Error("download backup", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to download backup")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rec.Filename+`"`)
	if rec.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(rec.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("stream backup", "id", id, "error", err)
	}
}

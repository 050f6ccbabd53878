package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/dietlog/internal/model"
)

// BackupStore keeps the history of backup attempts. It reports plain wrapped
// errors; callers are the backup manager, not the HTTP layer.
type BackupStore struct {
	db *sql.DB
}

func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

const backupCols = `id, filename, object_key, triggered_by, status, error, size_bytes, meal_count, exercise_count, created_at, updated_at, completed_at`

func scanBackup(scanner interface{ Scan(...any) error }) (*model.Backup, error) {
	var b model.Backup
	var trigger, status string
	var completedAt sql.NullTime
	err := scanner.Scan(
		&b.ID, &b.Filename, &b.ObjectKey, &trigger, &status, &b.Error,
		&b.SizeBytes, &b.MealCount, &b.ExerciseCount,
		&b.CreatedAt, &b.UpdatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Trigger = model.BackupTrigger(trigger)
	b.Status = model.BackupStatus(status)
	if completedAt.Valid {
		b.CompletedAt = &completedAt.Time
	}
	return &b, nil
}

// Create records a pending attempt.
func (s *BackupStore) Create(ctx context.Context, filename, objectKey string, trigger model.BackupTrigger) (*model.Backup, error) {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO backups (filename, object_key, triggered_by, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		filename, objectKey, string(trigger), string(model.BackupStatusPending), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert backup: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns nil, nil when there is no such attempt.
func (s *BackupStore) GetByID(ctx context.Context, id int64) (*model.Backup, error) {
	b, err := scanBackup(s.db.QueryRowContext(ctx, `SELECT `+backupCols+` FROM backups WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get backup %d: %w", id, err)
	}
	return b, nil
}

// List returns up to limit attempts, newest first.
func (s *BackupStore) List(ctx context.Context, limit int) ([]model.Backup, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+backupCols+` FROM backups ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	backups := []model.Backup{}
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, *b)
	}
	return backups, rows.Err()
}

func (s *BackupStore) MarkUploading(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.BackupStatusUploading, "")
}

func (s *BackupStore) MarkFailed(ctx context.Context, id int64, cause error) error {
	return s.setStatus(ctx, id, model.BackupStatusFailed, cause.Error())
}

func (s *BackupStore) setStatus(ctx context.Context, id int64, status model.BackupStatus, msg string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE backups SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), msg, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("set backup %d %s: %w", id, status, err)
	}
	return nil
}

// MarkCompleted stores what the uploaded archive contains.
func (s *BackupStore) MarkCompleted(ctx context.Context, id int64, info model.SnapshotInfo) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`UPDATE backups SET status = ?, error = '', size_bytes = ?, meal_count = ?, exercise_count = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		string(model.BackupStatusCompleted), info.SizeBytes, info.MealCount, info.ExerciseCount, now, now, id,
	)
	if err != nil {
		return fmt.Errorf("complete backup %d: %w", id, err)
	}
	return nil
}

// DeleteOlderThan removes attempts created before the cutoff and returns the
// object keys they pointed at.
func (s *BackupStore) DeleteOlderThan(ctx context.Context, before time.Time) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT object_key FROM backups WHERE created_at < ?`, before)
	if err != nil {
		return nil, fmt.Errorf("select expired backups: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan object key: %w", err)
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM backups WHERE created_at < ?`, before); err != nil {
		return nil, fmt.Errorf("delete expired backups: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return keys, nil
}

// LatestCompleted returns nil, nil when no backup has finished yet.
func (s *BackupStore) LatestCompleted(ctx context.Context) (*model.Backup, error) {
	b, err := scanBackup(s.db.QueryRowContext(ctx,
		`SELECT `+backupCols+` FROM backups WHERE status = ? ORDER BY completed_at DESC, id DESC LIMIT 1`,
		string(model.BackupStatusCompleted),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest completed backup: %w", err)
	}
	return b, nil
}

package model

import "time"

type BackupStatus string

const (
	BackupStatusPending   BackupStatus = "pending"
	BackupStatusUploading BackupStatus = "uploading"
	BackupStatusCompleted BackupStatus = "completed"
	BackupStatusFailed    BackupStatus = "failed"
)

// BackupTrigger records what started a backup.
type BackupTrigger string

const (
	BackupManual    BackupTrigger = "manual"
	BackupScheduled BackupTrigger = "scheduled"
)

// Backup is one attempt to archive the diet log. MealCount and ExerciseCount
// describe the snapshot and are set once the archive is uploaded.
type Backup struct {
	ID            int64         `json:"id"`
	Filename      string        `json:"filename"`
	ObjectKey     string        `json:"objectKey"`
	Trigger       BackupTrigger `json:"trigger"`
	Status        BackupStatus  `json:"status"`
	Error         string        `json:"error,omitempty"`
	SizeBytes     int64         `json:"sizeBytes"`
	MealCount     int           `json:"mealCount"`
	ExerciseCount int           `json:"exerciseCount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
}

// SnapshotInfo is what a finished upload reports about its archive.
type SnapshotInfo struct {
	SizeBytes     int64
	MealCount     int
	ExerciseCount int
}

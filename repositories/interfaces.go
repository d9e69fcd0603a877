package repositories

import (
	"context"
	"errors"

	"mediabox/models"
)

// ErrNotFound is returned by every FileRecordRepository backend for a missing
// record.
var ErrNotFound = errors.New("record not found")

type FileRecordRepository interface {
	// Create inserts rec and fills in the generated ID and upload timestamp.
	Create(ctx context.Context, rec *models.FileRecord) error
	GetByID(ctx context.Context, id string) (models.FileRecord, error)
	DeleteByID(ctx context.Context, id string) error
	ListByUploadedAtDesc(ctx context.Context) ([]models.FileRecord, error)
}

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type FlashRepository interface {
	Push(ctx context.Context, sessionID string, flash Flash) error
	// Pop returns and clears every pending flash of the session.
	Pop(ctx context.Context, sessionID string) ([]Flash, error)
}

type Container struct {
	Files   FileRecordRepository
	Flashes FlashRepository
}

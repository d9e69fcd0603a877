package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediabox/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestFileRecordRepository(t *testing.T) *GormFileRecordRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&models.FileRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormFileRecordRepository(db)
}

func TestGormFileRecordRepositoryCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestFileRecordRepository(t)
	ctx := context.Background()

	rec := models.FileRecord{Name: "photo.png", StoragePath: "Gambar/2024-05-01_Rabu/photo.png", Main: models.MainImage, Folder: "2024-05-01_Rabu"}
	if err := repo.Create(ctx, &rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if rec.UploadedAt.IsZero() {
		t.Fatalf("expected uploaded_at to be assigned")
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StoragePath != rec.StoragePath || got.Main != models.MainImage {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestGormFileRecordRepositoryListsNewestFirst(t *testing.T) {
	repo := newTestFileRecordRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, name := range []string{"old.png", "new.mp4", "mid.png"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		rec := models.FileRecord{Name: name, StoragePath: "x/" + name, Main: models.MainImage, Folder: "f", UploadedAt: base.Add(offsets[i])}
		if err := repo.Create(ctx, &rec); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := repo.ListByUploadedAtDesc(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Name != "new.mp4" || list[1].Name != "mid.png" || list[2].Name != "old.png" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestGormFileRecordRepositoryDeleteAndNotFound(t *testing.T) {
	repo := newTestFileRecordRepository(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec := models.FileRecord{Name: "a.png", StoragePath: "Gambar/f/a.png", Main: models.MainImage, Folder: "f"}
	if err := repo.Create(ctx, &rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteByID(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted record to be gone, got %v", err)
	}
}

package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"mediabox/metrics"
	"mediabox/models"
	"mediabox/repositories"
	"mediabox/storage"
)

const (
	defaultFolder = "unknown"
)

type UploadInput struct {
	Filename    string
	TypeHint    string
	ContentType string
	Body        io.Reader
}

type UploadResult struct {
	Outcome
	Record models.FileRecord
	Path   string
}

type DateFolder struct {
	Name  string
	Files []models.FileRecord
}

type MediaGroup struct {
	Main    string
	Folders []DateFolder
}

// Dashboard is the listing grouped by media category, then date folder. Both
// levels keep the order of first appearance in the newest-first record list.
type Dashboard struct {
	Outcome
	Groups []MediaGroup
}

type DeleteResult struct {
	Outcome
	Found  bool
	Record models.FileRecord
}

type FileService interface {
	Upload(ctx context.Context, in UploadInput) (UploadResult, error)
	ListGrouped(ctx context.Context) Dashboard
	Delete(ctx context.Context, id string) (DeleteResult, error)
	DownloadURL(ctx context.Context, storagePath string) (string, error)
}

type FileServiceOptions struct {
	AllowedExtensions []string
	DashboardExpiry   time.Duration
	DownloadExpiry    time.Duration
	// DisplayLocation is the zone of ReadableDate. Storage folders are always UTC.
	DisplayLocation *time.Location
	Now             func() time.Time
}

type fileService struct {
	files repositories.FileRecordRepository
	blobs storage.ObjectStore
	opts  FileServiceOptions
}

func NewFileService(files repositories.FileRecordRepository, blobs storage.ObjectStore, opts FileServiceOptions) FileService {
	if opts.DisplayLocation == nil {
		opts.DisplayLocation = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DashboardExpiry <= 0 {
		opts.DashboardExpiry = 24 * time.Hour
	}
	if opts.DownloadExpiry <= 0 {
		opts.DownloadExpiry = time.Hour
	}
	return &fileService{files: files, blobs: blobs, opts: opts}
}

func (s *fileService) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if in.Filename == "" {
		return UploadResult{}, newAppError(http.StatusBadRequest, "No selected file", nil)
	}
	if !AllowedFile(in.Filename, s.opts.AllowedExtensions) {
		return UploadResult{}, newAppError(http.StatusBadRequest, "File type not allowed", nil)
	}
	// An allowed extension always survives sanitising, so name is never empty.
	name := SanitizeFilename(in.Filename)

	main := ClassifyMediaType(in.TypeHint)
	now := s.opts.Now()
	folder := DayFolder(now.UTC())
	path := StoragePath(main, folder, name)

	if err := s.blobs.Upload(ctx, path, in.Body, in.ContentType); err != nil {
		return UploadResult{}, newAppError(http.StatusInternalServerError, "Upload failed: "+err.Error(), err)
	}
	metrics.UploadsTotal.WithLabelValues(main).Inc()

	result := UploadResult{
		Path: path,
		Record: models.FileRecord{
			Name:         name,
			StoragePath:  path,
			Main:         main,
			Folder:       folder,
			ReadableDate: ReadableDate(now.In(s.opts.DisplayLocation)),
			ContentType:  in.ContentType,
		},
	}
	if err := s.files.Create(ctx, &result.Record); err != nil {
		result.recordSoftFailure(OpSaveMetadata, path, err)
	}
	return result, nil
}

func (s *fileService) ListGrouped(ctx context.Context) Dashboard {
	var dash Dashboard

	records, err := s.files.ListByUploadedAtDesc(ctx)
	if err != nil {
		dash.recordSoftFailure(OpListRecords, "", err)
		return dash
	}

	mainIdx := map[string]int{}
	folderIdx := map[string]map[string]int{}
	for _, rec := range records {
		url, err := s.blobs.SignedURL(ctx, rec.StoragePath, s.opts.DashboardExpiry)
		if err != nil {
			dash.recordSoftFailure(OpSignURL, rec.StoragePath, err)
			url = ""
		}
		rec.URL = url

		main := rec.Main
		if main == "" {
			main = models.MainImage
		}
		folder := rec.Folder
		if folder == "" {
			folder = defaultFolder
		}

		gi, ok := mainIdx[main]
		if !ok {
			gi = len(dash.Groups)
			mainIdx[main] = gi
			folderIdx[main] = map[string]int{}
			dash.Groups = append(dash.Groups, MediaGroup{Main: main})
		}
		group := &dash.Groups[gi]
		fi, ok := folderIdx[main][folder]
		if !ok {
			fi = len(group.Folders)
			folderIdx[main][folder] = fi
			group.Folders = append(group.Folders, DateFolder{Name: folder})
		}
		group.Folders[fi].Files = append(group.Folders[fi].Files, rec)
	}
	return dash
}

func (s *fileService) Delete(ctx context.Context, id string) (DeleteResult, error) {
	rec, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return DeleteResult{}, nil
		}
		return DeleteResult{}, newAppError(http.StatusInternalServerError, "Gagal membaca dokumen", err)
	}

	result := DeleteResult{Found: true, Record: rec}
	if err := s.blobs.Delete(ctx, rec.StoragePath); err != nil {
		result.recordSoftFailure(OpDeleteBlob, rec.StoragePath, err)
	}
	if err := s.files.DeleteByID(ctx, id); err != nil {
		return result, newAppError(http.StatusInternalServerError, "Gagal menghapus dokumen", err)
	}
	return result, nil
}

func (s *fileService) DownloadURL(ctx context.Context, storagePath string) (string, error) {
	if storagePath == "" {
		return "", newAppError(http.StatusNotFound, "File not available", nil)
	}
	url, err := s.blobs.SignedURL(ctx, storagePath, s.opts.DownloadExpiry)
	if err != nil {
		return "", newAppError(http.StatusNotFound, "File not available", err)
	}
	return url, nil
}

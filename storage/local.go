package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediabox/utils"
)

// LocalStore keeps blobs on disk under BasePath. Its signed URLs point back at
// this service (see handlers.ServeBlob) and carry a JWT bound to the path.
type LocalStore struct {
	basePath      string
	publicBaseURL string
	secret        string
	now           func() time.Time
}

func NewLocal(basePath string, publicBaseURL string, secret string) (*LocalStore, error) {
	if basePath == "" {
		return nil, errors.New("local: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("local: create base dir: %w", err)
	}
	return &LocalStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		secret:        secret,
		now:           time.Now,
	}, nil
}

func (s *LocalStore) absPath(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("local: invalid path %q", path)
	}
	return filepath.Join(s.basePath, clean), nil
}

func (s *LocalStore) Upload(_ context.Context, path string, r io.Reader, _ string) error {
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("local: create dir: %w", err)
	}
	dst, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("local: create file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(abs)
		return fmt.Errorf("local: write file: %w", err)
	}
	return dst.Close()
}

func (s *LocalStore) Delete(_ context.Context, path string) error {
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *LocalStore) SignedURL(_ context.Context, path string, expiry time.Duration) (string, error) {
	abs, err := s.absPath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	token, err := utils.GenerateBlobToken(s.secret, path, expiry, s.now())
	if err != nil {
		return "", err
	}
	return s.publicBaseURL + "/blobs/" + escapePath(path) + "?token=" + url.QueryEscape(token), nil
}

// Open resolves a signed token for path to the file on disk. The caller closes
// the returned file.
func (s *LocalStore) Open(path string, token string) (*os.File, error) {
	granted, err := utils.ParseBlobToken(s.secret, token, s.now())
	if err != nil || granted != path {
		return nil, ErrNotFound
	}
	abs, err := s.absPath(path)
	if err != nil {
		return nil, ErrNotFound
	}
	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	// GoogleAccessID is the service account e-mail used for signing. When
	// empty the client derives it from the credentials.
	GoogleAccessID string
}

type GCSStore struct {
	client   *gcs.Client
	bucket   string
	accessID string
}

func NewGCS(ctx context.Context, cfg GCSConfig) (*GCSStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs: bucket name is required")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.Bucket, accessID: cfg.GoogleAccessID}, nil
}

func (s *GCSStore) Upload(ctx context.Context, path string, r io.Reader, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: close writer %s: %w", path, err)
	}
	return nil
}

func (s *GCSStore) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

// SignedURL issues a V4 GET URL. Signing uses the private key of the
// configured service account, or the IAM signBlob API when none is present.
func (s *GCSStore) SignedURL(_ context.Context, path string, expiry time.Duration) (string, error) {
	opts := &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(expiry),
	}
	if s.accessID != "" {
		opts.GoogleAccessID = s.accessID
	}
	return s.client.Bucket(s.bucket).SignedURL(path, opts)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

package importer

import (
	"bible_trivia_backend/internal/config"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Source opens a named import file.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads from the local filesystem, relative to Dir when set.
type FileSource struct {
	Dir string
}

func (s FileSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path := name
	if s.Dir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(s.Dir, name)
	}
	return os.Open(path)
}

// MinioSource reads objects from one bucket.
type MinioSource struct {
	Client *minio.Client
	Bucket string
}

func NewMinioSource(cfg *config.StorageConfig) (*MinioSource, error) {
	if cfg.MinioEndpoint == "" || cfg.MinioBucket == "" {
		return nil, fmt.Errorf("minio endpoint and bucket must be configured")
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioSource{Client: client, Bucket: cfg.MinioBucket}, nil
}

func (s *MinioSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing key before parsing starts
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("open %s/%s: %w", s.Bucket, name, err)
	}
	return obj, nil
}

package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/shared"
)

// MediaStorage is the object storage port for media uploads
type MediaStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	Delete(ctx context.Context, storageKey string) error
	Exists(ctx context.Context, storageKey string) (bool, error)
}

const (
	uploadURLTTL     = 15 * time.Minute
	maxUploadBytes   = 10 << 20
	storageKeyPrefix = "media"
)

// Image types accepted for cover images and brand assets
var allowedContentTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// UploadService issues presigned upload URLs for the admin console and
// confirms completed uploads.
type UploadService struct {
	storage MediaStorage
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage MediaStorage, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage: storage,
		logger:  logger.Named("media"),
	}
}

// RequestUpload validates the upload and returns a presigned PUT URL. The
// browser uploads directly to storage; this server never sees the bytes.
func (s *UploadService) RequestUpload(ctx context.Context, req RequestUploadRequest) (*RequestUploadResponse, error) {
	ext, ok := allowedContentTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unsupported content type: %s", req.ContentType))
	}
	if req.SizeBytes > maxUploadBytes {
		return nil, shared.NewDomainError("INVALID_INPUT", "File exceeds the 10 MB upload limit")
	}

	key := buildStorageKey(req.Filename, ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, uploadURLTTL)
	if err != nil {
		s.logger.Error("failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, shared.ErrUpstream
	}

	return &RequestUploadResponse{
		Key:       key,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// Confirm verifies that a previously presigned upload actually landed
func (s *UploadService) Confirm(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, storageKeyPrefix+"/") {
		return shared.NewDomainError("INVALID_INPUT", "Unknown storage key")
	}
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Error("failed to check upload", zap.String("key", key), zap.Error(err))
		return shared.ErrUpstream
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

// DownloadURL returns a presigned GET URL for a stored object
func (s *UploadService) DownloadURL(ctx context.Context, key string) (string, error) {
	if !strings.HasPrefix(key, storageKeyPrefix+"/") {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown storage key")
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, key, uploadURLTTL)
	if err != nil {
		s.logger.Error("failed to presign download", zap.String("key", key), zap.Error(err))
		return "", shared.ErrUpstream
	}
	return url, nil
}

// Delete removes a stored object
func (s *UploadService) Delete(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, storageKeyPrefix+"/") {
		return shared.NewDomainError("INVALID_INPUT", "Unknown storage key")
	}
	return s.storage.Delete(ctx, key)
}

// buildStorageKey produces a collision-free key like
// media/2026/08/3f1c…-cover.jpg. The original filename survives, slugged,
// so downloads keep a recognizable name.
func buildStorageKey(filename, ext string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = slugify(base)
	if base == "" {
		base = "file"
	}
	now := time.Now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s-%s%s", storageKeyPrefix, now.Year(), now.Month(), uuid.New().String(), base, ext)
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

package storage

import (
	"context"
	"errors"
	"time"

	mediaapp "github.com/packmart/backend/internal/application/media"
)

// StubMediaStorage is a development placeholder used when no storage
// backend is configured. URL generation works; nothing is stored.
type StubMediaStorage struct {
	BaseURL string
}

// NewStubMediaStorage creates a new StubMediaStorage
func NewStubMediaStorage() *StubMediaStorage {
	return &StubMediaStorage{
		BaseURL: "https://storage.example.com",
	}
}

var _ mediaapp.MediaStorage = (*StubMediaStorage)(nil)

// GenerateUploadURL generates a stub presigned upload URL
func (s *StubMediaStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL generates a stub presigned download URL
func (s *StubMediaStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// Delete is a no-op that always succeeds
func (s *StubMediaStorage) Delete(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

// Exists always reports true so the upload confirmation flow works in
// development
func (s *StubMediaStorage) Exists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}

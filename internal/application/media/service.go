// Package media handles upload-URL generation for product and blog images.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// ObjectStorage abstracts the S3-compatible backend used for media files
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// allowed upload folders and image content types
var (
	allowedFolders = map[string]bool{
		"products": true,
		"blog":     true,
	}
	contentTypeExtensions = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
)

// UploadURLRequest asks for a presigned upload slot
type UploadURLRequest struct {
	Folder      string `json:"folder" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned URL and the final public URL
// the client should store once the upload completes
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// MediaService generates presigned upload URLs for admin image uploads
type MediaService struct {
	storage   ObjectStorage
	publicURL string
	logger    *zap.Logger
}

// NewMediaService creates a new media service. publicURL is the CDN or
// bucket prefix media is served from.
func NewMediaService(storage ObjectStorage, publicURL string, logger *zap.Logger) *MediaService {
	return &MediaService{
		storage:   storage,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// RequestUploadURL validates the request and returns a presigned PUT URL
// under a randomly generated storage key.
func (s *MediaService) RequestUploadURL(ctx context.Context, req UploadURLRequest) (*UploadURLResponse, error) {
	folder := strings.ToLower(strings.TrimSpace(req.Folder))
	if !allowedFolders[folder] {
		return nil, shared.NewDomainError("INVALID_FOLDER", fmt.Sprintf("unknown media folder: %s", req.Folder))
	}

	ext, ok := contentTypeExtensions[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", fmt.Sprintf("unsupported content type: %s", req.ContentType))
	}

	storageKey := path.Join(folder, uuid.New().String()+ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, 0)
	if err != nil {
		s.logger.Error("failed to generate upload URL",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &UploadURLResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		PublicURL:  s.publicURL + "/" + storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// Delete removes a previously uploaded media object
func (s *MediaService) Delete(ctx context.Context, storageKey string) error {
	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return s.storage.DeleteObject(ctx, storageKey)
}

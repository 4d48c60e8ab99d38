package storage

import (
	"context"
	"fmt"
	"io"

	"opdcare/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores generated documents (prescription PDFs) in the
// document cloud and hands back permanent identifiers.
type StorageService interface {
	// UploadDocument stores the reader's content under destFolder and
	// returns the permanent public ID.
	UploadDocument(ctx context.Context, content io.Reader, destFolder, name string) (string, error)
	DeleteDocument(ctx context.Context, publicID string) error
	// DownloadURL returns the delivery URL for a stored document.
	DownloadURL(publicID string) (string, error)
}

// CloudinaryStorage implements StorageService over Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the storage service from the application
// config. Missing credentials are an error: callers that can run without
// document storage should treat the service as optional.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) UploadDocument(ctx context.Context, content io.Reader, destFolder, name string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:       destFolder,
		PublicID:     name,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document %s: %w", name, err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("no public ID returned for document %s", name)
	}
	return result.PublicID, nil
}

func (s *CloudinaryStorage) DeleteDocument(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", publicID, err)
	}
	return nil
}

func (s *CloudinaryStorage) DownloadURL(publicID string) (string, error) {
	a, err := s.cld.Media(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve document %s: %w", publicID, err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("failed to build URL for document %s: %w", publicID, err)
	}
	return url, nil
}

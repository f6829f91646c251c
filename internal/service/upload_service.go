package service

import (
	"context"
	"log/slog"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/storage"
)

const (
	// PDFContentType is the only accepted upload type
	PDFContentType = "application/pdf"

	// DefaultMaxUploadBytes is the upload size limit (25 MB)
	DefaultMaxUploadBytes int64 = 25 * 1024 * 1024

	// PlaceholderFileBaseURL is used for file URLs when no blob storage is configured
	PlaceholderFileBaseURL = "https://your-blob-storage.com/files"
)

// UploadRequest is a received file
type UploadRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// UploadResult describes an accepted upload. FileURL is empty when the blob
// could not be persisted.
type UploadResult struct {
	FileID   string
	FileName string
	FileURL  string
}

// Stored reports whether the file reached blob storage
func (r *UploadResult) Stored() bool {
	return r.FileURL != ""
}

// UploadService defines the interface for accepting PDF uploads
type UploadService interface {
	// Upload validates the file, assigns a fileId and tries to store it
	Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error)

	// FileURL returns the public URL of a stored file
	FileURL(fileID string) string

	// MaxUploadBytes returns the accepted size limit
	MaxUploadBytes() int64
}

// UploadServiceImpl implements the UploadService interface
type UploadServiceImpl struct {
	store    storage.BlobStore
	maxBytes int64
	logger   *slog.Logger
	newID    func() string
}

// NewUploadService creates a new UploadService. store may be nil, in which
// case uploads succeed without being persisted.
func NewUploadService(store storage.BlobStore, maxBytes int64, logger *slog.Logger) *UploadServiceImpl {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadServiceImpl{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// MaxUploadBytes implements UploadService
func (s *UploadServiceImpl) MaxUploadBytes() int64 {
	return s.maxBytes
}

// Upload implements UploadService
func (s *UploadServiceImpl) Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	if err := s.validate(req); err != nil {
		return nil, &ServiceError{Op: "validate_upload", Err: err}
	}

	result := &UploadResult{
		FileID:   s.newID(),
		FileName: req.FileName,
	}

	if s.store == nil {
		s.logger.Warn("blob storage not configured, file not persisted", "fileId", result.FileID)
		return result, nil
	}

	url, err := s.store.Put(ctx, storage.ObjectKey(result.FileID), req.Data, PDFContentType)
	if err != nil {
		// Upload success does not depend on storage success
		s.logger.Warn("blob upload failed, file not persisted", "fileId", result.FileID, "error", err)
		return result, nil
	}

	result.FileURL = url
	return result, nil
}

// FileURL implements UploadService
func (s *UploadServiceImpl) FileURL(fileID string) string {
	key := storage.ObjectKey(fileID)
	if s.store == nil {
		return PlaceholderFileBaseURL + "/" + key
	}
	return s.store.URL(key)
}

func (s *UploadServiceImpl) validate(req *UploadRequest) error {
	if req == nil || len(req.Data) == 0 {
		return domain.NewValidationError("file", "No file uploaded")
	}

	size := req.Size
	if int64(len(req.Data)) > size {
		size = int64(len(req.Data))
	}
	if size > s.maxBytes {
		return domain.NewValidationError("file", "File too large")
	}

	if !isPDFContentType(req.ContentType) || !mimetype.Detect(req.Data).Is(PDFContentType) {
		return domain.NewValidationError("file", "Only PDF files are allowed")
	}
	return nil
}

func isPDFContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, PDFContentType)
}


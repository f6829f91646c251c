package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/model"
	"github.com/ridwanfathin/invoice-review-service/internal/service"
)

// multipartOverhead allows for boundaries and part headers around the file
const multipartOverhead = 1 << 20

// UploadHandler handles PDF uploads and file lookups
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// RegisterRoutes registers the upload and file routes
func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", h.UploadFile)
	router.GET("/files/:fileId", h.GetFileURL)
}

// UploadFile handles the POST /upload endpoint
// @Summary Upload a PDF
// @Description Upload a PDF invoice (max 25 MB). The file is forwarded to blob storage when configured.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Success 200 {object} model.APIResponse{data=model.UploadResponse} "File uploaded"
// @Failure 400 {object} model.ErrorResponse "Missing, non-PDF or oversized file"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /upload [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	maxBytes := h.uploadService.MaxUploadBytes()
	if c.Request.ContentLength > maxBytes+multipartOverhead {
		respondBadRequest(c, ErrFileTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondBadRequest(c, ErrFileTooLarge)
			return
		}
		respondBadRequest(c, ErrNoFileUploaded)
		return
	}
	if header.Size > maxBytes {
		respondBadRequest(c, ErrFileTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		logError(c, "open_upload", err, nil)
		respondInternalServerError(c, ErrFileUpload)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		logError(c, "read_upload", err, map[string]interface{}{"file_size": header.Size})
		respondInternalServerError(c, ErrFileUpload)
		return
	}

	result, err := h.uploadService.Upload(c.Request.Context(), &service.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	})
	if err != nil {
		respondServiceError(c, "upload_file", err, ErrFileUpload)
		return
	}

	message := "File uploaded (not persisted)"
	if result.Stored() {
		message = "File uploaded and stored successfully"
	}
	respondOK(c, model.UploadResponse{
		FileID:   result.FileID,
		FileName: result.FileName,
		FileURL:  result.FileURL,
	}, message)
}

// GetFileURL handles the GET /files/:fileId endpoint
// @Summary Get a file URL
// @Description Resolve the public URL of an uploaded PDF
// @Tags files
// @Produce json
// @Param fileId path string true "File ID"
// @Success 200 {object} model.APIResponse{data=model.FileURLResponse} "File URL retrieved"
// @Failure 400 {object} model.ErrorResponse "Missing fileId"
// @Router /files/{fileId} [get]
func (h *UploadHandler) GetFileURL(c *gin.Context) {
	fileID, err := getPathParam(c, "fileId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	respondOK(c, model.FileURLResponse{FileURL: h.uploadService.FileURL(fileID)}, "File URL retrieved")
}

// Package media exposes the media object upload endpoint.
package media

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
	"civicgrid/internal/shared/utils"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".mp4":  true,
}

// ObjectStore writes an uploaded object and returns its public URL and key.
type ObjectStore interface {
	Store(ctx context.Context, filename string, r io.Reader) (url, objectKey string, err error)
}

type UploadHandler struct {
	store  ObjectStore
	logger logger.Interface
}

func NewUploadHandler(store ObjectStore) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger.NewLogger(),
	}
}

// UploadResponse is returned to the client so the url and object_key can be
// attached to an issue in a subsequent request.
type UploadResponse struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
}

// Upload handles POST /media. Accepts a single multipart file field named
// "file"; the returned object_key is what issue endpoints expect.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file field is required"))
		return
	}

	if fileHeader.Size > maxUploadSize {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file exceeds the 10 MiB upload limit"))
		return
	}

	name := strings.ToLower(fileHeader.Filename)
	dot := strings.LastIndex(name, ".")
	if dot < 0 || !allowedExtensions[name[dot:]] {
		utils.ErrorResponseWithError(c, errors.NewValidationError("unsupported file type"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read uploaded file"))
		return
	}
	defer f.Close()

	url, objectKey, err := h.store.Store(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		h.logger.Errorw("failed to store media object", "error", err, "filename", fileHeader.Filename)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to store media object"))
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Media uploaded", UploadResponse{
		URL:       url,
		ObjectKey: objectKey,
	})
}

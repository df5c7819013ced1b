package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/storage"
)

type UploadHandler struct {
	store  *storage.LocalStore
	logger *zap.Logger
}

func NewUploadHandler(store *storage.LocalStore, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// Upload receives a multipart "file" plus a "type" field that picks the
// target subdirectory (profile, portfolio, certificate, service).
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}

	uploadType := c.PostForm("type")

	url, err := h.store.SaveUpload(fh, uploadType)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "file_too_large":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File exceeds the 5MB limit"})
		case "invalid_file_type":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File type not allowed"})
		default:
			h.logger.Error("failed to store upload", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store file"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "file_url": url})
}

// UploadAudio stores a chat voice note; the client then sends an audio
// message carrying the returned URL.
func (h *UploadHandler) UploadAudio(c *gin.Context) {
	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No audio uploaded"})
		return
	}

	url, err := h.store.SaveAudio(fh)
	if err != nil {
		if httperr.BusinessCode(err) == "file_too_large" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File exceeds the 5MB limit"})
			return
		}
		h.logger.Error("failed to store audio", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store audio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "file_url": url})
}

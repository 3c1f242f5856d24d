package handler

import (
	"github.com/gin-gonic/gin"
	mediaapp "github.com/packmart/backend/internal/application/media"
)

// UploadHandler handles presigned media uploads for blog imagery
type UploadHandler struct {
	BaseHandler
	uploadService *mediaapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *mediaapp.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// RequestUpload issues a presigned PUT URL for a new media object
func (h *UploadHandler) RequestUpload(c *gin.Context) {
	var req mediaapp.RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.uploadService.RequestUpload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ConfirmUploadRequest identifies the object to confirm
type ConfirmUploadRequest struct {
	Key string `json:"key" binding:"required,max=500"`
}

// Confirm verifies the browser completed the upload
func (h *UploadHandler) Confirm(c *gin.Context) {
	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.uploadService.Confirm(c.Request.Context(), req.Key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DownloadURLResponse carries a presigned GET URL
type DownloadURLResponse struct {
	URL string `json:"url"`
}

// DownloadURL issues a presigned GET URL for an existing object
func (h *UploadHandler) DownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key is required")
		return
	}

	url, err := h.uploadService.DownloadURL(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{URL: url})
}

// Delete removes a media object
func (h *UploadHandler) Delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key is required")
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterAdminRoutes registers the media upload routes
func (h *UploadHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	media := rg.Group("/media")
	{
		media.POST("/uploads", h.RequestUpload)
		media.POST("/uploads/confirm", h.Confirm)
		media.GET("/download-url", h.DownloadURL)
		media.DELETE("", h.Delete)
	}
}

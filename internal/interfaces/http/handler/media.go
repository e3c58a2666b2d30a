package handler

import (
	"github.com/gin-gonic/gin"

	mediaapp "github.com/storefront/backend/internal/application/media"
)

// MediaHandler handles admin media upload endpoints
type MediaHandler struct {
	BaseHandler
	mediaService *mediaapp.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *mediaapp.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// DeleteMediaRequest removes an uploaded object
type DeleteMediaRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// RequestUploadURL godoc
// @Summary  Get a presigned URL for uploading an image (admin)
// @Tags     admin-media
// @Accept   json
// @Produce  json
// @Param    request body mediaapp.UploadURLRequest true "Upload request"
// @Success  200 {object} APIResponse[mediaapp.UploadURLResponse]
// @Security BearerAuth
// @Router   /admin/media/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	var req mediaapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.mediaService.RequestUploadURL(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @Summary  Delete an uploaded media object (admin)
// @Tags     admin-media
// @Accept   json
// @Param    request body DeleteMediaRequest true "Storage key"
// @Success  204
// @Security BearerAuth
// @Router   /admin/media [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	var req DeleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), req.StorageKey); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/audit"
	"github.com/fspruce/helpful-living/internal/config"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/httpresp"
	"github.com/fspruce/helpful-living/internal/logging"
	"github.com/fspruce/helpful-living/internal/media"
	"github.com/fspruce/helpful-living/internal/middleware"
	"github.com/fspruce/helpful-living/internal/models"
)

// MediaHandler uploads service images: the file is downscaled, re-encoded
// as webp and pushed to object storage, then the service row points at it.
type MediaHandler struct {
	db      *gorm.DB
	storage media.Storage
	config  *config.Config
	audit   *audit.Dispatcher
}

func NewMediaHandler(
	db *gorm.DB,
	storage media.Storage,
	cfg *config.Config,
	dispatcher *audit.Dispatcher,
) *MediaHandler {
	return &MediaHandler{
		db:      db,
		storage: storage,
		config:  cfg,
		audit:   dispatcher,
	}
}

func (h *MediaHandler) UploadServiceImage(c *gin.Context) {
	if h.storage == nil {
		httperr.Internal(c, "media_not_configured", "Image storage is not configured.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the uploaded image.")
		return
	}
	defer src.Close()

	encoded, err := media.ProcessImage(src, h.config.MediaMaxWidth)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a supported image.")
		return
	}

	key := "services/" + service.Slug + ".webp"
	url, err := h.storage.Put(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		logging.L().Error("image upload failed", zap.Error(err))
		httperr.Internal(c, "upload_failed", "Could not store the image.")
		return
	}

	service.Image = url
	if err := h.db.Model(&service).Update("image", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not save the image reference.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "service_image_uploaded",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

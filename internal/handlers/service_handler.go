package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/config"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/httpresp"
	"github.com/fspruce/helpful-living/internal/models"
)

// ServicesPerPage is the public catalog page size.
const ServicesPerPage = 6

type ServiceHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewServiceHandler(db *gorm.DB, cfg *config.Config) *ServiceHandler {
	return &ServiceHandler{db: db, config: cfg}
}

// ======================================================
// HOME
// ======================================================

func (h *ServiceHandler) Home(c *gin.Context) {
	var featured []models.Service
	h.db.
		Where("available = ?", true).
		Order("name ASC").
		Limit(3).
		Find(&featured)

	httpresp.OK(c, gin.H{
		"business": gin.H{
			"name":  h.config.BusinessName,
			"email": h.config.BusinessEmail,
			"phone": h.config.BusinessPhone,
		},
		"featured_services": featured,
	})
}

// ======================================================
// LIST (available services, 6 per page)
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	q := h.db.Model(&models.Service{}).Where("available = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	var services []models.Service
	if err := q.
		Order("name ASC").
		Limit(ServicesPerPage).
		Offset((page - 1) * ServicesPerPage).
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	httpresp.Page(c, services, total, page, ServicesPerPage)
}

// ======================================================
// DETAIL
// ======================================================

func (h *ServiceHandler) Detail(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	// Unknown and unavailable look the same from outside.
	var service models.Service
	if err := h.db.
		Where("slug = ? AND available = ?", slug, true).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, service)
}

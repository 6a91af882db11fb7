package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/audit"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/httpresp"
	"github.com/fspruce/helpful-living/internal/middleware"
	"github.com/fspruce/helpful-living/internal/models"
)

// AdminHandler backs the staff back office: service records, the client
// book and the booking ledger.
type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: dispatcher}
}

// ======================================================
// SERVICES
// ======================================================

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
	Available   bool   `json:"available"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Excerpt     *string `json:"excerpt,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

func (h *AdminHandler) ListServices(c *gin.Context) {
	q := h.db.Model(&models.Service{})

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(excerpt) LIKE ?",
			like, like, like,
		)
	}

	if available := strings.TrimSpace(c.Query("available")); available != "" {
		if available == "true" {
			q = q.Where("available = ?", true)
		} else if available == "false" {
			q = q.Where("available = ?", false)
		}
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service name is required.")
		return
	}

	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = slug.Make(req.Name)
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Slug:        s,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Available:   req.Available,
	}

	if err := h.db.Create(&service).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_exists", "A service with that name or slug already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		service.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Excerpt != nil {
		service.Excerpt = *req.Excerpt
	}
	if req.Available != nil {
		service.Available = *req.Available
	}

	if err := h.db.Save(&service).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_exists", "A service with that name or slug already exists.")
			return
		}
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// CLIENTS
// ======================================================

type UpdateClientRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	IsClient    *bool   `json:"is_client,omitempty"`
	ServiceIDs  *[]uint `json:"service_ids,omitempty"`
}

func (h *AdminHandler) ListClients(c *gin.Context) {
	q := h.db.Model(&models.Client{}).Preload("Services")

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?",
			like, like, like, like,
		)
	}

	if isClient := strings.TrimSpace(c.Query("is_client")); isClient != "" {
		if isClient == "true" {
			q = q.Where("is_client = ?", true)
		} else if isClient == "false" {
			q = q.Where("is_client = ?", false)
		}
	}

	var clients []models.Client
	if err := q.
		Order("is_client ASC, last_name ASC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Could not load clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *AdminHandler) UpdateClient(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = *req.PhoneNumber
	}
	if req.IsClient != nil {
		client.IsClient = *req.IsClient
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Could not update the client.")
		return
	}

	if req.ServiceIDs != nil {
		var services []models.Service
		if len(*req.ServiceIDs) > 0 {
			if err := h.db.Find(&services, *req.ServiceIDs).Error; err != nil {
				httperr.Internal(c, "failed_to_update_client", "Could not update the client.")
				return
			}
		}
		if err := h.db.Model(&client).
			Association("Services").
			Replace(services); err != nil {
			httperr.Internal(c, "failed_to_update_client", "Could not update the client.")
			return
		}
		client.Services = services
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.OK(c, client)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	q := h.db.Model(&models.Booking{}).
		Preload("Client").
		Preload("Services")

	if confirmed := strings.TrimSpace(c.Query("confirmed")); confirmed != "" {
		if confirmed == "true" {
			q = q.Where("confirmed = ?", true)
		} else if confirmed == "false" {
			q = q.Where("confirmed = ?", false)
		}
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date DESC, created_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ConfirmBooking moves a pending booking to confirmed.
func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	var b models.Booking
	if err := h.db.
		Preload("Client").
		Preload("Services").
		First(&b, "id = ?", c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if b.Confirmed {
		httperr.BadRequest(c, "already_confirmed", "This booking is already confirmed.")
		return
	}

	b.Confirmed = true
	if err := h.db.Model(&b).Update("confirmed", true).Error; err != nil {
		httperr.Internal(c, "failed_to_confirm_booking", "Could not confirm the booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	httpresp.OK(c, b)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/audit"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/httpresp"
	"github.com/fspruce/helpful-living/internal/middleware"
	"github.com/fspruce/helpful-living/internal/search"
)

const autocompleteLimit = 10

type AutocompleteHandler struct {
	services *search.ServiceSearch
	users    *search.UserSearch
	clients  *search.ClientSearch
	audit    *audit.Dispatcher
}

func NewAutocompleteHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AutocompleteHandler {
	return &AutocompleteHandler{
		services: search.NewServiceSearch(db),
		users:    search.NewUserSearch(db),
		clients:  search.NewClientSearch(db),
		audit:    dispatcher,
	}
}

// searchWith runs the query for authenticated callers. Anonymous callers
// get an empty result set, never an error.
func searchWith(c *gin.Context, s search.Searcher) {
	if middleware.SessionUserID(c) == nil {
		httpresp.List(c, []search.Option{})
		return
	}

	opts, err := s.Search(c.Request.Context(), c.Query("q"), autocompleteLimit)
	if err != nil {
		httperr.Internal(c, "search_failed", "Search failed.")
		return
	}

	httpresp.List(c, opts)
}

func (h *AutocompleteHandler) Services(c *gin.Context) {
	searchWith(c, h.services)
}

func (h *AutocompleteHandler) Users(c *gin.Context) {
	searchWith(c, h.users)
}

func (h *AutocompleteHandler) Clients(c *gin.Context) {
	searchWith(c, h.clients)
}

// --------- Create from free text ---------

type CreateServiceFromTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateService backs the service autocomplete's "create new" action.
// Runs behind AuthRequired.
func (h *AutocompleteHandler) CreateService(c *gin.Context) {
	var req CreateServiceFromTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service name is required.")
		return
	}

	opt, err := h.services.CreateFromText(c.Request.Context(), req.Text)
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_exists", "A service with that name already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.SessionUserID(c),
		Action:   "service_created_from_search",
		Entity:   "service",
		EntityID: &opt.ID,
	})

	c.JSON(http.StatusCreated, opt)
}

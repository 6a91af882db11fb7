package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/audit"
	"github.com/fspruce/helpful-living/internal/config"
	"github.com/fspruce/helpful-living/internal/flash"
	"github.com/fspruce/helpful-living/internal/handlers"
	"github.com/fspruce/helpful-living/internal/httperr"
	infraRepo "github.com/fspruce/helpful-living/internal/infra/repository"
	"github.com/fspruce/helpful-living/internal/media"
	"github.com/fspruce/helpful-living/internal/middleware"
	ucBooking "github.com/fspruce/helpful-living/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	flashes flash.Store,
	storage media.Storage,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	bookingInfoUC := ucBooking.NewGetBookingInfo(
		bookingRepo,
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		db,
		flashes,
		createBookingUC,
		bookingInfoUC,
		updateBookingUC,
	)

	autocompleteHandler := handlers.NewAutocompleteHandler(db, auditDispatcher)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher)
	mediaHandler := handlers.NewMediaHandler(db, storage, cfg, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// ERROR PAGES
	// ======================================================
	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "not_found", "Page not found.")
	})
	r.NoMethod(func(c *gin.Context) {
		httperr.Write(c, 405, "method_not_allowed", "Method not allowed.")
	})

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/", serviceHandler.Home)
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:slug", serviceHandler.Detail)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BOOKINGS (guests and sessions alike)
		// ------------------------------
		bookings := api.Group("/bookings")
		bookings.Use(middleware.AuthOptional(cfg))
		{
			bookings.GET("", bookingHandler.Entry)
			bookings.POST("/book-service", bookingHandler.Create)
			bookings.GET("/info", bookingHandler.Info)
			bookings.POST("/info", bookingHandler.Info)
			bookings.POST("/edit", bookingHandler.Update)
			bookings.POST("/cancel", bookingHandler.Cancel)
			bookings.GET("/:slug", bookingHandler.EntryWithService)
		}

		// ------------------------------
		// AUTOCOMPLETE (anonymous callers get empty results)
		// ------------------------------
		autocomplete := api.Group("/autocomplete")
		autocomplete.Use(middleware.AuthOptional(cfg))
		{
			autocomplete.GET("/services", autocompleteHandler.Services)
			autocomplete.GET("/users", autocompleteHandler.Users)
			autocomplete.GET("/clients", autocompleteHandler.Clients)
		}
		api.POST("/autocomplete/services",
			middleware.AuthRequired(cfg),
			autocompleteHandler.CreateService,
		)

		// ------------------------------
		// BACK OFFICE (staff)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(cfg), middleware.StaffOnly())
		{
			admin.GET("/services", adminHandler.ListServices)
			admin.POST("/services", adminHandler.CreateService)
			admin.PATCH("/services/:id", adminHandler.UpdateService)
			admin.DELETE("/services/:id", adminHandler.DeleteService)
			admin.POST("/services/:id/image", mediaHandler.UploadServiceImage)

			admin.GET("/clients", adminHandler.ListClients)
			admin.PATCH("/clients/:id", adminHandler.UpdateClient)

			admin.GET("/bookings", adminHandler.ListBookings)
			admin.PATCH("/bookings/:id/confirm", adminHandler.ConfirmBooking)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

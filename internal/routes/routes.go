package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/audit"
	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/config"
	"github.com/himsog/himsog-api/internal/handlers"
	infraRepo "github.com/himsog/himsog-api/internal/infra/repository"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/notify"
	ucAppointment "github.com/himsog/himsog-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	logger zerolog.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	availabilityCache := cache.New(rdb, logger)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	notifyDispatcher := notify.NewDispatcher(db, logger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		availabilityCache,
	)

	bookSlotUC := ucAppointment.NewBookSlot(
		appointmentRepo,
		availabilityUC,
		availabilityCache,
		notifyDispatcher,
		auditDispatcher,
	)

	confirmUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		notifyDispatcher,
		auditDispatcher,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		availabilityCache,
		notifyDispatcher,
		auditDispatcher,
	)

	noShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo,
		auditDispatcher,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	providerHandler := handlers.NewProviderHandler(db, availabilityCache)
	serviceHandler := handlers.NewServiceHandler(db)
	operatingHoursHandler := handlers.NewOperatingHoursHandler(db, availabilityCache)
	breakTimeHandler := handlers.NewBreakTimeHandler(db, availabilityCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		confirmUC,
		completeUC,
		cancelUC,
		noShowUC,
		listByDateUC,
		listByMonthUC,
	)

	notificationHandler := handlers.NewNotificationHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, bookSlotUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/providers", publicHandler.ListProviders)
			publicAPI.GET("/providers/:slug", publicHandler.GetProvider)
			publicAPI.GET("/providers/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/providers/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			provider := secured.Group("/provider")
			provider.Use(middleware.RequireProvider())
			{
				provider.GET("/profile", providerHandler.GetMeProvider)
				provider.PUT("/profile", providerHandler.UpdateMeProvider)

				provider.GET("/services", serviceHandler.List)
				provider.POST("/services", serviceHandler.Create)
				provider.PUT("/services/:id", serviceHandler.Update)

				provider.GET("/operating-hours", operatingHoursHandler.Get)
				provider.PUT("/operating-hours", operatingHoursHandler.Update)

				provider.GET("/break-times", breakTimeHandler.List)
				provider.POST("/break-times", breakTimeHandler.Create)
				provider.PUT("/break-times/:id", breakTimeHandler.Update)
				provider.DELETE("/break-times/:id", breakTimeHandler.Delete)

				provider.GET("/appointments", appointmentHandler.ListByDate)
				provider.GET("/appointments/month", appointmentHandler.ListByMonth)
				provider.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				provider.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				provider.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				provider.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

				provider.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

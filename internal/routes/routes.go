package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/sharpfade/barbershop-booking/internal/audit"
	"github.com/sharpfade/barbershop-booking/internal/config"
	"github.com/sharpfade/barbershop-booking/internal/handlers"
	infraRepo "github.com/sharpfade/barbershop-booking/internal/infra/repository"
	"github.com/sharpfade/barbershop-booking/internal/middleware"
	ucBooking "github.com/sharpfade/barbershop-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	scheduleStore := infraRepo.NewScheduleGormStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	confirmGuard := ucBooking.NewRedisGuard(rdb)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	intentUC := ucBooking.NewBookingIntent(
		bookingRepo,
		scheduleStore,
		auditDispatcher,
		cfg.Timezone,
	)

	confirmUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		scheduleStore,
		confirmGuard,
		auditDispatcher,
		cfg.Timezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		intentUC,
		confirmUC,
		bookingRepo,
		scheduleStore,
		cfg.Timezone,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/customers/register", authHandler.RegisterCustomer)
		api.POST("/customers/login", authHandler.LoginCustomer)
		api.POST("/barbers/register", authHandler.RegisterBarber)
		api.POST("/barbers/login", authHandler.LoginBarber)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/services", serviceHandler.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CUSTOMER
			// ------------------------------
			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(middleware.RoleCustomer))
			{
				customer.GET("/services/for-me", serviceHandler.ListForCustomer)
				customer.GET("/availability", bookingHandler.Availability)

				customer.POST("/bookings/intent", bookingHandler.Intent)
				customer.POST("/bookings", bookingHandler.Confirm)
				customer.GET("/me/bookings", bookingHandler.ListMine)
			}

			// ------------------------------
			// BARBER
			// ------------------------------
			barber := secured.Group("/")
			barber.Use(middleware.RequireRole(middleware.RoleBarber))
			{
				barber.POST("/services", serviceHandler.Create)
				barber.PUT("/services/:id", serviceHandler.Update)
				barber.DELETE("/services/:id", serviceHandler.Delete)

				barber.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

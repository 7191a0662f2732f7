package routes

import (
	"net/http"

	"hotelsite/config"
	"hotelsite/constants"
	"hotelsite/controllers"
	middlewares "hotelsite/middleware"
	"hotelsite/repository"
	"hotelsite/services"
	"hotelsite/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Options carries everything SetupRoutes needs to build the services.
type Options struct {
	Config   *config.Config
	Store    repository.Store
	Redis    *redis.Client // nil disables caching and uses in-process room locks
	Calendar services.Calendar
	Log      zerolog.Logger
}

func SetupRoutes(router *gin.Engine, opts Options) {
	cfg, log := opts.Config, opts.Log
	secret := []byte(cfg.Auth.JWTSecret)

	var cache services.Cache = services.NoopCache{}
	var locker services.RoomLocker = services.NewLocalRoomLocker()
	if opts.Redis != nil {
		cache = services.NewRedisCache(opts.Redis)
		locker = services.NewRedisRoomLocker(opts.Redis, cfg.LockTTL(), cfg.LockWait())
	}

	availabilityService := services.NewAvailabilityService(opts.Store, cache, log)
	bookingService := services.NewBookingService(opts.Store, locker, cache, notification.NewLogService(log), opts.Calendar, log)
	roomService := services.NewRoomService(opts.Store, cache, opts.Calendar, log)
	dashboardService := services.NewDashboardService(opts.Store, cache, log)
	exportService := services.NewExportService(opts.Store, bookingService, dashboardService)

	roomController := controllers.NewRoomController(availabilityService, roomService, log)
	bookingController := controllers.NewBookingController(bookingService, log)
	dashboardController := controllers.NewDashboardController(dashboardService, exportService, opts.Calendar, log)

	bookingLimiter := middlewares.NewIPRateLimiter(cfg.RateLimit.BookingsPerMinute, cfg.RateLimit.Burst)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/rooms", roomController.ListAvailable)
	v1.GET("/rooms/:id", roomController.GetRoom)
	v1.GET("/rooms/:id/availability", roomController.CheckAvailability)
	v1.POST("/bookings", middlewares.RateLimit(bookingLimiter), bookingController.CreateBooking)

	admin := v1.Group("/admin", middlewares.AuthMiddleware(secret,
		constants.RoleSuperAdmin, constants.RoleAdmin, constants.RoleReceptionist))
	managers := middlewares.RoleMiddleware(constants.RoleSuperAdmin, constants.RoleAdmin)

	admin.GET("/rooms", roomController.ListRooms)
	admin.POST("/rooms", managers, roomController.CreateRoom)
	admin.PUT("/rooms/:id", managers, roomController.UpdateRoom)
	admin.DELETE("/rooms/:id", managers, roomController.DeleteRoom)
	admin.PUT("/rooms/:id/status", roomController.SetStatus)
	admin.PUT("/rooms/:id/price", managers, roomController.UpdatePrice)

	admin.GET("/bookings", bookingController.ListBookings)
	admin.GET("/bookings/export", managers, dashboardController.ExportBookings)
	admin.GET("/bookings/:id", bookingController.GetBooking)
	admin.PUT("/bookings/:id/status", bookingController.UpdateStatus)
	admin.PUT("/bookings/:id/cancel", bookingController.CancelBooking)

	admin.GET("/dashboard", managers, dashboardController.GetStats)
}

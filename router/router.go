package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yeremiapane/cafe-booking/controllers"
	"github.com/yeremiapane/cafe-booking/middlewares"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/services"
)

// SetupRouter assembles all controllers onto one gin engine. The Redis
// client may be nil, which disables response caching.
func SetupRouter(store repositories.EntityStore, bookingService *services.BookingService, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())

	authCtrl := controllers.NewAuthController()
	bookingCtrl := controllers.NewBookingController(bookingService, store)
	tableCtrl := controllers.NewTableController(store, bookingService)
	customerCtrl := controllers.NewCustomerController(store)
	settingsCtrl := controllers.NewSettingsController(store)
	notifCtrl := controllers.NewNotificationController(bookingService, store)
	dashboardCtrl := controllers.NewDashboardController(bookingCtrl)

	api := r.Group("/api")

	// Auth
	api.POST("/auth", middlewares.NewStrictRateLimiter(), authCtrl.Login)
	api.GET("/auth/verify", middlewares.AuthMiddleware(), authCtrl.Verify)
	api.DELETE("/auth", middlewares.AuthMiddleware(), authCtrl.Logout)

	// Public booking flow
	api.GET("/tables", middlewares.CacheMiddleware(rdb, 30*time.Second), tableCtrl.GetActiveTables)
	api.GET("/tables/availability", tableCtrl.GetAvailability)
	api.POST("/bookings", bookingCtrl.CreateBooking)

	// Admin
	admin := api.Group("", middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		admin.GET("/bookings", bookingCtrl.GetBookings)
		admin.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		admin.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		admin.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)

		admin.GET("/tables/all", tableCtrl.GetAllTables)
		admin.GET("/tables/:table_id", tableCtrl.GetTableByID)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)

		admin.GET("/customers", customerCtrl.GetAllCustomers)
		admin.POST("/customers", customerCtrl.CreateCustomer)
		admin.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)

		admin.GET("/settings", settingsCtrl.GetSettings)
		admin.PATCH("/settings", settingsCtrl.UpdateSettings)

		admin.POST("/notifications", notifCtrl.SendNotification)
		admin.GET("/dashboard/stats", dashboardCtrl.Stats)
	}

	// Websocket dashboard stream (token rides in the query string)
	r.GET("/ws/dashboard", middlewares.WebSocketAuthMiddleware(), dashboardCtrl.Stream)

	return r
}

package routes

import (
	"time"

	"gymflow/config"
	"gymflow/handlers"
	"gymflow/middleware"
	"gymflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterClassRoutes registers class and session endpoints.
func RegisterClassRoutes(api *gin.RouterGroup, h *handlers.ClassHandler) {
	classes := api.Group("/classes")
	{
		classes.POST("", h.CreateClassHandler)
		classes.GET("", h.ListClassesHandler)
		classes.GET("/:id", h.GetClassHandler)
		classes.PUT("/:id", h.UpdateClassHandler)
		classes.PUT("/:id/with-sessions", h.UpdateClassWithSessionsHandler)
		classes.DELETE("/:id", h.DeleteClassHandler)

		classes.GET("/:id/sessions", h.ListSessionsHandler)
		classes.POST("/:id/sessions", h.AddSessionsHandler)
		classes.GET("/:id/sessions/:sessionId", h.GetSessionHandler)
		classes.PUT("/:id/sessions/:sessionId", h.UpdateSessionHandler)
		classes.DELETE("/:id/sessions/:sessionId", h.DeleteSessionHandler)
	}
}

// RegisterMemberRoutes registers gym member endpoints.
func RegisterMemberRoutes(api *gin.RouterGroup, h *handlers.MemberHandler) {
	members := api.Group("/members")
	{
		members.POST("", h.CreateMemberHandler)
		members.GET("", h.ListMembersHandler)
		members.GET("/:id", h.GetMemberHandler)
		members.PUT("/:id", h.UpdateMemberHandler)
		members.DELETE("/:id", h.DeleteMemberHandler)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, h *handlers.BookingHandler) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("/book", h.BookClassHandler)
		bookings.GET("/:id", h.GetBookingHandler)
		bookings.DELETE("/:id", h.CancelBookingHandler)
		bookings.GET("/member/:memberId", h.ListMemberBookingsHandler)
		bookings.GET("/class/:classId", h.ListClassBookingsHandler)
	}
}

func RegisterReportRoutes(api *gin.RouterGroup, h *handlers.ReportHandler) {
	api.GET("/reports/members/:memberId", h.MemberReportHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	origins := config.AppConfig.CORSOrigins
	if len(origins) == 0 || containsWildcard(origins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	RegisterClassRoutes(api, hb.Classes)
	RegisterMemberRoutes(api, hb.Members)
	RegisterBookingRoutes(api, hb.Bookings)
	RegisterReportRoutes(api, hb.Reports)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

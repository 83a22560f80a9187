package routes

import (
	"time"

	"profilewizard/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterLocationRoutes registers the cascading lookup endpoints.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/countries", hb.GetCountriesHandler)
		api.GET("/states/:country", hb.GetStatesHandler)
		api.GET("/cities/:state", hb.GetCitiesHandler)
	}
}

// RegisterProfileRoutes registers profile creation and photo upload.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/user", hb.CreateProfileHandler)
		api.POST("/upload", hb.UploadPhotoHandler)
	}
}

// RegisterUploadsRoute serves stored photos when they live on local disk.
func RegisterUploadsRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.UploadDir == "" {
		return
	}
	r.Static("/uploads", hb.UploadDir)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	h := hb.HealthHandler
	if h == nil {
		h = handlers.HealthHandler
	}
	r.GET("/health", h)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterLocationRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterUploadsRoute(r, hb)
	RegisterHealthRoute(r, hb)
}

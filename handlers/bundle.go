package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by the routes package.
type HandlerBundle struct {
	// Location endpoints
	GetCountriesHandler gin.HandlerFunc
	GetStatesHandler    gin.HandlerFunc
	GetCitiesHandler    gin.HandlerFunc

	// Profile endpoints
	CreateProfileHandler gin.HandlerFunc
	UploadPhotoHandler   gin.HandlerFunc

	HealthHandler gin.HandlerFunc

	// UploadDir is served under /uploads when set.
	UploadDir string
}

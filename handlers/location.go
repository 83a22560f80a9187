package handlers

import (
	"errors"
	"net/http"

	"profilewizard/services/location"
	"profilewizard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LocationHandler serves the country/state/city lookups.
type LocationHandler struct {
	Service location.LocationService
}

func NewLocationHandler(svc location.LocationService) *LocationHandler {
	return &LocationHandler{Service: svc}
}

// GetCountriesHandler handles GET /api/countries.
func (h *LocationHandler) GetCountriesHandler(c *gin.Context) {
	countries, err := h.Service.ListCountries(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list countries", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list countries")
		return
	}
	c.JSON(http.StatusOK, countries)
}

// GetStatesHandler handles GET /api/states/:country.
func (h *LocationHandler) GetStatesHandler(c *gin.Context) {
	country := c.Param("country")
	states, err := h.Service.ListStates(c.Request.Context(), country)
	if err != nil {
		h.lookupError(c, err, zap.String("country", country))
		return
	}
	c.JSON(http.StatusOK, states)
}

// GetCitiesHandler handles GET /api/cities/:state. The optional country query
// parameter picks the country when several share the state name.
func (h *LocationHandler) GetCitiesHandler(c *gin.Context) {
	state := c.Param("state")
	country := c.Query("country")
	cities, err := h.Service.ListCities(c.Request.Context(), country, state)
	if err != nil {
		h.lookupError(c, err, zap.String("country", country), zap.String("state", state))
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *LocationHandler) lookupError(c *gin.Context, err error, fields ...zap.Field) {
	logger := getLogger(c)
	if errors.Is(err, location.ErrCountryNotFound) || errors.Is(err, location.ErrStateNotFound) {
		logger.Info("Location not found", append(fields, zap.Error(err))...)
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	}
	logger.Error("Location lookup failed", append(fields, zap.Error(err))...)
	utils.JSONError(c, http.StatusInternalServerError, "Failed to look up location")
}

package location

import (
	"context"
	"errors"

	locationRepo "profilewizard/database/repository/location"
	"profilewizard/models"
)

var (
	ErrCountryNotFound = errors.New("Country not found")
	ErrStateNotFound   = errors.New("State not found")
)

// LocationService answers the cascading country -> state -> city lookups.
type LocationService interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	// ListStates returns ErrCountryNotFound for an unknown country.
	ListStates(ctx context.Context, country string) ([]string, error)
	// ListCities returns ErrStateNotFound for an unknown state. When country
	// is empty the first country in dataset order that has the state is used.
	ListCities(ctx context.Context, country, state string) ([]string, error)
}

// DefaultLocationService is the production implementation.
type DefaultLocationService struct {
	Repo locationRepo.LocationRepository
}

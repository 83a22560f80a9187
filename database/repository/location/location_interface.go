package locationRepo

import (
	"context"

	"profilewizard/models"
)

// LocationRepository is read access to the country/state/city dataset.
type LocationRepository interface {
	// Countries returns every country with its states, in dataset order.
	Countries(ctx context.Context) ([]models.Country, error)
	// Cities returns the cities of state within country. ok is false when the
	// pair is unknown.
	Cities(ctx context.Context, country, state string) (cities []string, ok bool, err error)
}

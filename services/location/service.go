package location

import (
	"context"
	"fmt"

	"profilewizard/models"
)

func (s *DefaultLocationService) ListCountries(ctx context.Context) ([]models.Country, error) {
	countries, err := s.Repo.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (s *DefaultLocationService) ListStates(ctx context.Context, country string) ([]string, error) {
	countries, err := s.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range countries {
		if c.Name == country {
			return c.States, nil
		}
	}
	return nil, ErrCountryNotFound
}

func (s *DefaultLocationService) ListCities(ctx context.Context, country, state string) ([]string, error) {
	if country == "" {
		resolved, err := s.countryOfState(ctx, state)
		if err != nil {
			return nil, err
		}
		country = resolved
	}

	cities, ok, err := s.Repo.Cities(ctx, country, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	if !ok {
		return nil, ErrStateNotFound
	}
	return cities, nil
}

// countryOfState resolves a bare state name to the first country holding it.
func (s *DefaultLocationService) countryOfState(ctx context.Context, state string) (string, error) {
	countries, err := s.ListCountries(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range countries {
		for _, st := range c.States {
			if st == state {
				return c.Name, nil
			}
		}
	}
	return "", ErrStateNotFound
}

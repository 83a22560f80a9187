package locationRepo

import (
	"context"

	"profilewizard/models"
)

type stateEntry struct {
	name   string
	cities []string
}

type countryEntry struct {
	name   string
	states []stateEntry
}

// defaultDataset is the built-in reference data.
var defaultDataset = []countryEntry{
	{name: "USA", states: []stateEntry{
		{name: "California", cities: []string{"Los Angeles", "San Francisco"}},
		{name: "Texas", cities: []string{"Houston", "Dallas"}},
		{name: "New York", cities: []string{"New York City", "Buffalo"}},
	}},
	{name: "India", states: []stateEntry{
		{name: "Maharashtra", cities: []string{"Mumbai", "Pune"}},
		{name: "Karnataka", cities: []string{"Bangalore", "Mysore"}},
		{name: "Delhi", cities: []string{"New Delhi", "Old Delhi"}},
	}},
}

// StaticLocationRepo serves an immutable in-memory dataset.
type StaticLocationRepo struct {
	countries []countryEntry
}

// NewStaticLocationRepo returns a repository over the built-in dataset.
func NewStaticLocationRepo() *StaticLocationRepo {
	return &StaticLocationRepo{countries: defaultDataset}
}

// NewStaticLocationRepoFrom builds a repository from a country -> state -> cities
// mapping. Country order follows the countries slice.
func NewStaticLocationRepoFrom(countries []models.Country, cities map[string]map[string][]string) *StaticLocationRepo {
	entries := make([]countryEntry, 0, len(countries))
	for _, c := range countries {
		ce := countryEntry{name: c.Name}
		for _, s := range c.States {
			ce.states = append(ce.states, stateEntry{name: s, cities: cities[c.Name][s]})
		}
		entries = append(entries, ce)
	}
	return &StaticLocationRepo{countries: entries}
}

func (r *StaticLocationRepo) Countries(context.Context) ([]models.Country, error) {
	out := make([]models.Country, 0, len(r.countries))
	for _, c := range r.countries {
		states := make([]string, 0, len(c.states))
		for _, s := range c.states {
			states = append(states, s.name)
		}
		out = append(out, models.Country{Name: c.name, States: states})
	}
	return out, nil
}

func (r *StaticLocationRepo) Cities(_ context.Context, country, state string) ([]string, bool, error) {
	for _, c := range r.countries {
		if c.name != country {
			continue
		}
		for _, s := range c.states {
			if s.name == state {
				return append([]string(nil), s.cities...), true, nil
			}
		}
	}
	return nil, false, nil
}

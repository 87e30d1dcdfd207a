// Package seed loads a YAML catalog of cities, activities and trips and
// writes it through the services, so seeded data passes the same validation
// as API input.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Catalog is the document format of a seed file:
//
//	cities:
//	  - name: Rome
//	    country: Italy
//	    activities:
//	      - {name: Colosseum, type: attraction, cost: 18, duration: 120}
//	trips:
//	  - {title: Rome in June, destination: Italy, start_date: 2025-06-01, end_date: 2025-06-03}
type Catalog struct {
	Cities []City `yaml:"cities"`
	Trips  []Trip `yaml:"trips"`
}

// City is a catalog city with the activities offered there.
type City struct {
	Name       string     `yaml:"name"`
	Country    string     `yaml:"country"`
	Activities []Activity `yaml:"activities"`
}

type Activity struct {
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	Cost        float64 `yaml:"cost"`
	Duration    int     `yaml:"duration"`
	Description string  `yaml:"description"`
}

type Trip struct {
	Title       string `yaml:"title"`
	Destination string `yaml:"destination"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	Notes       string `yaml:"notes"`
}

// Parse decodes a catalog. Unknown fields are rejected so typos surface.
func Parse(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("seed.Parse: %w", err)
	}
	return c, nil
}

// CityCreator creates or finds a city. Satisfied by *service.CityService.
type CityCreator interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
}

// ActivityCreator is satisfied by *service.ActivityService.
type ActivityCreator interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
}

// TripCreator is satisfied by *service.TripService.
type TripCreator interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

// Result counts what Apply created.
type Result struct {
	Cities     int
	Activities int
	Trips      []domain.Trip
}

// Apply writes the catalog in file order and stops at the first error.
// Cities are upserted, so re-applying a file does not duplicate them;
// activities and trips are always created.
func Apply(ctx context.Context, c Catalog, cities CityCreator, activities ActivityCreator, trips TripCreator) (Result, error) {
	var res Result
	for _, city := range c.Cities {
		if _, err := cities.Create(ctx, domain.City{Name: city.Name, Country: city.Country}); err != nil {
			return res, fmt.Errorf("seed.Apply: city %q: %w", city.Name, err)
		}
		res.Cities++
		for _, a := range city.Activities {
			_, err := activities.Create(ctx, domain.Activity{
				Name:        a.Name,
				Type:        domain.ActivityType(a.Type),
				Cost:        a.Cost,
				Duration:    a.Duration,
				Description: a.Description,
			})
			if err != nil {
				return res, fmt.Errorf("seed.Apply: activity %q: %w", a.Name, err)
			}
			res.Activities++
		}
	}
	for _, t := range c.Trips {
		trip, err := t.toDomain()
		if err != nil {
			return res, fmt.Errorf("seed.Apply: trip %q: %w", t.Title, err)
		}
		created, err := trips.Create(ctx, trip)
		if err != nil {
			return res, fmt.Errorf("seed.Apply: trip %q: %w", t.Title, err)
		}
		res.Trips = append(res.Trips, created)
	}
	return res, nil
}

func (t Trip) toDomain() (domain.Trip, error) {
	start, err := time.Parse(time.DateOnly, t.StartDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	end, err := time.Parse(time.DateOnly, t.EndDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return domain.Trip{
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   start,
		EndDate:     end,
		Notes:       t.Notes,
	}, nil
}

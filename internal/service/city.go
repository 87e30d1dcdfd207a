package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// CityService implements business logic for the city catalog.
type CityService struct {
	cities repo.CityRepo
}

// NewCityService constructs a CityService backed by the provided CityRepo.
func NewCityService(cities repo.CityRepo) *CityService {
	return &CityService{cities: cities}
}

// Create adds a city to the catalog, or returns the existing city with the
// same name and country. Returns domain.ErrValidation if name is empty.
func (s *CityService) Create(ctx context.Context, city domain.City) (domain.City, error) {
	city.Name = strings.TrimSpace(city.Name)
	city.Country = strings.TrimSpace(city.Country)
	if city.Name == "" {
		return domain.City{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.cities.Upsert(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.Create: %w", err)
	}
	return result, nil
}

func (s *CityService) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	result, err := s.cities.GetByID(ctx, id)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.GetByID: %w", err)
	}
	return result, nil
}

// List returns cities whose name starts with prefix.
func (s *CityService) List(ctx context.Context, prefix string) ([]domain.City, error) {
	cities, err := s.cities.List(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("service.CityService.List: %w", err)
	}
	if cities == nil {
		cities = []domain.City{}
	}
	return cities, nil
}

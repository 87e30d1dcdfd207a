package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ActivityService implements business logic for the activity catalog.
type ActivityService struct {
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided ActivityRepo.
func NewActivityService(activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{activities: activities}
}

// Create validates and persists a catalog activity. The type is normalized
// so unknown values are stored as domain.ActivityTypeActivity.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.Type = domain.NormalizeActivityType(string(a.Type))
	if err := validateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	result, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return result, nil
}

func (s *ActivityService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	activities, total, err := s.activities.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ActivityService.ListPaged: %w", err)
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, total, nil
}

func validateActivity(a domain.Activity) error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if a.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if a.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrValidation)
	}
	return nil
}

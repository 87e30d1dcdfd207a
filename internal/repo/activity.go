package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for the activity catalog.
type ActivityRepo interface {
	// Create inserts a catalog activity and returns the persisted record.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves an activity by primary key.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListPaged returns one page of activities ordered by name and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

// cost is stored as NUMERIC and read back as float8 so it scans into float64.
const activityColumns = `id, name, type, cost::float8, duration, description, created_at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (name, type, cost, duration, description)
		VALUES (@name, @type, @cost, @duration, @description)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"name":        a.Name,
		"type":        string(a.Type),
		"cost":        a.Cost,
		"duration":    a.Duration,
		"description": a.Description,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		ORDER BY name, created_at
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM activities`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: rows: %w", err)
	}
	return activities, total, nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a       domain.Activity
		id      pgtype.UUID
		actType string
	)
	err := s.Scan(&id, &a.Name, &actType, &a.Cost, &a.Duration, &a.Description, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.Type = domain.ActivityType(actType)
	return a, nil
}

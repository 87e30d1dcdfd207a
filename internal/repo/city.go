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

// CityRepo defines the persistence operations for the city catalog.
type CityRepo interface {
	// Upsert inserts a city, or returns the existing row when a city with the
	// same name and country already exists.
	Upsert(ctx context.Context, city domain.City) (domain.City, error)

	// GetByID retrieves a city by primary key.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.City, error)

	// List returns all cities whose name starts with prefix (case-insensitive),
	// ordered by name. An empty prefix returns every city.
	List(ctx context.Context, prefix string) ([]domain.City, error)
}

// pgCityRepo is the Postgres implementation of CityRepo.
type pgCityRepo struct {
	db db
}

// NewCityRepo constructs a CityRepo backed by the provided db connection.
func NewCityRepo(db db) CityRepo {
	return &pgCityRepo{db: db}
}

// Upsert inserts a city or returns the existing row on (name, country) conflict.
// DO UPDATE SET is a no-op write that makes RETURNING fire on conflict too.
func (r *pgCityRepo) Upsert(ctx context.Context, city domain.City) (domain.City, error) {
	const q = `
		INSERT INTO cities (name, country)
		VALUES (@name, @country)
		ON CONFLICT (name, country) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, country, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": city.Name, "country": city.Country})
	result, err := scanCity(row)
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	const q = `SELECT id, name, country, created_at FROM cities WHERE id = @id`

	result, err := scanCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) List(ctx context.Context, prefix string) ([]domain.City, error) {
	const q = `
		SELECT id, name, country, created_at
		FROM cities
		WHERE lower(name) LIKE lower(@prefix) || '%'
		ORDER BY name, country`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.CityRepo.List: %w", err)
	}
	defer rows.Close()

	cities := []domain.City{}
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CityRepo.List: scan: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CityRepo.List: rows: %w", err)
	}
	return cities, nil
}

func scanCity(s scanner) (domain.City, error) {
	var (
		c  domain.City
		id pgtype.UUID
	)
	if err := s.Scan(&id, &c.Name, &c.Country, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, domain.ErrNotFound
		}
		return domain.City{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}

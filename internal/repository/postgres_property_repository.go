package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homevista/homevista-backend/internal/domain"
)

// PostgresPropertyRepository implements PropertyRepository using PostgreSQL
type PostgresPropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPropertyRepository creates a new PostgresPropertyRepository
func NewPostgresPropertyRepository(pool *pgxpool.Pool) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{pool: pool}
}

const propertyColumns = `id, title, description, price, type, location, bedrooms, bathrooms, area, images, created_at, updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	p := &domain.Property{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Type,
		&p.Location,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.Images,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a property by ID
func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE id = $1
	`
	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListByType retrieves all properties of a listing category, newest first
func (r *PostgresPropertyRepository) ListByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE type = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, propertyType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProperties(rows)
}

// List retrieves all properties, newest first
func (r *PostgresPropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProperties(rows)
}

// Count returns the total number of properties
func (r *PostgresPropertyRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM properties`
	var count int64
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func collectProperties(rows pgx.Rows) ([]*domain.Property, error) {
	properties := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

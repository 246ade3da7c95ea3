package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Studio) error
	GetByID(ctx context.Context, id string) (*Studio, error)
	List(ctx context.Context, filter Filter) ([]*Studio, int, error)
	Update(ctx context.Context, s *Studio) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const studioColumns = `
	id, owner_id, name, description, address, city, state, country, postal_code,
	phone, email, latitude, longitude,
	amenity_wifi, amenity_parking, amenity_lounge, amenity_kitchen,
	amenity_air_conditioning, amenity_wheelchair_access,
	created_at, updated_at
`

func scanStudio(row pgx.Row) (*Studio, error) {
	var s Studio
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Address, &s.City, &s.State,
		&s.Country, &s.PostalCode, &s.Phone, &s.Email, &s.Latitude, &s.Longitude,
		&s.Amenities.WiFi, &s.Amenities.Parking, &s.Amenities.Lounge, &s.Amenities.Kitchen,
		&s.Amenities.AirConditioning, &s.Amenities.WheelchairAccess,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan studio failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Studio) error {
	const query = `
		INSERT INTO public.studios (
			owner_id, name, description, address, city, state, country, postal_code,
			phone, email, latitude, longitude,
			amenity_wifi, amenity_parking, amenity_lounge, amenity_kitchen,
			amenity_air_conditioning, amenity_wheelchair_access
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		s.OwnerID, s.Name, s.Description, s.Address, s.City, s.State, s.Country, s.PostalCode,
		s.Phone, s.Email, s.Latitude, s.Longitude,
		s.Amenities.WiFi, s.Amenities.Parking, s.Amenities.Lounge, s.Amenities.Kitchen,
		s.Amenities.AirConditioning, s.Amenities.WheelchairAccess,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create studio failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM public.studios WHERE id = $1`
	return scanStudio(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Studio, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "owner_id", "name", "description", "address", "city", "state", "country", "postal_code",
		"phone", "email", "latitude", "longitude",
		"amenity_wifi", "amenity_parking", "amenity_lounge", "amenity_kitchen",
		"amenity_air_conditioning", "amenity_wheelchair_access",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.studios")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.City != "" {
		query = query.Where(squirrel.Eq{"city": filter.City})
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"address": like},
		})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list studios query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list studios failed: %w", err)
	}
	defer rows.Close()

	var studios []*Studio
	var total int

	for rows.Next() {
		var s Studio
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Address, &s.City, &s.State,
			&s.Country, &s.PostalCode, &s.Phone, &s.Email, &s.Latitude, &s.Longitude,
			&s.Amenities.WiFi, &s.Amenities.Parking, &s.Amenities.Lounge, &s.Amenities.Kitchen,
			&s.Amenities.AirConditioning, &s.Amenities.WheelchairAccess,
			&s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan studio failed: %w", err)
		}
		studios = append(studios, &s)
	}

	return studios, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Studio) error {
	const query = `
		UPDATE public.studios
		SET name = $1, description = $2, address = $3, city = $4, state = $5,
			country = $6, postal_code = $7, phone = $8, email = $9,
			latitude = $10, longitude = $11,
			amenity_wifi = $12, amenity_parking = $13, amenity_lounge = $14,
			amenity_kitchen = $15, amenity_air_conditioning = $16,
			amenity_wheelchair_access = $17,
			updated_at = now()
		WHERE id = $18
	`
	ct, err := r.pool.Exec(ctx, query,
		s.Name, s.Description, s.Address, s.City, s.State, s.Country, s.PostalCode,
		s.Phone, s.Email, s.Latitude, s.Longitude,
		s.Amenities.WiFi, s.Amenities.Parking, s.Amenities.Lounge, s.Amenities.Kitchen,
		s.Amenities.AirConditioning, s.Amenities.WheelchairAccess,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update studio failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.studios WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete studio failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

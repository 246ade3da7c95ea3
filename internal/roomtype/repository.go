package roomtype

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context) ([]*RoomType, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rt *RoomType) error {
	const query = `
		INSERT INTO public.room_types (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, rt.Name, rt.Description).
		Scan(&rt.ID, &rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("create room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	const query = `
		SELECT id, name, description, created_at
		FROM public.room_types
		WHERE id = $1
	`
	var rt RoomType
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*RoomType, error) {
	const query = `
		SELECT id, name, description, created_at
		FROM public.room_types
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var types []*RoomType
	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room type failed: %w", err)
		}
		types = append(types, &rt)
	}
	return types, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.room_types WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

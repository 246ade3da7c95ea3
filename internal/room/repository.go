package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const roomColumns = `
	id, studio_id, room_type_id, name, description, hourly_rate_cents,
	minimum_hours, timezone,
	equip_drum_kit, equip_piano, equip_pa_system, equip_microphones,
	equip_guitar_amp, equip_bass_amp, equip_monitors,
	created_at, updated_at
`

func scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(
		&rm.ID, &rm.StudioID, &rm.RoomTypeID, &rm.Name, &rm.Description,
		&rm.HourlyRateCents, &rm.MinimumHours, &rm.Timezone,
		&rm.Equipment.DrumKit, &rm.Equipment.Piano, &rm.Equipment.PASystem,
		&rm.Equipment.Microphones, &rm.Equipment.GuitarAmp, &rm.Equipment.BassAmp,
		&rm.Equipment.Monitors,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	const query = `
		INSERT INTO public.rooms (
			studio_id, room_type_id, name, description, hourly_rate_cents,
			minimum_hours, timezone,
			equip_drum_kit, equip_piano, equip_pa_system, equip_microphones,
			equip_guitar_amp, equip_bass_amp, equip_monitors
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		rm.StudioID, rm.RoomTypeID, rm.Name, rm.Description, rm.HourlyRateCents,
		rm.MinimumHours, rm.Timezone,
		rm.Equipment.DrumKit, rm.Equipment.Piano, rm.Equipment.PASystem,
		rm.Equipment.Microphones, rm.Equipment.GuitarAmp, rm.Equipment.BassAmp,
		rm.Equipment.Monitors,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM public.rooms WHERE id = $1`
	return scanRoom(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "studio_id", "room_type_id", "name", "description", "hourly_rate_cents",
		"minimum_hours", "timezone",
		"equip_drum_kit", "equip_piano", "equip_pa_system", "equip_microphones",
		"equip_guitar_amp", "equip_bass_amp", "equip_monitors",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.rooms")

	if filter.StudioID != "" {
		query = query.Where(squirrel.Eq{"studio_id": filter.StudioID})
	}
	if filter.RoomTypeID != "" {
		query = query.Where(squirrel.Eq{"room_type_id": filter.RoomTypeID})
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
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int

	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.StudioID, &rm.RoomTypeID, &rm.Name, &rm.Description,
			&rm.HourlyRateCents, &rm.MinimumHours, &rm.Timezone,
			&rm.Equipment.DrumKit, &rm.Equipment.Piano, &rm.Equipment.PASystem,
			&rm.Equipment.Microphones, &rm.Equipment.GuitarAmp, &rm.Equipment.BassAmp,
			&rm.Equipment.Monitors,
			&rm.CreatedAt, &rm.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	const query = `
		UPDATE public.rooms
		SET name = $1, description = $2, hourly_rate_cents = $3, minimum_hours = $4,
			timezone = $5,
			equip_drum_kit = $6, equip_piano = $7, equip_pa_system = $8,
			equip_microphones = $9, equip_guitar_amp = $10, equip_bass_amp = $11,
			equip_monitors = $12,
			updated_at = now()
		WHERE id = $13
	`
	ct, err := r.pool.Exec(ctx, query,
		rm.Name, rm.Description, rm.HourlyRateCents, rm.MinimumHours, rm.Timezone,
		rm.Equipment.DrumKit, rm.Equipment.Piano, rm.Equipment.PASystem,
		rm.Equipment.Microphones, rm.Equipment.GuitarAmp, rm.Equipment.BassAmp,
		rm.Equipment.Monitors,
		rm.ID,
	)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.rooms WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

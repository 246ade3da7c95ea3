package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByRoom(ctx context.Context, roomID string) ([]*Day, error)
	// InsertDefaults writes the given rows, skipping weekdays that already
	// have a row. Safe to call repeatedly for the same room.
	InsertDefaults(ctx context.Context, days []*Day) error
	UpdateDay(ctx context.Context, roomID string, patch DayPatch) (*Day, error)
	// UpsertDays replaces the settings of every listed weekday in a single
	// transaction.
	UpsertDays(ctx context.Context, roomID string, patches []DayPatch) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const dayColumns = `
	id, room_id, day_of_week, is_available,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	created_at, updated_at
`

func (r *pgxRepository) GetByRoom(ctx context.Context, roomID string) ([]*Day, error) {
	query := `
		SELECT ` + dayColumns + `
		FROM public.room_availability
		WHERE room_id = $1
		ORDER BY day_of_week
	`
	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("get availability failed: %w", err)
	}
	defer rows.Close()

	var days []*Day
	for rows.Next() {
		var d Day
		if err := rows.Scan(
			&d.ID, &d.RoomID, &d.DayOfWeek, &d.IsAvailable,
			&d.StartTime, &d.EndTime, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan availability day failed: %w", err)
		}
		days = append(days, &d)
	}
	return days, nil
}

func (r *pgxRepository) InsertDefaults(ctx context.Context, days []*Day) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO public.room_availability (room_id, day_of_week, is_available, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, day_of_week) DO NOTHING
	`
	for _, d := range days {
		if _, err := tx.Exec(ctx, query, d.RoomID, d.DayOfWeek, d.IsAvailable, d.StartTime, d.EndTime); err != nil {
			return fmt.Errorf("insert default availability failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) UpdateDay(ctx context.Context, roomID string, patch DayPatch) (*Day, error) {
	const query = `
		UPDATE public.room_availability
		SET is_available = $1, start_time = $2, end_time = $3, updated_at = now()
		WHERE room_id = $4 AND day_of_week = $5
		RETURNING id, room_id, day_of_week, is_available,
			to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
			created_at, updated_at
	`
	var d Day
	err := r.pool.QueryRow(ctx, query,
		patch.IsAvailable, patch.StartTime, patch.EndTime, roomID, patch.DayOfWeek,
	).Scan(
		&d.ID, &d.RoomID, &d.DayOfWeek, &d.IsAvailable,
		&d.StartTime, &d.EndTime, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update availability day failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) UpsertDays(ctx context.Context, roomID string, patches []DayPatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO public.room_availability (room_id, day_of_week, is_available, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, day_of_week) DO UPDATE
		SET is_available = EXCLUDED.is_available,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = now()
	`
	for _, p := range patches {
		if _, err := tx.Exec(ctx, query, roomID, p.DayOfWeek, p.IsAvailable, p.StartTime, p.EndTime); err != nil {
			return fmt.Errorf("upsert availability day failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

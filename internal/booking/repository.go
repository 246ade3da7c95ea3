package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateConfirmation signals an insert that lost to an earlier row
// with the same payment confirmation id. Not a failure: the caller fetches
// and returns the existing booking.
var ErrDuplicateConfirmation = errors.New("confirmation already recorded")

type Repository interface {
	ListCompletedOnDate(ctx context.Context, roomID, date string) ([]*Booking, error)
	HasOverlap(ctx context.Context, roomID, date, startTime, endTime string) (bool, error)
	// InsertCompleted writes the booking, returning ErrDuplicateConfirmation
	// when the confirmation id is already recorded and ErrSlotTaken when
	// another completed booking holds the same slot.
	InsertCompleted(ctx context.Context, b *Booking) error
	GetByConfirmationID(ctx context.Context, confirmationID string) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error)

	SaveAttempt(ctx context.Context, a *Attempt) error
	GetAttempt(ctx context.Context, confirmationID string) (*Attempt, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Constraint names the insert discriminates on.
const (
	confirmationConstraint = "bookings_payment_confirmation_id_key"
	slotConstraint         = "bookings_completed_slot_idx"
)

const bookingColumns = `
	id, room_id, customer_id, customer_email, customer_name,
	to_char(booking_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	hours, amount_total_cents, currency, payment_confirmation_id, status,
	created_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.RoomID, &b.CustomerID, &b.CustomerEmail, &b.CustomerName,
		&b.BookingDate, &b.StartTime, &b.EndTime,
		&b.Hours, &b.AmountTotalCents, &b.Currency, &b.PaymentConfirmationID,
		&b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) ListCompletedOnDate(ctx context.Context, roomID, date string) ([]*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings
		WHERE room_id = $1 AND booking_date = $2 AND status = $3
		ORDER BY start_time
	`
	rows, err := r.pool.Query(ctx, query, roomID, date, StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.CustomerID, &b.CustomerEmail, &b.CustomerName,
			&b.BookingDate, &b.StartTime, &b.EndTime,
			&b.Hours, &b.AmountTotalCents, &b.Currency, &b.PaymentConfirmationID,
			&b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID, date, startTime, endTime string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID, "booking_date": date, "status": StatusCompleted}).
		Where("start_time < ?", endTime).
		Where("end_time > ?", startTime).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build overlap query failed: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("overlap check failed: %w", err)
	}
	return true, nil
}

func (r *pgxRepository) InsertCompleted(ctx context.Context, b *Booking) error {
	const query = `
		INSERT INTO public.bookings (
			room_id, customer_id, customer_email, customer_name,
			booking_date, start_time, end_time, hours,
			amount_total_cents, currency, payment_confirmation_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		b.RoomID, b.CustomerID, b.CustomerEmail, b.CustomerName,
		b.BookingDate, b.StartTime, b.EndTime, b.Hours,
		b.AmountTotalCents, b.Currency, b.PaymentConfirmationID, StatusCompleted,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case confirmationConstraint:
				return ErrDuplicateConfirmation
			case slotConstraint:
				return ErrSlotTaken
			}
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	b.Status = StatusCompleted
	return nil
}

func (r *pgxRepository) GetByConfirmationID(ctx context.Context, confirmationID string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM public.bookings WHERE payment_confirmation_id = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, confirmationID))
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query := `
		SELECT ` + bookingColumns + `, count(*) OVER() as total_count
		FROM public.bookings
		WHERE customer_id = $1
		ORDER BY booking_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, customerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list customer bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.CustomerID, &b.CustomerEmail, &b.CustomerName,
			&b.BookingDate, &b.StartTime, &b.EndTime,
			&b.Hours, &b.AmountTotalCents, &b.Currency, &b.PaymentConfirmationID,
			&b.Status, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) SaveAttempt(ctx context.Context, a *Attempt) error {
	const query = `
		INSERT INTO public.booking_attempts (
			confirmation_id, room_id, customer_id, booking_date,
			start_time, end_time, hours, timezone, amount_cents, currency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (confirmation_id) DO NOTHING
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		a.ConfirmationID, a.RoomID, a.CustomerID, a.BookingDate,
		a.StartTime, a.EndTime, a.Hours, a.Timezone, a.AmountCents, a.Currency,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already saved for this handle; nothing to do.
			return nil
		}
		return fmt.Errorf("save booking attempt failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetAttempt(ctx context.Context, confirmationID string) (*Attempt, error) {
	const query = `
		SELECT id, confirmation_id, room_id, customer_id,
			to_char(booking_date, 'YYYY-MM-DD'),
			to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
			hours, timezone, amount_cents, currency, created_at
		FROM public.booking_attempts
		WHERE confirmation_id = $1
	`
	var a Attempt
	err := r.pool.QueryRow(ctx, query, confirmationID).Scan(
		&a.ID, &a.ConfirmationID, &a.RoomID, &a.CustomerID,
		&a.BookingDate, &a.StartTime, &a.EndTime,
		&a.Hours, &a.Timezone, &a.AmountCents, &a.Currency, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get booking attempt failed: %w", err)
	}
	return &a, nil
}

package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the authoritative store for bookings. Create must be
// atomic with respect to the no-overlap invariant: if an overlapping row
// exists at commit time it fails with ErrConflict, regardless of any check
// the caller performed beforehand.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// ListByRoom returns all bookings for a room ordered by start time.
	ListByRoom(ctx context.Context, roomID string) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// Delete removes a booking. It fails with ErrNotFound if the booking
	// does not exist and ErrPermissionDenied if requesterID is not the owner.
	Delete(ctx context.Context, id string, requesterID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository returns a Repository backed by Postgres. The bookings
// table carries an exclusion constraint over
// (room_id WITH =, tstzrange(start_time, end_time) WITH &&), so overlapping
// inserts are rejected atomically by the database itself.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "room_id", "start_time", "end_time", "note").
		Values(b.UserID, b.RoomID, b.StartTime, b.EndTime, b.Note).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.user_id", "b.room_id", "r.name",
		"b.start_time", "b.end_time", "b.note", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.RoomName,
		&b.StartTime, &b.EndTime, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) ListByRoom(ctx context.Context, roomID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.user_id", "b.room_id", "r.name",
		"b.start_time", "b.end_time", "b.note", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Where(squirrel.Eq{"b.room_id": roomID}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings by room query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings by room failed: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "b.room_id", "r.name",
		"b.start_time", "b.end_time", "b.note", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id")

	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}

	query = query.OrderBy("b.start_time ASC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.RoomID, &b.RoomName,
			&b.StartTime, &b.EndTime, &b.Note, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string, requesterID string) error {
	// Fetch the owner first so a missing booking and a foreign booking
	// report as distinct errors.
	const ownerQuery = `SELECT user_id FROM public.bookings WHERE id = $1`

	var ownerID string
	if err := r.pool.QueryRow(ctx, ownerQuery, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get booking owner failed: %w", err)
	}

	if ownerID != requesterID {
		return ErrPermissionDenied
	}

	const deleteQuery = `DELETE FROM public.bookings WHERE id = $1 AND user_id = $2`
	ct, err := r.pool.Exec(ctx, deleteQuery, id, requesterID)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The booking vanished between the owner check and the delete.
		return ErrNotFound
	}
	return nil
}

func scanBookings(rows pgx.Rows) ([]*Booking, error) {
	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.RoomID, &b.RoomName,
			&b.StartTime, &b.EndTime, &b.Note, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

package postgres

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

const bookingColumns = `b.id, b.user_id, b.event_id, b.role, b.status, b.booked_at, b.proof_key, b.reflection,
	b.hours_earned, b.completed_at`

// bookingJoinColumns adds the event and user fields shown in listings.
const bookingJoinColumns = bookingColumns + `, e.title, e.start_at,
	CASE WHEN b.role = 'mentor' THEN e.points_mentor ELSE e.points_participant END, u.name`

const bookingJoin = ` FROM event_bookings b JOIN events e ON e.id = b.event_id JOIN users u ON u.id = b.user_id`

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.UserID, &b.EventID, &b.Role, &b.Status, &b.BookedAt, &b.ProofKey, &b.Reflection,
		&b.HoursEarned, &b.CompletedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scanBookingJoined(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var startAt time.Time
	err := row.Scan(&b.ID, &b.UserID, &b.EventID, &b.Role, &b.Status, &b.BookedAt, &b.ProofKey, &b.Reflection,
		&b.HoursEarned, &b.CompletedAt, &b.EventTitle, &startAt, &b.EventPoints, &b.UserName)
	if err != nil {
		return nil, err
	}
	b.EventStartAt = &startAt
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO event_bookings (user_id, event_id, role, status, booked_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	b.BookedAt = time.Now().UTC()
	logger.DatabaseCall("INSERT", "event_bookings", "user_id", b.UserID, "event_id", b.EventID, "role", b.Role)
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.EventID, b.Role, b.Status, b.BookedAt).Scan(&b.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := scanBookingJoined(r.db.QueryRowContext(ctx, `SELECT `+bookingJoinColumns+bookingJoin+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// GetForUpdate locks only the booking row; the joined event and user rows
// stay unlocked.
func (r *bookingRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := scanBookingJoined(r.db.QueryRowContext(ctx, `SELECT `+bookingJoinColumns+bookingJoin+` WHERE b.id = $1 FOR UPDATE OF b`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *bookingRepository) GetByUserAndEventForUpdate(ctx context.Context, userID, eventID int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings b WHERE b.user_id = $1 AND b.event_id = $2 FOR UPDATE`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, userID, eventID))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *bookingRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM event_bookings b WHERE b.user_id = $1 AND b.event_id = $2`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, userID, eventID))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE event_bookings SET role=$1, status=$2, booked_at=$3, proof_key=$4, reflection=$5, hours_earned=$6, completed_at=$7 WHERE id=$8`
	logger.DatabaseCall("UPDATE", "event_bookings", "id", b.ID, "status", b.Status)
	return expectOne(r.db.ExecContext(ctx, query, b.Role, b.Status, b.BookedAt, b.ProofKey, b.Reflection,
		b.HoursEarned, b.CompletedAt, b.ID))
}

// CountActiveByRole counts rows with status booked, per role.
func (r *bookingRepository) CountActiveByRole(ctx context.Context, eventID int32) (map[domain.RoleType]int32, error) {
	query := `SELECT role, COUNT(*) FROM event_bookings WHERE event_id = $1 AND status = 'booked' GROUP BY role`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RoleType]int32)
	for rows.Next() {
		var role domain.RoleType
		var n int32
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

// CountActiveByEvents is CountActiveByRole for a page of events in one query.
// Events without active bookings are absent from the result.
func (r *bookingRepository) CountActiveByEvents(ctx context.Context, eventIDs []int32) (map[int32]map[domain.RoleType]int32, error) {
	counts := make(map[int32]map[domain.RoleType]int32, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}
	query := `SELECT event_id, role, COUNT(*) FROM event_bookings
	          WHERE event_id = ANY($1) AND status = 'booked' GROUP BY event_id, role`
	rows, err := r.db.QueryContext(ctx, query, idArray(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, n int32
		var role domain.RoleType
		if err := rows.Scan(&eventID, &role, &n); err != nil {
			return nil, err
		}
		if counts[eventID] == nil {
			counts[eventID] = make(map[domain.RoleType]int32)
		}
		counts[eventID][role] = n
	}
	return counts, rows.Err()
}

func (r *bookingRepository) ListActiveUserIDs(ctx context.Context, eventID int32) ([]int32, error) {
	query := `SELECT DISTINCT user_id FROM event_bookings WHERE event_id = $1 AND status = 'booked' ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBookingJoined(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingJoinColumns+bookingJoin+` WHERE b.user_id = $1 ORDER BY e.start_at ASC`, userID)
}

func (r *bookingRepository) ListByEvent(ctx context.Context, eventID int32) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingJoinColumns+bookingJoin+` WHERE b.event_id = $1 ORDER BY b.booked_at ASC`, eventID)
}

// ListAwaitingVerification returns booked rows with uploaded proof, oldest first.
func (r *bookingRepository) ListAwaitingVerification(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error) {
	const cond = ` WHERE b.status = 'booked' AND b.proof_key IS NOT NULL`

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_bookings b`+cond).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(page, pageSize)
	bookings, err := r.list(ctx, `SELECT `+bookingJoinColumns+bookingJoin+cond+` ORDER BY b.booked_at ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) CompletionStats(ctx context.Context, userID int32) (int32, float64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(hours_earned), 0)::float8 FROM event_bookings WHERE user_id = $1 AND status = 'completed'`
	var count int32
	var hours float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count, &hours); err != nil {
		return 0, 0, err
	}
	return count, hours, nil
}

package postgres

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"

	"github.com/lib/pq"
)

const eventColumns = `id, title, description, category, led_by, start_at, end_at, location, grc_id, status,
	void_reason, published_at, points_mentor, points_participant, COALESCE(created_by, 0), created_at, updated_at`

type eventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) repository.EventRepository {
	return &eventRepository{db: db}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.LedBy, &e.StartAt, &e.EndAt, &e.Location,
		&e.GrcID, &e.Status, &e.VoidReason, &e.PublishedAt, &e.PointsMentor, &e.PointsParticipant,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func nullableID(id int32) *int32 {
	if id == 0 {
		return nil
	}
	return &id
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (title, description, category, led_by, start_at, end_at, location, grc_id, status,
	          void_reason, published_at, points_mentor, points_participant, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15) RETURNING id`
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	logger.DatabaseCall("INSERT", "events", "title", e.Title)
	return r.db.QueryRowContext(ctx, query, e.Title, e.Description, e.Category, e.LedBy, e.StartAt, e.EndAt,
		e.Location, e.GrcID, e.Status, e.VoidReason, e.PublishedAt, e.PointsMentor, e.PointsParticipant,
		nullableID(e.CreatedBy), now).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *eventRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET title=$1, description=$2, category=$3, led_by=$4, start_at=$5, end_at=$6, location=$7,
	          grc_id=$8, status=$9, void_reason=$10, published_at=$11, points_mentor=$12, points_participant=$13, updated_at=$14
	          WHERE id=$15`
	e.UpdatedAt = time.Now().UTC()
	logger.DatabaseCall("UPDATE", "events", "id", e.ID, "status", e.Status)
	return expectOne(r.db.ExecContext(ctx, query, e.Title, e.Description, e.Category, e.LedBy, e.StartAt, e.EndAt,
		e.Location, e.GrcID, e.Status, e.VoidReason, e.PublishedAt, e.PointsMentor, e.PointsParticipant,
		e.UpdatedAt, e.ID))
}

func (r *eventRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "events", "id", id)
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND status = 'pending'`, id))
}

func eventWhere(f domain.EventFilter) *whereBuilder {
	w := &whereBuilder{}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		w.where("status = ANY(%s)", pq.Array(statuses))
	}
	if len(f.Categories) > 0 {
		cats := make([]string, len(f.Categories))
		for i, c := range f.Categories {
			cats[i] = string(c)
		}
		w.where("category = ANY(%s)", pq.Array(cats))
	}
	if f.LedBy != "" {
		w.where("led_by = %s", f.LedBy)
	}
	if f.GrcID != nil {
		w.where("grc_id = %s", *f.GrcID)
	}
	if f.Search != "" {
		w.where("(title ILIKE %s OR description ILIKE %s)", likePattern(f.Search), likePattern(f.Search))
	}
	if !f.IncludeArchived {
		w.where("(void_reason IS NULL OR POSITION(%s IN void_reason) = 0)", domain.ArchiveMarker)
	}
	return w
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, int32, error) {
	w := eventWhere(f)

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events` + w.String() + ` ORDER BY start_at ASC, id ASC`
	query += w.page(f.Page, f.PageSize)
	logger.DatabaseCall("SELECT", "events", "filters", len(w.clauses))
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, *e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) GetRequirements(ctx context.Context, eventID int32) ([]domain.RoleRequirement, error) {
	query := `SELECT event_id, role, required FROM event_role_requirements WHERE event_id = $1 ORDER BY role`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RoleRequirement
	for rows.Next() {
		var req domain.RoleRequirement
		if err := rows.Scan(&req.EventID, &req.Role, &req.Required); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// GetRequirementsFor loads the requirement rows of several events at once,
// keyed by event id.
func (r *eventRepository) GetRequirementsFor(ctx context.Context, eventIDs []int32) (map[int32][]domain.RoleRequirement, error) {
	out := make(map[int32][]domain.RoleRequirement, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	query := `SELECT event_id, role, required FROM event_role_requirements WHERE event_id = ANY($1) ORDER BY event_id, role`
	rows, err := r.db.QueryContext(ctx, query, idArray(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var req domain.RoleRequirement
		if err := rows.Scan(&req.EventID, &req.Role, &req.Required); err != nil {
			return nil, err
		}
		out[req.EventID] = append(out[req.EventID], req)
	}
	return out, rows.Err()
}

// ReplaceRequirements deletes and re-inserts the rows for eventID. Callers run
// it inside a transaction.
func (r *eventRepository) ReplaceRequirements(ctx context.Context, eventID int32, reqs []domain.RoleRequirement) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_role_requirements WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	for _, req := range reqs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO event_role_requirements (event_id, role, required) VALUES ($1, $2, $3)`,
			eventID, req.Role, req.Required)
		if err != nil {
			return err
		}
	}
	return nil
}

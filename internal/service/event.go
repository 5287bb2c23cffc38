package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

type eventService struct {
	repos repository.Repos
	tx    repository.Transactor
	now   func() time.Time
}

func NewEventService(repos repository.Repos, tx repository.Transactor) EventService {
	return &eventService{repos: repos, tx: tx, now: time.Now}
}

func (s *eventService) validate(in EventInput) error {
	var errs fieldErrors
	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "is required")
	}
	if !in.Category.Valid() {
		errs.add("category", "is not a known category")
	}
	if !in.LedBy.Valid() {
		errs.add("led_by", "must be youth, senior or employee")
	}
	if in.StartAt.IsZero() {
		errs.add("start_at", "is required")
	} else if in.StartAt.Before(s.now()) {
		errs.add("start_at", "must not be in the past")
	}
	if in.EndAt != nil && !in.EndAt.After(in.StartAt) {
		errs.add("end_at", "must be after start_at")
	}
	if in.PointsMentor < 0 {
		errs.add("points_mentor", "must not be negative")
	}
	if in.PointsParticipant < 0 {
		errs.add("points_participant", "must not be negative")
	}
	if in.MentorCapacity != nil && *in.MentorCapacity < 0 {
		errs.add("mentor_capacity", "must not be negative")
	}
	if in.ParticipantCapacity != nil && *in.ParticipantCapacity < 0 {
		errs.add("participant_capacity", "must not be negative")
	}
	return errs.err()
}

// requirements builds the role requirement rows for an event, falling back to
// the default headcounts.
func requirements(eventID int32, in EventInput) []domain.RoleRequirement {
	mentor, participant := domain.DefaultMentorCapacity, domain.DefaultParticipantCapacity
	if in.MentorCapacity != nil {
		mentor = *in.MentorCapacity
	}
	if in.ParticipantCapacity != nil {
		participant = *in.ParticipantCapacity
	}
	return []domain.RoleRequirement{
		{EventID: eventID, Role: domain.RoleMentor, Required: mentor},
		{EventID: eventID, Role: domain.RoleParticipant, Required: participant},
	}
}

func applyEventInput(e *domain.Event, in EventInput) {
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.Category = in.Category
	e.LedBy = in.LedBy
	e.StartAt = in.StartAt
	e.EndAt = in.EndAt
	e.Location = in.Location
	e.GrcID = in.GrcID
	e.PointsMentor = in.PointsMentor
	e.PointsParticipant = in.PointsParticipant
}

func (s *eventService) CreateEvent(ctx context.Context, in EventInput) (*domain.EventDetail, error) {
	logger.EnterMethod("eventService.CreateEvent", "title", in.Title, "createdBy", in.CreatedBy)

	if err := s.validate(in); err != nil {
		logger.ExitMethodWithError("eventService.CreateEvent", err)
		return nil, err
	}

	now := s.now()
	event := &domain.Event{
		Status:    domain.EventStatusPending,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyEventInput(event, in)

	var reqs []domain.RoleRequirement
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		if err := r.Events.Create(ctx, event); err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		reqs = requirements(event.ID, in)
		if err := r.Events.ReplaceRequirements(ctx, event.ID, reqs); err != nil {
			return fmt.Errorf("failed to store role requirements: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("eventService.CreateEvent", err)
		return nil, err
	}

	detail := &domain.EventDetail{
		Event:    *event,
		Capacity: domain.ComputeCapacity(reqs, nil),
	}
	logger.ExitMethod("eventService.CreateEvent", "eventID", event.ID)
	return detail, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int32, in EventInput) (*domain.EventDetail, error) {
	logger.EnterMethod("eventService.UpdateEvent", "eventID", id)

	if err := s.validate(in); err != nil {
		logger.ExitMethodWithError("eventService.UpdateEvent", err, "eventID", id)
		return nil, err
	}

	var event *domain.Event
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		event, err = r.Events.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "event")
		}
		if event.Status.Terminal() {
			return translate(domain.ErrTerminal, "event")
		}
		applyEventInput(event, in)
		event.UpdatedAt = s.now()
		if err := r.Events.Update(ctx, event); err != nil {
			return err
		}
		return r.Events.ReplaceRequirements(ctx, id, requirements(id, in))
	})
	if err != nil {
		logger.ExitMethodWithError("eventService.UpdateEvent", err, "eventID", id)
		return nil, err
	}

	detail, err := s.detail(ctx, event)
	if err != nil {
		logger.ExitMethodWithError("eventService.UpdateEvent", err, "eventID", id)
		return nil, err
	}
	logger.ExitMethod("eventService.UpdateEvent", "eventID", id)
	return detail, nil
}

// detail attaches the current capacity to an event.
func (s *eventService) detail(ctx context.Context, event *domain.Event) (*domain.EventDetail, error) {
	capacity, err := currentCapacity(ctx, s.repos, event.ID)
	if err != nil {
		return nil, err
	}
	return &domain.EventDetail{
		Event:    *event,
		Capacity: capacity,
		IsNew:    event.IsNew(s.now()),
	}, nil
}

func currentCapacity(ctx context.Context, r repository.Repos, eventID int32) (domain.Capacity, error) {
	reqs, err := r.Events.GetRequirements(ctx, eventID)
	if err != nil {
		return domain.Capacity{}, fmt.Errorf("failed to load role requirements: %w", err)
	}
	filled, err := r.Bookings.CountActiveByRole(ctx, eventID)
	if err != nil {
		return domain.Capacity{}, fmt.Errorf("failed to count bookings: %w", err)
	}
	return domain.ComputeCapacity(reqs, filled), nil
}

func (s *eventService) GetEvent(ctx context.Context, id int32) (*domain.EventDetail, error) {
	event, err := s.repos.Events.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "event")
	}
	return s.detail(ctx, event)
}

// ListEvents loads requirements and booking counts for the whole page in two
// queries and derives each event's capacity from them.
func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventDetail, int32, error) {
	events, total, err := s.repos.Events.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(events) == 0 {
		return []domain.EventDetail{}, total, nil
	}
	ids := make([]int32, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	reqs, err := s.repos.Events.GetRequirementsFor(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load role requirements: %w", err)
	}
	filled, err := s.repos.Bookings.CountActiveByEvents(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	now := s.now()
	details := make([]domain.EventDetail, 0, len(events))
	for _, e := range events {
		details = append(details, domain.EventDetail{
			Event:    e,
			Capacity: domain.ComputeCapacity(reqs[e.ID], filled[e.ID]),
			IsNew:    e.IsNew(now),
		})
	}
	return details, total, nil
}

func (s *eventService) Transition(ctx context.Context, id int32, t domain.Transition, opts TransitionOptions) (*domain.Event, error) {
	logger.EnterMethod("eventService.Transition", "eventID", id, "transition", t, "notify", opts.Notify)

	if t == domain.TransitionVoid && strings.TrimSpace(opts.Reason) == "" {
		err := invalid("reason", "is required to void an event")
		logger.ExitMethodWithError("eventService.Transition", err, "eventID", id)
		return nil, err
	}

	var event *domain.Event
	var notified int64
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		event, err = r.Events.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "event")
		}
		if err := event.Apply(t, strings.TrimSpace(opts.Reason), s.now()); err != nil {
			return translate(err, "event")
		}
		if err := r.Events.Update(ctx, event); err != nil {
			return err
		}

		if !opts.Notify || (t != domain.TransitionVoid && t != domain.TransitionEnd) {
			return nil
		}
		recipients, err := r.Bookings.ListActiveUserIDs(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list booked users: %w", err)
		}
		notified, err = r.Notifications.CreateBatch(ctx, domain.Broadcast{
			UserIDs: recipients,
			Message: eventNotice(event, t),
			EventID: &event.ID,
		})
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("eventService.Transition", err, "eventID", id, "transition", t)
		return nil, err
	}

	logger.ExitMethod("eventService.Transition", "eventID", id, "status", event.Status, "notified", notified)
	return event, nil
}

func eventNotice(e *domain.Event, t domain.Transition) string {
	if t == domain.TransitionVoid {
		return fmt.Sprintf("The event %q has been cancelled. Reason: %s", e.Title, *e.VoidReason)
	}
	return fmt.Sprintf("The event %q has ended. Thank you for taking part!", e.Title)
}

func (s *eventService) Archive(ctx context.Context, id int32) (*domain.Event, error) {
	var event *domain.Event
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		event, err = r.Events.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "event")
		}
		if event.IsArchived() {
			return nil
		}
		if err := event.Archive(s.now()); err != nil {
			return translate(err, "event")
		}
		return r.Events.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Event archived", "eventID", id)
	return event, nil
}

// DeleteEvent hard-deletes a pending event. The row is locked for the check
// and the delete is conditioned on the pending status.
func (s *eventService) DeleteEvent(ctx context.Context, id int32) error {
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		event, err := r.Events.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "event")
		}
		if err := event.CanDelete(); err != nil {
			return translate(err, "event")
		}
		return translate(r.Events.Delete(ctx, id), "event")
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Event deleted", "eventID", id)
	return nil
}

func (s *eventService) ListBookings(ctx context.Context, eventID int32) ([]domain.Booking, error) {
	if _, err := s.repos.Events.GetByID(ctx, eventID); err != nil {
		return nil, translate(err, "event")
	}
	return s.repos.Bookings.ListByEvent(ctx, eventID)
}

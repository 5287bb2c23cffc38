package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

var (
	ErrEventNotOpen       = fmt.Errorf("%w: event is not open for sign-up", ErrConflict)
	ErrMentorNotEligible  = fmt.Errorf("%w: your account role cannot mentor this event", ErrForbidden)
	ErrBookingNotBookable = fmt.Errorf("%w: booking is not awaiting completion", ErrConflict)
)

type bookingService struct {
	repos repository.Repos
	tx    repository.Transactor
	media MediaService
	now   func() time.Time
}

func NewBookingService(repos repository.Repos, tx repository.Transactor, media MediaService) BookingService {
	return &bookingService{repos: repos, tx: tx, media: media, now: time.Now}
}

// SignUp books one role slot. The event row stays locked until commit so
// concurrent sign-ups for the same event see each other's bookings.
func (s *bookingService) SignUp(ctx context.Context, userID, eventID int32, role domain.RoleType) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.SignUp", "userID", userID, "eventID", eventID, "role", role)

	if !role.Valid() {
		err := invalid("role", "must be mentor or participant")
		logger.ExitMethodWithError("bookingService.SignUp", err, "userID", userID)
		return nil, err
	}

	var booking *domain.Booking
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		event, err := r.Events.GetForUpdate(ctx, eventID)
		if err != nil {
			return translate(err, "event")
		}
		if event.Status != domain.EventStatusPublished {
			return ErrEventNotOpen
		}

		user, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return translate(err, "user")
		}
		if role == domain.RoleMentor && !domain.CanMentor(user.Role, event.LedBy) {
			return ErrMentorNotEligible
		}

		existing, err := r.Bookings.GetByUserAndEventForUpdate(ctx, userID, eventID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if existing != nil && existing.IsActive() {
			return ErrAlreadyBooked
		}

		capacity, err := currentCapacity(ctx, r, eventID)
		if err != nil {
			return err
		}
		if capacity.Available(role) == 0 {
			return ErrSlotFull
		}

		now := s.now()
		if existing != nil {
			// Re-signup reuses the cancelled row.
			existing.Role = role
			existing.Status = domain.BookingStatusBooked
			existing.BookedAt = now
			existing.ProofKey = nil
			existing.Reflection = nil
			existing.HoursEarned = nil
			existing.CompletedAt = nil
			booking = existing
			return r.Bookings.Update(ctx, booking)
		}

		booking = &domain.Booking{
			UserID:   userID,
			EventID:  eventID,
			Role:     role,
			Status:   domain.BookingStatusBooked,
			BookedAt: now,
		}
		if err := r.Bookings.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyBooked
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("bookingService.SignUp", err, "userID", userID, "eventID", eventID)
		return nil, err
	}

	logger.ExitMethod("bookingService.SignUp", "bookingID", booking.ID)
	return booking, nil
}

// activeBooking locks the user's booking for the event and requires it to be
// booked. r must be bound to a transaction.
func activeBooking(ctx context.Context, r repository.Repos, userID, eventID int32) (*domain.Booking, error) {
	booking, err := r.Bookings.GetByUserAndEventForUpdate(ctx, userID, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoActiveBooking
	}
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, ErrNoActiveBooking
	}
	return booking, nil
}

// Withdraw cancels the user's active booking. The row is kept for history.
func (s *bookingService) Withdraw(ctx context.Context, userID, eventID int32) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		if booking, err = activeBooking(ctx, r, userID, eventID); err != nil {
			return err
		}
		booking.Status = domain.BookingStatusCancelled
		return r.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Booking withdrawn", "bookingID", booking.ID, "userID", userID, "eventID", eventID)
	return booking, nil
}

func (s *bookingService) SubmitProof(ctx context.Context, userID, eventID int32, proof Upload, reflection string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.SubmitProof", "userID", userID, "eventID", eventID)

	// Checked again under the row lock once the file is stored.
	current, err := s.repos.Bookings.GetByUserAndEvent(ctx, userID, eventID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !current.IsActive()) {
		err = ErrNoActiveBooking
	}
	if err != nil {
		logger.ExitMethodWithError("bookingService.SubmitProof", err, "userID", userID)
		return nil, err
	}

	key, err := s.media.Save(ctx, MediaEventProofs, userID, proof)
	if err != nil {
		logger.ExitMethodWithError("bookingService.SubmitProof", err, "userID", userID)
		return nil, err
	}

	var booking *domain.Booking
	var previous *string
	reflection = strings.TrimSpace(reflection)
	err = s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		if booking, err = activeBooking(ctx, r, userID, eventID); err != nil {
			return err
		}
		previous = booking.ProofKey
		booking.ProofKey = &key
		booking.Reflection = &reflection
		return r.Bookings.Update(ctx, booking)
	})
	if err != nil {
		_ = s.media.Delete(ctx, key)
		logger.ExitMethodWithError("bookingService.SubmitProof", err, "userID", userID)
		return nil, err
	}
	if previous != nil && *previous != key {
		if err := s.media.Delete(ctx, *previous); err != nil {
			logger.WarnContext(ctx, "Failed to delete replaced proof", "key", *previous, "error", err)
		}
	}

	logger.ExitMethod("bookingService.SubmitProof", "bookingID", booking.ID)
	return booking, nil
}

// MarkCompleted verifies attendance. The booking row is locked, so a second
// concurrent call sees the completed status and fails. The status flip, the
// points credit and its audit row commit together. hours defaults to the scheduled duration.
func (s *bookingService) MarkCompleted(ctx context.Context, bookingID int32, hours *float64) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.MarkCompleted", "bookingID", bookingID)

	if hours != nil && (*hours < 0 || *hours > 24) {
		err := invalid("hours", "must be between 0 and 24")
		logger.ExitMethodWithError("bookingService.MarkCompleted", err, "bookingID", bookingID)
		return nil, err
	}

	var booking *domain.Booking
	var credited int32
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		booking, err = r.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return translate(err, "booking")
		}
		if !booking.IsActive() {
			return ErrBookingNotBookable
		}
		event, err := r.Events.GetByID(ctx, booking.EventID)
		if err != nil {
			return translate(err, "event")
		}

		earned := event.Hours()
		if hours != nil {
			earned = *hours
		}
		now := s.now()
		booking.Status = domain.BookingStatusCompleted
		booking.HoursEarned = &earned
		booking.CompletedAt = &now
		if err := r.Bookings.Update(ctx, booking); err != nil {
			return err
		}

		credited = event.PointsFor(booking.Role)
		if err := creditPoints(ctx, r, &domain.PointsTransaction{
			UserID:       booking.UserID,
			PointsChange: credited,
			Kind:         domain.PointsKindEventCompletion,
			Remarks:      fmt.Sprintf("Completed %q as %s", event.Title, booking.Role),
			BookingID:    &booking.ID,
		}); err != nil {
			return err
		}

		return r.Notifications.Create(ctx, &domain.Notification{
			UserID:  booking.UserID,
			Message: fmt.Sprintf("Your attendance at %q was verified. You earned %d points.", event.Title, credited),
			EventID: &event.ID,
		})
	})
	if err != nil {
		logger.ExitMethodWithError("bookingService.MarkCompleted", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("bookingService.MarkCompleted", "bookingID", bookingID, "points", credited)
	return booking, nil
}

func (s *bookingService) ListAwaitingVerification(ctx context.Context, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.repos.Bookings.ListAwaitingVerification(ctx, page, pageSize)
}

func (s *bookingService) GetSchedule(ctx context.Context, userID int32) (*domain.Schedule, error) {
	bookings, err := s.repos.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	schedule := &domain.Schedule{
		Upcoming:  []domain.Booking{},
		Completed: []domain.Booking{},
	}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingStatusBooked:
			schedule.Upcoming = append(schedule.Upcoming, b)
		case domain.BookingStatusCompleted:
			schedule.Completed = append(schedule.Completed, b)
		}
	}
	return schedule, nil
}

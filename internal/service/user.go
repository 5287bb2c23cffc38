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
	"skillswap-backend/internal/security"
)

const dashboardUpcomingLimit = 5

var (
	ErrGoogleAccountPassword = fmt.Errorf("%w: accounts created with Google sign-in have no password", ErrConflict)
	ErrAlreadyVerified       = fmt.Errorf("%w: account is already verified", ErrConflict)
)

type userService struct {
	repos repository.Repos
	tx    repository.Transactor
	media MediaService
	now   func() time.Time
}

func NewUserService(repos repository.Repos, tx repository.Transactor, media MediaService) UserService {
	return &userService{repos: repos, tx: tx, media: media, now: time.Now}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, in ProfileInput) (*domain.User, error) {
	var errs fieldErrors
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	}
	if in.BirthDate != nil && in.BirthDate.After(s.now()) {
		errs.add("birth_date", "must not be in the future")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	user.Name = strings.TrimSpace(in.Name)
	user.GrcID = in.GrcID
	if in.Language != "" {
		user.Language = in.Language
	}
	user.Profession = strings.TrimSpace(in.Profession)
	user.Bio = strings.TrimSpace(in.Bio)
	user.BirthDate = in.BirthDate
	user.UpdatedAt = s.now()
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, translate(err, "user")
	}
	return user, nil
}

func (s *userService) UploadPhoto(ctx context.Context, userID int32, photo Upload) (*domain.User, error) {
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return nil, invalid("photo", "must be an image")
	}
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}

	key, err := s.media.Save(ctx, MediaProfilePhotos, userID, photo)
	if err != nil {
		return nil, err
	}
	previous := user.ProfilePhoto
	user.ProfilePhoto = key
	user.UpdatedAt = s.now()
	if err := s.repos.Users.Update(ctx, user); err != nil {
		_ = s.media.Delete(ctx, key)
		return nil, translate(err, "user")
	}
	if previous != "" {
		if err := s.media.Delete(ctx, previous); err != nil {
			logger.WarnContext(ctx, "Failed to delete replaced profile photo", "key", previous, "error", err)
		}
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int32, current, next string) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return translate(err, "user")
	}
	if user.IsGoogleUser() {
		return ErrGoogleAccountPassword
	}
	if err := security.CheckPassword(user.PasswordHash, current); err != nil {
		return invalid("current_password", "is incorrect")
	}
	var errs fieldErrors
	validatePassword(&errs, "new_password", next)
	if err := errs.err(); err != nil {
		return err
	}

	hash, err := security.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.repos.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return translate(err, "user")
	}
	logger.InfoContext(ctx, "Password changed", "userID", userID)
	return nil
}

func (s *userService) Dashboard(ctx context.Context, userID int32) (*domain.Dashboard, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	completed, hours, err := s.repos.Bookings.CompletionStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repos.Notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repos.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	upcoming := []domain.Booking{}
	now := s.now()
	for _, b := range bookings {
		if b.Status != domain.BookingStatusBooked || (b.EventStartAt != nil && b.EventStartAt.Before(now)) {
			continue
		}
		upcoming = append(upcoming, b)
		if len(upcoming) == dashboardUpcomingLimit {
			break
		}
	}

	return &domain.Dashboard{
		User:             user,
		EventsCompleted:  completed,
		TotalHours:       hours,
		UnreadCount:      unread,
		UpcomingBookings: upcoming,
	}, nil
}

func (s *userService) ListUsers(ctx context.Context, status domain.VerificationStatus, page, pageSize int32) ([]domain.User, int32, error) {
	return s.repos.Users.List(ctx, status, page, pageSize)
}

func (s *userService) VerifyUser(ctx context.Context, userID int32) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return translate(err, "user")
	}
	if user.VerificationStatus == domain.VerificationVerified {
		return ErrAlreadyVerified
	}
	if err := s.repos.Users.SetVerification(ctx, userID, domain.VerificationVerified); err != nil {
		return translate(err, "user")
	}
	if err := s.repos.Notifications.Create(ctx, &domain.Notification{
		UserID:  userID,
		Message: "Your account has been verified. Welcome to SkillSwap!",
	}); err != nil {
		logger.WarnContext(ctx, "Failed to send welcome notification", "userID", userID, "error", err)
	}
	logger.InfoContext(ctx, "User verified", "userID", userID)
	return nil
}

// RejectUser deletes an account that is still awaiting verification.
func (s *userService) RejectUser(ctx context.Context, userID int32) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return translate(err, "user")
	}
	if user.VerificationStatus == domain.VerificationVerified {
		return ErrAlreadyVerified
	}
	if err := s.repos.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return translate(err, "user")
		}
		return err
	}
	logger.InfoContext(ctx, "User rejected", "userID", userID)
	return nil
}

func (s *userService) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return s.repos.Skills.List(ctx)
}

func (s *userService) GetSkills(ctx context.Context, userID int32) (*domain.UserSkills, error) {
	if _, err := s.repos.Users.GetByID(ctx, userID); err != nil {
		return nil, translate(err, "user")
	}
	return s.repos.Skills.ListForUser(ctx, userID)
}

func checkSkillNames(errs *fieldErrors, field string, names []string) {
	if len(names) > domain.MaxSkillsPerList {
		errs.add(field, fmt.Sprintf("must not list more than %d skills", domain.MaxSkillsPerList))
	}
	for _, n := range names {
		if len(n) > domain.MaxSkillNameLength {
			errs.add(field, fmt.Sprintf("skill names must be at most %d characters", domain.MaxSkillNameLength))
			return
		}
	}
}

// UpdateSkills replaces both skill lists. Names match existing catalog
// entries ignoring case; new names are added to the catalog.
func (s *userService) UpdateSkills(ctx context.Context, userID int32, in SkillsInput) (*domain.UserSkills, error) {
	logger.EnterMethod("userService.UpdateSkills", "userID", userID, "teach", len(in.Teach), "learn", len(in.Learn))

	lists := map[domain.SkillKind][]string{
		domain.SkillKindTeach: domain.NormalizeSkillNames(in.Teach),
		domain.SkillKindLearn: domain.NormalizeSkillNames(in.Learn),
	}
	var errs fieldErrors
	checkSkillNames(&errs, "teach_skills", lists[domain.SkillKindTeach])
	checkSkillNames(&errs, "learn_skills", lists[domain.SkillKindLearn])
	if err := errs.err(); err != nil {
		logger.ExitMethodWithError("userService.UpdateSkills", err, "userID", userID)
		return nil, err
	}

	var out *domain.UserSkills
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			return translate(err, "user")
		}
		for _, kind := range []domain.SkillKind{domain.SkillKindTeach, domain.SkillKindLearn} {
			ids := make([]int32, 0, len(lists[kind]))
			for _, name := range lists[kind] {
				id, err := r.Skills.Ensure(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to save skill %q: %w", name, err)
				}
				ids = append(ids, id)
			}
			if err := r.Skills.ReplaceForUser(ctx, userID, kind, ids); err != nil {
				return err
			}
		}
		var err error
		out, err = r.Skills.ListForUser(ctx, userID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("userService.UpdateSkills", err, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("userService.UpdateSkills", "userID", userID)
	return out, nil
}

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

var (
	ErrChallengeNotOpen = fmt.Errorf("%w: challenge is not accepting submissions", ErrConflict)
	ErrAlreadyReviewed  = fmt.Errorf("%w: submission has already been reviewed", ErrConflict)
)

type challengeService struct {
	repos repository.Repos
	tx    repository.Transactor
	media MediaService
	now   func() time.Time
}

func NewChallengeService(repos repository.Repos, tx repository.Transactor, media MediaService) ChallengeService {
	return &challengeService{repos: repos, tx: tx, media: media, now: time.Now}
}

func (s *challengeService) validate(in ChallengeInput, creating bool) error {
	var errs fieldErrors
	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "is required")
	}
	if in.StartDate.IsZero() {
		errs.add("start_date", "is required")
	} else if creating && in.StartDate.Before(s.now().Truncate(24*time.Hour)) {
		errs.add("start_date", "must not be in the past")
	}
	if in.EndDate.IsZero() {
		errs.add("end_date", "is required")
	} else if in.EndDate.Before(in.StartDate) {
		errs.add("end_date", "must not be before start_date")
	}
	if in.BonusPoints < 0 {
		errs.add("bonus_points", "must not be negative")
	}
	if in.TargetCount < 1 {
		errs.add("target_count", "must be at least 1")
	}
	return errs.err()
}

func applyChallengeInput(c *domain.Challenge, in ChallengeInput) {
	c.Title = strings.TrimSpace(in.Title)
	c.Description = in.Description
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.BonusPoints = in.BonusPoints
	c.TargetCount = in.TargetCount
}

func (s *challengeService) CreateChallenge(ctx context.Context, in ChallengeInput) (*domain.Challenge, error) {
	if err := s.validate(in, true); err != nil {
		return nil, err
	}
	challenge := &domain.Challenge{
		Status:    domain.ChallengeStatusPending,
		CreatedAt: s.now(),
	}
	applyChallengeInput(challenge, in)
	if err := s.repos.Challenges.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	logger.InfoContext(ctx, "Challenge created", "challengeID", challenge.ID)
	return challenge, nil
}

func (s *challengeService) UpdateChallenge(ctx context.Context, id int32, in ChallengeInput) (*domain.Challenge, error) {
	if err := s.validate(in, false); err != nil {
		return nil, err
	}
	challenge, err := s.repos.Challenges.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "challenge")
	}
	if challenge.Status.Terminal() {
		return nil, translate(domain.ErrTerminal, "challenge")
	}
	applyChallengeInput(challenge, in)
	if err := s.repos.Challenges.Update(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *challengeService) GetChallenge(ctx context.Context, id int32) (*domain.Challenge, error) {
	challenge, err := s.repos.Challenges.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "challenge")
	}
	return challenge, nil
}

func (s *challengeService) ListChallenges(ctx context.Context, filter domain.ChallengeFilter) ([]domain.Challenge, int32, error) {
	return s.repos.Challenges.List(ctx, filter)
}

// Transition applies a lifecycle edge. Voiding or ending with Notify set
// informs every user in the same transaction.
func (s *challengeService) Transition(ctx context.Context, id int32, t domain.Transition, opts TransitionOptions) (*domain.Challenge, error) {
	logger.EnterMethod("challengeService.Transition", "challengeID", id, "transition", t, "notify", opts.Notify)

	if t == domain.TransitionVoid && strings.TrimSpace(opts.Reason) == "" {
		err := invalid("reason", "is required to void a challenge")
		logger.ExitMethodWithError("challengeService.Transition", err, "challengeID", id)
		return nil, err
	}

	var challenge *domain.Challenge
	var notified int64
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		challenge, err = r.Challenges.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "challenge")
		}
		if err := challenge.Apply(t, strings.TrimSpace(opts.Reason), s.now()); err != nil {
			return translate(err, "challenge")
		}
		if err := r.Challenges.Update(ctx, challenge); err != nil {
			return err
		}

		if !opts.Notify || (t != domain.TransitionVoid && t != domain.TransitionEnd) {
			return nil
		}
		recipients, err := r.Users.ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		notified, err = r.Notifications.CreateBatch(ctx, domain.Broadcast{
			UserIDs:     recipients,
			Message:     challengeNotice(challenge, t),
			ChallengeID: &challenge.ID,
		})
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("challengeService.Transition", err, "challengeID", id, "transition", t)
		return nil, err
	}

	logger.ExitMethod("challengeService.Transition", "challengeID", id, "status", challenge.Status, "notified", notified)
	return challenge, nil
}

func challengeNotice(c *domain.Challenge, t domain.Transition) string {
	if t == domain.TransitionVoid {
		return fmt.Sprintf("The challenge %q has been cancelled. Reason: %s", c.Title, *c.VoidReason)
	}
	return fmt.Sprintf("The challenge %q has ended.", c.Title)
}

func (s *challengeService) Archive(ctx context.Context, id int32) (*domain.Challenge, error) {
	var challenge *domain.Challenge
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		challenge, err = r.Challenges.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "challenge")
		}
		if challenge.IsArchived() {
			return nil
		}
		if err := challenge.Archive(); err != nil {
			return translate(err, "challenge")
		}
		return r.Challenges.Update(ctx, challenge)
	})
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

// DeleteChallenge removes a pending challenge. The delete itself is also
// conditioned on the pending status.
func (s *challengeService) DeleteChallenge(ctx context.Context, id int32) error {
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		challenge, err := r.Challenges.GetForUpdate(ctx, id)
		if err != nil {
			return translate(err, "challenge")
		}
		if err := challenge.CanDelete(); err != nil {
			return translate(err, "challenge")
		}
		return translate(r.Challenges.Delete(ctx, id), "challenge")
	})
}

func (s *challengeService) Submit(ctx context.Context, userID, challengeID int32, proof Upload, description string) (*domain.ChallengeSubmission, error) {
	logger.EnterMethod("challengeService.Submit", "userID", userID, "challengeID", challengeID)

	challenge, err := s.repos.Challenges.GetByID(ctx, challengeID)
	if err != nil {
		err = translate(err, "challenge")
		logger.ExitMethodWithError("challengeService.Submit", err, "userID", userID)
		return nil, err
	}
	if challenge.Status != domain.ChallengeStatusPublished {
		logger.ExitMethodWithError("challengeService.Submit", ErrChallengeNotOpen, "userID", userID)
		return nil, ErrChallengeNotOpen
	}

	key, err := s.media.Save(ctx, MediaChallengeProofs, userID, proof)
	if err != nil {
		logger.ExitMethodWithError("challengeService.Submit", err, "userID", userID)
		return nil, err
	}

	sub := &domain.ChallengeSubmission{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      domain.SubmissionStatusPending,
		ProofKey:    key,
		Description: strings.TrimSpace(description),
		SubmittedAt: s.now(),
	}
	if err := s.repos.Submissions.Create(ctx, sub); err != nil {
		_ = s.media.Delete(ctx, key)
		logger.ExitMethodWithError("challengeService.Submit", err, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("challengeService.Submit", "submissionID", sub.ID)
	return sub, nil
}

func (s *challengeService) LatestSubmission(ctx context.Context, userID, challengeID int32) (*domain.ChallengeSubmission, error) {
	sub, err := s.repos.Submissions.GetLatest(ctx, userID, challengeID)
	if err != nil {
		return nil, translate(err, "submission")
	}
	return sub, nil
}

func (s *challengeService) ListSubmissions(ctx context.Context, challengeID int32, status domain.SubmissionStatus) ([]domain.ChallengeSubmission, error) {
	return s.repos.Submissions.ListByChallenge(ctx, challengeID, status)
}

// ReviewSubmission approves or rejects a pending submission. The submission
// row is locked, so only one of two concurrent reviews succeeds. Approval
// credits the challenge bonus in the same transaction.
func (s *challengeService) ReviewSubmission(ctx context.Context, submissionID int32, approve bool, comment string) (*domain.ChallengeSubmission, error) {
	logger.EnterMethod("challengeService.ReviewSubmission", "submissionID", submissionID, "approve", approve)

	var sub *domain.ChallengeSubmission
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		sub, err = r.Submissions.GetForUpdate(ctx, submissionID)
		if err != nil {
			return translate(err, "submission")
		}
		if sub.Status != domain.SubmissionStatusPending {
			return ErrAlreadyReviewed
		}
		challenge, err := r.Challenges.GetByID(ctx, sub.ChallengeID)
		if err != nil {
			return translate(err, "challenge")
		}

		now := s.now()
		sub.AdminComment = strings.TrimSpace(comment)
		sub.ReviewedAt = &now
		message := fmt.Sprintf("Your submission for %q was not accepted.", challenge.Title)
		if approve {
			sub.Status = domain.SubmissionStatusApproved
			message = fmt.Sprintf("Your submission for %q was approved. You earned %d points.", challenge.Title, challenge.BonusPoints)
		} else {
			sub.Status = domain.SubmissionStatusRejected
		}
		if sub.AdminComment != "" {
			message += " Comment: " + sub.AdminComment
		}
		if err := r.Submissions.Update(ctx, sub); err != nil {
			return err
		}

		if approve {
			if err := creditPoints(ctx, r, &domain.PointsTransaction{
				UserID:       sub.UserID,
				PointsChange: challenge.BonusPoints,
				Kind:         domain.PointsKindChallengeBonus,
				Remarks:      fmt.Sprintf("Challenge %q", challenge.Title),
				SubmissionID: &sub.ID,
			}); err != nil {
				return err
			}
		}

		return r.Notifications.Create(ctx, &domain.Notification{
			UserID:      sub.UserID,
			Message:     message,
			ChallengeID: &challenge.ID,
		})
	})
	if err != nil {
		logger.ExitMethodWithError("challengeService.ReviewSubmission", err, "submissionID", submissionID)
		return nil, err
	}

	logger.ExitMethod("challengeService.ReviewSubmission", "submissionID", submissionID, "status", sub.Status)
	return sub, nil
}

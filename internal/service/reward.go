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
	ErrRewardUnavailable = fmt.Errorf("%w: reward is not available", ErrConflict)
	ErrRedemptionState   = fmt.Errorf("%w: redemption cannot move to that status", ErrConflict)
	ErrRedemptionExpired = fmt.Errorf("%w: redemption approval has expired", ErrConflict)
)

type rewardService struct {
	repos  repository.Repos
	tx     repository.Transactor
	expiry time.Duration
	now    func() time.Time
}

// NewRewardService builds the catalog and redemption workflow. Approved
// redemptions must be collected within expiryDays.
func NewRewardService(repos repository.Repos, tx repository.Transactor, expiryDays int) RewardService {
	return &rewardService{
		repos:  repos,
		tx:     tx,
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

func (s *rewardService) ListRewards(ctx context.Context, activeOnly bool) ([]domain.Reward, error) {
	return s.repos.Rewards.List(ctx, activeOnly)
}

func validateReward(in RewardInput) error {
	var errs fieldErrors
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	}
	if in.PointsCost <= 0 {
		errs.add("points_cost", "must be positive")
	}
	if in.TotalQuantity != nil && *in.TotalQuantity < 0 {
		errs.add("total_quantity", "must not be negative")
	}
	return errs.err()
}

func (s *rewardService) CreateReward(ctx context.Context, in RewardInput) (*domain.Reward, error) {
	if err := validateReward(in); err != nil {
		return nil, err
	}
	reward := &domain.Reward{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		PointsCost:    in.PointsCost,
		IsActive:      in.IsActive,
		TotalQuantity: in.TotalQuantity,
		CreatedAt:     s.now(),
	}
	if err := s.repos.Rewards.Create(ctx, reward); err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}
	return reward, nil
}

func (s *rewardService) UpdateReward(ctx context.Context, id int32, in RewardInput) (*domain.Reward, error) {
	if err := validateReward(in); err != nil {
		return nil, err
	}
	reward, err := s.repos.Rewards.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "reward")
	}
	reward.Name = strings.TrimSpace(in.Name)
	reward.Description = in.Description
	reward.PointsCost = in.PointsCost
	reward.IsActive = in.IsActive
	reward.TotalQuantity = in.TotalQuantity
	if err := s.repos.Rewards.Update(ctx, reward); err != nil {
		return nil, translate(err, "reward")
	}
	return reward, nil
}

// RequestRedemption reserves the reward's cost from the user's balance. The
// debit is conditional on the balance, so an insufficient balance aborts the
// transaction before any redemption row is written.
func (s *rewardService) RequestRedemption(ctx context.Context, userID, rewardID int32) (*domain.RewardRedemption, error) {
	logger.EnterMethod("rewardService.RequestRedemption", "userID", userID, "rewardID", rewardID)

	var redemption *domain.RewardRedemption
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		reward, err := r.Rewards.GetForUpdate(ctx, rewardID)
		if err != nil {
			return translate(err, "reward")
		}
		if !reward.IsActive {
			return ErrRewardUnavailable
		}
		if reward.TotalQuantity != nil {
			outstanding, err := r.Redemptions.CountOutstanding(ctx, rewardID)
			if err != nil {
				return err
			}
			if outstanding >= *reward.TotalQuantity {
				return ErrOutOfStock
			}
		}

		if err := r.Users.DebitPoints(ctx, userID, reward.PointsCost); err != nil {
			return translate(err, "user")
		}

		now := s.now()
		redemption = &domain.RewardRedemption{
			UserID:      userID,
			RewardID:    rewardID,
			PointsSpent: reward.PointsCost,
			Status:      domain.RedemptionRequested,
			RequestedAt: now,
			UpdatedAt:   now,
			RewardName:  reward.Name,
		}
		if err := r.Redemptions.Create(ctx, redemption); err != nil {
			return fmt.Errorf("failed to create redemption: %w", err)
		}
		return r.Points.CreateTransaction(ctx, &domain.PointsTransaction{
			UserID:       userID,
			PointsChange: -reward.PointsCost,
			Kind:         domain.PointsKindRedemption,
			Remarks:      fmt.Sprintf("Redeemed %q", reward.Name),
			RedemptionID: &redemption.ID,
		})
	})
	if err != nil {
		logger.ExitMethodWithError("rewardService.RequestRedemption", err, "userID", userID, "rewardID", rewardID)
		return nil, err
	}

	logger.ExitMethod("rewardService.RequestRedemption", "redemptionID", redemption.ID)
	return redemption, nil
}

func (s *rewardService) ListMyRedemptions(ctx context.Context, userID int32) ([]domain.RewardRedemption, error) {
	return s.repos.Redemptions.ListByUser(ctx, userID)
}

func (s *rewardService) ListRedemptions(ctx context.Context, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RewardRedemption, int32, error) {
	return s.repos.Redemptions.List(ctx, status, page, pageSize)
}

// CancelOwnRedemption lets a user withdraw a request that has not been
// approved yet.
func (s *rewardService) CancelOwnRedemption(ctx context.Context, userID, redemptionID int32) (*domain.RewardRedemption, error) {
	return s.cancel(ctx, redemptionID, "Cancelled by you", func(r *domain.RewardRedemption) error {
		if r.UserID != userID {
			return fmt.Errorf("%w: redemption", ErrNotFound)
		}
		if r.Status != domain.RedemptionRequested {
			return ErrRedemptionState
		}
		return nil
	})
}

func (s *rewardService) CancelRedemption(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error) {
	return s.cancel(ctx, redemptionID, "Cancelled by an administrator", nil)
}

// cancel moves a redemption to cancelled and refunds the reserved points. The
// redemption row is locked before its status is checked, so concurrent
// cancellations refund at most once.
func (s *rewardService) cancel(ctx context.Context, redemptionID int32, why string, check func(*domain.RewardRedemption) error) (*domain.RewardRedemption, error) {
	logger.EnterMethod("rewardService.cancel", "redemptionID", redemptionID)

	var redemption *domain.RewardRedemption
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		redemption, err = r.Redemptions.GetForUpdate(ctx, redemptionID)
		if err != nil {
			return translate(err, "redemption")
		}
		if check != nil {
			if err := check(redemption); err != nil {
				return err
			}
		}
		if !redemption.Refundable() {
			return ErrRedemptionState
		}

		redemption.Status = domain.RedemptionCancelled
		redemption.UpdatedAt = s.now()
		if err := r.Redemptions.Update(ctx, redemption); err != nil {
			return err
		}
		if err := creditPoints(ctx, r, &domain.PointsTransaction{
			UserID:       redemption.UserID,
			PointsChange: redemption.PointsSpent,
			Kind:         domain.PointsKindRefund,
			Remarks:      why,
			RedemptionID: &redemption.ID,
		}); err != nil {
			return err
		}
		return r.Notifications.Create(ctx, &domain.Notification{
			UserID:  redemption.UserID,
			Message: fmt.Sprintf("Your redemption of %q was cancelled and %d points were returned.", redemption.RewardName, redemption.PointsSpent),
		})
	})
	if err != nil {
		logger.ExitMethodWithError("rewardService.cancel", err, "redemptionID", redemptionID)
		return nil, err
	}

	logger.ExitMethod("rewardService.cancel", "redemptionID", redemptionID, "refunded", redemption.PointsSpent)
	return redemption, nil
}

func (s *rewardService) ApproveRedemption(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error) {
	var redemption *domain.RewardRedemption
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		redemption, err = r.Redemptions.GetForUpdate(ctx, redemptionID)
		if err != nil {
			return translate(err, "redemption")
		}
		if redemption.Status != domain.RedemptionRequested {
			return ErrRedemptionState
		}
		now := s.now()
		expires := now.Add(s.expiry)
		redemption.Status = domain.RedemptionApproved
		redemption.ExpiresAt = &expires
		redemption.UpdatedAt = now
		if err := r.Redemptions.Update(ctx, redemption); err != nil {
			return err
		}
		return r.Notifications.Create(ctx, &domain.Notification{
			UserID:  redemption.UserID,
			Message: fmt.Sprintf("Your redemption of %q was approved. Collect it before %s.", redemption.RewardName, expires.Format("2 Jan 2006")),
		})
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Redemption approved", "redemptionID", redemptionID)
	return redemption, nil
}

func (s *rewardService) MarkRedeemed(ctx context.Context, redemptionID int32) (*domain.RewardRedemption, error) {
	var redemption *domain.RewardRedemption
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		redemption, err = r.Redemptions.GetForUpdate(ctx, redemptionID)
		if err != nil {
			return translate(err, "redemption")
		}
		if redemption.Status != domain.RedemptionApproved {
			return ErrRedemptionState
		}
		now := s.now()
		if redemption.ExpiresAt != nil && redemption.ExpiresAt.Before(now) {
			return ErrRedemptionExpired
		}
		redemption.Status = domain.RedemptionRedeemed
		redemption.UpdatedAt = now
		return r.Redemptions.Update(ctx, redemption)
	})
	if err != nil {
		return nil, err
	}
	return redemption, nil
}

// ExpireRedemptions cancels approved redemptions that were never collected
// and refunds them. A failure on one redemption does not stop the others.
func (s *rewardService) ExpireRedemptions(ctx context.Context) (int, error) {
	now := s.now()
	expired, err := s.repos.Redemptions.ListExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired redemptions: %w", err)
	}

	// Re-checked under the row lock; a redemption collected or cancelled
	// since the listing is skipped.
	stillExpired := func(r *domain.RewardRedemption) error {
		if r.Status != domain.RedemptionApproved || r.ExpiresAt == nil || !r.ExpiresAt.Before(now) {
			return ErrRedemptionState
		}
		return nil
	}

	count := 0
	for _, r := range expired {
		if _, err := s.cancel(ctx, r.ID, "Approval expired", stillExpired); err != nil {
			if errors.Is(err, ErrRedemptionState) {
				logger.WarnContext(ctx, "Redemption changed before expiry", "redemptionID", r.ID)
				continue
			}
			logger.ErrorContext(ctx, "Failed to expire redemption", "redemptionID", r.ID, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

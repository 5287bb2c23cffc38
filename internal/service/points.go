package service

import (
	"context"
	"fmt"
	"strings"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

// creditPoints moves a user's balance by entry.PointsChange and records the
// movement. Callers run it inside their transaction so the balance and the
// audit row commit together. Debits fail with ErrInsufficientPoints rather
// than taking the balance below zero.
func creditPoints(ctx context.Context, r repository.Repos, entry *domain.PointsTransaction) error {
	var err error
	switch {
	case entry.PointsChange > 0:
		err = r.Users.AddPoints(ctx, entry.UserID, entry.PointsChange)
	case entry.PointsChange < 0:
		err = r.Users.DebitPoints(ctx, entry.UserID, -entry.PointsChange)
	default:
		return nil
	}
	if err != nil {
		return translate(err, "user")
	}
	if err := r.Points.CreateTransaction(ctx, entry); err != nil {
		return fmt.Errorf("failed to record points transaction: %w", err)
	}
	return nil
}

type pointsService struct {
	repos repository.Repos
	tx    repository.Transactor
}

func NewPointsService(repos repository.Repos, tx repository.Transactor) PointsService {
	return &pointsService{repos: repos, tx: tx}
}

func (s *pointsService) Balance(ctx context.Context, userID int32) (int32, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return 0, translate(err, "user")
	}
	return user.TotalPoints, nil
}

func (s *pointsService) History(ctx context.Context, userID int32, page, pageSize int32) ([]domain.PointsTransaction, int32, error) {
	return s.repos.Points.ListTransactions(ctx, userID, page, pageSize)
}

// Adjust applies an admin correction. Negative deltas cannot overdraw.
func (s *pointsService) Adjust(ctx context.Context, userID, delta int32, remarks string) (*domain.User, error) {
	logger.EnterMethod("pointsService.Adjust", "userID", userID, "delta", delta)

	if delta == 0 {
		return nil, invalid("points", "must not be zero")
	}
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		remarks = "Adjusted by administrator"
	}

	var user *domain.User
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			return translate(err, "user")
		}
		if err := creditPoints(ctx, r, &domain.PointsTransaction{
			UserID:       userID,
			PointsChange: delta,
			Kind:         domain.PointsKindAdjustment,
			Remarks:      remarks,
		}); err != nil {
			return err
		}
		var err error
		user, err = r.Users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("pointsService.Adjust", err, "userID", userID)
		return nil, err
	}
	logger.ExitMethod("pointsService.Adjust", "userID", userID, "balance", user.TotalPoints)
	return user, nil
}

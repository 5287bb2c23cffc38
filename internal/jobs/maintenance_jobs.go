package jobs

import (
	"context"

	"skillswap-backend/internal/logger"
)

// ExpireRedemptions cancels approved redemptions that were never collected
// and refunds their points.
func (jr *JobRunner) ExpireRedemptions() {
	jr.runWithRecovery("ExpireRedemptions", func(ctx context.Context) error {
		n, err := jr.services.Reward.ExpireRedemptions(ctx)
		if err != nil {
			return err
		}
		logger.Info("Expired redemptions", "count", n)
		return nil
	})
}

// CloseIdleChats closes live chat sessions nobody has written to recently.
func (jr *JobRunner) CloseIdleChats() {
	jr.runWithRecovery("CloseIdleChats", func(ctx context.Context) error {
		n, err := jr.services.Chat.CloseIdle(ctx)
		if err != nil {
			return err
		}
		logger.Info("Closed idle chat sessions", "count", n)
		return nil
	})
}

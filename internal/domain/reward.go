package domain

import "time"

type Reward struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PointsCost    int32     `json:"points_cost"`
	IsActive      bool      `json:"is_active"`
	TotalQuantity *int32    `json:"total_quantity,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RedemptionStatus string

const (
	RedemptionRequested RedemptionStatus = "requested"
	RedemptionApproved  RedemptionStatus = "approved"
	RedemptionRedeemed  RedemptionStatus = "redeemed"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

func (s RedemptionStatus) Valid() bool {
	switch s {
	case RedemptionRequested, RedemptionApproved, RedemptionRedeemed, RedemptionCancelled:
		return true
	}
	return false
}

type RewardRedemption struct {
	ID          int32            `json:"id"`
	UserID      int32            `json:"user_id"`
	RewardID    int32            `json:"reward_id"`
	PointsSpent int32            `json:"points_spent"`
	Status      RedemptionStatus `json:"status"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
	RequestedAt time.Time        `json:"requested_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	RewardName string `json:"reward_name,omitempty"`
}

// Refundable reports whether cancelling the redemption returns its points.
func (r *RewardRedemption) Refundable() bool {
	return r.Status == RedemptionRequested || r.Status == RedemptionApproved
}

package domain

import "time"

type PointsKind string

const (
	PointsKindEventCompletion PointsKind = "event_completion"
	PointsKindChallengeBonus  PointsKind = "challenge_bonus"
	PointsKindRedemption      PointsKind = "redemption"
	PointsKindRefund          PointsKind = "refund"
	PointsKindAdjustment      PointsKind = "adjustment"
)

type PointsTransaction struct {
	ID           int32      `json:"id"`
	UserID       int32      `json:"user_id"`
	PointsChange int32      `json:"points_change"` // positive for credit, negative for debit
	Kind         PointsKind `json:"kind"`
	Remarks      string     `json:"remarks"`
	BookingID    *int32     `json:"booking_id,omitempty"`
	RedemptionID *int32     `json:"redemption_id,omitempty"`
	SubmissionID *int32     `json:"submission_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

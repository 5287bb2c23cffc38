package domain

import (
	"strings"
	"time"
)

type ChallengeStatus string

const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusPublished ChallengeStatus = "published"
	ChallengeStatusVoided    ChallengeStatus = "voided"
	ChallengeStatusEnded     ChallengeStatus = "ended"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeStatusPending, ChallengeStatusActive, ChallengeStatusPublished, ChallengeStatusVoided, ChallengeStatusEnded:
		return true
	}
	return false
}

func (s ChallengeStatus) Terminal() bool {
	return s == ChallengeStatusVoided || s == ChallengeStatusEnded
}

type Challenge struct {
	ID          int32           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Status      ChallengeStatus `json:"status"`
	BonusPoints int32           `json:"bonus_points"`
	TargetCount int32           `json:"target_count"`
	VoidReason  *string         `json:"void_reason,omitempty"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	VoidedAt    *time.Time      `json:"voided_at,omitempty"`
	EndedAt     *time.Time      `json:"ended_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (c *Challenge) IsArchived() bool {
	return c.VoidReason != nil && strings.Contains(*c.VoidReason, ArchiveMarker)
}

func (c *Challenge) IsNew(now time.Time) bool {
	return isNew(c.PublishedAt, now)
}

type ChallengeFilter struct {
	Statuses        []ChallengeStatus
	Search          string
	IncludeArchived bool
	Page            int32
	PageSize        int32
}

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	return s == SubmissionStatusPending || s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

type ChallengeSubmission struct {
	ID           int32            `json:"id"`
	UserID       int32            `json:"user_id"`
	ChallengeID  int32            `json:"challenge_id"`
	Status       SubmissionStatus `json:"status"`
	ProofKey     string           `json:"proof_key"`
	Description  string           `json:"description"`
	AdminComment string           `json:"admin_comment"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	ReviewedAt   *time.Time       `json:"reviewed_at,omitempty"`
}

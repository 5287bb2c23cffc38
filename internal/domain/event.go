package domain

import (
	"strings"
	"time"
)

type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusApproved  EventStatus = "approved"
	EventStatusPublished EventStatus = "published"
	EventStatusVoided    EventStatus = "voided"
	EventStatusEnded     EventStatus = "ended"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPending, EventStatusApproved, EventStatusPublished, EventStatusVoided, EventStatusEnded:
		return true
	}
	return false
}

// Terminal reports whether no lifecycle edge leaves s.
func (s EventStatus) Terminal() bool {
	return s == EventStatusVoided || s == EventStatusEnded
}

type Category string

const (
	CategorySocialGames      Category = "social_games"
	CategoryArtsCrafts       Category = "arts_crafts"
	CategoryTechnology       Category = "technology"
	CategoryHealthWellness   Category = "health_wellness"
	CategoryEducation        Category = "education"
	CategoryCommunityService Category = "community_service"
)

var Categories = []Category{
	CategorySocialGames,
	CategoryArtsCrafts,
	CategoryTechnology,
	CategoryHealthWellness,
	CategoryEducation,
	CategoryCommunityService,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type LedBy string

const (
	LedByYouth    LedBy = "youth"
	LedBySenior   LedBy = "senior"
	LedByEmployee LedBy = "employee"
)

func (l LedBy) Valid() bool {
	return l == LedByYouth || l == LedBySenior || l == LedByEmployee
}

// ArchiveMarker is appended to void_reason to hide a terminal item from
// default admin list views.
const ArchiveMarker = "[ARCHIVED]"

// NewWindow is how long a published item is flagged as new.
const NewWindow = 7 * 24 * time.Hour

type Event struct {
	ID                int32       `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Category          Category    `json:"category"`
	LedBy             LedBy       `json:"led_by"`
	StartAt           time.Time   `json:"start_at"`
	EndAt             *time.Time  `json:"end_at,omitempty"`
	Location          string      `json:"location"`
	GrcID             *int32      `json:"grc_id,omitempty"`
	Status            EventStatus `json:"status"`
	VoidReason        *string     `json:"void_reason,omitempty"`
	PublishedAt       *time.Time  `json:"published_at,omitempty"`
	PointsMentor      int32       `json:"points_mentor"`
	PointsParticipant int32       `json:"points_participant"`
	CreatedBy         int32       `json:"created_by"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (e *Event) IsArchived() bool {
	return e.VoidReason != nil && strings.Contains(*e.VoidReason, ArchiveMarker)
}

func (e *Event) IsNew(now time.Time) bool {
	return isNew(e.PublishedAt, now)
}

// PointsFor returns the points credited for completing the event in role.
func (e *Event) PointsFor(role RoleType) int32 {
	if role == RoleMentor {
		return e.PointsMentor
	}
	return e.PointsParticipant
}

// Hours returns the scheduled duration, or zero when the event has no end.
func (e *Event) Hours() float64 {
	if e.EndAt == nil || !e.EndAt.After(e.StartAt) {
		return 0
	}
	return e.EndAt.Sub(e.StartAt).Hours()
}

// EventDetail is an event together with its derived capacity.
type EventDetail struct {
	Event
	Capacity Capacity `json:"capacity"`
	IsNew    bool     `json:"is_new"`
}

// EventFilter drives the admin and catalog list queries.
type EventFilter struct {
	Statuses        []EventStatus
	Categories      []Category
	LedBy           LedBy
	GrcID           *int32
	Search          string
	IncludeArchived bool
	Page            int32
	PageSize        int32
}

func isNew(publishedAt *time.Time, now time.Time) bool {
	return publishedAt != nil && now.Sub(*publishedAt) < NewWindow
}

// appendArchiveMarker returns reason with the archive marker appended once.
func appendArchiveMarker(reason *string) string {
	if reason == nil || *reason == "" {
		return ArchiveMarker
	}
	if strings.Contains(*reason, ArchiveMarker) {
		return *reason
	}
	return *reason + " " + ArchiveMarker
}

package domain

import "time"

type RoleType string

const (
	RoleMentor      RoleType = "mentor"
	RoleParticipant RoleType = "participant"
)

// Roles lists the participation roles in display order.
var Roles = []RoleType{RoleMentor, RoleParticipant}

func (r RoleType) Valid() bool {
	return r == RoleMentor || r == RoleParticipant
}

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	return s == BookingStatusBooked || s == BookingStatusCancelled || s == BookingStatusCompleted
}

type RoleRequirement struct {
	EventID  int32    `json:"event_id"`
	Role     RoleType `json:"role"`
	Required int32    `json:"required"`
}

type Booking struct {
	ID          int32         `json:"id"`
	UserID      int32         `json:"user_id"`
	EventID     int32         `json:"event_id"`
	Role        RoleType      `json:"role"`
	Status      BookingStatus `json:"status"`
	BookedAt    time.Time     `json:"booked_at"`
	ProofKey    *string       `json:"proof_key,omitempty"`
	Reflection  *string       `json:"reflection,omitempty"`
	HoursEarned *float64      `json:"hours_earned,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`

	// Populated by schedule queries.
	EventTitle   string     `json:"event_title,omitempty"`
	EventStartAt *time.Time `json:"event_start_at,omitempty"`
	EventPoints  int32      `json:"event_points,omitempty"`
	UserName     string     `json:"user_name,omitempty"`
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusBooked
}

// Schedule splits a user's bookings the way the schedule page shows them.
type Schedule struct {
	Upcoming  []Booking `json:"upcoming"`
	Completed []Booking `json:"completed"`
}

// CanMentor reports whether a user with the given account role may take the
// mentor slot on an event led by ledBy.
func CanMentor(userRole UserRole, ledBy LedBy) bool {
	switch ledBy {
	case LedByYouth:
		return userRole == UserRoleYouth
	case LedBySenior:
		return userRole == UserRoleSenior
	default:
		return false
	}
}

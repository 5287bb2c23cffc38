package domain

import "time"

type UserRole string

const (
	UserRoleYouth  UserRole = "youth"
	UserRoleSenior UserRole = "senior"
)

func (r UserRole) Valid() bool {
	return r == UserRoleYouth || r == UserRoleSenior
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
)

func (s VerificationStatus) Valid() bool {
	return s == VerificationPending || s == VerificationVerified
}

// GoogleOAuthPasswordMarker is stored in place of a password hash for accounts
// created through Google sign-in.
const GoogleOAuthPasswordMarker = "google_oauth"

type User struct {
	ID                 int32              `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	Role               UserRole           `json:"role"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	GrcID              *int32             `json:"grc_id,omitempty"`
	Language           string             `json:"language"`
	Profession         string             `json:"profession"`
	Bio                string             `json:"bio"`
	BirthDate          *time.Time         `json:"birth_date,omitempty"`
	ProfilePhoto       string             `json:"profile_photo"`
	TotalPoints        int32              `json:"total_points"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (u *User) IsGoogleUser() bool {
	return u.PasswordHash == GoogleOAuthPasswordMarker
}

type AdminPrivilege string

const (
	AdminPrivilegeStandard AdminPrivilege = "standard"
	AdminPrivilegeSuper    AdminPrivilege = "super"
)

type Admin struct {
	ID           int32          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Privilege    AdminPrivilege `json:"privilege"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Dashboard aggregates the numbers shown on a participant's home page.
type Dashboard struct {
	User             *User     `json:"user"`
	EventsCompleted  int32     `json:"events_completed"`
	TotalHours       float64   `json:"total_hours"`
	UnreadCount      int32     `json:"unread_notifications"`
	UpcomingBookings []Booking `json:"upcoming_bookings"`
}

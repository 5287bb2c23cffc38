package domain

// Fallback headcounts used when an event has no requirement row for a role.
const (
	DefaultMentorCapacity      int32 = 5
	DefaultParticipantCapacity int32 = 15
)

type RoleCapacity struct {
	Role      RoleType `json:"role"`
	Required  int32    `json:"required"`
	Filled    int32    `json:"filled"`
	Available int32    `json:"available"`
	IsFull    bool     `json:"is_full"`
}

type Capacity struct {
	Roles         map[RoleType]RoleCapacity `json:"roles"`
	TotalFilled   int32                     `json:"total_filled"`
	TotalCapacity int32                     `json:"total_capacity"`
	IsEventFull   bool                      `json:"is_event_full"`
}

// Available returns the open slots for role.
func (c Capacity) Available(role RoleType) int32 {
	return c.Roles[role].Available
}

// ComputeCapacity derives per-role slot usage from the requirement rows and the
// number of active bookings in each role. It holds no state and must be
// recomputed after every booking change.
func ComputeCapacity(reqs []RoleRequirement, filled map[RoleType]int32) Capacity {
	required := map[RoleType]int32{
		RoleMentor:      DefaultMentorCapacity,
		RoleParticipant: DefaultParticipantCapacity,
	}
	for _, r := range reqs {
		if r.Role.Valid() {
			required[r.Role] = r.Required
		}
	}

	c := Capacity{Roles: make(map[RoleType]RoleCapacity, len(Roles))}
	for _, role := range Roles {
		rc := RoleCapacity{Role: role, Required: required[role], Filled: filled[role]}
		rc.Available = rc.Required - rc.Filled
		if rc.Available < 0 {
			rc.Available = 0
		}
		rc.IsFull = rc.Available == 0
		c.Roles[role] = rc
		c.TotalFilled += rc.Filled
		c.TotalCapacity += rc.Required
	}
	c.IsEventFull = c.TotalFilled >= c.TotalCapacity
	return c
}

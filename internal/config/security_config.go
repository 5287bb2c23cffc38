// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityUser                        // Signed-in participant
	SecurityAdmin                       // Signed-in administrator
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.register":     SecurityPublic,
	"auth.login":        SecurityPublic,
	"auth.google":       SecurityPublic,
	"auth.logout":       SecurityPublic,
	"admin.auth.login":  SecurityPublic,
	"admin.auth.logout": SecurityPublic,
	"health":            SecurityPublic,

	// Catalog - Public
	"events.list":     SecurityPublic,
	"events.get":      SecurityPublic,
	"challenges.list": SecurityPublic,
	"challenges.get":  SecurityPublic,
	"rewards.list":    SecurityPublic,
	"skills.list":     SecurityPublic,

	// Participant
	"me.dashboard":           SecurityUser,
	"me.profile":             SecurityUser,
	"me.profile.update":      SecurityUser,
	"me.profile.photo":       SecurityUser,
	"me.password":            SecurityUser,
	"me.schedule":            SecurityUser,
	"me.points":              SecurityUser,
	"me.skills":              SecurityUser,
	"me.skills.update":       SecurityUser,
	"events.signup":          SecurityUser,
	"events.withdraw":        SecurityUser,
	"events.proof":           SecurityUser,
	"challenges.submit":      SecurityUser,
	"challenges.latest":      SecurityUser,
	"notifications.list":     SecurityUser,
	"notifications.unread":   SecurityUser,
	"notifications.read":     SecurityUser,
	"notifications.read_all": SecurityUser,
	"rewards.redeem":         SecurityUser,
	"rewards.redemptions":    SecurityUser,
	"rewards.cancel":         SecurityUser,
	"tickets.create":         SecurityUser,
	"tickets.list":           SecurityUser,
	"chat.start":             SecurityUser,
	"chat.active":            SecurityUser,
	"chat.send":              SecurityUser,
	"chat.history":           SecurityUser,
	"media.get":              SecurityUser,
}

// GetSecurityLevel returns the security level for a given route name. Every
// route registered on the admin router is admin-only regardless of this table.
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}

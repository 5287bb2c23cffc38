package security

import (
	"errors"
	"strconv"
	"time"

	"skillswap-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// SubjectKind tells user sessions apart from admin sessions.
type SubjectKind string

const (
	SubjectUser  SubjectKind = "user"
	SubjectAdmin SubjectKind = "admin"
)

// SessionClaims are carried in both the bearer token and the session cookie.
type SessionClaims struct {
	Kind      SubjectKind           `json:"kind"`
	UserID    int32                 `json:"user_id"`
	Role      domain.UserRole       `json:"role,omitempty"`
	Privilege domain.AdminPrivilege `json:"privilege,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts validated claims into the request identity.
func (c *SessionClaims) Principal() Principal {
	switch c.Kind {
	case SubjectUser:
		return UserPrincipal{ID: c.UserID, Role: c.Role}
	case SubjectAdmin:
		return AdminPrincipal{ID: c.UserID, Privilege: c.Privilege}
	}
	return Anonymous{}
}

type TokenManager interface {
	GenerateUserSession(user *domain.User) (string, time.Time, error)
	GenerateAdminSession(admin *domain.Admin) (string, time.Time, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *tokenManager) GenerateUserSession(user *domain.User) (string, time.Time, error) {
	return m.sign(SessionClaims{
		Kind:   SubjectUser,
		UserID: user.ID,
		Role:   user.Role,
	}, "skillswap-app")
}

func (m *tokenManager) GenerateAdminSession(admin *domain.Admin) (string, time.Time, error) {
	return m.sign(SessionClaims{
		Kind:      SubjectAdmin,
		UserID:    admin.ID,
		Privilege: admin.Privilege,
	}, "skillswap-admin")
}

func (m *tokenManager) sign(claims SessionClaims, audience string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.Itoa(int(claims.UserID)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "skillswap",
		Audience:  jwt.ClaimStrings{audience},
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *tokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if claims.Kind != SubjectUser && claims.Kind != SubjectAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

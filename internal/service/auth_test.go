package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
	"skillswap-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (*authService, *MockUserRepo, *MockAdminRepo, *MockTokenManager, *MockGoogleVerifier) {
	users := new(MockUserRepo)
	admins := new(MockAdminRepo)
	tokens := new(MockTokenManager)
	google := new(MockGoogleVerifier)
	svc := &authService{userRepo: users, adminRepo: admins, tokens: tokens, google: google, now: fixedClock(testNow)}
	return svc, users, admins, tokens, google
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Pending Account", func(t *testing.T) {
		svc, users, _, _, _ := newTestAuthService()
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "amy@example.com" &&
				u.VerificationStatus == domain.VerificationPending &&
				security.CheckPassword(u.PasswordHash, "correct horse") == nil
		})).Return(nil)

		user, err := svc.Register(ctx, RegisterInput{Name: "Amy", Email: " Amy@Example.com ", Password: "correct horse", Role: domain.UserRoleYouth})
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleYouth, user.Role)
		users.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, users, _, _, _ := newTestAuthService()
		users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

		_, err := svc.Register(ctx, RegisterInput{Name: "Amy", Email: "amy@example.com", Password: "correct horse", Role: domain.UserRoleSenior})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("Invalid Input", func(t *testing.T) {
		svc, users, _, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, RegisterInput{Email: "nope", Password: "short", Role: "admin"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)

	t.Run("Verified User", func(t *testing.T) {
		svc, users, _, tokens, _ := newTestAuthService()
		user := &domain.User{ID: 10, Email: "amy@example.com", PasswordHash: hash, VerificationStatus: domain.VerificationVerified}
		users.On("GetByEmail", ctx, "amy@example.com").Return(user, nil)
		tokens.On("GenerateUserSession", user).Return("signed", testNow.Add(time.Hour), nil)

		session, err := svc.Login(ctx, "AMY@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "signed", session.Token)
		assert.Equal(t, user, session.User)
		assert.Nil(t, session.Admin)
	})

	t.Run("Pending User Refused", func(t *testing.T) {
		svc, users, _, tokens, _ := newTestAuthService()
		users.On("GetByEmail", ctx, "amy@example.com").
			Return(&domain.User{ID: 10, PasswordHash: hash, VerificationStatus: domain.VerificationPending}, nil)

		_, err := svc.Login(ctx, "amy@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrAccountPending)
		tokens.AssertNotCalled(t, "GenerateUserSession", mock.Anything)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, users, _, _, _ := newTestAuthService()
		users.On("GetByEmail", ctx, "amy@example.com").
			Return(&domain.User{ID: 10, PasswordHash: hash, VerificationStatus: domain.VerificationVerified}, nil)

		_, err := svc.Login(ctx, "amy@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, users, _, _, _ := newTestAuthService()
		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()
	identity := &security.GoogleIdentity{Subject: "g-1", Email: "Ben@Example.com", Name: "Ben"}

	t.Run("Creates Verified Account", func(t *testing.T) {
		svc, users, _, tokens, google := newTestAuthService()
		google.On("Verify", ctx, "id-token").Return(identity, nil)
		users.On("GetByEmail", ctx, "ben@example.com").Return(nil, repository.ErrNotFound)
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.IsGoogleUser() && u.VerificationStatus == domain.VerificationVerified && u.Role == domain.UserRoleSenior
		})).Return(nil)
		tokens.On("GenerateUserSession", mock.Anything).Return("signed", testNow.Add(time.Hour), nil)

		session, err := svc.LoginWithGoogle(ctx, "id-token", domain.UserRoleSenior)
		require.NoError(t, err)
		assert.Equal(t, "Ben", session.User.Name)
		users.AssertExpectations(t)
	})

	t.Run("New Account Needs Role", func(t *testing.T) {
		svc, users, _, _, google := newTestAuthService()
		google.On("Verify", ctx, "id-token").Return(identity, nil)
		users.On("GetByEmail", ctx, "ben@example.com").Return(nil, repository.ErrNotFound)

		_, err := svc.LoginWithGoogle(ctx, "id-token", "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Bad Token", func(t *testing.T) {
		svc, _, _, _, google := newTestAuthService()
		google.On("Verify", ctx, "forged").Return(nil, errors.New("signature mismatch"))

		_, err := svc.LoginWithGoogle(ctx, "forged", domain.UserRoleYouth)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Disabled", func(t *testing.T) {
		svc, _, _, _, google := newTestAuthService()
		google.On("Verify", ctx, "id-token").Return(nil, security.ErrGoogleSignInDisabled)

		_, err := svc.LoginWithGoogle(ctx, "id-token", domain.UserRoleYouth)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashPassword("admin-secret")
	require.NoError(t, err)

	svc, _, admins, tokens, _ := newTestAuthService()
	admin := &domain.Admin{ID: 1, Email: "ops@example.com", PasswordHash: hash, Privilege: domain.AdminPrivilegeSuper}
	admins.On("GetByEmail", ctx, "ops@example.com").Return(admin, nil)
	tokens.On("GenerateAdminSession", admin).Return("admin-token", testNow.Add(time.Hour), nil)

	session, err := svc.AdminLogin(ctx, "ops@example.com", "admin-secret")
	require.NoError(t, err)
	assert.Equal(t, admin, session.Admin)
	assert.Nil(t, session.User)

	_, err = svc.AdminLogin(ctx, "ops@example.com", "guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
	"skillswap-backend/internal/security"
)

const minPasswordLength = 8

type authService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	tokens    security.TokenManager
	google    security.GoogleVerifier
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, tokens security.TokenManager, google security.GoogleVerifier) AuthService {
	return &authService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		tokens:    tokens,
		google:    google,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(errs *fieldErrors, field, password string) {
	if len(password) < minPasswordLength {
		errs.add(field, fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
}

// Register creates a participant account awaiting admin verification.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	logger.EnterMethod("authService.Register", "email", in.Email, "role", in.Role)

	email := normalizeEmail(in.Email)
	var errs fieldErrors
	if strings.TrimSpace(in.Name) == "" {
		errs.add("name", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs.add("email", "is not a valid email address")
	}
	validatePassword(&errs, "password", in.Password)
	if !in.Role.Valid() {
		errs.add("role", "must be youth or senior")
	}
	if err := errs.err(); err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Name:               strings.TrimSpace(in.Name),
		Email:              email,
		PasswordHash:       hash,
		Role:               in.Role,
		VerificationStatus: domain.VerificationPending,
		GrcID:              in.GrcID,
		Language:           "en",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = ErrEmailTaken
		}
		logger.ExitMethodWithError("authService.Register", err)
		return nil, err
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return user, nil
}

func (s *authService) userSession(user *domain.User) (*Session, error) {
	token, expires, err := s.tokens.GenerateUserSession(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expires, User: user}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	logger.EnterMethod("authService.Login", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return nil, err
	}
	if err := security.CheckPassword(user.PasswordHash, password); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "email", email)
		return nil, ErrInvalidCredentials
	}
	if user.VerificationStatus != domain.VerificationVerified {
		logger.ExitMethodWithError("authService.Login", ErrAccountPending, "userID", user.ID)
		return nil, ErrAccountPending
	}

	session, err := s.userSession(user)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "userID", user.ID)
		return nil, err
	}
	logger.ExitMethod("authService.Login", "userID", user.ID)
	return session, nil
}

// LoginWithGoogle signs in with a Google ID token. An unknown email creates a
// verified account with the given role.
func (s *authService) LoginWithGoogle(ctx context.Context, idToken string, role domain.UserRole) (*Session, error) {
	logger.EnterMethod("authService.LoginWithGoogle")

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, security.ErrGoogleSignInDisabled) {
			err = fmt.Errorf("%w: %w", ErrForbidden, err)
		} else {
			err = fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		logger.ExitMethodWithError("authService.LoginWithGoogle", err)
		return nil, err
	}

	email := normalizeEmail(identity.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		if !role.Valid() {
			err = invalid("role", "must be youth or senior for a new account")
			logger.ExitMethodWithError("authService.LoginWithGoogle", err)
			return nil, err
		}
		name := identity.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		now := s.now()
		user = &domain.User{
			Name:               name,
			Email:              email,
			PasswordHash:       domain.GoogleOAuthPasswordMarker,
			Role:               role,
			VerificationStatus: domain.VerificationVerified,
			Language:           "en",
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			logger.ExitMethodWithError("authService.LoginWithGoogle", err, "email", email)
			return nil, err
		}
		logger.InfoContext(ctx, "Account created through Google sign-in", "userID", user.ID)
	default:
		logger.ExitMethodWithError("authService.LoginWithGoogle", err, "email", email)
		return nil, err
	}

	if user.VerificationStatus != domain.VerificationVerified {
		logger.ExitMethodWithError("authService.LoginWithGoogle", ErrAccountPending, "userID", user.ID)
		return nil, ErrAccountPending
	}

	session, err := s.userSession(user)
	if err != nil {
		logger.ExitMethodWithError("authService.LoginWithGoogle", err, "userID", user.ID)
		return nil, err
	}
	logger.ExitMethod("authService.LoginWithGoogle", "userID", user.ID)
	return session, nil
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	logger.EnterMethod("authService.AdminLogin", "email", email)

	admin, err := s.adminRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.AdminLogin", err, "email", email)
		return nil, err
	}
	if err := security.CheckPassword(admin.PasswordHash, password); err != nil {
		logger.ExitMethodWithError("authService.AdminLogin", ErrInvalidCredentials, "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.GenerateAdminSession(admin)
	if err != nil {
		logger.ExitMethodWithError("authService.AdminLogin", err, "adminID", admin.ID)
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	logger.ExitMethod("authService.AdminLogin", "adminID", admin.ID)
	return &Session{Token: token, ExpiresAt: expires, Admin: admin}, nil
}

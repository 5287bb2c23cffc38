package security

import (
	"context"
	"errors"
	"fmt"

	"skillswap-backend/internal/logger"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

var ErrGoogleSignInDisabled = errors.New("google sign-in is not configured")

type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if g.clientID == "" {
		return nil, ErrGoogleSignInDisabled
	}

	logger.ExternalServiceCall("google", "verify_id_token")
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		logger.ExternalServiceResult("google", "verify_id_token", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	logger.ExternalServiceResult("google", "verify_id_token", err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return &GoogleIdentity{Subject: claims.Sub, Email: claims.Email, Name: claims.Name}, nil
}

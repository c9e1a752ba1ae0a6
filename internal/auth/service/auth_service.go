package service

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// TokenRevoker invalidates a user's refresh tokens. *auth.Client from the
// Firebase Admin SDK satisfies it.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// DraftDiscarder forgets any in-progress draft for a user.
type DraftDiscarder interface {
	Discard(userID string)
}

type noopRevoker struct{}

func (noopRevoker) RevokeRefreshTokens(context.Context, string) error { return nil }

type AuthService struct {
	revoker TokenRevoker
	drafts  DraftDiscarder
}

// NewAuthService builds the sign-out service. A nil revoker is allowed for
// development setups without Firebase.
func NewAuthService(revoker TokenRevoker, drafts DraftDiscarder) *AuthService {
	if revoker == nil {
		revoker = noopRevoker{}
	}
	return &AuthService{
		revoker: revoker,
		drafts:  drafts,
	}
}

// SignOut revokes the user's sessions and drops their draft.
func (s *AuthService) SignOut(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return fmt.Errorf("uid required")
	}
	if err := s.revoker.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	if s.drafts != nil {
		s.drafts.Discard(uid)
	}
	log.Printf("[auth] signed out user=%s", uid)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

// Authenticate resolves claims to the live user row. The token only names
// the user; whether they still exist and are active is read from the store.
func (svc *Service) Authenticate(ctx context.Context, claims *auth.Claims) (*repository.User, error) {
	if claims == nil {
		return nil, apperr.ErrAuthenticationRequired
	}

	user, err := svc.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("repo.GetUserByID: %w", err)
	}
	if !user.IsActive {
		return nil, apperr.ErrAuthenticationRequired
	}

	return user, nil
}

// RequireRole authenticates claims and checks the stored role, ignoring the
// role carried in the token.
func (svc *Service) RequireRole(ctx context.Context, claims *auth.Claims, role repository.Role) (*repository.User, error) {
	user, err := svc.Authenticate(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !user.Role.Is(role) {
		return nil, apperr.ErrInsufficientRole
	}
	return user, nil
}

// canModify reports whether actor may edit or delete content written by
// authorID. Guest content belongs to nobody, so only admins may touch it.
func canModify(actor *repository.User, authorID *int64, isGuest bool) bool {
	if actor.Role.Is(repository.RoleAdmin) {
		return true
	}
	return !isGuest && authorID != nil && *authorID == actor.ID
}

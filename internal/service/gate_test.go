package service

import (
	"context"
	"testing"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Authenticate(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	user, claims := register(t, svc, "Alice", "alice@example.com")

	got, err := svc.Authenticate(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, nil)
	assertKind(t, apperr.KindAuthenticationRequired, err)

	_, err = svc.Authenticate(ctx, &auth.Claims{UserID: 999})
	assertKind(t, apperr.KindAuthenticationRequired, err)

	inactive := false
	_, err = store.UpdateUser(ctx, user.ID, repository.UserUpdate{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, claims)
	assertKind(t, apperr.KindAuthenticationRequired, err)
}

func TestService_RequireRole(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	_, memberClaims := register(t, svc, "Member", "member@example.com")
	admin, adminClaims := register(t, svc, "Admin", "admin@example.com")

	upper := repository.Role("ADMIN")
	_, err := store.UpdateUser(ctx, admin.ID, repository.UserUpdate{Role: &upper})
	require.NoError(t, err)

	got, err := svc.RequireRole(ctx, adminClaims, repository.RoleAdmin)
	require.NoError(t, err, "role comparison ignores case")
	assert.Equal(t, admin.ID, got.ID)

	_, err = svc.RequireRole(ctx, memberClaims, repository.RoleAdmin)
	assertKind(t, apperr.KindInsufficientRole, err)

	forged := *memberClaims
	forged.Role = "admin"
	_, err = svc.RequireRole(ctx, &forged, repository.RoleAdmin)
	assertKind(t, apperr.KindInsufficientRole, err)

	// demotion takes effect without a new token
	user := repository.RoleUser
	_, err = store.UpdateUser(ctx, admin.ID, repository.UserUpdate{Role: &user})
	require.NoError(t, err)
	_, err = svc.RequireRole(ctx, adminClaims, repository.RoleAdmin)
	assertKind(t, apperr.KindInsufficientRole, err)

	_, err = svc.RequireRole(ctx, nil, repository.RoleAdmin)
	assertKind(t, apperr.KindAuthenticationRequired, err)
}

func TestService_DeleteUser_Self(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	admin, _ := register(t, svc, "Admin", "admin@example.com")
	promote(t, store, admin.ID)

	err := svc.DeleteUser(ctx, admin, admin.ID)
	assertKind(t, apperr.KindSelfDeletionForbidden, err)

	_, err = store.GetUserByID(ctx, admin.ID)
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin, 12345)
	assertKind(t, apperr.KindNotFound, err)
}

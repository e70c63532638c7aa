package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/gfdmit/web-forum/community-service/internal/repository/inmemory"
	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts Options) (*Service, *inmemory.Store) {
	t.Helper()
	store := inmemory.New()
	creds := auth.NewCredentials("test-secret", time.Hour, bcrypt.MinCost)
	return New(store, creds, opts), store
}

func register(t *testing.T, svc *Service, name, email string) (*repository.User, *auth.Claims) {
	t.Helper()
	user, token, err := svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	claims, err := svc.creds.ParseToken(token)
	require.NoError(t, err)
	return user, claims
}

func promote(t *testing.T, store *inmemory.Store, id int64) {
	t.Helper()
	admin := repository.RoleAdmin
	_, err := store.UpdateUser(context.Background(), id, repository.UserUpdate{Role: &admin})
	require.NoError(t, err)
}

func countUsers(t *testing.T, store *inmemory.Store) int {
	t.Helper()
	users, err := store.GetUsers(context.Background())
	require.NoError(t, err)
	return len(users)
}

func assertKind(t *testing.T, want apperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperr.KindOf(err), "unexpected error: %v", err)
}

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Page
		want    Page
		wantErr bool
	}{
		{"defaults", Page{}, Page{Limit: DefaultPageLimit}, false},
		{"kept", Page{Limit: 10, Offset: 20}, Page{Limit: 10, Offset: 20}, false},
		{"clamped", Page{Limit: 1000}, Page{Limit: MaxPageLimit}, false},
		{"negative limit", Page{Limit: -1}, Page{}, true},
		{"negative offset", Page{Offset: -5}, Page{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.normalize()
			if tt.wantErr {
				assertKind(t, apperr.KindValidation, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Register(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	user, claims := register(t, svc, "  Alice ", "Alice@Example.com ")
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, repository.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Other", Email: "alice@example.com", Password: "secret1"})
	assertKind(t, apperr.KindDuplicateEmail, err)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "   ", Email: "b@example.com", Password: "secret1"})
	assertKind(t, apperr.KindValidation, err)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "Bob", Email: "b@example.com", Password: "123"})
	assertKind(t, apperr.KindValidation, err)

	assert.Equal(t, 1, countUsers(t, store))
}

func TestService_Login(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	user, _ := register(t, svc, "Alice", "alice@example.com")

	got, token, err := svc.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
	assertKind(t, apperr.KindInvalidCredentials, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assertKind(t, apperr.KindInvalidCredentials, err)

	inactive := false
	_, err = store.UpdateUser(ctx, user.ID, repository.UserUpdate{IsActive: &inactive})
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "secret1"})
	assertKind(t, apperr.KindInvalidCredentials, err)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	user, _ := register(t, svc, "Alice", "alice@example.com")

	name := " Alicia "
	updated, err := svc.UpdateProfile(ctx, user, ProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)

	password := "newsecret"
	wrong := "nope"
	_, err = svc.UpdateProfile(ctx, updated, ProfileInput{Password: &password, CurrentPassword: &wrong})
	assertKind(t, apperr.KindValidation, err)

	current := "secret1"
	_, err = svc.UpdateProfile(ctx, updated, ProfileInput{Password: &password, CurrentPassword: &current})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "newsecret"})
	require.NoError(t, err)
}

func TestService_EnsureAdmin(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	created, isNew, err := svc.EnsureAdmin(ctx, UserInput{Name: "Root", Email: "root@example.com", Password: "rootpass"}, false)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, repository.RoleAdmin, created.Role)

	member, _ := register(t, svc, "Bob", "bob@example.com")
	promoted, isNew, err := svc.EnsureAdmin(ctx, UserInput{Email: "BOB@example.com", Password: "ignored"}, false)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, member.ID, promoted.ID)
	assert.Equal(t, repository.RoleAdmin, promoted.Role)

	_, _, err = svc.Login(ctx, LoginInput{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err, "password untouched without reset")
}

func TestService_PasswordByteLimit(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	// 30 runes, 90 bytes
	long := strings.Repeat("가", 30)
	fits := strings.Repeat("가", 24)

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Kim", Email: "kim@example.com", Password: long})
	assertKind(t, apperr.KindValidation, err)

	_, err = svc.CreateUser(ctx, UserInput{Name: "Kim", Email: "kim@example.com", Password: long})
	assertKind(t, apperr.KindValidation, err)

	_, _, err = svc.EnsureAdmin(ctx, UserInput{Name: "Root", Email: "root@example.com", Password: long}, false)
	assertKind(t, apperr.KindValidation, err)

	assert.Zero(t, countUsers(t, store))

	user, _, err := svc.Register(ctx, RegisterInput{Name: "Kim", Email: "kim@example.com", Password: fits})
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, LoginInput{Email: "kim@example.com", Password: fits})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user, ProfileInput{Password: &long, CurrentPassword: &fits})
	assertKind(t, apperr.KindValidation, err)

	_, err = svc.UpdateUser(ctx, nil, user.ID, UserUpdateInput{Password: &long})
	assertKind(t, apperr.KindValidation, err)
}

func TestService_UpdateUser_SelfLockout(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, UserInput{Name: "Root", Email: "root@example.com", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	other, err := svc.CreateUser(ctx, UserInput{Name: "Ops", Email: "ops@example.com", Password: "secret1", Role: "admin"})
	require.NoError(t, err)

	inactive := false
	demoted := "user"
	sameRole := "ADMIN"
	name := "Root Admin"

	_, err = svc.UpdateUser(ctx, admin, admin.ID, UserUpdateInput{IsActive: &inactive})
	assertKind(t, apperr.KindSelfLockoutForbidden, err)
	_, err = svc.UpdateUser(ctx, admin, admin.ID, UserUpdateInput{Role: &demoted})
	assertKind(t, apperr.KindSelfLockoutForbidden, err)

	self, err := svc.UpdateUser(ctx, admin, admin.ID, UserUpdateInput{Name: &name, Role: &sameRole})
	require.NoError(t, err)
	assert.Equal(t, repository.RoleAdmin, self.Role)
	assert.True(t, self.IsActive)

	updated, err := svc.UpdateUser(ctx, admin, other.ID, UserUpdateInput{Role: &demoted, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, repository.RoleUser, updated.Role)
	assert.False(t, updated.IsActive)
}

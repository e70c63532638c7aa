package app

import (
	"context"
	"testing"

	"github.com/gfdmit/web-forum/community-service/config"
	"github.com/gfdmit/web-forum/community-service/internal/repository/inmemory"
	"github.com/gfdmit/web-forum/community-service/internal/service"
	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepository_Memory(t *testing.T) {
	conf := config.Config{App: config.App{Storage: storageMemory}}

	repo, closeRepo, err := NewRepository(conf)
	require.NoError(t, err)
	defer closeRepo()

	assert.IsType(t, &inmemory.Store{}, repo)
}

func TestNewService_EnsureAdmin(t *testing.T) {
	conf := config.Config{
		App:  config.App{Storage: storageMemory},
		Auth: config.Auth{JWTSecret: "secret", BcryptCost: bcrypt.MinCost},
	}
	repo, closeRepo, err := NewRepository(conf)
	require.NoError(t, err)
	defer closeRepo()

	svc, _ := NewService(conf, repo)
	ctx := context.Background()

	in := service.UserInput{Name: "Root", Email: "Root@Example.com", Password: "secret1"}
	user, created, err := svc.EnsureAdmin(ctx, in, false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "root@example.com", user.Email)

	again, created, err := svc.EnsureAdmin(ctx, in, false)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
}

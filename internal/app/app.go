package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gfdmit/web-forum/community-service/config"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	v1 "github.com/gfdmit/web-forum/community-service/internal/handlers/http/v1"
	"github.com/gfdmit/web-forum/community-service/internal/httpserver"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/gfdmit/web-forum/community-service/internal/repository/inmemory"
	"github.com/gfdmit/web-forum/community-service/internal/repository/postgres"
	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/gin-gonic/gin"
)

const storageMemory = "memory"

// NewRepository opens the store selected by conf.Storage. The returned func
// releases it.
func NewRepository(conf config.Config) (repository.Repository, func(), error) {
	if conf.App.Storage == storageMemory {
		log.Println("[APP] using in-memory storage, data is lost on restart")
		return inmemory.New(), func() {}, nil
	}

	repo, err := postgres.New(conf.Postgres)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Printf("[APP] error when closing repository: %v", err)
		}
	}, nil
}

// NewService builds the service layer on top of repo.
func NewService(conf config.Config, repo repository.Repository) (*service.Service, *auth.Credentials) {
	creds := auth.NewCredentials(conf.Auth.JWTSecret, conf.Auth.TokenTTL, conf.Auth.BcryptCost)
	svc := service.New(repo, creds, service.Options{
		AutoApproveGuestbook: conf.App.AutoApproveGuestbook,
	})
	return svc, creds
}

func Run(conf config.Config) error {
	ctx := context.Background()

	repo, closeRepo, err := NewRepository(conf)
	if err != nil {
		return fmt.Errorf("error when setting up repository: %v", err)
	}
	defer closeRepo()

	svc, creds := NewService(conf, repo)
	sessions := auth.NewSessions(creds, conf.Auth.CookieName, conf.App.Production())

	if conf.App.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, err := v1.New(svc, sessions, conf.App)
	if err != nil {
		return fmt.Errorf("error when setting up handler: %v", err)
	}

	httpserver := httpserver.New(conf.HTTPServer, handler)

	return httpserver.Run(ctx)
}

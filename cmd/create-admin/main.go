package main

import (
	"context"
	"flag"
	"log"

	"github.com/gfdmit/web-forum/community-service/config"
	"github.com/gfdmit/web-forum/community-service/internal/app"
	"github.com/gfdmit/web-forum/community-service/internal/service"
)

func main() {
	var (
		name          = flag.String("name", "Administrator", "display name of the admin account")
		email         = flag.String("email", "", "email of the admin account")
		password      = flag.String("password", "", "password used when the account is created")
		resetPassword = flag.Bool("reset-password", false, "also overwrite the password of an existing account")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("[SETUP ERROR] -email and -password are required")
	}

	conf, err := config.New(".env")
	if err != nil {
		log.Fatalf("[SETUP ERROR] error when reading config: %v", err)
	}

	repo, closeRepo, err := app.NewRepository(*conf)
	if err != nil {
		log.Fatalf("[SETUP ERROR] error when setting up repository: %v", err)
	}
	defer closeRepo()

	svc, _ := app.NewService(*conf, repo)

	user, created, err := svc.EnsureAdmin(context.Background(), service.UserInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	}, *resetPassword)
	if err != nil {
		closeRepo()
		log.Fatalf("[APPLICATION ERROR] error: %v", err)
	}

	if created {
		log.Printf("[ADMIN] created admin %s (id=%d)", user.Email, user.ID)
	} else {
		log.Printf("[ADMIN] promoted %s (id=%d) to admin", user.Email, user.ID)
	}
}

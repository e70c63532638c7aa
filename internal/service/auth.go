package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

const (
	minPasswordLength = 6
	// bcrypt only accepts up to 72 bytes, whatever the rune count.
	maxPasswordBytes = 72
)

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

// Register creates a member account and returns it with a fresh session token.
func (svc *Service) Register(ctx context.Context, in RegisterInput) (*repository.User, string, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, "", err
	}
	email, err := required("email", normalizeEmail(in.Email))
	if err != nil {
		return nil, "", err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, "", err
	}

	hash, err := svc.creds.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := svc.repo.CreateUser(ctx, &repository.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         repository.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		return nil, "", translate(err, "user not found", "repo.CreateUser")
	}

	token, err := svc.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks credentials. Unknown email, wrong password and disabled
// accounts all fail with the same error.
func (svc *Service) Login(ctx context.Context, in LoginInput) (*repository.User, string, error) {
	user, err := svc.repo.GetUserByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			svc.creds.VerifyNobody(in.Password)
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("repo.GetUserByEmail: %w", err)
	}

	if !svc.creds.Verify(in.Password, user.PasswordHash) || !user.IsActive {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := svc.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (svc *Service) issue(user *repository.User) (string, error) {
	return svc.creds.IssueToken(user.ID, user.Email, strings.ToLower(string(user.Role)))
}

// UpdateProfile lets a member rename themselves or change their password.
// A password change needs the current password.
func (svc *Service) UpdateProfile(ctx context.Context, actor *repository.User, in ProfileInput) (*repository.User, error) {
	var upd repository.UserUpdate

	if in.Name != nil {
		name, err := required("name", *in.Name)
		if err != nil {
			return nil, err
		}
		upd.Name = &name
	}

	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		if in.CurrentPassword == nil || !svc.creds.Verify(*in.CurrentPassword, actor.PasswordHash) {
			return nil, apperr.Validation("current password is incorrect")
		}
		hash, err := svc.creds.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	user, err := svc.repo.UpdateUser(ctx, actor.ID, upd)
	if err != nil {
		return nil, translate(err, "user not found", "repo.UpdateUser")
	}
	return user, nil
}

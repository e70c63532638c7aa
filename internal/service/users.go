package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

func parseRole(value string) (repository.Role, error) {
	if value == "" {
		return repository.RoleUser, nil
	}
	role, ok := repository.ParseRole(value)
	if !ok {
		return "", apperr.Validation("role must be user or admin")
	}
	return role, nil
}

func (svc *Service) ListUsers(ctx context.Context) ([]repository.User, error) {
	users, err := svc.repo.GetUsers(ctx)
	if err != nil {
		return nil, translate(err, "user not found", "repo.GetUsers")
	}
	return users, nil
}

func (svc *Service) CreateUser(ctx context.Context, in UserInput) (*repository.User, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}
	email, err := required("email", normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	role, err := parseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := svc.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := svc.repo.CreateUser(ctx, &repository.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		return nil, translate(err, "user not found", "repo.CreateUser")
	}
	return user, nil
}

// UpdateUser applies an admin's changes to the account with id. Admins
// cannot demote or deactivate themselves. A nil actor is the bootstrap tool.
func (svc *Service) UpdateUser(ctx context.Context, actor *repository.User, id int64, in UserUpdateInput) (*repository.User, error) {
	upd := repository.UserUpdate{IsActive: in.IsActive}

	if actor != nil && actor.ID == id {
		if in.IsActive != nil && !*in.IsActive {
			return nil, apperr.ErrSelfLockout
		}
		if in.Role != nil {
			if role, ok := repository.ParseRole(*in.Role); ok && !role.Is(actor.Role) {
				return nil, apperr.ErrSelfLockout
			}
		}
	}

	if in.Name != nil {
		name, err := required("name", *in.Name)
		if err != nil {
			return nil, err
		}
		upd.Name = &name
	}
	if in.Email != nil {
		email, err := required("email", normalizeEmail(*in.Email))
		if err != nil {
			return nil, err
		}
		upd.Email = &email
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := svc.creds.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}
	if in.Role != nil {
		role, ok := repository.ParseRole(*in.Role)
		if !ok {
			return nil, apperr.Validation("role must be user or admin")
		}
		upd.Role = &role
	}

	user, err := svc.repo.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, translate(err, "user not found", "repo.UpdateUser")
	}
	return user, nil
}

// DeleteUser removes the account with id. Admins cannot delete themselves.
func (svc *Service) DeleteUser(ctx context.Context, actor *repository.User, id int64) error {
	if actor.ID == id {
		return apperr.ErrSelfDeletion
	}
	if err := svc.repo.DeleteUser(ctx, id); err != nil {
		return translate(err, "user not found", "repo.DeleteUser")
	}
	return nil
}

// EnsureAdmin creates an active admin account for email, or promotes and
// re-activates the existing one. The password is only set on creation
// unless resetPassword is true.
func (svc *Service) EnsureAdmin(ctx context.Context, in UserInput, resetPassword bool) (*repository.User, bool, error) {
	email := normalizeEmail(in.Email)

	existing, err := svc.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		in.Role = string(repository.RoleAdmin)
		active := true
		in.IsActive = &active
		user, err := svc.CreateUser(ctx, in)
		return user, true, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo.GetUserByEmail: %w", err)
	}

	admin := string(repository.RoleAdmin)
	active := true
	upd := UserUpdateInput{Role: &admin, IsActive: &active}
	if resetPassword {
		upd.Password = &in.Password
	}
	user, err := svc.UpdateUser(ctx, nil, existing.ID, upd)
	return user, false, err
}

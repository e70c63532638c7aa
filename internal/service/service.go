package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

type Options struct {
	// AutoApproveGuestbook publishes public guestbook entries immediately.
	AutoApproveGuestbook bool
}

type Service struct {
	repo  repository.Repository
	creds *auth.Credentials
	opts  Options
}

func New(repo repository.Repository, creds *auth.Credentials, opts Options) *Service {
	return &Service{
		repo:  repo,
		creds: creds,
		opts:  opts,
	}
}

// Page is an offset/limit window over a newest-first list.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() (Page, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return Page{}, apperr.Validation("limit and offset must not be negative")
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p, nil
}

// translate maps repository sentinels to API errors and wraps anything else
// with the failed operation.
func translate(err error, notFound, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperr.ErrDuplicateEmail
	}
	return fmt.Errorf("%s: %w", op, err)
}

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Validation(field + " is required")
	}
	return value, nil
}

// optional trims value and turns an empty result into nil.
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

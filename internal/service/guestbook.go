package service

import (
	"context"

	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

// ListGuestbook returns the approved entries, newest first.
func (svc *Service) ListGuestbook(ctx context.Context) ([]repository.GuestbookEntry, error) {
	entries, err := svc.repo.GetGuestbookEntries(ctx, true)
	if err != nil {
		return nil, translate(err, "entry not found", "repo.GetGuestbookEntries")
	}
	return entries, nil
}

func (svc *Service) AdminListGuestbook(ctx context.Context) ([]repository.GuestbookEntry, error) {
	entries, err := svc.repo.GetGuestbookEntries(ctx, false)
	if err != nil {
		return nil, translate(err, "entry not found", "repo.GetGuestbookEntries")
	}
	return entries, nil
}

func (svc *Service) CreateGuestbookEntry(ctx context.Context, in GuestbookInput) (*repository.GuestbookEntry, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}
	message, err := required("message", in.Message)
	if err != nil {
		return nil, err
	}

	entry, err := svc.repo.CreateGuestbookEntry(ctx, &repository.GuestbookEntry{
		Name:       name,
		Email:      optional(in.Email),
		Message:    message,
		IsApproved: svc.opts.AutoApproveGuestbook,
	})
	if err != nil {
		return nil, translate(err, "entry not found", "repo.CreateGuestbookEntry")
	}
	return entry, nil
}

// SetGuestbookApproval moves an entry between pending and approved.
func (svc *Service) SetGuestbookApproval(ctx context.Context, id int64, approved bool) (*repository.GuestbookEntry, error) {
	entry, err := svc.repo.SetGuestbookApproval(ctx, id, approved)
	if err != nil {
		return nil, translate(err, "entry not found", "repo.SetGuestbookApproval")
	}
	return entry, nil
}

func (svc *Service) ApproveAllGuestbook(ctx context.Context) (int64, error) {
	n, err := svc.repo.ApproveAllGuestbookEntries(ctx)
	if err != nil {
		return 0, translate(err, "entry not found", "repo.ApproveAllGuestbookEntries")
	}
	return n, nil
}

func (svc *Service) DeleteGuestbookEntry(ctx context.Context, id int64) error {
	if err := svc.repo.DeleteGuestbookEntry(ctx, id); err != nil {
		return translate(err, "entry not found", "repo.DeleteGuestbookEntry")
	}
	return nil
}

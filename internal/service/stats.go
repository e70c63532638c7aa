package service

import (
	"context"

	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

func (svc *Service) Stats(ctx context.Context) (*repository.Stats, error) {
	stats, err := svc.repo.GetStats(ctx)
	if err != nil {
		return nil, translate(err, "stats not found", "repo.GetStats")
	}
	return stats, nil
}

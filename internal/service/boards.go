package service

import (
	"context"

	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

const defaultCategory = "general"

func (svc *Service) ListBoards(ctx context.Context) ([]repository.Board, error) {
	boards, err := svc.repo.GetBoards(ctx, false)
	if err != nil {
		return nil, translate(err, "board not found", "repo.GetBoards")
	}
	return boards, nil
}

func (svc *Service) GetBoard(ctx context.Context, id int64) (*repository.Board, error) {
	board, err := svc.repo.GetBoard(ctx, id)
	if err != nil {
		return nil, translate(err, "board not found", "repo.GetBoard")
	}
	return board, nil
}

// AdminListBoards lists every board, inactive ones included, with its post count.
func (svc *Service) AdminListBoards(ctx context.Context) ([]repository.BoardWithCount, error) {
	boards, err := svc.repo.GetBoardsWithPostCount(ctx)
	if err != nil {
		return nil, translate(err, "board not found", "repo.GetBoardsWithPostCount")
	}
	return boards, nil
}

func (svc *Service) CreateBoard(ctx context.Context, in BoardInput) (*repository.Board, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return nil, err
	}
	description, err := required("description", in.Description)
	if err != nil {
		return nil, err
	}

	board := &repository.Board{
		Title:       title,
		Description: description,
		Category:    defaultCategory,
		AllowGuest:  true,
		IsActive:    true,
	}
	if category := optional(&in.Category); category != nil {
		board.Category = *category
	}
	if in.AllowGuest != nil {
		board.AllowGuest = *in.AllowGuest
	}
	if in.IsActive != nil {
		board.IsActive = *in.IsActive
	}

	created, err := svc.repo.CreateBoard(ctx, board)
	if err != nil {
		return nil, translate(err, "board not found", "repo.CreateBoard")
	}
	return created, nil
}

func (svc *Service) UpdateBoard(ctx context.Context, id int64, in BoardUpdateInput) (*repository.Board, error) {
	upd := repository.BoardUpdate{
		AllowGuest: in.AllowGuest,
		IsActive:   in.IsActive,
	}
	for _, field := range []struct {
		name string
		in   *string
		out  **string
	}{
		{"title", in.Title, &upd.Title},
		{"description", in.Description, &upd.Description},
		{"category", in.Category, &upd.Category},
	} {
		if field.in == nil {
			continue
		}
		value, err := required(field.name, *field.in)
		if err != nil {
			return nil, err
		}
		*field.out = &value
	}

	board, err := svc.repo.UpdateBoard(ctx, id, upd)
	if err != nil {
		return nil, translate(err, "board not found", "repo.UpdateBoard")
	}
	return board, nil
}

func (svc *Service) DeleteBoard(ctx context.Context, id int64) error {
	if err := svc.repo.DeleteBoard(ctx, id); err != nil {
		return translate(err, "board not found", "repo.DeleteBoard")
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

func (svc *Service) ListPosts(ctx context.Context, boardID int64, page Page) ([]repository.Post, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}
	if _, err := svc.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}

	posts, err := svc.repo.GetPosts(ctx, boardID, page.Limit, page.Offset)
	if err != nil {
		return nil, translate(err, "post not found", "repo.GetPosts")
	}
	return posts, nil
}

// ReadPost counts a view and returns the post. A failed increment is
// logged and does not fail the read.
func (svc *Service) ReadPost(ctx context.Context, boardID, id int64) (*repository.Post, error) {
	if err := svc.repo.IncrementPostViews(ctx, boardID, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("[SERVICE] increment views of post %d: %v", id, err)
	}
	return svc.GetPost(ctx, boardID, id)
}

// GetPost returns the post without counting a view.
func (svc *Service) GetPost(ctx context.Context, boardID, id int64) (*repository.Post, error) {
	post, err := svc.repo.GetPost(ctx, boardID, id)
	if err != nil {
		return nil, translate(err, "post not found", "repo.GetPost")
	}
	return post, nil
}

// CreatePost stores a post as a member (from claims) or as a guest,
// depending on the board's policy and in.IsGuest.
func (svc *Service) CreatePost(ctx context.Context, claims *auth.Claims, boardID int64, in PostInput) (*repository.Post, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return nil, err
	}
	content, err := required("content", in.Content)
	if err != nil {
		return nil, err
	}

	board, err := svc.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	actor, err := svc.writer(ctx, claims, in.IsGuest)
	if err != nil {
		return nil, err
	}

	name := in.AuthorName
	if strings.TrimSpace(name) == "" {
		name = in.Author
	}
	author, err := resolveAuthorship(board, in.IsGuest, name, actor)
	if err != nil {
		return nil, err
	}

	post, err := svc.repo.CreatePost(ctx, &repository.Post{
		BoardID:    board.ID,
		Title:      title,
		Content:    content,
		AuthorID:   author.authorID,
		AuthorName: author.authorName,
		IsGuest:    author.isGuest,
	})
	if err != nil {
		return nil, translate(err, "board not found", "repo.CreatePost")
	}
	return post, nil
}

// writer looks up the member behind claims for a member write. Guest
// writes never need one.
func (svc *Service) writer(ctx context.Context, claims *auth.Claims, isGuest bool) (*repository.User, error) {
	if isGuest || claims == nil {
		return nil, nil
	}
	return svc.Authenticate(ctx, claims)
}

func (svc *Service) UpdatePost(ctx context.Context, actor *repository.User, boardID, id int64, in PostUpdateInput) (*repository.Post, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return nil, err
	}
	content, err := required("content", in.Content)
	if err != nil {
		return nil, err
	}

	post, err := svc.GetPost(ctx, boardID, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, post.AuthorID, post.IsGuest) {
		return nil, apperr.ErrForbidden
	}

	updated, err := svc.repo.UpdatePost(ctx, boardID, id, title, content)
	if err != nil {
		return nil, translate(err, "post not found", "repo.UpdatePost")
	}
	return updated, nil
}

func (svc *Service) DeletePost(ctx context.Context, actor *repository.User, boardID, id int64) error {
	post, err := svc.GetPost(ctx, boardID, id)
	if err != nil {
		return err
	}
	if !canModify(actor, post.AuthorID, post.IsGuest) {
		return apperr.ErrForbidden
	}

	if err := svc.repo.DeletePost(ctx, boardID, id); err != nil {
		return translate(err, "post not found", "repo.DeletePost")
	}
	return nil
}

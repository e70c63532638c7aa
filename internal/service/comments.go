package service

import (
	"context"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/auth"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

func (svc *Service) ListComments(ctx context.Context, boardID, postID int64, page Page) ([]repository.Comment, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}
	if _, err := svc.GetPost(ctx, boardID, postID); err != nil {
		return nil, err
	}

	comments, err := svc.repo.GetComments(ctx, postID, page.Limit, page.Offset)
	if err != nil {
		return nil, translate(err, "comment not found", "repo.GetComments")
	}
	return comments, nil
}

// CommentsByPost returns the comments of every post in postIDs, newest
// first per post.
func (svc *Service) CommentsByPost(ctx context.Context, postIDs []int64) (map[int64][]repository.Comment, error) {
	comments, err := svc.repo.GetCommentsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, translate(err, "comment not found", "repo.GetCommentsByPostIDs")
	}
	return comments, nil
}

func (svc *Service) CreateComment(ctx context.Context, claims *auth.Claims, boardID, postID int64, in CommentInput) (*repository.Comment, error) {
	content, err := required("content", in.Content)
	if err != nil {
		return nil, err
	}

	board, err := svc.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	post, err := svc.GetPost(ctx, boardID, postID)
	if err != nil {
		return nil, err
	}

	actor, err := svc.writer(ctx, claims, in.IsGuest)
	if err != nil {
		return nil, err
	}
	author, err := resolveAuthorship(board, in.IsGuest, in.AuthorName, actor)
	if err != nil {
		return nil, err
	}

	comment, err := svc.repo.CreateComment(ctx, &repository.Comment{
		PostID:     post.ID,
		Content:    content,
		AuthorID:   author.authorID,
		AuthorName: author.authorName,
		IsGuest:    author.isGuest,
	})
	if err != nil {
		return nil, translate(err, "post not found", "repo.CreateComment")
	}
	return comment, nil
}

func (svc *Service) DeleteComment(ctx context.Context, actor *repository.User, boardID, postID, id int64) error {
	if _, err := svc.GetPost(ctx, boardID, postID); err != nil {
		return err
	}
	comment, err := svc.repo.GetComment(ctx, postID, id)
	if err != nil {
		return translate(err, "comment not found", "repo.GetComment")
	}
	if !canModify(actor, comment.AuthorID, comment.IsGuest) {
		return apperr.ErrForbidden
	}

	if err := svc.repo.DeleteComment(ctx, postID, id); err != nil {
		return translate(err, "comment not found", "repo.DeleteComment")
	}
	return nil
}

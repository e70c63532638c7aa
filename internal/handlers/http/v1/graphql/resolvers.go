package graphql

import (
	"errors"
	"log"
	"strconv"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/graphql-go/graphql"
)

var pageArgs = graphql.FieldConfigArgument{
	"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: service.DefaultPageLimit},
	"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
}

func withPageArgs(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	for name, arg := range pageArgs {
		args[name] = arg
	}
	return args
}

func pageOf(p graphql.ResolveParams) service.Page {
	limit, _ := p.Args["limit"].(int)
	offset, _ := p.Args["offset"].(int)
	return service.Page{Limit: limit, Offset: offset}
}

func idArg(p graphql.ResolveParams, name string) (int64, error) {
	raw, _ := p.Args[name].(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ErrInvalidID
	}
	return id, nil
}

// public hides unexpected failures from the client.
func public(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return errors.New(appErr.Message)
	}
	log.Println("[GRAPHQL] resolver error:", err)
	return errors.New("internal server error")
}

func getBoardQuery(gh *gqlHandler, boardType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: boardType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := idArg(p, "id")
			if err != nil {
				return nil, public(err)
			}
			board, err := gh.svc.GetBoard(p.Context, id)
			return board, public(err)
		},
	}
}

func getBoardsQuery(gh *gqlHandler, boardType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(boardType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			boards, err := gh.svc.ListBoards(p.Context)
			return boards, public(err)
		},
	}
}

func getBoardPostsField(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(postType),
		Args: withPageArgs(graphql.FieldConfigArgument{}),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			var boardID int64
			switch src := p.Source.(type) {
			case repository.Board:
				boardID = src.ID
			case *repository.Board:
				boardID = src.ID
			}
			posts, err := gh.svc.ListPosts(p.Context, boardID, pageOf(p))
			return posts, public(err)
		},
	}
}

func getPostQuery(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"boardId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			boardID, err := idArg(p, "boardId")
			if err != nil {
				return nil, public(err)
			}
			id, err := idArg(p, "id")
			if err != nil {
				return nil, public(err)
			}
			post, err := gh.svc.GetPost(p.Context, boardID, id)
			return post, public(err)
		},
	}
}

func getPostsQuery(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(postType),
		Args: withPageArgs(graphql.FieldConfigArgument{
			"boardId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		}),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			boardID, err := idArg(p, "boardId")
			if err != nil {
				return nil, public(err)
			}
			posts, err := gh.svc.ListPosts(p.Context, boardID, pageOf(p))
			return posts, public(err)
		},
	}
}

func getPostCommentsField(commentType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(commentType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			var postID int64
			switch src := p.Source.(type) {
			case repository.Post:
				postID = src.ID
			case *repository.Post:
				postID = src.ID
			}
			return loadComments(p.Context, postID)
		},
	}
}

func getCommentsQuery(gh *gqlHandler, commentType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(commentType),
		Args: withPageArgs(graphql.FieldConfigArgument{
			"boardId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		}),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			boardID, err := idArg(p, "boardId")
			if err != nil {
				return nil, public(err)
			}
			postID, err := idArg(p, "postId")
			if err != nil {
				return nil, public(err)
			}
			comments, err := gh.svc.ListComments(p.Context, boardID, postID, pageOf(p))
			return comments, public(err)
		},
	}
}

func getGuestbookQuery(gh *gqlHandler, guestbookType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(guestbookType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			entries, err := gh.svc.ListGuestbook(p.Context)
			return entries, public(err)
		},
	}
}

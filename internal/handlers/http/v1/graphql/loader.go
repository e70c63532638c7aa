package graphql

import (
	"context"
	"strconv"
	"time"

	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/gfdmit/web-forum/community-service/internal/service"
	"github.com/graph-gophers/dataloader"
)

type contextKey string

const loadersKey = contextKey("loaders")

type loaders struct {
	commentsByPostID *dataloader.Loader
}

// newLoaders builds per-request loaders, so nothing is cached across requests.
func newLoaders(svc *service.Service) *loaders {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))

		postIDs := make([]int64, 0, len(keys))
		for i, key := range keys {
			id, err := strconv.ParseInt(key.String(), 10, 64)
			if err != nil {
				results[i] = &dataloader.Result{Error: err}
				continue
			}
			postIDs = append(postIDs, id)
		}

		comments, err := svc.CommentsByPost(ctx, postIDs)
		for i, key := range keys {
			if results[i] != nil {
				continue
			}
			if err != nil {
				results[i] = &dataloader.Result{Error: err}
				continue
			}
			id, _ := strconv.ParseInt(key.String(), 10, 64)
			postComments := comments[id]
			if postComments == nil {
				postComments = []repository.Comment{}
			}
			results[i] = &dataloader.Result{Data: postComments}
		}
		return results
	}

	return &loaders{
		commentsByPostID: dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(time.Millisecond)),
	}
}

func loadersFor(ctx context.Context) *loaders {
	l, _ := ctx.Value(loadersKey).(*loaders)
	return l
}

// loadComments returns a thunk so graphql-go can batch every post's
// comments into one lookup.
func loadComments(ctx context.Context, postID int64) (interface{}, error) {
	l := loadersFor(ctx)
	if l == nil {
		return nil, errNoLoaders
	}
	thunk := l.commentsByPostID.Load(ctx, dataloader.StringKey(strconv.FormatInt(postID, 10)))
	return func() (interface{}, error) {
		return thunk()
	}, nil
}

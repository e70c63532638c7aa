package service

import (
	"strings"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

type authorship struct {
	authorID   *int64
	authorName string
	isGuest    bool
}

// resolveAuthorship decides who a new post or comment on board is stored
// under. The board's guest policy wins over the client's isGuest flag, and
// members are always recorded under their own name.
func resolveAuthorship(board *repository.Board, isGuest bool, name string, actor *repository.User) (authorship, error) {
	if !board.IsActive {
		return authorship{}, apperr.ErrBoardInactive
	}

	if isGuest {
		if !board.AllowGuest {
			return authorship{}, apperr.ErrGuestNotAllowed
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return authorship{}, apperr.ErrMissingAuthorName
		}
		return authorship{authorName: name, isGuest: true}, nil
	}

	if actor == nil {
		return authorship{}, apperr.ErrAuthenticationRequired
	}
	id := actor.ID
	return authorship{authorID: &id, authorName: actor.Name}, nil
}

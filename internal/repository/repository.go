package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// StatsRecentLimit is how many recent rows each Stats section carries.
const StatsRecentLimit = 5

type Repository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id int64) error

	GetBoard(ctx context.Context, id int64) (*Board, error)
	GetBoards(ctx context.Context, includeInactive bool) ([]Board, error)
	GetBoardsWithPostCount(ctx context.Context) ([]BoardWithCount, error)
	CreateBoard(ctx context.Context, board *Board) (*Board, error)
	UpdateBoard(ctx context.Context, id int64, upd BoardUpdate) (*Board, error)
	DeleteBoard(ctx context.Context, id int64) error

	GetPost(ctx context.Context, boardID, id int64) (*Post, error)
	GetPosts(ctx context.Context, boardID int64, limit, offset int) ([]Post, error)
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	UpdatePost(ctx context.Context, boardID, id int64, title, content string) (*Post, error)
	DeletePost(ctx context.Context, boardID, id int64) error
	IncrementPostViews(ctx context.Context, boardID, id int64) error

	GetComment(ctx context.Context, postID, id int64) (*Comment, error)
	GetComments(ctx context.Context, postID int64, limit, offset int) ([]Comment, error)
	GetCommentsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]Comment, error)
	CreateComment(ctx context.Context, comment *Comment) (*Comment, error)
	DeleteComment(ctx context.Context, postID, id int64) error

	GetTodos(ctx context.Context, userID int64) ([]Todo, error)
	CreateTodo(ctx context.Context, todo *Todo) (*Todo, error)
	UpdateTodo(ctx context.Context, userID, id int64, upd TodoUpdate) (*Todo, error)
	DeleteTodo(ctx context.Context, userID, id int64) error

	GetGuestbookEntries(ctx context.Context, approvedOnly bool) ([]GuestbookEntry, error)
	CreateGuestbookEntry(ctx context.Context, entry *GuestbookEntry) (*GuestbookEntry, error)
	SetGuestbookApproval(ctx context.Context, id int64, approved bool) (*GuestbookEntry, error)
	ApproveAllGuestbookEntries(ctx context.Context) (int64, error)
	DeleteGuestbookEntry(ctx context.Context, id int64) error

	GetStats(ctx context.Context) (*Stats, error)
}

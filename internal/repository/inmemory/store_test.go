package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/gfdmit/web-forum/community-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store with one user and one board
func newTestStore(t *testing.T) (*Store, *repository.User, *repository.Board) {
	store := New()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, &repository.User{Name: "Alice", Email: "alice@example.com", IsActive: true})
	require.NoError(t, err)

	board, err := store.CreateBoard(ctx, &repository.Board{Title: "Free", Category: "general", AllowGuest: true, IsActive: true})
	require.NoError(t, err)

	return store, user, board
}

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, &repository.User{Name: "Other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	users, err := store.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_UpdateUser(t *testing.T) {
	store, user, _ := newTestStore(t)
	ctx := context.Background()

	other, err := store.CreateUser(ctx, &repository.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = store.UpdateUser(ctx, other.ID, repository.UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	admin := repository.RoleAdmin
	inactive := false
	updated, err := store.UpdateUser(ctx, user.ID, repository.UserUpdate{Role: &admin, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, repository.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Alice", updated.Name)

	_, err = store.UpdateUser(ctx, 999, repository.UserUpdate{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_DeleteUser_KeepsAuthoredContent(t *testing.T) {
	store, user, board := newTestStore(t)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, &repository.Post{BoardID: board.ID, Title: "t", Content: "c", AuthorID: &user.ID, AuthorName: user.Name})
	require.NoError(t, err)
	_, err = store.CreateTodo(ctx, &repository.Todo{UserID: user.ID, Title: "todo", Priority: repository.PriorityLow})
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(ctx, user.ID))

	kept, err := store.GetPost(ctx, board.ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.AuthorID)
	assert.Equal(t, "Alice", kept.AuthorName)

	todos, err := store.GetTodos(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, todos)

	assert.ErrorIs(t, store.DeleteUser(ctx, user.ID), repository.ErrNotFound)
}

func TestStore_Posts_NewestFirstAndPagination(t *testing.T) {
	store, _, board := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var ids []int64
	for i := 0; i < 5; i++ {
		p, err := store.CreatePost(ctx, &repository.Post{BoardID: board.ID, Title: "t", Content: "c", AuthorName: "guest", IsGuest: true})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	firstPage, err := store.GetPosts(ctx, board.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Equal(t, ids[4], firstPage[0].ID)
	assert.Equal(t, ids[3], firstPage[1].ID)

	secondPage, err := store.GetPosts(ctx, board.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 3)
	assert.Equal(t, ids[0], secondPage[2].ID)

	empty, err := store.GetPosts(ctx, board.ID, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_GetPost_WrongBoard(t *testing.T) {
	store, _, board := newTestStore(t)
	ctx := context.Background()

	other, err := store.CreateBoard(ctx, &repository.Board{Title: "Other", IsActive: true})
	require.NoError(t, err)
	post, err := store.CreatePost(ctx, &repository.Post{BoardID: board.ID, Title: "t", Content: "c", AuthorName: "x", IsGuest: true})
	require.NoError(t, err)

	_, err = store.GetPost(ctx, other.ID, post.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.IncrementPostViews(ctx, other.ID, post.ID), repository.ErrNotFound)
}

func TestStore_IncrementPostViews(t *testing.T) {
	store, _, board := newTestStore(t)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, &repository.Post{BoardID: board.ID, Title: "t", Content: "c", AuthorName: "x", IsGuest: true})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.IncrementPostViews(ctx, board.ID, post.ID))
	}
	got, err := store.GetPost(ctx, board.ID, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Views)
}

func TestStore_DeleteBoard_CascadesPostsAndComments(t *testing.T) {
	store, _, board := newTestStore(t)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, &repository.Post{BoardID: board.ID, Title: "t", Content: "c", AuthorName: "x", IsGuest: true})
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, &repository.Comment{PostID: post.ID, Content: "hi", AuthorName: "y", IsGuest: true})
	require.NoError(t, err)

	counted, err := store.GetBoardsWithPostCount(ctx)
	require.NoError(t, err)
	require.Len(t, counted, 1)
	assert.EqualValues(t, 1, counted[0].PostCount)

	require.NoError(t, store.DeleteBoard(ctx, board.ID))

	comments, err := store.GetCommentsByPostIDs(ctx, []int64{post.ID})
	require.NoError(t, err)
	assert.Empty(t, comments[post.ID])
}

func TestStore_Todos_OwnerScoped(t *testing.T) {
	store, user, _ := newTestStore(t)
	ctx := context.Background()

	other, err := store.CreateUser(ctx, &repository.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	todo, err := store.CreateTodo(ctx, &repository.Todo{UserID: user.ID, Title: "mine", Priority: repository.PriorityMedium})
	require.NoError(t, err)

	_, err = store.UpdateTodo(ctx, other.ID, todo.ID, repository.TodoUpdate{Title: "stolen", Priority: repository.PriorityHigh})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.DeleteTodo(ctx, other.ID, todo.ID), repository.ErrNotFound)

	updated, err := store.UpdateTodo(ctx, user.ID, todo.ID, repository.TodoUpdate{Title: "done", Completed: true, Priority: repository.PriorityHigh})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, repository.PriorityHigh, updated.Priority)

	require.NoError(t, store.DeleteTodo(ctx, user.ID, todo.ID))
}

func TestStore_Guestbook_Approval(t *testing.T) {
	store := New()
	ctx := context.Background()

	pending, err := store.CreateGuestbookEntry(ctx, &repository.GuestbookEntry{Name: "a", Message: "hello"})
	require.NoError(t, err)
	_, err = store.CreateGuestbookEntry(ctx, &repository.GuestbookEntry{Name: "b", Message: "hi", IsApproved: true})
	require.NoError(t, err)

	public, err := store.GetGuestbookEntries(ctx, true)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	approved, err := store.SetGuestbookApproval(ctx, pending.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = store.SetGuestbookApproval(ctx, pending.ID, false)
	require.NoError(t, err)

	n, err := store.ApproveAllGuestbookEntries(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Guestbook.Total)
	assert.EqualValues(t, 0, stats.Guestbook.Pending)
}

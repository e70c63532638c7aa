package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/lib/pq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*postgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return &postgresRepository{db: db}, mock
}

func columns(list string) []string {
	return strings.Split(list, ", ")
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password, role, is_active)")).
		WithArgs("Alice", "alice@example.com", "hash", "user", true).
		WillReturnError(&pq.Error{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"})

	_, err := repo.CreateUser(context.Background(), &repository.User{
		Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", IsActive: true,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUpdateUser_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	email := "taken@example.com"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.UpdateUser(context.Background(), 3, repository.UserUpdate{Email: &email})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestCreateUser_OtherErrorsPassThrough(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23502"})

	_, err := repo.CreateUser(context.Background(), &repository.User{Name: "Alice", Email: "alice@example.com"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrDuplicateEmail))
	assert.False(t, errors.Is(err, repository.ErrNotFound))
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+userColumns+" FROM users WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(columns(userColumns)))

	_, err := repo.GetUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPost_Scans(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+postColumns+" FROM posts WHERE id = $1 AND board_id = $2")).
		WithArgs(int64(7), int64(2)).
		WillReturnRows(sqlmock.NewRows(columns(postColumns)).
			AddRow(int64(7), int64(2), "t", "c", nil, "Visitor", true, int64(3), now, now))

	post, err := repo.GetPost(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.Nil(t, post.AuthorID)
	assert.Equal(t, "Visitor", post.AuthorName)
	assert.EqualValues(t, 3, post.Views)
}

func TestIncrementPostViews_SingleStatement(t *testing.T) {
	repo, mock := newMockRepository(t)
	query := regexp.QuoteMeta("UPDATE posts SET views = views + 1 WHERE id = $1 AND board_id = $2")

	mock.ExpectExec(query).WithArgs(int64(7), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(int64(7), int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementPostViews(context.Background(), 2, 7))
	assert.ErrorIs(t, repo.IncrementPostViews(context.Background(), 9, 7), repository.ErrNotFound)
}

func TestDeletes_NoRowsIsNotFound(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		call  func(r *postgresRepository) error
	}{
		{"user", "DELETE FROM users WHERE id = $1", func(r *postgresRepository) error { return r.DeleteUser(ctx, 1) }},
		{"board", "DELETE FROM boards WHERE id = $1", func(r *postgresRepository) error { return r.DeleteBoard(ctx, 1) }},
		{"post", "DELETE FROM posts WHERE id = $1 AND board_id = $2", func(r *postgresRepository) error { return r.DeletePost(ctx, 1, 2) }},
		{"comment", "DELETE FROM comments WHERE id = $1 AND post_id = $2", func(r *postgresRepository) error { return r.DeleteComment(ctx, 1, 2) }},
		{"todo", "DELETE FROM todos WHERE id = $1 AND user_id = $2", func(r *postgresRepository) error { return r.DeleteTodo(ctx, 1, 2) }},
		{"guestbook", "DELETE FROM guestbook WHERE id = $1", func(r *postgresRepository) error { return r.DeleteGuestbookEntry(ctx, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).WillReturnError(sql.ErrConnDone)

			assert.ErrorIs(t, tt.call(repo), repository.ErrNotFound)
			assert.NoError(t, tt.call(repo))
			assert.ErrorIs(t, tt.call(repo), sql.ErrConnDone)
		})
	}
}

func TestGetCommentsByPostIDs_Batch(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	author := int64(5)

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE post_id = ANY($1)")).
		WithArgs("{1,2,3}").
		WillReturnRows(sqlmock.NewRows(columns(commentColumns)).
			AddRow(int64(10), int64(1), "b", author, "Kim", false, now, now).
			AddRow(int64(9), int64(1), "a", nil, "Lee", true, now, now).
			AddRow(int64(11), int64(2), "c", nil, "Park", true, now, now))

	got, err := repo.GetCommentsByPostIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, got[1], 2)
	assert.EqualValues(t, 10, got[1][0].ID)
	require.NotNil(t, got[1][0].AuthorID)
	assert.Equal(t, author, *got[1][0].AuthorID)
	assert.Len(t, got[2], 1)
	assert.Empty(t, got[3])
}

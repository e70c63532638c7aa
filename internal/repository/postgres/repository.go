package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gfdmit/web-forum/community-service/config"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/lib/pq"

	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// uniqueViolation is the SQLSTATE postgres reports for a unique index clash.
const uniqueViolation = "23505"

type postgresRepository struct {
	db *sql.DB
}

func New(conf config.Postgres) (*postgresRepository, error) {
	url := fmt.Sprintf(
		"postgresql://%v:%v@%v:%v/%v?sslmode=%v", conf.User, conf.Pass, conf.Host, conf.Port, conf.DB, conf.SSLMode)

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db.Ping: %v", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres.WithInstance: %v", err)
	}
	migrations := fmt.Sprintf("file://%v", conf.Migrations)
	m, err := migrate.NewWithDatabaseInstance(migrations, conf.DB, driver)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithDatabaseInstance: %v", err)
	}
	log.Println("[REPOSITORY] applying migrations...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("[REPOSITORY] nothing to migrate")
		} else {
			return nil, fmt.Errorf("error when migrating: %v", err)
		}
	} else {
		log.Println("[REPOSITORY] migrated successfully!")
	}

	return &postgresRepository{
		db: db,
	}, nil
}

func (pr *postgresRepository) Close() error {
	return pr.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// notFound turns sql.ErrNoRows into repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// === Users ===

const userColumns = "id, name, email, password, role, is_active, created_at, updated_at"

func scanUser(row scanner) (*repository.User, error) {
	user := &repository.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (pr *postgresRepository) CreateUser(ctx context.Context, user *repository.User) (*repository.User, error) {
	role := user.Role
	if role == "" {
		role = repository.RoleUser
	}
	created, err := scanUser(pr.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password, role, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING "+userColumns,
		user.Name, user.Email, user.PasswordHash, role, user.IsActive))
	if isUniqueViolation(err) {
		return nil, repository.ErrDuplicateEmail
	}
	return created, err
}

func (pr *postgresRepository) GetUserByID(ctx context.Context, id int64) (*repository.User, error) {
	return scanUser(pr.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (pr *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*repository.User, error) {
	return scanUser(pr.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (pr *postgresRepository) GetUsers(ctx context.Context) ([]repository.User, error) {
	rows, err := pr.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []repository.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (pr *postgresRepository) UpdateUser(ctx context.Context, id int64, upd repository.UserUpdate) (*repository.User, error) {
	user, err := scanUser(pr.db.QueryRowContext(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			password = COALESCE($4, password),
			role = COALESCE($5, role),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, upd.Name, upd.Email, upd.PasswordHash, upd.Role, upd.IsActive))
	if isUniqueViolation(err) {
		return nil, repository.ErrDuplicateEmail
	}
	return user, err
}

func (pr *postgresRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// === Boards ===

const boardColumns = "id, title, description, category, allow_guest, is_active, created_at, updated_at"

func scanBoard(row scanner, extra ...any) (*repository.Board, error) {
	board := &repository.Board{}
	dest := append([]any{&board.ID, &board.Title, &board.Description, &board.Category,
		&board.AllowGuest, &board.IsActive, &board.CreatedAt, &board.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, notFound(err)
	}
	return board, nil
}

func (pr *postgresRepository) GetBoard(ctx context.Context, id int64) (*repository.Board, error) {
	return scanBoard(pr.db.QueryRowContext(ctx, "SELECT "+boardColumns+" FROM boards WHERE id = $1", id))
}

func (pr *postgresRepository) GetBoards(ctx context.Context, includeInactive bool) ([]repository.Board, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if includeInactive {
		rows, err = pr.db.QueryContext(ctx, "SELECT "+boardColumns+" FROM boards ORDER BY id")
	} else {
		rows, err = pr.db.QueryContext(ctx, "SELECT "+boardColumns+" FROM boards WHERE is_active ORDER BY id")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []repository.Board{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

func (pr *postgresRepository) GetBoardsWithPostCount(ctx context.Context) ([]repository.BoardWithCount, error) {
	rows, err := pr.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.description, b.category, b.allow_guest, b.is_active, b.created_at, b.updated_at,
			COUNT(p.id)
		FROM boards b
		LEFT JOIN posts p ON p.board_id = b.id
		GROUP BY b.id
		ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []repository.BoardWithCount{}
	for rows.Next() {
		var count int64
		board, err := scanBoard(rows, &count)
		if err != nil {
			return nil, err
		}
		boards = append(boards, repository.BoardWithCount{Board: *board, PostCount: count})
	}
	return boards, rows.Err()
}

func (pr *postgresRepository) CreateBoard(ctx context.Context, board *repository.Board) (*repository.Board, error) {
	return scanBoard(pr.db.QueryRowContext(ctx,
		"INSERT INTO boards (title, description, category, allow_guest, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING "+boardColumns,
		board.Title, board.Description, board.Category, board.AllowGuest, board.IsActive))
}

func (pr *postgresRepository) UpdateBoard(ctx context.Context, id int64, upd repository.BoardUpdate) (*repository.Board, error) {
	return scanBoard(pr.db.QueryRowContext(ctx, `
		UPDATE boards SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			allow_guest = COALESCE($5, allow_guest),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+boardColumns,
		id, upd.Title, upd.Description, upd.Category, upd.AllowGuest, upd.IsActive))
}

func (pr *postgresRepository) DeleteBoard(ctx context.Context, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// === Posts ===

const postColumns = "id, board_id, title, content, author_id, author_name, is_guest, views, created_at, updated_at"

func scanPost(row scanner) (*repository.Post, error) {
	post := &repository.Post{}
	err := row.Scan(&post.ID, &post.BoardID, &post.Title, &post.Content, &post.AuthorID,
		&post.AuthorName, &post.IsGuest, &post.Views, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

func (pr *postgresRepository) GetPost(ctx context.Context, boardID, id int64) (*repository.Post, error) {
	return scanPost(pr.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = $1 AND board_id = $2", id, boardID))
}

func (pr *postgresRepository) GetPosts(ctx context.Context, boardID int64, limit, offset int) ([]repository.Post, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE board_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3",
		boardID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []repository.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (pr *postgresRepository) CreatePost(ctx context.Context, post *repository.Post) (*repository.Post, error) {
	return scanPost(pr.db.QueryRowContext(ctx,
		"INSERT INTO posts (board_id, title, content, author_id, author_name, is_guest) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+postColumns,
		post.BoardID, post.Title, post.Content, post.AuthorID, post.AuthorName, post.IsGuest))
}

func (pr *postgresRepository) UpdatePost(ctx context.Context, boardID, id int64, title, content string) (*repository.Post, error) {
	return scanPost(pr.db.QueryRowContext(ctx,
		"UPDATE posts SET title = $3, content = $4, updated_at = NOW() WHERE id = $1 AND board_id = $2 RETURNING "+postColumns,
		id, boardID, title, content))
}

func (pr *postgresRepository) DeletePost(ctx context.Context, boardID, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1 AND board_id = $2", id, boardID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (pr *postgresRepository) IncrementPostViews(ctx context.Context, boardID, id int64) error {
	res, err := pr.db.ExecContext(ctx, "UPDATE posts SET views = views + 1 WHERE id = $1 AND board_id = $2", id, boardID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// === Comments ===

const commentColumns = "id, post_id, content, author_id, author_name, is_guest, created_at, updated_at"

func scanComment(row scanner) (*repository.Comment, error) {
	comment := &repository.Comment{}
	err := row.Scan(&comment.ID, &comment.PostID, &comment.Content, &comment.AuthorID,
		&comment.AuthorName, &comment.IsGuest, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

func (pr *postgresRepository) GetComment(ctx context.Context, postID, id int64) (*repository.Comment, error) {
	return scanComment(pr.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id = $1 AND post_id = $2", id, postID))
}

func (pr *postgresRepository) GetComments(ctx context.Context, postID int64, limit, offset int) ([]repository.Comment, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3",
		postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []repository.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (pr *postgresRepository) GetCommentsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]repository.Comment, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = ANY($1) ORDER BY post_id, created_at DESC, id DESC",
		pq.Array(postIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]repository.Comment, len(postIDs))
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		result[comment.PostID] = append(result[comment.PostID], *comment)
	}
	return result, rows.Err()
}

func (pr *postgresRepository) CreateComment(ctx context.Context, comment *repository.Comment) (*repository.Comment, error) {
	return scanComment(pr.db.QueryRowContext(ctx,
		"INSERT INTO comments (post_id, content, author_id, author_name, is_guest) VALUES ($1, $2, $3, $4, $5) RETURNING "+commentColumns,
		comment.PostID, comment.Content, comment.AuthorID, comment.AuthorName, comment.IsGuest))
}

func (pr *postgresRepository) DeleteComment(ctx context.Context, postID, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1 AND post_id = $2", id, postID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// === Todos ===

const todoColumns = "id, user_id, title, description, completed, priority, due_date, created_at, updated_at"

func scanTodo(row scanner) (*repository.Todo, error) {
	todo := &repository.Todo{}
	err := row.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed,
		&todo.Priority, &todo.DueDate, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return todo, nil
}

func (pr *postgresRepository) GetTodos(ctx context.Context, userID int64) ([]repository.Todo, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []repository.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (pr *postgresRepository) CreateTodo(ctx context.Context, todo *repository.Todo) (*repository.Todo, error) {
	return scanTodo(pr.db.QueryRowContext(ctx,
		"INSERT INTO todos (user_id, title, description, completed, priority, due_date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+todoColumns,
		todo.UserID, todo.Title, todo.Description, todo.Completed, todo.Priority, todo.DueDate))
}

func (pr *postgresRepository) UpdateTodo(ctx context.Context, userID, id int64, upd repository.TodoUpdate) (*repository.Todo, error) {
	return scanTodo(pr.db.QueryRowContext(ctx, `
		UPDATE todos SET title = $3, description = $4, completed = $5, priority = $6, due_date = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+todoColumns,
		id, userID, upd.Title, upd.Description, upd.Completed, upd.Priority, upd.DueDate))
}

func (pr *postgresRepository) DeleteTodo(ctx context.Context, userID, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// === Guestbook ===

const guestbookColumns = "id, name, email, message, is_approved, created_at"

func scanGuestbookEntry(row scanner) (*repository.GuestbookEntry, error) {
	entry := &repository.GuestbookEntry{}
	err := row.Scan(&entry.ID, &entry.Name, &entry.Email, &entry.Message, &entry.IsApproved, &entry.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return entry, nil
}

func (pr *postgresRepository) queryGuestbook(ctx context.Context, query string, args ...any) ([]repository.GuestbookEntry, error) {
	rows, err := pr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []repository.GuestbookEntry{}
	for rows.Next() {
		entry, err := scanGuestbookEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (pr *postgresRepository) GetGuestbookEntries(ctx context.Context, approvedOnly bool) ([]repository.GuestbookEntry, error) {
	if approvedOnly {
		return pr.queryGuestbook(ctx,
			"SELECT "+guestbookColumns+" FROM guestbook WHERE is_approved ORDER BY created_at DESC, id DESC")
	}
	return pr.queryGuestbook(ctx, "SELECT "+guestbookColumns+" FROM guestbook ORDER BY created_at DESC, id DESC")
}

func (pr *postgresRepository) CreateGuestbookEntry(ctx context.Context, entry *repository.GuestbookEntry) (*repository.GuestbookEntry, error) {
	return scanGuestbookEntry(pr.db.QueryRowContext(ctx,
		"INSERT INTO guestbook (name, email, message, is_approved) VALUES ($1, $2, $3, $4) RETURNING "+guestbookColumns,
		entry.Name, entry.Email, entry.Message, entry.IsApproved))
}

func (pr *postgresRepository) SetGuestbookApproval(ctx context.Context, id int64, approved bool) (*repository.GuestbookEntry, error) {
	return scanGuestbookEntry(pr.db.QueryRowContext(ctx,
		"UPDATE guestbook SET is_approved = $2 WHERE id = $1 RETURNING "+guestbookColumns, id, approved))
}

func (pr *postgresRepository) ApproveAllGuestbookEntries(ctx context.Context) (int64, error) {
	res, err := pr.db.ExecContext(ctx, "UPDATE guestbook SET is_approved = TRUE WHERE NOT is_approved")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (pr *postgresRepository) DeleteGuestbookEntry(ctx context.Context, id int64) error {
	res, err := pr.db.ExecContext(ctx, "DELETE FROM guestbook WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// === Stats ===

func (pr *postgresRepository) GetStats(ctx context.Context) (*repository.Stats, error) {
	stats := &repository.Stats{}

	err := pr.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(*) FROM users WHERE LOWER(role) = 'admin'),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM guestbook),
			(SELECT COUNT(*) FROM guestbook WHERE NOT is_approved),
			(SELECT COUNT(*) FROM todos),
			(SELECT COUNT(*) FROM todos WHERE completed)`).Scan(
		&stats.Users.Total, &stats.Users.Active, &stats.Users.Admins,
		&stats.Posts.Total,
		&stats.Guestbook.Total, &stats.Guestbook.Pending,
		&stats.Todos.Total, &stats.Todos.Completed)
	if err != nil {
		return nil, fmt.Errorf("counting: %w", err)
	}

	if stats.Users.Recent, err = pr.recentUsers(ctx); err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	if stats.Posts.Recent, err = pr.recentPosts(ctx); err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	stats.Guestbook.Recent, err = pr.queryGuestbook(ctx,
		"SELECT "+guestbookColumns+" FROM guestbook ORDER BY created_at DESC, id DESC LIMIT $1", repository.StatsRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent guestbook: %w", err)
	}

	return stats, nil
}

func (pr *postgresRepository) recentUsers(ctx context.Context) ([]repository.UserSummary, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM users ORDER BY created_at DESC, id DESC LIMIT $1", repository.StatsRecentLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []repository.UserSummary{}
	for rows.Next() {
		var u repository.UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (pr *postgresRepository) recentPosts(ctx context.Context) ([]repository.PostSummary, error) {
	rows, err := pr.db.QueryContext(ctx,
		"SELECT id, title, author_name, created_at FROM posts ORDER BY created_at DESC, id DESC LIMIT $1", repository.StatsRecentLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []repository.PostSummary{}
	for rows.Next() {
		var p repository.PostSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.AuthorName, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

// Store implements repository.Repository in memory. Every method returns
// copies, so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	now    func() time.Time
	nextID int64

	users     map[int64]repository.User
	boards    map[int64]repository.Board
	posts     map[int64]repository.Post
	comments  map[int64]repository.Comment
	todos     map[int64]repository.Todo
	guestbook map[int64]repository.GuestbookEntry
}

func New() *Store {
	return &Store{
		now:       func() time.Time { return time.Now().UTC() },
		users:     make(map[int64]repository.User),
		boards:    make(map[int64]repository.Board),
		posts:     make(map[int64]repository.Post),
		comments:  make(map[int64]repository.Comment),
		todos:     make(map[int64]repository.Todo),
		guestbook: make(map[int64]repository.GuestbookEntry),
	}
}

// id hands out ids from one sequence; callers must hold the write lock.
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// newestFirst orders by creation time, then id, both descending.
func newestFirst(ti, tj time.Time, idi, idj int64) bool {
	if ti.Equal(tj) {
		return idi > idj
	}
	return ti.After(tj)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, user *repository.User) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}

	created := *user
	created.ID = s.id()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	if created.Role == "" {
		created.Role = repository.RoleUser
	}
	s.users[created.ID] = created
	return &created, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetUsers(ctx context.Context) ([]repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]repository.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return newestFirst(users[i].CreatedAt, users[j].CreatedAt, users[i].ID, users[j].ID)
	})
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, upd repository.UserUpdate) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Email != nil && *upd.Email != u.Email {
		for _, other := range s.users {
			if other.Email == *upd.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)

	// author_id ON DELETE SET NULL, todos ON DELETE CASCADE
	for pid, p := range s.posts {
		if p.AuthorID != nil && *p.AuthorID == id {
			p.AuthorID = nil
			s.posts[pid] = p
		}
	}
	for cid, c := range s.comments {
		if c.AuthorID != nil && *c.AuthorID == id {
			c.AuthorID = nil
			s.comments[cid] = c
		}
	}
	for tid, t := range s.todos {
		if t.UserID == id {
			delete(s.todos, tid)
		}
	}
	return nil
}

// === Boards ===

func (s *Store) GetBoard(ctx context.Context, id int64) (*repository.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetBoards(ctx context.Context, includeInactive bool) ([]repository.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]repository.Board, 0, len(s.boards))
	for _, b := range s.boards {
		if includeInactive || b.IsActive {
			boards = append(boards, b)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID < boards[j].ID })
	return boards, nil
}

func (s *Store) GetBoardsWithPostCount(ctx context.Context) ([]repository.BoardWithCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int64, len(s.boards))
	for _, p := range s.posts {
		counts[p.BoardID]++
	}
	boards := make([]repository.BoardWithCount, 0, len(s.boards))
	for _, b := range s.boards {
		boards = append(boards, repository.BoardWithCount{Board: b, PostCount: counts[b.ID]})
	}
	sort.Slice(boards, func(i, j int) bool {
		return newestFirst(boards[i].CreatedAt, boards[j].CreatedAt, boards[i].ID, boards[j].ID)
	})
	return boards, nil
}

func (s *Store) CreateBoard(ctx context.Context, board *repository.Board) (*repository.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *board
	created.ID = s.id()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.boards[created.ID] = created
	return &created, nil
}

func (s *Store) UpdateBoard(ctx context.Context, id int64, upd repository.BoardUpdate) (*repository.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	if upd.AllowGuest != nil {
		b.AllowGuest = *upd.AllowGuest
	}
	if upd.IsActive != nil {
		b.IsActive = *upd.IsActive
	}
	b.UpdatedAt = s.now()
	s.boards[id] = b
	return &b, nil
}

func (s *Store) DeleteBoard(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.boards, id)
	for pid, p := range s.posts {
		if p.BoardID == id {
			s.deletePostLocked(pid)
		}
	}
	return nil
}

// === Posts ===

func (s *Store) GetPost(ctx context.Context, boardID, id int64) (*repository.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok || p.BoardID != boardID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *Store) GetPosts(ctx context.Context, boardID int64, limit, offset int) ([]repository.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]repository.Post, 0)
	for _, p := range s.posts {
		if p.BoardID == boardID {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return newestFirst(posts[i].CreatedAt, posts[j].CreatedAt, posts[i].ID, posts[j].ID)
	})
	return paginate(posts, limit, offset), nil
}

func (s *Store) CreatePost(ctx context.Context, post *repository.Post) (*repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[post.BoardID]; !ok {
		return nil, repository.ErrNotFound
	}
	created := *post
	created.ID = s.id()
	created.Views = 0
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.posts[created.ID] = created
	return &created, nil
}

func (s *Store) UpdatePost(ctx context.Context, boardID, id int64, title, content string) (*repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.BoardID != boardID {
		return nil, repository.ErrNotFound
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = s.now()
	s.posts[id] = p
	return &p, nil
}

func (s *Store) DeletePost(ctx context.Context, boardID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.BoardID != boardID {
		return repository.ErrNotFound
	}
	s.deletePostLocked(id)
	return nil
}

func (s *Store) deletePostLocked(id int64) {
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
}

func (s *Store) IncrementPostViews(ctx context.Context, boardID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.BoardID != boardID {
		return repository.ErrNotFound
	}
	p.Views++
	s.posts[id] = p
	return nil
}

// === Comments ===

func (s *Store) GetComment(ctx context.Context, postID, id int64) (*repository.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok || c.PostID != postID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetComments(ctx context.Context, postID int64, limit, offset int) ([]repository.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]repository.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return newestFirst(comments[i].CreatedAt, comments[j].CreatedAt, comments[i].ID, comments[j].ID)
	})
	return paginate(comments, limit, offset), nil
}

func (s *Store) GetCommentsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]repository.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}
	result := make(map[int64][]repository.Comment, len(postIDs))
	for _, c := range s.comments {
		if wanted[c.PostID] {
			result[c.PostID] = append(result[c.PostID], c)
		}
	}
	for postID, comments := range result {
		sort.Slice(comments, func(i, j int) bool {
			return newestFirst(comments[i].CreatedAt, comments[j].CreatedAt, comments[i].ID, comments[j].ID)
		})
		result[postID] = comments
	}
	return result, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *repository.Comment) (*repository.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostID]; !ok {
		return nil, repository.ErrNotFound
	}
	created := *comment
	created.ID = s.id()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.comments[created.ID] = created
	return &created, nil
}

func (s *Store) DeleteComment(ctx context.Context, postID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.PostID != postID {
		return repository.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// === Todos ===

func (s *Store) GetTodos(ctx context.Context, userID int64) ([]repository.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]repository.Todo, 0)
	for _, t := range s.todos {
		if t.UserID == userID {
			todos = append(todos, t)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		return newestFirst(todos[i].CreatedAt, todos[j].CreatedAt, todos[i].ID, todos[j].ID)
	})
	return todos, nil
}

func (s *Store) CreateTodo(ctx context.Context, todo *repository.Todo) (*repository.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[todo.UserID]; !ok {
		return nil, repository.ErrNotFound
	}
	created := *todo
	created.ID = s.id()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.todos[created.ID] = created
	return &created, nil
}

func (s *Store) UpdateTodo(ctx context.Context, userID, id int64, upd repository.TodoUpdate) (*repository.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	t.Title = upd.Title
	t.Description = upd.Description
	t.Completed = upd.Completed
	t.Priority = upd.Priority
	t.DueDate = upd.DueDate
	t.UpdatedAt = s.now()
	s.todos[id] = t
	return &t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

// === Guestbook ===

func (s *Store) GetGuestbookEntries(ctx context.Context, approvedOnly bool) ([]repository.GuestbookEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]repository.GuestbookEntry, 0, len(s.guestbook))
	for _, e := range s.guestbook {
		if !approvedOnly || e.IsApproved {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return newestFirst(entries[i].CreatedAt, entries[j].CreatedAt, entries[i].ID, entries[j].ID)
	})
	return entries, nil
}

func (s *Store) CreateGuestbookEntry(ctx context.Context, entry *repository.GuestbookEntry) (*repository.GuestbookEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *entry
	created.ID = s.id()
	created.CreatedAt = s.now()
	s.guestbook[created.ID] = created
	return &created, nil
}

func (s *Store) SetGuestbookApproval(ctx context.Context, id int64, approved bool) (*repository.GuestbookEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.guestbook[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.IsApproved = approved
	s.guestbook[id] = e
	return &e, nil
}

func (s *Store) ApproveAllGuestbookEntries(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, e := range s.guestbook {
		if !e.IsApproved {
			e.IsApproved = true
			s.guestbook[id] = e
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteGuestbookEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guestbook[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.guestbook, id)
	return nil
}

// === Stats ===

func (s *Store) GetStats(ctx context.Context) (*repository.Stats, error) {
	users, _ := s.GetUsers(ctx)
	entries, _ := s.GetGuestbookEntries(ctx, false)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &repository.Stats{}

	stats.Users.Total = int64(len(users))
	stats.Users.Recent = []repository.UserSummary{}
	for i, u := range users {
		if u.IsActive {
			stats.Users.Active++
		}
		if u.Role.Is(repository.RoleAdmin) {
			stats.Users.Admins++
		}
		if i < repository.StatsRecentLimit {
			stats.Users.Recent = append(stats.Users.Recent, repository.UserSummary{
				ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt,
			})
		}
	}

	posts := make([]repository.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return newestFirst(posts[i].CreatedAt, posts[j].CreatedAt, posts[i].ID, posts[j].ID)
	})
	stats.Posts.Total = int64(len(posts))
	stats.Posts.Recent = []repository.PostSummary{}
	for _, p := range paginate(posts, repository.StatsRecentLimit, 0) {
		stats.Posts.Recent = append(stats.Posts.Recent, repository.PostSummary{
			ID: p.ID, Title: p.Title, AuthorName: p.AuthorName, CreatedAt: p.CreatedAt,
		})
	}

	stats.Guestbook.Total = int64(len(entries))
	for _, e := range entries {
		if !e.IsApproved {
			stats.Guestbook.Pending++
		}
	}
	stats.Guestbook.Recent = paginate(entries, repository.StatsRecentLimit, 0)

	stats.Todos.Total = int64(len(s.todos))
	for _, t := range s.todos {
		if t.Completed {
			stats.Todos.Completed++
		}
	}

	return stats, nil
}

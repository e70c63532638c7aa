package repository

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes s to one of the known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Is compares roles case-insensitively.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium, "":
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Board struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	AllowGuest  bool      `json:"allowGuest"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BoardWithCount struct {
	Board
	PostCount int64 `json:"postCount"`
}

type Post struct {
	ID         int64     `json:"id"`
	BoardID    int64     `json:"boardId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   *int64    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	IsGuest    bool      `json:"isGuest"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	Content    string    `json:"content"`
	AuthorID   *int64    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	IsGuest    bool      `json:"isGuest"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Todo struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type GuestbookEntry struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Message    string    `json:"message"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserUpdate carries the columns an admin or the owner may change. Nil
// fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	IsActive     *bool
}

type BoardUpdate struct {
	Title       *string
	Description *string
	Category    *string
	AllowGuest  *bool
	IsActive    *bool
}

type TodoUpdate struct {
	Title       string
	Description *string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
}

type UserSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Stats struct {
	Users struct {
		Total  int64         `json:"total"`
		Active int64         `json:"active"`
		Admins int64         `json:"admins"`
		Recent []UserSummary `json:"recent"`
	} `json:"users"`
	Posts struct {
		Total  int64         `json:"total"`
		Recent []PostSummary `json:"recent"`
	} `json:"posts"`
	Guestbook struct {
		Total   int64            `json:"total"`
		Pending int64            `json:"pending"`
		Recent  []GuestbookEntry `json:"recent"`
	} `json:"guestbook"`
	Todos struct {
		Total     int64 `json:"total"`
		Completed int64 `json:"completed"`
	} `json:"todos"`
}

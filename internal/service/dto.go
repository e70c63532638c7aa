package service

// Request payloads. The binding tags are checked by the HTTP layer; the
// service trims and re-checks required text on its own.

type RegisterInput struct {
	Name     string `json:"name" binding:"required,notblank,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileInput struct {
	Name            *string `json:"name" binding:"omitempty,notblank,max=100"`
	Password        *string `json:"password" binding:"omitempty,min=6,max=72"`
	CurrentPassword *string `json:"currentPassword"`
}

type BoardInput struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"required,notblank"`
	Category    string `json:"category" binding:"max=100"`
	AllowGuest  *bool  `json:"allowGuest"`
	IsActive    *bool  `json:"isActive"`
}

type BoardUpdateInput struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string `json:"description" binding:"omitempty,notblank"`
	Category    *string `json:"category" binding:"omitempty,notblank,max=100"`
	AllowGuest  *bool   `json:"allowGuest"`
	IsActive    *bool   `json:"isActive"`
}

// PostInput accepts "author" as an alias of "authorName".
type PostInput struct {
	Title      string `json:"title" binding:"required,notblank,max=300"`
	Content    string `json:"content" binding:"required,notblank"`
	AuthorName string `json:"authorName" binding:"max=100"`
	Author     string `json:"author" binding:"max=100"`
	IsGuest    bool   `json:"isGuest"`
}

type PostUpdateInput struct {
	Title   string `json:"title" binding:"required,notblank,max=300"`
	Content string `json:"content" binding:"required,notblank"`
}

type CommentInput struct {
	Content    string `json:"content" binding:"required,notblank"`
	AuthorName string `json:"authorName" binding:"max=100"`
	IsGuest    bool   `json:"isGuest"`
}

type TodoInput struct {
	Title       string  `json:"title" binding:"required,notblank,max=300"`
	Description *string `json:"description"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate"`
	Completed   *bool   `json:"completed"`
}

type GuestbookInput struct {
	Name    string  `json:"name" binding:"required,notblank,max=100"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Message string  `json:"message" binding:"required,notblank"`
}

type ApprovalInput struct {
	IsApproved *bool `json:"isApproved" binding:"required"`
}

type UserInput struct {
	Name     string `json:"name" binding:"required,notblank,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

type UserUpdateInput struct {
	Name     *string `json:"name" binding:"omitempty,notblank,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/gfdmit/web-forum/community-service/internal/apperr"
	"github.com/gfdmit/web-forum/community-service/internal/repository"
)

const dateLayout = "2006-01-02"

// parseDueDate accepts an RFC 3339 timestamp or a plain date. Blank means
// no due date.
func parseDueDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	raw := strings.TrimSpace(*value)
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Validation("dueDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

type todoFields struct {
	title       string
	description *string
	priority    repository.Priority
	dueDate     *time.Time
}

func (in TodoInput) fields() (todoFields, error) {
	title, err := required("title", in.Title)
	if err != nil {
		return todoFields{}, err
	}
	priority, ok := repository.ParsePriority(in.Priority)
	if !ok {
		return todoFields{}, apperr.Validation("priority must be one of low, medium, high")
	}
	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return todoFields{}, err
	}
	return todoFields{
		title:       title,
		description: optional(in.Description),
		priority:    priority,
		dueDate:     dueDate,
	}, nil
}

func (svc *Service) ListTodos(ctx context.Context, actor *repository.User) ([]repository.Todo, error) {
	todos, err := svc.repo.GetTodos(ctx, actor.ID)
	if err != nil {
		return nil, translate(err, "todo not found", "repo.GetTodos")
	}
	return todos, nil
}

func (svc *Service) CreateTodo(ctx context.Context, actor *repository.User, in TodoInput) (*repository.Todo, error) {
	f, err := in.fields()
	if err != nil {
		return nil, err
	}

	todo, err := svc.repo.CreateTodo(ctx, &repository.Todo{
		UserID:      actor.ID,
		Title:       f.title,
		Description: f.description,
		Completed:   in.Completed != nil && *in.Completed,
		Priority:    f.priority,
		DueDate:     f.dueDate,
	})
	if err != nil {
		return nil, translate(err, "todo not found", "repo.CreateTodo")
	}
	return todo, nil
}

// UpdateTodo replaces the todo's fields. Todos of other users are reported
// as missing.
func (svc *Service) UpdateTodo(ctx context.Context, actor *repository.User, id int64, in TodoInput) (*repository.Todo, error) {
	f, err := in.fields()
	if err != nil {
		return nil, err
	}

	todo, err := svc.repo.UpdateTodo(ctx, actor.ID, id, repository.TodoUpdate{
		Title:       f.title,
		Description: f.description,
		Completed:   in.Completed != nil && *in.Completed,
		Priority:    f.priority,
		DueDate:     f.dueDate,
	})
	if err != nil {
		return nil, translate(err, "todo not found", "repo.UpdateTodo")
	}
	return todo, nil
}

func (svc *Service) DeleteTodo(ctx context.Context, actor *repository.User, id int64) error {
	if err := svc.repo.DeleteTodo(ctx, actor.ID, id); err != nil {
		return translate(err, "todo not found", "repo.DeleteTodo")
	}
	return nil
}

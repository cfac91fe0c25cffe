package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/MrTochi/focus-backend/internal/cache"
	dom "github.com/MrTochi/focus-backend/internal/domain"
	"github.com/MrTochi/focus-backend/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// TodoPatch is a partial update. Pointer fields change only when non-nil;
// the Set flags let due date and reminder be cleared explicitly (present in
// the request as null) as opposed to left untouched (absent).
type TodoPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	DueDateSet  bool
	Reminder    *time.Time
	ReminderSet bool
	Priority    *dom.Priority
}

// TodoService owns todo CRUD. Reads of a user's list go through the Redis
// cache with singleflight; every write invalidates the owner's cached list.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, userID int64, title, desc string, dueDate, reminder *time.Time, priority dom.Priority) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" || desc == "" {
		return dom.Todo{}, ErrMissingFields
	}
	if priority == "" {
		priority = dom.PriorityMedium
	}
	if !dom.ValidPriority(priority) {
		return dom.Todo{}, ErrInvalidPriority
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		UserID:      userID,
		Title:       title,
		Description: desc,
		DueDate:     dueDate,
		Reminder:    reminder,
		Priority:    priority,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// List returns the caller's todos, newest first.
func (s *TodoService) List(ctx context.Context, userID int64) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.repo.ListByUser(ctx, userID)
	}
	key := "list:" + strconv.FormatInt(userID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, userID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

// GetByID fetches one todo by bare id. Any authenticated caller may read any
// todo; list/create are the only owner-scoped operations.
func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Edit applies a partial update. Absent fields stay untouched; due date and
// reminder can also be cleared. Notified is never changed here.
func (s *TodoService) Edit(ctx context.Context, id int64, patch TodoPatch) (dom.Todo, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	next := existing
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if next.Title == "" || next.Description == "" {
		return dom.Todo{}, ErrMissingFields
	}
	if patch.DueDateSet {
		next.DueDate = patch.DueDate
	}
	if patch.ReminderSet {
		next.Reminder = patch.Reminder
	}
	if patch.Priority != nil {
		if !dom.ValidPriority(*patch.Priority) {
			return dom.Todo{}, ErrInvalidPriority
		}
		next.Priority = *patch.Priority
	}

	t, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, t.UserID)
	return t, nil
}

// Toggle flips completed unconditionally.
func (s *TodoService) Toggle(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.ToggleCompleted(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, t.UserID)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, t.UserID)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}

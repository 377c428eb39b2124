package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "notedeck/pkg/errors"
	"notedeck/pkg/models"
)

// TodoFilter selects todos from the collection. Zero-value fields are
// ignored; all set fields must match (conjunctive). Todos without a due date
// are excluded by either due-date bound.
type TodoFilter struct {
	Type      *models.TodoType
	Priority  *models.Priority
	Completed *bool
	Tag       string
	Search    string
	DueBefore *time.Time
	DueAfter  *time.Time
}

// CreateTodoParams carries the validated fields for a new todo. The
// type-conditional fields are only honored for their matching type.
type CreateTodoParams struct {
	Type        models.TodoType
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	Tags        []string

	HabitFrequency *models.HabitFrequency
	ReminderTime   *time.Time
	URL            *string
	Quantity       *int
}

// TodoPatch carries a partial update. Nil fields are left untouched.
// Type-conditional fields may only be patched on a todo of the matching type.
type TodoPatch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	IsCompleted *bool
	DueDate     **time.Time
	Tags        *[]string

	HabitFrequency *models.HabitFrequency
	ReminderTime   *time.Time
	URL            *string
	Quantity       *int
}

// TodoStore manages the in-memory todo collection. The order slice carries
// insertion order so listing is deterministic where the sort leaves ties.
type TodoStore struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
	order []string
	now   func() time.Time
}

// NewTodoStore creates a new todo store instance
func NewTodoStore() *TodoStore {
	return &TodoStore{
		todos: make(map[string]*models.Todo),
		now:   time.Now,
	}
}

// List returns the todos matching the filter. Sort order: incomplete before
// completed, then by priority rank (urgent first), then by due date ascending
// with undated todos last; ties keep creation order (stable).
func (s *TodoStore) List(filter TodoFilter) []models.Todo {
	search := strings.ToLower(filter.Search)

	s.mu.RLock()
	results := make([]models.Todo, 0, len(s.todos))
	for _, id := range s.order {
		todo := s.todos[id]
		if filter.Type != nil && todo.Type != *filter.Type {
			continue
		}
		if filter.Priority != nil && todo.Priority != *filter.Priority {
			continue
		}
		if filter.Completed != nil && todo.IsCompleted != *filter.Completed {
			continue
		}
		if filter.Tag != "" && !todo.HasTag(filter.Tag) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(todo.Title), search) &&
			!strings.Contains(strings.ToLower(todo.Description), search) {
			continue
		}
		if filter.DueBefore != nil && (todo.DueDate == nil || todo.DueDate.After(*filter.DueBefore)) {
			continue
		}
		if filter.DueAfter != nil && (todo.DueDate == nil || todo.DueDate.Before(*filter.DueAfter)) {
			continue
		}
		results = append(results, copyTodo(todo))
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		a, b := &results[i], &results[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		switch {
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		}
		return a.DueDate.Before(*b.DueDate)
	})

	return results
}

// Get retrieves a todo by ID
func (s *TodoStore) Get(id string) (*models.Todo, error) {
	s.mu.RLock()
	todo, exists := s.todos[id]
	s.mu.RUnlock()

	if !exists {
		return nil, apperrors.ErrTodoNotFound
	}
	out := copyTodo(todo)
	return &out, nil
}

// Create inserts a new todo. Exactly one type-conditional field set is
// populated, chosen by the resolved type; the rest stay nil.
func (s *TodoStore) Create(params CreateTodoParams) *models.Todo {
	now := s.now()
	todo := &models.Todo{
		ID:          uuid.New().String(),
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		IsCompleted: false,
		DueDate:     copyTimePtr(params.DueDate),
		Tags:        cloneTags(params.Tags),
		CompletedAt: nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if todo.Tags == nil {
		todo.Tags = []string{}
	}

	switch params.Type {
	case models.TypeHabit:
		freq := models.FrequencyDaily
		if params.HabitFrequency != nil {
			freq = *params.HabitFrequency
		}
		todo.HabitFrequency = &freq
	case models.TypeReminder:
		todo.ReminderTime = copyTimePtr(params.ReminderTime)
	case models.TypeBookmark:
		todo.URL = copyStringPtr(params.URL)
	case models.TypeShopping:
		qty := 1
		if params.Quantity != nil {
			qty = *params.Quantity
		}
		todo.Quantity = &qty
	}

	s.mu.Lock()
	s.todos[todo.ID] = todo
	s.order = append(s.order, todo.ID)
	s.mu.Unlock()

	out := copyTodo(todo)
	return &out
}

// Update merges the patch into an existing todo. A type-conditional field in
// the patch is rejected when the todo is not of the matching type. The
// completion rule: a false→true transition stamps completedAt, setting
// isCompleted to false clears it, and an omitted isCompleted leaves it alone.
func (s *TodoStore) Update(id string, patch TodoPatch) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, apperrors.ErrTodoNotFound
	}

	if err := validatePatchTypeFields(todo.Type, patch); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Priority != nil {
		todo.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		todo.DueDate = copyTimePtr(*patch.DueDate)
	}
	if patch.Tags != nil {
		todo.Tags = cloneTags(*patch.Tags)
		if todo.Tags == nil {
			todo.Tags = []string{}
		}
	}
	if patch.HabitFrequency != nil {
		freq := *patch.HabitFrequency
		todo.HabitFrequency = &freq
	}
	if patch.ReminderTime != nil {
		todo.ReminderTime = copyTimePtr(patch.ReminderTime)
	}
	if patch.URL != nil {
		todo.URL = copyStringPtr(patch.URL)
	}
	if patch.Quantity != nil {
		qty := *patch.Quantity
		todo.Quantity = &qty
	}

	now := s.now()
	if patch.IsCompleted != nil {
		if *patch.IsCompleted && !todo.IsCompleted {
			completedAt := now
			todo.CompletedAt = &completedAt
		}
		if !*patch.IsCompleted {
			todo.CompletedAt = nil
		}
		todo.IsCompleted = *patch.IsCompleted
	}
	todo.UpdatedAt = now

	out := copyTodo(todo)
	return &out, nil
}

// Toggle flips the completion state of a todo
func (s *TodoStore) Toggle(id string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, apperrors.ErrTodoNotFound
	}

	now := s.now()
	todo.IsCompleted = !todo.IsCompleted
	if todo.IsCompleted {
		completedAt := now
		todo.CompletedAt = &completedAt
	} else {
		todo.CompletedAt = nil
	}
	todo.UpdatedAt = now

	out := copyTodo(todo)
	return &out, nil
}

// Delete removes a todo by ID and returns the deleted todo
func (s *TodoStore) Delete(id string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, apperrors.ErrTodoNotFound
	}
	delete(s.todos, id)
	s.order = removeID(s.order, id)

	out := copyTodo(todo)
	return &out, nil
}

// Len returns the number of stored todos
func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}

func validatePatchTypeFields(t models.TodoType, patch TodoPatch) error {
	if patch.HabitFrequency != nil && t != models.TypeHabit {
		return apperrors.Newf(apperrors.ErrTypeValidation, "TYPE_FIELD_MISMATCH",
			"habitFrequency can only be set on todos of type %q, this todo is %q", models.TypeHabit, t)
	}
	if patch.ReminderTime != nil && t != models.TypeReminder {
		return apperrors.Newf(apperrors.ErrTypeValidation, "TYPE_FIELD_MISMATCH",
			"reminderTime can only be set on todos of type %q, this todo is %q", models.TypeReminder, t)
	}
	if patch.URL != nil && t != models.TypeBookmark {
		return apperrors.Newf(apperrors.ErrTypeValidation, "TYPE_FIELD_MISMATCH",
			"url can only be set on todos of type %q, this todo is %q", models.TypeBookmark, t)
	}
	if patch.Quantity != nil && t != models.TypeShopping {
		return apperrors.Newf(apperrors.ErrTypeValidation, "TYPE_FIELD_MISMATCH",
			"quantity can only be set on todos of type %q, this todo is %q", models.TypeShopping, t)
	}
	return nil
}

// copyTodo returns a detached copy so callers never alias store-owned memory.
func copyTodo(t *models.Todo) models.Todo {
	out := *t
	out.Tags = cloneTags(t.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	out.DueDate = copyTimePtr(t.DueDate)
	out.CompletedAt = copyTimePtr(t.CompletedAt)
	out.ReminderTime = copyTimePtr(t.ReminderTime)
	if t.HabitFrequency != nil {
		freq := *t.HabitFrequency
		out.HabitFrequency = &freq
	}
	out.URL = copyStringPtr(t.URL)
	if t.Quantity != nil {
		qty := *t.Quantity
		out.Quantity = &qty
	}
	return out
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

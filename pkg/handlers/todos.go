package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "notedeck/pkg/errors"
	"notedeck/pkg/models"
	"notedeck/pkg/storage"
)

// TodoHandlers contains the todo collection endpoint handlers
type TodoHandlers struct {
	store     *storage.TodoStore
	validator *apperrors.Validator
	logger    *zap.Logger
}

// NewTodoHandlers creates a new todo handlers instance
func NewTodoHandlers(store *storage.TodoStore, logger *zap.Logger) *TodoHandlers {
	return &TodoHandlers{
		store:     store,
		validator: apperrors.NewValidator(),
		logger:    logger,
	}
}

type todoListMeta struct {
	Total     int                     `json:"total"`
	ByType    map[models.TodoType]int `json:"byType"`
	Completed int                     `json:"completed"`
	Pending   int                     `json:"pending"`
}

// buildListMeta computes counts over the filtered result set. Every type key
// is present even when zero.
func buildListMeta(todos []models.Todo) todoListMeta {
	meta := todoListMeta{
		Total:  len(todos),
		ByType: make(map[models.TodoType]int, len(models.AllTodoTypes)),
	}
	for _, t := range models.AllTodoTypes {
		meta.ByType[t] = 0
	}
	for i := range todos {
		meta.ByType[todos[i].Type]++
		if todos[i].IsCompleted {
			meta.Completed++
		} else {
			meta.Pending++
		}
	}
	return meta
}

// ListHandler returns the todos matching the query filters
func (h *TodoHandlers) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	todoType, appErr := parseTypeParam(q, "type")
	if appErr != nil {
		respondError(w, h.logger, appErr)
		return
	}
	priority, appErr := parsePriorityParam(q, "priority")
	if appErr != nil {
		respondError(w, h.logger, appErr)
		return
	}
	completed, appErr := parseBoolParam(q, "completed")
	if appErr != nil {
		respondError(w, h.logger, appErr)
		return
	}
	dueBefore, appErr := parseTimeParam(q, "dueBefore")
	if appErr != nil {
		respondError(w, h.logger, appErr)
		return
	}
	dueAfter, appErr := parseTimeParam(q, "dueAfter")
	if appErr != nil {
		respondError(w, h.logger, appErr)
		return
	}

	todos := h.store.List(storage.TodoFilter{
		Type:      todoType,
		Priority:  priority,
		Completed: completed,
		Tag:       q.Get("tag"),
		Search:    q.Get("search"),
		DueBefore: dueBefore,
		DueAfter:  dueAfter,
	})

	respondList(w, todos, buildListMeta(todos))
}

// TypesHandler returns the static catalog of todo types
func (h *TodoHandlers) TypesHandler(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, models.TypeCatalog())
}

// GetHandler returns a specific todo by ID
func (h *TodoHandlers) GetHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, todo)
}

type createTodoRequest struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`

	HabitFrequency *string    `json:"habitFrequency"`
	ReminderTime   *time.Time `json:"reminderTime"`
	URL            *string    `json:"url"`
	Quantity       *int       `json:"quantity"`
}

// CreateHandler creates a new todo
func (h *TodoHandlers) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.New(apperrors.ErrTypeValidation, "BODY_INVALID", "invalid JSON body"))
		return
	}

	todoType := models.TypeTask
	if req.Type != "" {
		todoType = models.TodoType(req.Type)
	}
	if result := h.validator.ValidateTodoType(todoType); !result.IsValid {
		respondError(w, h.logger, result.GetFirstError())
		return
	}

	if result := h.validator.ValidateTitle(req.Title); !result.IsValid {
		respondError(w, h.logger, result.GetFirstError())
		return
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
	}
	if result := h.validator.ValidatePriority(priority); !result.IsValid {
		respondError(w, h.logger, result.GetFirstError())
		return
	}

	// Type-specific fields on a non-matching type are ignored at creation,
	// so only a habit's frequency is worth validating.
	var habitFrequency *models.HabitFrequency
	if req.HabitFrequency != nil && todoType == models.TypeHabit {
		freq := models.HabitFrequency(*req.HabitFrequency)
		if result := h.validator.ValidateHabitFrequency(freq); !result.IsValid {
			respondError(w, h.logger, result.GetFirstError())
			return
		}
		habitFrequency = &freq
	}

	todo := h.store.Create(storage.CreateTodoParams{
		Type:           todoType,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		DueDate:        req.DueDate,
		Tags:           req.Tags,
		HabitFrequency: habitFrequency,
		ReminderTime:   req.ReminderTime,
		URL:            req.URL,
		Quantity:       req.Quantity,
	})

	respondData(w, http.StatusCreated, todo)
}

// optionalTime distinguishes an absent field from an explicit null, so a
// patch can clear a nullable timestamp.
type optionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *optionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type updateTodoRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Priority    *string      `json:"priority"`
	IsCompleted *bool        `json:"isCompleted"`
	DueDate     optionalTime `json:"dueDate"`
	Tags        *[]string    `json:"tags"`

	HabitFrequency *string    `json:"habitFrequency"`
	ReminderTime   *time.Time `json:"reminderTime"`
	URL            *string    `json:"url"`
	Quantity       *int       `json:"quantity"`
}

// UpdateHandler merges the supplied fields into an existing todo
func (h *TodoHandlers) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.New(apperrors.ErrTypeValidation, "BODY_INVALID", "invalid JSON body"))
		return
	}

	if req.Title != nil {
		if result := h.validator.ValidateTitle(*req.Title); !result.IsValid {
			respondError(w, h.logger, result.GetFirstError())
			return
		}
	}

	patch := storage.TodoPatch{
		Title:        req.Title,
		Description:  req.Description,
		IsCompleted:  req.IsCompleted,
		Tags:         req.Tags,
		ReminderTime: req.ReminderTime,
		URL:          req.URL,
		Quantity:     req.Quantity,
	}

	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if result := h.validator.ValidatePriority(priority); !result.IsValid {
			respondError(w, h.logger, result.GetFirstError())
			return
		}
		patch.Priority = &priority
	}

	if req.HabitFrequency != nil {
		freq := models.HabitFrequency(*req.HabitFrequency)
		if result := h.validator.ValidateHabitFrequency(freq); !result.IsValid {
			respondError(w, h.logger, result.GetFirstError())
			return
		}
		patch.HabitFrequency = &freq
	}

	if req.DueDate.Set {
		patch.DueDate = &req.DueDate.Value
	}

	todo, err := h.store.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, todo)
}

// ToggleHandler flips the completion state of a todo
func (h *TodoHandlers) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := h.store.Toggle(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, todo)
}

// DeleteHandler removes a todo by ID and returns the deleted todo
func (h *TodoHandlers) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := h.store.Delete(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, todo)
}

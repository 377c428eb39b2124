package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/pkg/models"
	"notedeck/pkg/storage"
)

func TestCreateTodoDefaults(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"title": "file taxes",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var todo models.Todo
	decodeData(t, rec, &todo)
	assert.Equal(t, models.TypeTask, todo.Type)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.False(t, todo.IsCompleted)
	assert.Nil(t, todo.DueDate)
	assert.Nil(t, todo.CompletedAt)
	assert.Empty(t, todo.Tags)
}

func TestCreateTodoWithoutTitle(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":     "habit",
		"priority": "high",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "title")
}

func TestCreateTodoUnrecognizedType(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":  "chore",
		"title": "sweep",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	// The message names every valid type.
	for _, typ := range models.AllTodoTypes {
		assert.Contains(t, env.Error.Message, string(typ))
	}
}

func TestCreateTodoInvalidPriority(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"title":    "sweep",
		"priority": "critical",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTodoTypeSpecificFields(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":  "shopping",
		"title": "milk",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var shopping models.Todo
	decodeData(t, rec, &shopping)
	require.NotNil(t, shopping.Quantity)
	assert.Equal(t, 1, *shopping.Quantity)

	rec = doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":           "habit",
		"title":          "stretch",
		"habitFrequency": "weekly",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var habit models.Todo
	decodeData(t, rec, &habit)
	require.NotNil(t, habit.HabitFrequency)
	assert.Equal(t, models.FrequencyWeekly, *habit.HabitFrequency)

	rec = doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":           "habit",
		"title":          "stretch",
		"habitFrequency": "yearly",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTodoIgnoresMismatchedHabitFrequency(t *testing.T) {
	router, _, _ := newTestRouter()

	// A frequency on a non-habit is ignored entirely, valid or not.
	rec := doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":           "task",
		"title":          "file taxes",
		"habitFrequency": "yearly",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var todo models.Todo
	decodeData(t, rec, &todo)
	assert.Nil(t, todo.HabitFrequency)

	rec = doRequest(t, router, http.MethodPost, "/api/todos", map[string]interface{}{
		"type":           "task",
		"title":          "file taxes",
		"habitFrequency": "weekly",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &todo)
	assert.Nil(t, todo.HabitFrequency)
}

func TestListTodosMeta(t *testing.T) {
	router, _, todoStore := newTestRouter()
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "one", Priority: models.PriorityMedium})
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeHabit, Title: "two", Priority: models.PriorityMedium})
	created := todoStore.Create(storage.CreateTodoParams{Type: models.TypeHabit, Title: "three", Priority: models.PriorityMedium})

	_, err := todoStore.Toggle(created.ID)
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var todos []models.Todo
	env := decodeData(t, rec, &todos)
	require.Len(t, todos, 3)

	var meta struct {
		Total     int            `json:"total"`
		ByType    map[string]int `json:"byType"`
		Completed int            `json:"completed"`
		Pending   int            `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(env.Meta, &meta))

	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 1, meta.Completed)
	assert.Equal(t, 2, meta.Pending)

	// All 7 type keys are present even when zero.
	require.Len(t, meta.ByType, len(models.AllTodoTypes))
	assert.Equal(t, 1, meta.ByType["task"])
	assert.Equal(t, 2, meta.ByType["habit"])
	assert.Equal(t, 0, meta.ByType["bookmark"])
}

func TestListTodosMetaCoversFilteredSetOnly(t *testing.T) {
	router, _, todoStore := newTestRouter()
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "a", Priority: models.PriorityHigh})
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeHabit, Title: "b", Priority: models.PriorityLow})

	rec := doRequest(t, router, http.MethodGet, "/api/todos?priority=high", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var todos []models.Todo
	env := decodeData(t, rec, &todos)
	require.Len(t, todos, 1)

	var meta struct {
		Total  int            `json:"total"`
		ByType map[string]int `json:"byType"`
	}
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, 0, meta.ByType["habit"], "meta counts the filtered set, not the whole collection")
}

func TestListTodosBadParams(t *testing.T) {
	router, _, _ := newTestRouter()

	for _, path := range []string{
		"/api/todos?type=chore",
		"/api/todos?priority=critical",
		"/api/todos?completed=yes",
		"/api/todos?dueBefore=tomorrow",
		"/api/todos?dueAfter=2025-13-99",
	} {
		rec := doRequest(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestListTodosDueDateFiltering(t *testing.T) {
	router, _, todoStore := newTestRouter()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "early", Priority: models.PriorityMedium, DueDate: &jan1})
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "late", Priority: models.PriorityMedium, DueDate: &feb1})
	todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "undated", Priority: models.PriorityMedium})

	rec := doRequest(t, router, http.MethodGet, "/api/todos?dueBefore=2025-01-15T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var todos []models.Todo
	decodeData(t, rec, &todos)
	require.Len(t, todos, 1)
	assert.Equal(t, "early", todos[0].Title)
}

func TestGetTodoTypes(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/todos/types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog []models.TypeInfo
	decodeData(t, rec, &catalog)
	require.Len(t, catalog, 7)
	assert.Equal(t, models.TypeTask, catalog[0].ID)
	assert.NotEmpty(t, catalog[0].Icon)
}

func TestToggleTodoCompletion(t *testing.T) {
	router, _, todoStore := newTestRouter()
	created := todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "flip", Priority: models.PriorityMedium})

	rec := doRequest(t, router, http.MethodPatch, "/api/todos/"+created.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var todo models.Todo
	decodeData(t, rec, &todo)
	assert.True(t, todo.IsCompleted)
	assert.NotNil(t, todo.CompletedAt)

	rec = doRequest(t, router, http.MethodPatch, "/api/todos/"+created.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &todo)
	assert.False(t, todo.IsCompleted)
	assert.Nil(t, todo.CompletedAt)

	rec = doRequest(t, router, http.MethodPatch, "/api/todos/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTodoCompletion(t *testing.T) {
	router, _, todoStore := newTestRouter()
	created := todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "work", Priority: models.PriorityMedium})

	rec := doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, map[string]interface{}{
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var todo models.Todo
	decodeData(t, rec, &todo)
	assert.True(t, todo.IsCompleted)
	assert.NotNil(t, todo.CompletedAt)

	// An update that omits isCompleted leaves the completion stamp alone.
	rec = doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, map[string]interface{}{
		"description": "still done",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &todo)
	assert.True(t, todo.IsCompleted)
	assert.NotNil(t, todo.CompletedAt)

	rec = doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, map[string]interface{}{
		"isCompleted": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &todo)
	assert.False(t, todo.IsCompleted)
	assert.Nil(t, todo.CompletedAt)
}

func TestUpdateTodoRejectsMismatchedTypeField(t *testing.T) {
	router, _, todoStore := newTestRouter()
	created := todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "plain", Priority: models.PriorityMedium})

	rec := doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, map[string]interface{}{
		"url": "https://example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "url")
}

func TestUpdateTodoClearsDueDateWithExplicitNull(t *testing.T) {
	router, _, todoStore := newTestRouter()
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	created := todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "due", Priority: models.PriorityMedium, DueDate: &due})

	rec := doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, map[string]interface{}{
		"dueDate": nil,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var todo models.Todo
	decodeData(t, rec, &todo)
	assert.Nil(t, todo.DueDate)
}

func TestDeleteTodo(t *testing.T) {
	router, _, todoStore := newTestRouter()
	created := todoStore.Create(storage.CreateTodoParams{Type: models.TypeTask, Title: "bye", Priority: models.PriorityMedium})

	rec := doRequest(t, router, http.MethodDelete, "/api/todos/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/todos/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, todoStore.Len())
}

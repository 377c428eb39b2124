package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notedeck/pkg/storage"
)

// newTestRouter wires the API routes exactly as main does, minus middleware.
func newTestRouter() (chi.Router, *storage.NoteStore, *storage.TodoStore) {
	noteStore := storage.NewNoteStore()
	todoStore := storage.NewTodoStore()

	noteHandlers := NewNoteHandlers(noteStore, zap.NewNop())
	todoHandlers := NewTodoHandlers(todoStore, zap.NewNop())

	r := chi.NewRouter()
	r.NotFound(NotFoundHandler)
	r.MethodNotAllowed(MethodNotAllowedHandler)
	r.Get("/healthz", HealthHandler)
	r.Get("/readyz", ReadyHandler)
	r.Get("/livez", LiveHandler)
	r.Route("/api", func(r chi.Router) {
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", noteHandlers.ListHandler)
			r.Post("/", noteHandlers.CreateHandler)
			r.Get("/{id}", noteHandlers.GetHandler)
			r.Put("/{id}", noteHandlers.UpdateHandler)
			r.Delete("/{id}", noteHandlers.DeleteHandler)
		})
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandlers.ListHandler)
			r.Post("/", todoHandlers.CreateHandler)
			r.Get("/types", todoHandlers.TypesHandler)
			r.Get("/{id}", todoHandlers.GetHandler)
			r.Put("/{id}", todoHandlers.UpdateHandler)
			r.Patch("/{id}/complete", todoHandlers.ToggleHandler)
			r.Delete("/{id}", todoHandlers.DeleteHandler)
		})
	})

	return r, noteStore, todoStore
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope unmarshals the response envelope leaving data as raw JSON.
type rawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorBody      `json:"error"`
	Meta    json.RawMessage `json:"meta"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) rawEnvelope {
	t.Helper()

	var env rawEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) rawEnvelope {
	t.Helper()

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Data, "expected data in envelope, got body %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

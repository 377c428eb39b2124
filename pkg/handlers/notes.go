package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "notedeck/pkg/errors"
	"notedeck/pkg/storage"
)

// NoteHandlers contains the note collection endpoint handlers
type NoteHandlers struct {
	store     *storage.NoteStore
	validator *apperrors.Validator
	logger    *zap.Logger
}

// NewNoteHandlers creates a new note handlers instance
func NewNoteHandlers(store *storage.NoteStore, logger *zap.Logger) *NoteHandlers {
	return &NoteHandlers{
		store:     store,
		validator: apperrors.NewValidator(),
		logger:    logger,
	}
}

type noteListMeta struct {
	Total int `json:"total"`
}

// ListHandler returns the notes matching the query filters
func (h *NoteHandlers) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pinned, appErr := parseBoolParam(q, "pinned")
	if appErr != nil {
		respondError(w, h.logger, appErr)
		return
	}

	notes := h.store.List(storage.NoteFilter{
		Tag:    q.Get("tag"),
		Pinned: pinned,
		Search: q.Get("search"),
	})

	respondList(w, notes, noteListMeta{Total: len(notes)})
}

// GetHandler returns a specific note by ID
func (h *NoteHandlers) GetHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, note)
}

type createNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"isPinned"`
}

// CreateHandler creates a new note
func (h *NoteHandlers) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, apperrors.New(apperrors.ErrTypeValidation, "BODY_INVALID", "invalid JSON body"))
		return
	}

	if result := h.validator.ValidateTitle(req.Title); !result.IsValid {
		respondError(w, h.logger, result.GetFirstError())
		return
	}

	note := h.store.Create(storage.CreateNoteParams{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})

	respondData(w, http.StatusCreated, note)
}

type updateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

// UpdateHandler merges the supplied fields into an existing note
func (h *NoteHandlers) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
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

	note, err := h.store.Update(chi.URLParam(r, "id"), storage.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, note)
}

// DeleteHandler removes a note by ID and returns the deleted note
func (h *NoteHandlers) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.Delete(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, note)
}

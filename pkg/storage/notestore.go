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

// NoteFilter selects notes from the collection. Zero-value fields are
// ignored; all set fields must match (conjunctive).
type NoteFilter struct {
	Tag    string
	Pinned *bool
	Search string
}

// CreateNoteParams carries the validated fields for a new note.
type CreateNoteParams struct {
	Title    string
	Content  string
	Tags     []string
	IsPinned bool
}

// NotePatch carries a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
}

// NoteStore manages the in-memory note collection. The order slice carries
// insertion order so listing is deterministic where the sort leaves ties.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[string]*models.Note
	order []string
	now   func() time.Time
}

// NewNoteStore creates a new note store instance
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes: make(map[string]*models.Note),
		now:   time.Now,
	}
}

// List returns the notes matching the filter, pinned notes first and most
// recently updated first within each pin group; ties keep creation order.
func (s *NoteStore) List(filter NoteFilter) []models.Note {
	search := strings.ToLower(filter.Search)

	s.mu.RLock()
	results := make([]models.Note, 0, len(s.notes))
	for _, id := range s.order {
		note := s.notes[id]
		if filter.Tag != "" && !note.HasTag(filter.Tag) {
			continue
		}
		if filter.Pinned != nil && note.IsPinned != *filter.Pinned {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(note.Title), search) &&
			!strings.Contains(strings.ToLower(note.Content), search) {
			continue
		}
		results = append(results, copyNote(note))
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].IsPinned != results[j].IsPinned {
			return results[i].IsPinned
		}
		return results[i].UpdatedAt.After(results[j].UpdatedAt)
	})

	return results
}

// Get retrieves a note by ID
func (s *NoteStore) Get(id string) (*models.Note, error) {
	s.mu.RLock()
	note, exists := s.notes[id]
	s.mu.RUnlock()

	if !exists {
		return nil, apperrors.ErrNoteNotFound
	}
	out := copyNote(note)
	return &out, nil
}

// Create inserts a new note with a fresh ID and equal timestamps
func (s *NoteStore) Create(params CreateNoteParams) *models.Note {
	now := s.now()
	note := &models.Note{
		ID:        uuid.New().String(),
		Title:     params.Title,
		Content:   params.Content,
		Tags:      cloneTags(params.Tags),
		IsPinned:  params.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	s.mu.Lock()
	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)
	s.mu.Unlock()

	out := copyNote(note)
	return &out
}

// Update merges the patch into an existing note. Only fields present in the
// patch overwrite; updatedAt is always refreshed.
func (s *NoteStore) Update(id string, patch NotePatch) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, exists := s.notes[id]
	if !exists {
		return nil, apperrors.ErrNoteNotFound
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = cloneTags(*patch.Tags)
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}
	note.UpdatedAt = s.now()

	out := copyNote(note)
	return &out, nil
}

// Delete removes a note by ID and returns the deleted note
func (s *NoteStore) Delete(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, exists := s.notes[id]
	if !exists {
		return nil, apperrors.ErrNoteNotFound
	}
	delete(s.notes, id)
	s.order = removeID(s.order, id)

	out := copyNote(note)
	return &out, nil
}

// Len returns the number of stored notes
func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// copyNote returns a detached copy so callers never alias store-owned memory.
func copyNote(n *models.Note) models.Note {
	out := *n
	out.Tags = cloneTags(n.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

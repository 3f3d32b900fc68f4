package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/store"
)

// GET /api/loads/{id}/emails
func (s *Server) handleListThreads(w http.ResponseWriter, r *http.Request) {
	if s.threads == nil {
		s.writeError(w, http.StatusServiceUnavailable, "email threads are not configured")
		return
	}
	loadID := chi.URLParam(r, "id")
	if _, ok := s.repo.Get(loadID); !ok {
		s.writeError(w, http.StatusNotFound, "load not found")
		return
	}
	threads, err := s.threads.ListThreadsByLoad(loadID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list email threads")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"threads": threads})
}

// POST /api/loads/{id}/emails
// Creates a thread for the load with its first message.
func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	if s.threads == nil {
		s.writeError(w, http.StatusServiceUnavailable, "email threads are not configured")
		return
	}
	loadID := chi.URLParam(r, "id")
	if _, ok := s.repo.Get(loadID); !ok {
		s.writeError(w, http.StatusNotFound, "load not found")
		return
	}
	var body struct {
		Subject string `json:"subject"`
		Sender  string `json:"sender"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		strings.TrimSpace(body.Subject) == "" || strings.TrimSpace(body.Sender) == "" {
		s.writeError(w, http.StatusBadRequest, "subject and sender are required")
		return
	}

	thread := store.EmailThread{
		ID:      uuid.NewString(),
		LoadID:  loadID,
		Subject: body.Subject,
	}
	if err := s.threads.SaveThread(thread); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to create email thread")
		return
	}
	msg := store.EmailMessage{
		ID:       uuid.NewString(),
		ThreadID: thread.ID,
		Sender:   body.Sender,
		Body:     body.Body,
	}
	if err := s.threads.AppendEmail(msg); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to append email")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"thread": thread, "message": msg})
}

// GET /api/email-threads/{id}
func (s *Server) handleGetThread(w http.ResponseWriter, r *http.Request) {
	if s.threads == nil {
		s.writeError(w, http.StatusServiceUnavailable, "email threads are not configured")
		return
	}
	id := chi.URLParam(r, "id")
	thread, err := s.threads.GetThread(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to get email thread")
		return
	}
	if thread == nil {
		s.writeError(w, http.StatusNotFound, "email thread not found")
		return
	}
	emails, err := s.threads.ListEmails(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list emails")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"thread": thread, "emails": emails})
}

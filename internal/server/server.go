package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/ai"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/config"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/db"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/load"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/store"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/types"
)

type Server struct {
	router    *chi.Mux
	cfg       config.Config
	repo      load.Repository
	sessions  *store.SessionStore
	completer chat.Completer
	creds     *store.FileCredentialStore
	prompt    *chat.PromptSpec
	database  *db.DB
	threads   *store.EmailThreadStore
	now       func() time.Time
}

// NewServer assembles the production server: prompt spec from disk, OpenAI
// completer, mock load corpus, optional Postgres for email threads.
func NewServer(cfg config.Config) (*Server, error) {
	prompt, err := chat.LoadPromptSpec(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt spec: %w", err)
	}

	creds := store.NewFileCredentialStore(cfg.CredentialFile)
	apiKey := cfg.OpenAIAPIKey
	if apiKey == "" {
		if cached, err := creds.Read(); err == nil && cached != "" {
			apiKey = cached
		}
	}
	completer := ai.New(apiKey, cfg.Model, prompt)
	repo := load.NewMemoryRepository(load.MockCorpus(time.Now()))

	s, err := NewServerWithDeps(cfg, repo, completer, prompt)
	if err != nil {
		return nil, err
	}
	s.creds = creds

	if cfg.DatabaseURL != "" {
		database, err := db.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Println("database connection established")
		if err := database.RunMigrations(cfg.MigrationsDir); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s.database = database
		s.threads = store.NewEmailThreadStore(database)
	} else {
		log.Println("warning: DB_URL not provided, email thread endpoints disabled")
	}
	return s, nil
}

// NewServerWithDeps wires the server around injected collaborators. Tests
// use it to stub the completer and corpus.
func NewServerWithDeps(cfg config.Config, repo load.Repository, completer chat.Completer, prompt *chat.PromptSpec) (*Server, error) {
	if repo == nil || completer == nil || prompt == nil {
		return nil, fmt.Errorf("repo, completer and prompt are required")
	}
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router:    r,
		cfg:       cfg,
		repo:      repo,
		completer: completer,
		prompt:    prompt,
		now:       time.Now,
	}
	s.sessions = store.NewSessionStore(func(sessionID string) *chat.Session {
		return chat.NewSession(chat.SessionConfig{
			Repo:          repo,
			Completer:     completer,
			Credentials:   s.credentialClearer(),
			Notifier:      logNotifier{},
			SystemPrompt:  prompt.System,
			HistoryWindow: cfg.HistoryWindow,
			Now:           s.now,
		})
	})
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Post("/api/chat/button", s.handleButtonClick)
	s.router.Post("/api/ai-chat", s.handleAIChat)
	// Load corpus
	s.router.Get("/api/loads", s.handleListLoads)
	s.router.Get("/api/loads/search", s.handleSearchLoads)
	s.router.Get("/api/loads/{id}", s.handleGetLoad)
	s.router.Get("/api/loads/{id}/factoring", s.handleFactoring)
	s.router.Post("/api/loads/{id}/routes/compare", s.handleCompareRoutes)
	s.router.Get("/api/loads/{id}/telemetry", s.handleTelemetry)
	// Email threads
	s.router.Get("/api/loads/{id}/emails", s.handleListThreads)
	s.router.Post("/api/loads/{id}/emails", s.handleCreateThread)
	s.router.Get("/api/email-threads/{id}", s.handleGetThread)
}

func (s *Server) Router() http.Handler { return s.router }

// Close releases server-held resources.
func (s *Server) Close() error {
	if s.database != nil {
		return s.database.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.database != nil {
		if err := s.database.HealthCheck(); err != nil {
			status["database"] = "unreachable"
		} else {
			status["database"] = "ok"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sess := s.sessions.Get(sid)
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	res, err := sess.Submit(ctx, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			s.writeError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, chat.ErrTurnInProgress):
			s.writeError(w, http.StatusConflict, "a chat turn is already in progress")
		default:
			log.Printf("[chat] turn failed for session %s: %v", sid, err)
			s.writeError(w, http.StatusInternalServerError, "chat turn failed")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(types.ChatResponse{
		SessionID:        sid,
		Reply:            res.Reply.Content,
		QueryType:        string(res.Routing.QueryType),
		Actions:          res.Reply.Buttons,
		ShowResultsPanel: res.ShowResultsPanel,
	})
}

// handleButtonClick runs the click through the button handler with recording
// capabilities; the client applies the recorded effects (route change,
// follow-up message) on its side.
func (s *Server) handleButtonClick(w http.ResponseWriter, r *http.Request) {
	var req types.ButtonClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ButtonID) == "" {
		s.writeError(w, http.StatusBadRequest, "buttonId is required")
		return
	}
	sid := getOrCreateSessionID(r, w)
	sess := s.sessions.Get(sid)
	btn, ok := sess.FindButton(req.ButtonID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown button")
		return
	}

	rec := &clickRecorder{}
	chat.NewButtonHandler(rec, rec).Handle(btn)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(types.ButtonClickResponse{
		SessionID:    sid,
		NavigateTo:   rec.path,
		FollowUpSent: rec.followUp,
		ClosePanel:   btn.Data.ClosePanel && rec.path != "",
	})
}

// handleAIChat is the plain completion proxy the front end's edge function
// exposed: {messages, systemPrompt} in, {content} or {error} out.
func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	var req types.AIChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		s.writeError(w, http.StatusBadRequest, "messages are required")
		return
	}
	history := make([]chat.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := chat.RoleUser
		if m.Role == string(chat.RoleAssistant) {
			role = chat.RoleAssistant
		}
		history = append(history, chat.Message{Role: role, Content: m.Content})
	}
	system := req.System
	if system == "" {
		system = s.prompt.System
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()
	content, err := s.completer.Complete(ctx, history, system)
	if err != nil {
		log.Printf("[ai-chat] completion failed: %v", err)
		switch chat.Categorize(err) {
		case chat.ErrorUnauthorized:
			s.writeError(w, http.StatusUnauthorized, "assistant authentication failed")
		case chat.ErrorRateLimited:
			s.writeError(w, http.StatusTooManyRequests, "assistant rate limited")
		default:
			s.writeError(w, http.StatusBadGateway, "assistant request failed")
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.AIChatResponse{Content: content})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// credentialClearer hands the chat error handler something safe even when no
// credential file is configured.
func (s *Server) credentialClearer() chat.CredentialClearer {
	if s.creds != nil {
		return s.creds
	}
	return noopClearer{}
}

type noopClearer struct{}

func (noopClearer) Clear() error { return nil }

// logNotifier is the server-side stand-in for the UI's toast notifications.
type logNotifier struct{}

func (logNotifier) Notify(message string) {
	log.Printf("[notify] %s", message)
}

// clickRecorder captures button effects for the HTTP response.
type clickRecorder struct {
	path     string
	followUp string
}

func (c *clickRecorder) Navigate(path string)        { c.path = path }
func (c *clickRecorder) ContinueChat(message string) { c.followUp = message }

func newSessionID() string {
	return fmt.Sprintf("s_%d", time.Now().UnixNano())
}

// getSessionID retrieves the session ID from cookie, header or query.
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID gets the existing session ID or mints one, setting
// the cookie.
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		log.Printf("[session] creating new session: %s for endpoint: %s", sid, r.URL.Path)
		SetSessionCookie(w, sid)
	}
	return sid
}

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/load"
)

// Completer is the AI-chat collaborator contract: prior turns plus a system
// prompt in, one text reply out.
type Completer interface {
	Complete(ctx context.Context, history []Message, systemPrompt string) (string, error)
}

var (
	// ErrEmptyMessage rejects blank input before it reaches the router.
	ErrEmptyMessage = errors.New("message is required")
	// ErrTurnInProgress rejects a submission while another turn is running.
	ErrTurnInProgress = errors.New("a chat turn is already in progress")
)

// SessionConfig wires a session's collaborators. Repo and Completer are
// required; the rest default to no-ops when nil.
type SessionConfig struct {
	Repo          load.Repository
	Completer     Completer
	Credentials   CredentialClearer
	Notifier      Notifier
	Navigator     Navigator
	FollowUp      FollowUpSender
	SystemPrompt  string
	HistoryWindow int
	Now           func() time.Time
}

// Session orchestrates one chat conversation: it exclusively owns the
// append-only transcript and the loading flag, and sequences
// classify -> process -> (optionally) AI completion per user turn. One turn
// runs at a time; submissions during a turn are rejected, not queued.
type Session struct {
	mu         sync.Mutex
	transcript []Message
	loading    bool

	repo          load.Repository
	completer     Completer
	errs          *ErrorHandler
	buttons       *ButtonHandler
	notifier      Notifier
	systemPrompt  string
	historyWindow int
	now           func() time.Time
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 40
	}
	return &Session{
		repo:          cfg.Repo,
		completer:     cfg.Completer,
		errs:          NewErrorHandler(cfg.Credentials),
		buttons:       NewButtonHandler(cfg.Navigator, cfg.FollowUp),
		notifier:      cfg.Notifier,
		systemPrompt:  cfg.SystemPrompt,
		historyWindow: cfg.HistoryWindow,
		now:           cfg.Now,
	}
}

// TurnResult is what one completed turn produced.
type TurnResult struct {
	Routing          load.RoutingResult
	Reply            Message
	ShowResultsPanel bool
}

// Submit runs one user turn to completion. Collaborator failures are
// terminal within the turn: the error handler appends the user-facing
// message and Submit still returns a result, so the transcript is never left
// half-appended. The only errors returned are the caller-contract ones
// (empty input, turn in progress).
func (s *Session) Submit(ctx context.Context, text string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrTurnInProgress
	}
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	s.append(RoleUser, text)

	routing := load.Classify(text, s.repo.List(), s.now)
	outcome := ProcessSearchResults(routing, s.addAssistant)
	if outcome.Handled {
		return &TurnResult{
			Routing:          routing,
			Reply:            s.lastMessage(),
			ShowResultsPanel: outcome.ShowResultsPanel,
		}, nil
	}

	reply, err := s.completer.Complete(ctx, s.history(), s.systemPrompt)
	if err != nil {
		s.errs.HandleError(err, func(content string) Message {
			return s.addAssistant(content)
		}, s.notifier)
		return &TurnResult{Routing: routing, Reply: s.lastMessage()}, nil
	}
	s.addAssistant(reply)
	return &TurnResult{Routing: routing, Reply: s.lastMessage()}, nil
}

// HandleButtonClick fires the effects of a click on one of this session's
// interactive buttons.
func (s *Session) HandleButtonClick(b Button) {
	s.buttons.Handle(b)
}

// Transcript returns a copy of the message sequence in append order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Loading reports whether a turn is currently running.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// FindButton locates a button by ID across the transcript.
func (s *Session) FindButton(id string) (Button, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.transcript) - 1; i >= 0; i-- {
		for _, b := range s.transcript[i].Buttons {
			if b.ID == id {
				return b, true
			}
		}
	}
	return Button{}, false
}

func (s *Session) append(role Role, content string, buttons ...Button) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := newMessage(role, content, buttons, s.now())
	s.transcript = append(s.transcript, msg)
	return msg
}

func (s *Session) addAssistant(content string, buttons ...Button) Message {
	return s.append(RoleAssistant, content, buttons...)
}

// history returns the trailing window of the transcript sent to the
// collaborator, keeping prompts bounded on long sessions.
func (s *Session) history() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.transcript
	if len(msgs) > s.historyWindow {
		msgs = msgs[len(msgs)-s.historyWindow:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

func (s *Session) lastMessage() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.transcript) == 0 {
		return Message{}
	}
	return s.transcript[len(s.transcript)-1]
}

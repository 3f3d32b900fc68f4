package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"
	"github.com/mattedesign/traction-pay-pilot-sub003/internal/load"
)

type stubCompleter struct {
	mu          sync.Mutex
	reply       string
	err         error
	calls       int
	lastHistory []chat.Message
	lastSystem  string
	block       chan struct{}
}

func (s *stubCompleter) Complete(ctx context.Context, history []chat.Message, system string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.lastHistory = append([]chat.Message(nil), history...)
	s.lastSystem = system
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.reply, s.err
}

func (s *stubCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type sessionFixture struct {
	session   *chat.Session
	completer *stubCompleter
	creds     *clearerSpy
	notes     *notifierSpy
	effects   *effectSpy
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		completer: &stubCompleter{reply: "sure, happy to help"},
		creds:     &clearerSpy{},
		notes:     &notifierSpy{},
		effects:   &effectSpy{},
	}
	f.session = chat.NewSession(chat.SessionConfig{
		Repo:         load.NewMemoryRepository(load.MockCorpus(ref)),
		Completer:    f.completer,
		Credentials:  f.creds,
		Notifier:     f.notes,
		Navigator:    f.effects,
		FollowUp:     f.effects,
		SystemPrompt: "You are the test assistant.",
		Now:          fixedNow,
	})
	return f
}

func TestSubmitSpecificLoadShortCircuits(t *testing.T) {
	f := newSessionFixture(t)

	res, err := f.session.Submit(context.Background(), "show me load 1234")
	require.NoError(t, err)

	assert.Equal(t, load.QuerySpecificLoad, res.Routing.QueryType)
	assert.False(t, res.ShowResultsPanel)
	require.Len(t, res.Reply.Buttons, 2)
	assert.Contains(t, res.Reply.Content, "Load #1234")
	assert.Zero(t, f.completer.callCount(), "AI collaborator must not run for a direct hit")

	transcript := f.session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, chat.RoleUser, transcript[0].Role)
	assert.Equal(t, "show me load 1234", transcript[0].Content)
	assert.Equal(t, chat.RoleAssistant, transcript[1].Role)
}

func TestSubmitMultiMatchShowsResultsPanel(t *testing.T) {
	f := newSessionFixture(t)

	res, err := f.session.Submit(context.Background(), "loads from Dallas")
	require.NoError(t, err)

	assert.Equal(t, load.QueryLoadSearch, res.Routing.QueryType)
	assert.Len(t, res.Routing.Results, 3)
	assert.True(t, res.ShowResultsPanel)
	assert.Contains(t, res.Reply.Content, "I found 3 loads")
	assert.Zero(t, f.completer.callCount())
}

func TestSubmitDelegatesToAI(t *testing.T) {
	f := newSessionFixture(t)

	res, err := f.session.Submit(context.Background(), "how do detention charges work?")
	require.NoError(t, err)

	assert.Equal(t, load.QueryGeneralChat, res.Routing.QueryType)
	assert.Equal(t, "sure, happy to help", res.Reply.Content)
	assert.Equal(t, 1, f.completer.callCount())
	assert.Equal(t, "You are the test assistant.", f.completer.lastSystem)
	require.NotEmpty(t, f.completer.lastHistory)
	last := f.completer.lastHistory[len(f.completer.lastHistory)-1]
	assert.Equal(t, chat.RoleUser, last.Role)
	assert.Equal(t, "how do detention charges work?", last.Content)
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	f := newSessionFixture(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.session.Submit(context.Background(), text)
		assert.ErrorIs(t, err, chat.ErrEmptyMessage, "text %q", text)
	}
	assert.Empty(t, f.session.Transcript())
}

func TestSubmitRejectsOverlappingTurns(t *testing.T) {
	f := newSessionFixture(t)
	f.completer.block = make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.session.Submit(context.Background(), "tell me something")
	}()

	require.Eventually(t, f.session.Loading, time.Second, time.Millisecond)
	_, err := f.session.Submit(context.Background(), "second message")
	assert.ErrorIs(t, err, chat.ErrTurnInProgress)

	close(f.completer.block)
	<-done
	assert.False(t, f.session.Loading())

	// The rejected submission never touched the transcript.
	transcript := f.session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "tell me something", transcript[0].Content)
}

func TestSubmitAIFailureEndsTurnConsistently(t *testing.T) {
	f := newSessionFixture(t)
	f.completer.err = &chat.CompletionError{
		Category: chat.ErrorUnauthorized,
		Status:   401,
		Err:      errors.New("invalid api key"),
	}
	f.completer.reply = ""

	res, err := f.session.Submit(context.Background(), "hi, can you help me?")
	require.NoError(t, err, "collaborator failure is terminal, not propagated")

	assert.Contains(t, res.Reply.Content, "Authentication")
	assert.Equal(t, 1, f.creds.cleared)
	assert.Len(t, f.notes.notices, 1)

	transcript := f.session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, chat.RoleAssistant, transcript[1].Role)

	// The session is back to idle and usable.
	f.completer.err = nil
	f.completer.reply = "better now"
	res, err = f.session.Submit(context.Background(), "still there?")
	require.NoError(t, err)
	assert.Equal(t, "better now", res.Reply.Content)
}

func TestTranscriptIsAppendOnlyAndCopied(t *testing.T) {
	f := newSessionFixture(t)

	texts := []string{"first thing", "second thing", "third thing"}
	for _, text := range texts {
		_, err := f.session.Submit(context.Background(), text)
		require.NoError(t, err)
	}

	transcript := f.session.Transcript()
	require.Len(t, transcript, 6) // user + assistant per turn
	for i, text := range texts {
		assert.Equal(t, text, transcript[i*2].Content)
		assert.Equal(t, chat.RoleUser, transcript[i*2].Role)
		assert.Equal(t, chat.RoleAssistant, transcript[i*2+1].Role)
	}

	// Mutating the returned slice must not leak into the session.
	transcript[0].Content = "tampered"
	assert.Equal(t, "first thing", f.session.Transcript()[0].Content)
}

func TestSessionButtonClickEndToEnd(t *testing.T) {
	f := newSessionFixture(t)

	res, err := f.session.Submit(context.Background(), "show me load 1234")
	require.NoError(t, err)
	require.Len(t, res.Reply.Buttons, 2)

	nav, ok := f.session.FindButton(res.Reply.Buttons[0].ID)
	require.True(t, ok)
	f.session.HandleButtonClick(nav)

	assert.Equal(t, []string{
		"nav:/load/1234",
		"chat:Navigating to Load #1234 details page",
	}, f.effects.effects)

	_, ok = f.session.FindButton("no-such-button")
	assert.False(t, ok)
}

package chat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"
)

type clearerSpy struct {
	cleared int
	err     error
}

func (c *clearerSpy) Clear() error {
	c.cleared++
	return c.err
}

type notifierSpy struct {
	notices []string
}

func (n *notifierSpy) Notify(message string) {
	n.notices = append(n.notices, message)
}

func handleError(t *testing.T, err error) (*clearerSpy, *messageRecorder, *notifierSpy) {
	t.Helper()
	creds := &clearerSpy{}
	rec := &messageRecorder{}
	notes := &notifierSpy{}
	addAI := func(content string) chat.Message { return rec.add(content) }
	chat.NewErrorHandler(creds).HandleError(err, addAI, notes)
	return creds, rec, notes
}

func TestAuthFailureClearsCredential(t *testing.T) {
	creds, rec, notes := handleError(t, errors.New("status 401 Unauthorized"))

	assert.Equal(t, 1, creds.cleared)
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0].Content, "Authentication")
	require.Len(t, notes.notices, 1)
	assert.Contains(t, notes.notices[0], "Authentication")
}

func TestRateLimitIsManualResend(t *testing.T) {
	creds, rec, notes := handleError(t, &chat.CompletionError{
		Category: chat.ErrorRateLimited,
		Status:   429,
		Err:      fmt.Errorf("too many requests"),
	})

	assert.Zero(t, creds.cleared)
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0].Content, "resend")
	assert.Len(t, notes.notices, 1)
}

func TestNetworkAndUnknownFailures(t *testing.T) {
	for _, err := range []error{
		errors.New("dial tcp: connection refused"),
		&chat.CompletionError{Category: chat.ErrorNetwork, Err: fmt.Errorf("timeout")},
		errors.New("something else entirely"),
	} {
		creds, rec, notes := handleError(t, err)
		assert.Zero(t, creds.cleared, "err %v", err)
		assert.Len(t, rec.messages, 1, "err %v", err)
		assert.Len(t, notes.notices, 1, "err %v", err)
	}
}

func TestHandleErrorToleratesNilCollaborators(t *testing.T) {
	assert.NotPanics(t, func() {
		chat.NewErrorHandler(nil).HandleError(errors.New("401"), nil, nil)
	})
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		err  error
		want chat.ErrorCategory
	}{
		{errors.New("401 unauthorized"), chat.ErrorUnauthorized},
		{errors.New("authentication failed"), chat.ErrorUnauthorized},
		{errors.New("429 slow down"), chat.ErrorRateLimited},
		{errors.New("rate limit exceeded"), chat.ErrorRateLimited},
		{errors.New("network is unreachable"), chat.ErrorNetwork},
		{errors.New("dial tcp: i/o timeout"), chat.ErrorNetwork},
		{errors.New("wat"), chat.ErrorUnknown},
		{nil, chat.ErrorUnknown},
		{&chat.CompletionError{Category: chat.ErrorRateLimited, Err: errors.New("x")}, chat.ErrorRateLimited},
		{fmt.Errorf("wrapped: %w", &chat.CompletionError{Category: chat.ErrorUnauthorized, Err: errors.New("x")}), chat.ErrorUnauthorized},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, chat.Categorize(c.err), "err %v", c.err)
	}
}

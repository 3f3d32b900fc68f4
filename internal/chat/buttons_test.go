package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"
)

// effectSpy records capability invocations in order.
type effectSpy struct {
	effects []string
}

func (e *effectSpy) Navigate(path string)        { e.effects = append(e.effects, "nav:"+path) }
func (e *effectSpy) ContinueChat(message string) { e.effects = append(e.effects, "chat:"+message) }

func TestNavigateButtonFiresBothEffectsInOrder(t *testing.T) {
	btn, err := chat.NewNavigateButton("View Load Details", "/load/42", "x", true)
	require.NoError(t, err)

	spy := &effectSpy{}
	chat.NewButtonHandler(spy, spy).Handle(btn)

	assert.Equal(t, []string{"nav:/load/42", "chat:x"}, spy.effects)
}

func TestNavigateButtonWithoutFollowUp(t *testing.T) {
	btn, err := chat.NewNavigateButton("View", "/load/42", "", false)
	require.NoError(t, err)

	spy := &effectSpy{}
	chat.NewButtonHandler(spy, spy).Handle(btn)

	assert.Equal(t, []string{"nav:/load/42"}, spy.effects)
}

func TestContinueChatButton(t *testing.T) {
	btn, err := chat.NewContinueChatButton("Ask more", "tell me more")
	require.NoError(t, err)

	spy := &effectSpy{}
	chat.NewButtonHandler(spy, spy).Handle(btn)

	assert.Equal(t, []string{"chat:tell me more"}, spy.effects)
}

func TestMalformedButtonsAreReportedNoOps(t *testing.T) {
	spy := &effectSpy{}
	h := chat.NewButtonHandler(spy, spy)

	// Constructors refuse these payloads, so build them by hand the way a
	// buggy client might.
	assert.NotPanics(t, func() {
		h.Handle(chat.Button{ID: "b1", Action: chat.ActionNavigate})
		h.Handle(chat.Button{ID: "b2", Action: chat.ActionContinueChat})
		h.Handle(chat.Button{ID: "b3", Action: chat.ButtonAction("explode")})
	})
	assert.Empty(t, spy.effects)
}

func TestMissingCapabilitiesAreReportedNoOps(t *testing.T) {
	nav, err := chat.NewNavigateButton("View", "/load/42", "x", false)
	require.NoError(t, err)
	follow, err := chat.NewContinueChatButton("Ask", "more")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		chat.NewButtonHandler(nil, nil).Handle(nav)
		chat.NewButtonHandler(nil, nil).Handle(follow)
	})

	// Navigate still fires without a chat capability; only the follow-up is
	// dropped.
	spy := &effectSpy{}
	chat.NewButtonHandler(spy, nil).Handle(nav)
	assert.Equal(t, []string{"nav:/load/42"}, spy.effects)
}

func TestButtonHandlerIsIdempotent(t *testing.T) {
	btn, err := chat.NewNavigateButton("View", "/load/42", "x", true)
	require.NoError(t, err)

	spy := &effectSpy{}
	h := chat.NewButtonHandler(spy, spy)
	h.Handle(btn)
	h.Handle(btn)

	assert.Equal(t, []string{"nav:/load/42", "chat:x", "nav:/load/42", "chat:x"}, spy.effects)
}

func TestButtonConstructorsValidate(t *testing.T) {
	_, err := chat.NewNavigateButton("View", "", "x", false)
	assert.Error(t, err)

	_, err = chat.NewContinueChatButton("Ask", "")
	assert.Error(t, err)
}

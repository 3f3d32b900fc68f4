package chat

import "log"

// Navigator performs a client-side route change.
type Navigator interface {
	Navigate(path string)
}

// FollowUpSender resends text as a new user chat turn.
type FollowUpSender interface {
	ContinueChat(message string)
}

// ButtonHandler interprets clicks on interactive buttons. Capabilities are
// injected at construction; either may be nil, in which case clicks needing
// that capability become reported no-ops. The handler keeps no state, so
// repeated clicks on the same button produce the same effects.
type ButtonHandler struct {
	nav  Navigator
	chat FollowUpSender
}

func NewButtonHandler(nav Navigator, chat FollowUpSender) *ButtonHandler {
	return &ButtonHandler{nav: nav, chat: chat}
}

// Handle fires the effects of one button click. Navigate buttons navigate
// first, then send any follow-up message. Malformed payloads, missing
// capabilities and unknown action tags are logged and otherwise ignored;
// Handle never panics.
func (h *ButtonHandler) Handle(b Button) {
	switch b.Action {
	case ActionNavigate:
		if b.Data.Path == "" {
			log.Printf("[button] navigate click %s has no path, ignoring", b.ID)
			return
		}
		if h.nav == nil {
			log.Printf("[button] navigate click %s but no navigator wired, ignoring", b.ID)
			return
		}
		h.nav.Navigate(b.Data.Path)
		if b.Data.Message != "" && h.chat != nil {
			h.chat.ContinueChat(b.Data.Message)
		}
	case ActionContinueChat:
		if b.Data.Message == "" {
			log.Printf("[button] continue_chat click %s has no message, ignoring", b.ID)
			return
		}
		if h.chat == nil {
			log.Printf("[button] continue_chat click %s but no chat sender wired, ignoring", b.ID)
			return
		}
		h.chat.ContinueChat(b.Data.Message)
	default:
		log.Printf("[button] click %s has unknown action %q, ignoring", b.ID, b.Action)
	}
}

package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ButtonAction tags what clicking an interactive button does.
type ButtonAction string

const (
	ActionNavigate     ButtonAction = "navigate"
	ActionContinueChat ButtonAction = "continue_chat"
)

// ActionData is the tagged payload behind a button. Navigate buttons carry
// Path (required) plus an optional follow-up Message and ClosePanel flag;
// continue_chat buttons carry Message (required).
type ActionData struct {
	Path       string `json:"path,omitempty"`
	Message    string `json:"message,omitempty"`
	ClosePanel bool   `json:"closePanel,omitempty"`
}

// Button is an interactive action rendered beneath an assistant message.
type Button struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Action ButtonAction `json:"action"`
	Data   ActionData   `json:"actionData"`
}

// NewNavigateButton builds a navigate button, validating the payload up
// front so malformed buttons never reach the UI.
func NewNavigateButton(label, path, followUp string, closePanel bool) (Button, error) {
	if path == "" {
		return Button{}, fmt.Errorf("navigate button %q: path is required", label)
	}
	return Button{
		ID:     uuid.NewString(),
		Label:  label,
		Action: ActionNavigate,
		Data:   ActionData{Path: path, Message: followUp, ClosePanel: closePanel},
	}, nil
}

// NewContinueChatButton builds a button that resends text as a new user turn.
func NewContinueChatButton(label, message string) (Button, error) {
	if message == "" {
		return Button{}, fmt.Errorf("continue_chat button %q: message is required", label)
	}
	return Button{
		ID:     uuid.NewString(),
		Label:  label,
		Action: ActionContinueChat,
		Data:   ActionData{Message: message},
	}, nil
}

// Message is one entry in a session transcript. Messages are append-only and
// never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Buttons   []Button  `json:"buttons,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newMessage(role Role, content string, buttons []Button, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Buttons:   append([]Button(nil), buttons...),
		CreatedAt: at,
	}
}

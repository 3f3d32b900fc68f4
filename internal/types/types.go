package types

import "github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	SessionID        string        `json:"sessionId"`
	Reply            string        `json:"reply"`
	QueryType        string        `json:"queryType,omitempty"`
	Actions          []chat.Button `json:"actions,omitempty"`
	ShowResultsPanel bool          `json:"showResultsPanel,omitempty"`
}

type ButtonClickRequest struct {
	ButtonID string `json:"buttonId"`
}

type ButtonClickResponse struct {
	SessionID    string `json:"sessionId"`
	NavigateTo   string `json:"navigateTo,omitempty"`
	FollowUpSent string `json:"followUpSent,omitempty"`
	ClosePanel   bool   `json:"closePanel,omitempty"`
}

// AIChatRequest is the proxy contract the front end's edge function used:
// prior turns plus a system prompt in, one completion out.
type AIChatRequest struct {
	Messages []AIChatMessage `json:"messages"`
	System   string          `json:"systemPrompt,omitempty"`
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIChatResponse struct {
	Content string `json:"content"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

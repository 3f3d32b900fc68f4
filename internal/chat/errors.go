package chat

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
)

// ErrorCategory buckets AI-collaborator failures into the handful of cases
// the UI distinguishes.
type ErrorCategory string

const (
	ErrorUnauthorized ErrorCategory = "unauthorized"
	ErrorRateLimited  ErrorCategory = "rate_limited"
	ErrorNetwork      ErrorCategory = "network"
	ErrorUnknown      ErrorCategory = "unknown"
)

// CompletionError is a categorized failure from the AI-chat collaborator.
type CompletionError struct {
	Category ErrorCategory
	Status   int
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed (%s, status %d): %v", e.Category, e.Status, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// Notifier surfaces a transient toast-style notification to the user. The
// store is passed in explicitly rather than living as a package global.
type Notifier interface {
	Notify(message string)
}

// CredentialClearer is the slice of the credential store the error handler
// needs: throwing away a rejected credential.
type CredentialClearer interface {
	Clear() error
}

// ErrorHandler maps collaborator failures to user-facing messages. It is a
// terminal handler: it never returns an error and never panics.
type ErrorHandler struct {
	creds CredentialClearer
}

func NewErrorHandler(creds CredentialClearer) *ErrorHandler {
	return &ErrorHandler{creds: creds}
}

// HandleError appends exactly one assistant message and fires exactly one
// notification for any error it is given. Authentication failures also clear
// the cached credential so a rejected key is never silently retried.
func (h *ErrorHandler) HandleError(err error, addAIMessage func(content string) Message, notify Notifier) {
	cat := Categorize(err)
	log.Printf("[chat] collaborator error (%s): %v", cat, err)

	if cat == ErrorUnauthorized && h.creds != nil {
		if cerr := h.creds.Clear(); cerr != nil {
			log.Printf("[chat] failed to clear cached credential: %v", cerr)
		}
	}

	var body, toast string
	switch cat {
	case ErrorUnauthorized:
		body = "Authentication with the assistant failed, so I've cleared the saved credential. Please re-enter your API key and try again."
		toast = "Authentication failed"
	case ErrorRateLimited:
		body = "The assistant is handling too many requests right now. Give it a moment and resend your message."
		toast = "Rate limited, please retry shortly"
	case ErrorNetwork:
		body = "I couldn't reach the assistant service. Check your connection and try again."
		toast = "Connection problem"
	default:
		body = "The connection to the assistant failed. Please try again in a moment."
		toast = "Assistant unavailable"
	}
	if addAIMessage != nil {
		addAIMessage(body)
	}
	if notify != nil {
		notify.Notify(toast)
	}
}

// Categorize inspects an error's type, status and message text to pick its
// category. Typed CompletionErrors from the AI adapter are trusted first.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return ErrorUnknown
	}
	var ce *CompletionError
	if errors.As(err, &ce) && ce.Category != "" {
		return ce.Category
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ErrorNetwork
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication"):
		return ErrorUnauthorized
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return ErrorRateLimited
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection") ||
		strings.Contains(msg, "timeout") || strings.Contains(msg, "dial"):
		return ErrorNetwork
	}
	return ErrorUnknown
}

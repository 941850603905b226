// Package llm defines the chat completion port used by the simplifier and the
// subsidy services, together with the concrete backends and decorators for it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a non-streaming chat completion request.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	// JSONMode asks the backend for a json_object response.
	JSONMode bool
}

// Response holds the first choice of a completion.
type Response struct {
	Model   string
	Content string
}

// Completer issues chat completions. Implementations always wait for the full
// response; partial output cannot be parsed for delimiters or JSON.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (*Response, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// TimeoutCompleter runs a call under a deadline that starts when the call
// actually begins, not when it is submitted.
type TimeoutCompleter interface {
	CompleteWithin(ctx context.Context, req Request, timeout time.Duration) (*Response, error)
}

// CompleteWithin bounds a single call by timeout. Completers that queue calls
// start the deadline once the call leaves the queue.
func CompleteWithin(ctx context.Context, c Completer, req Request, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		return c.Complete(ctx, req)
	}
	if tc, ok := c.(TimeoutCompleter); ok {
		return tc.CompleteWithin(ctx, req, timeout)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Complete(ctx, req)
}

var (
	ErrEmptyCompletion = errors.New("completion returned no content")
	ErrNoChoices       = errors.New("completion returned no choices")
)

// StatusError is returned when the backend answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Body)
}

// Transient reports whether retrying the request may succeed.
func (e *StatusError) Transient() bool {
	return transientStatus(e.StatusCode)
}

func transientStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= 500
}

// SystemAndUser builds the two-message conversation every prompt in this service uses.
func SystemAndUser(system, user string) []Message {
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"applauncher-backend/llm"
)

// fakeCompleter answers generation calls and selection calls with separate
// scripted functions and records every request.
type fakeCompleter struct {
	mu       sync.Mutex
	requests []llm.Request

	generate func(req llm.Request) (string, error)
	selectFn func(req llm.Request) (string, error)
	json     func(req llm.Request) (string, error)
}

func isSelection(req llm.Request) bool {
	return len(req.Messages) == 2 && strings.HasPrefix(req.Messages[1].Content, "Originele Paragraaf:")
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	var fn func(llm.Request) (string, error)
	switch {
	case req.JSONMode:
		fn = f.json
	case isSelection(req):
		fn = f.selectFn
	default:
		fn = f.generate
	}
	if fn == nil {
		return nil, errors.New("unexpected call")
	}
	content, err := fn(req)
	if err != nil {
		return nil, err
	}
	return &llm.Response{Model: req.Model, Content: content}, nil
}

func (f *fakeCompleter) counts() (generation, selection int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if isSelection(r) {
			selection++
		} else {
			generation++
		}
	}
	return generation, selection
}

// firstVariant returns the first candidate text embedded in a selection prompt.
func firstVariant(req llm.Request) string {
	user := req.Messages[1].Content
	_, rest, ok := strings.Cut(user, "Variant 1 (")
	if !ok {
		return ""
	}
	_, rest, _ = strings.Cut(rest, "):\n")
	text, _, _ := strings.Cut(rest, "\n---\n")
	return text
}

// Package testutil provides fakes shared by the package tests.
package testutil

import (
	"context"
	"strings"
	"sync"

	"codeberg.org/adtmanual/manualkit/internal/llm"
)

// FakeChatProvider implements llm.Provider for tests. Responses are matched
// by substring of the prompt; unmatched prompts get Default.
type FakeChatProvider struct {
	mu        sync.Mutex
	Responses map[string]string
	Default   string
	Err       error
	Calls     []llm.Request
}

// Complete records the request and returns the canned response.
func (f *FakeChatProvider) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, req)
	if f.Err != nil {
		return "", f.Err
	}
	for fragment, response := range f.Responses {
		if strings.Contains(req.Prompt, fragment) {
			return response, nil
		}
	}
	if f.Default != "" {
		return f.Default, nil
	}
	return "fake completion", nil
}

// Name returns the provider name.
func (f *FakeChatProvider) Name() string {
	return "fake"
}

// CallCount returns how many completions were requested.
func (f *FakeChatProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// LastPrompt returns the prompt of the most recent call, or "".
func (f *FakeChatProvider) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return ""
	}
	return f.Calls[len(f.Calls)-1].Prompt
}

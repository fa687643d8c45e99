// Package llmtest provides a scripted llm.Client for pipeline tests.
package llmtest

import (
	"context"
	"sync"

	"bookai/backend/internal/llm"
)

// Reply is one scripted answer
type Reply struct {
	Text string
	Err  error
}

// Client answers requests from a handler func or, when Handler is nil,
// from Replies in order. It records every request it receives.
type Client struct {
	Handler func(req llm.Request) (string, error)
	Replies []Reply

	mu       sync.Mutex
	requests []llm.Request
}

func (c *Client) Name() string {
	return "fake"
}

func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	n := len(c.requests)
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.Handler != nil {
		return c.Handler(req)
	}
	if n > len(c.Replies) {
		return "", llm.ErrEmptyCompletion
	}
	reply := c.Replies[n-1]
	return reply.Text, reply.Err
}

// Requests returns a copy of the recorded requests
func (c *Client) Requests() []llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Request, len(c.requests))
	copy(out, c.requests)
	return out
}

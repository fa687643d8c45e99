// Package mymemory is a client for the MyMemory translation API.
package mymemory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// MaxChunk is the longest text, in code points, sent in a single request
const MaxChunk = 450

const requestTimeout = 10 * time.Second

var (
	ErrEmptyTranslation = errors.New("mymemory: empty translation")
	ErrRejected         = errors.New("mymemory: request rejected")
)

type response struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// number on success, sometimes a quoted string on errors
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

// Client calls the /get endpoint. Requests are paced by a process-wide
// token bucket shared by every caller of the same Client.
type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a MyMemory client allowing rps requests per second.
// email may be empty.
func NewClient(baseURL, email string, rps float64, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		email:      email,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Translate translates a single chunk of at most MaxChunk code points.
// Waiting for the rate limiter counts against the call's timeout.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("mymemory: rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)
	if c.email != "" {
		params.Set("de", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("mymemory: failed to decode response: %w", err)
	}
	if status, ok := responseStatus(body.ResponseStatus); ok && status != http.StatusOK {
		return "", fmt.Errorf("%w: responseStatus %d: %s", ErrRejected, status, body.ResponseDetails)
	}

	translated := strings.TrimSpace(body.ResponseData.TranslatedText)
	if translated == "" {
		return "", ErrEmptyTranslation
	}
	return translated, nil
}

// responseStatus reads a numeric or quoted-numeric status. ok is false
// when the field is absent.
func responseStatus(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	// unreadable status is treated as a rejection
	return -1, true
}

// Package metadata resolves book metadata from the Google Books volumes API.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/model"
	"bookai/backend/internal/sanitize"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no volume could be resolved, whatever the cause
var ErrNotFound = errors.New("metadata: book not found")

const (
	lookupTimeout   = 10 * time.Second
	trendingTimeout = 5 * time.Second

	// MaxTrendingResults is the provider's maxResults ceiling
	MaxTrendingResults = 40

	trendingQuery  = "subject:bestseller"
	trendingReason = "Trending"
	unknownAuthor  = "Unknown"
)

type volumesResponse struct {
	Items []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	ImageLinks  struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// Client queries the volumes search endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Google Books client. apiKey may be empty.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Lookup returns the best match for a title/author pair. Every failure
// (timeout, transport, status, body, no items) is logged and reported as
// ErrNotFound. A deadline already set on ctx takes precedence when tighter.
func (c *Client) Lookup(ctx context.Context, title, author string) (*model.BookMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	log := logger.For(ctx).WithFields(logrus.Fields{"title": title, "author": author})

	params := url.Values{}
	params.Set("q", fmt.Sprintf(`intitle:"%s" inauthor:"%s"`, title, author))
	params.Set("maxResults", "1")

	resp, err := c.search(ctx, params)
	if err != nil {
		log.WithError(err).Warn("metadata lookup failed")
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if len(resp.Items) == 0 {
		log.Info("metadata lookup returned no items")
		return nil, ErrNotFound
	}

	info := resp.Items[0].VolumeInfo
	meta := &model.BookMetadata{
		Title:       title,
		Author:      author,
		Description: sanitize.Description(info.Description),
		CoverURL:    info.ImageLinks.Thumbnail,
	}
	if t := strings.TrimSpace(info.Title); t != "" {
		meta.Title = t
	}
	if len(info.Authors) > 0 && strings.TrimSpace(info.Authors[0]) != "" {
		meta.Author = strings.TrimSpace(info.Authors[0])
	}
	return meta, nil
}

// Trending lists bestseller volumes in provider order. limit is clamped to
// [1, MaxTrendingResults].
func (c *Client) Trending(ctx context.Context, limit int) ([]model.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, trendingTimeout)
	defer cancel()

	limit = max(1, min(limit, MaxTrendingResults))

	params := url.Values{}
	params.Set("q", trendingQuery)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("orderBy", "relevance")

	resp, err := c.search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending books: %w", err)
	}

	books := make([]model.Recommendation, 0, len(resp.Items))
	for _, item := range resp.Items {
		info := item.VolumeInfo
		author := unknownAuthor
		if len(info.Authors) > 0 {
			author = info.Authors[0]
		}
		books = append(books, model.Recommendation{
			Title:    info.Title,
			Author:   author,
			CoverURL: model.StringPtr(info.ImageLinks.Thumbnail),
			Reason:   trendingReason,
		})
		if len(books) == limit {
			break
		}
	}
	return books, nil
}

func (c *Client) search(ctx context.Context, params url.Values) (*volumesResponse, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &body, nil
}

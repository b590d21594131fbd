package jsonplaceholder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the public read-only JSONPlaceholder API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// StatusError is returned when the API replies with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	reason := strings.TrimSpace(strings.TrimPrefix(e.Status, strconv.Itoa(e.Code)))
	if reason == "" {
		reason = http.StatusText(e.Code)
	}
	return fmt.Sprintf("request failed: %d %s", e.Code, reason)
}

// Client is a minimal JSONPlaceholder API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. Empty values fall back to
// DefaultBaseURL and http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) url(resource string) string {
	return c.baseURL + "/" + resource
}

// PostsByUser issues GET /posts?userId=<id> and returns the raw response
// body. It does not retry.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]byte, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("posts"), nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read posts response: %w", err)
	}
	return body, nil
}

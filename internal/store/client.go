package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/slog"
)

const pageSize = 100

// Client talks to the remote document store. It is constructed once and
// handed to everything that needs store access; there is no package-level
// instance.
type Client struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
	pacer   *pacer
}

func NewClient(baseURL, token string, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:     log.With("component", "store_client"),
		baseURL: baseURL,
		token:   token,
		pacer:   newPacer(minRequestSpacing),
	}
}

type documentPage struct {
	Results    []Document `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor"`
}

type blockPage struct {
	Results    []ContentBlock `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor"`
}

// Query returns every document in the collection matching the filter. The
// cursor loop runs to exhaustion; partial pages are never surfaced.
func (c *Client) Query(ctx context.Context, collectionID string, filter Filter) ([]Document, error) {
	var all []Document
	var cursor *string
	for {
		body := map[string]any{
			"filter":    filter,
			"page_size": pageSize,
		}
		if cursor != nil {
			body["start_cursor"] = *cursor
		}
		var page documentPage
		path := "/v1/collections/" + collectionID + "/query"
		if err := c.doRequest(ctx, http.MethodPost, path, body, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if !page.HasMore || page.NextCursor == nil {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// Create inserts a new document with the given fields and optional content.
func (c *Client) Create(ctx context.Context, collectionID string, properties map[string]PropertyValue, children []ContentBlock) (*Document, error) {
	body := map[string]any{
		"parent":     map[string]string{"collection_id": collectionID},
		"properties": properties,
	}
	if len(children) > 0 {
		body["children"] = children
	}
	var doc Document
	if err := c.doRequest(ctx, http.MethodPost, "/v1/documents", body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Archive soft-deletes a document. The store treats archiving an already
// archived document as a no-op.
func (c *Client) Archive(ctx context.Context, documentID string) (*Document, error) {
	body := map[string]any{"archived": true}
	var doc Document
	if err := c.doRequest(ctx, http.MethodPatch, "/v1/documents/"+documentID, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListBlocks returns the full nested content of a document, following
// pagination cursors until exhausted.
func (c *Client) ListBlocks(ctx context.Context, documentID string) ([]ContentBlock, error) {
	var all []ContentBlock
	var cursor *string
	for {
		path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", documentID, pageSize)
		if cursor != nil {
			path += "&start_cursor=" + *cursor
		}
		var page blockPage
		if err := c.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if !page.HasMore || page.NextCursor == nil {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	return c.withRetry(ctx, op, func() error {
		return c.attempt(ctx, method, path, body, out)
	})
}

func (c *Client) attempt(ctx context.Context, method, path string, body, out any) error {
	if err := c.pacer.wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "jobmirror/1.0")

	c.log.Debug("store request", "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	return c.parseResponse(resp, out)
}

func (c *Client) parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransientError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitedError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode >= 500:
		return &TransientError{Status: resp.StatusCode}
	case resp.StatusCode >= 400:
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &e); err == nil {
			apiErr.Code = e.Code
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding store response: %w", err)
		}
	}
	return nil
}

func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

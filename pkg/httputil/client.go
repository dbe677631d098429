package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/archtext/archtext/pkg/errors"
	"github.com/archtext/archtext/pkg/observability"
	"github.com/archtext/archtext/pkg/workspace"
)

// DefaultTimeout bounds a single HTTP request made by [Client].
const DefaultTimeout = 30 * time.Second

// Client talks to a running archtext HTTP server.
//
// All methods retry transient failures (network errors, 5xx responses)
// with exponential backoff. 4xx responses are returned immediately as
// structured errors carrying the server's error code.
type Client struct {
	baseURL    string
	http       *http.Client
	retryDelay time.Duration
}

// NewClient creates a client for the server at baseURL
// (e.g. "http://localhost:8080").
func NewClient(baseURL string) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: DefaultTimeout},
		retryDelay: time.Second,
	}, nil
}

// Parse sends source text to the server for parsing.
func (c *Client) Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error) {
	var resp ParseResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/parse", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Print sends a graph to the server for printing and returns the DSL text.
func (c *Client) Print(ctx context.Context, req PrintRequest) (string, error) {
	var resp PrintResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/print", req, &resp); err != nil {
		return "", err
	}
	return resp.Output, nil
}

// ListDocuments returns all documents stored on the server, sorted by name.
func (c *Client) ListDocuments(ctx context.Context) ([]*workspace.Document, error) {
	var docs []*workspace.Document
	if err := c.doJSON(ctx, http.MethodGet, "/v1/documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument fetches a single document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (*workspace.Document, error) {
	var doc workspace.Document
	if err := c.doJSON(ctx, http.MethodGet, "/v1/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// PutDocument creates or updates a document on the server.
// The server assigns an ID when doc.ID is empty; the stored document
// is returned either way.
func (c *Client) PutDocument(ctx context.Context, doc *workspace.Document) (*workspace.Document, error) {
	var stored workspace.Document
	if err := c.doJSON(ctx, http.MethodPut, "/v1/documents", doc, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteDocument removes a document by ID.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/documents/"+url.PathEscape(id), nil, nil)
}

// doJSON performs one JSON request with retry and observability hooks.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "marshaling request body")
		}
	}

	return Retry(ctx, 3, c.retryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "building request")
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		host := req.URL.Host
		observability.HTTP().OnRequest(ctx, method, host, path)

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, method, host, path, err)
			return &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "request failed")}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 500:
			return &RetryableError{Err: serverError(resp)}
		case resp.StatusCode >= 400:
			return serverError(resp)
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "decoding response body")
		}
		return nil
	})
}

// serverError converts an error response into a structured error,
// preserving the server's error code when the body is well-formed.
func serverError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body ErrorResponse
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		code := errors.Code(body.Code)
		if code == "" {
			code = errors.ErrCodeNetwork
		}
		return errors.New(code, "%s", body.Error)
	}
	return errors.New(errors.ErrCodeNetwork,
		"server returned %s", resp.Status)
}

// Package client is the data-access layer used by front ends of the diet log
// API. Every non-2xx response is returned as an error; callers never get a
// zero value in place of a failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/record"
)

// Client talks to a dietlog server. BaseURL includes the API prefix, for
// example http://localhost:8080/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     record.Policy
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithPolicy sets the identifier-length heuristic used by SaveMeal and
// SaveExercise.
func WithPolicy(p record.Policy) Option {
	return func(c *Client) { c.policy = p }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		policy:     record.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResponseError is a non-2xx answer from the server. Message is the
// operation's failure message and Detail is the server's error field, if any.
type ResponseError struct {
	Op         string
	StatusCode int
	Message    string
	Detail     string
}

func (e *ResponseError) Error() string {
	if e.Detail != "" && e.Detail != e.Message {
		return fmt.Sprintf("%s (status %d: %s)", e.Message, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func kindForStatus(status int) apperr.Kind {
	switch {
	case status == http.StatusBadRequest:
		return apperr.Validation
	case status == http.StatusNotFound:
		return apperr.NotFound
	case status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		return apperr.Timeout
	default:
		return apperr.Internal
	}
}

// call issues one request and decodes a JSON answer into T. msg is the
// failure message reported for this operation.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, op, msg string) (T, error) {
	var zero T

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, apperr.E(apperr.Validation, op, fmt.Errorf("%s: marshal request: %w", msg, err))
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return zero, apperr.E(apperr.Internal, op, fmt.Errorf("%s: %w", msg, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, apperr.Wrap(op, fmt.Errorf("%s: %w", msg, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &ResponseError{Op: op, StatusCode: resp.StatusCode, Message: msg}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload) == nil {
			rerr.Detail = payload.Error
		}
		return zero, apperr.E(kindForStatus(resp.StatusCode), op, rerr)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, apperr.E(apperr.Internal, op, fmt.Errorf("%s: decode response: %w", msg, err))
	}
	return out, nil
}

// AsResponseError extracts the server response from err, if there is one.
func AsResponseError(err error) (*ResponseError, bool) {
	var rerr *ResponseError
	ok := errors.As(err, &rerr)
	return rerr, ok
}

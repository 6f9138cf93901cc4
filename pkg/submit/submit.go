package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/beast/pkg/logger"
)

const maxResponseBody = 1 << 20

// Response is a successful submission.
type Response struct {
	Status int
	Header http.Header
	// Data is the decoded JSON body, or the body as a string for other
	// content types.
	Data any
}

// Client submits form data to one endpoint. It is safe for concurrent use.
type Client struct {
	url        string
	method     string
	headers    http.Header
	transform  Transform
	onResponse func(Response)
	onError    func(error)
	timeout    time.Duration
	secret     string
	breaker    *Breaker
	http       *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given http or https URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, endpoint)
	}

	c := &Client{
		url:     endpoint,
		method:  http.MethodPost,
		headers: make(http.Header),
		http:    http.DefaultClient,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("submit"))
	return c, nil
}

// Submit sends data and reports the outcome to the hooks. It never fails
// from the caller's point of view.
func (c *Client) Submit(ctx context.Context, data map[string]any) {
	resp, err := c.Send(ctx, data)
	if err != nil {
		c.logger.WarnContext(ctx, "submission failed", slog.String("url", c.url), logger.Error(err))
		if c.onError != nil {
			c.onError(err)
		}
		return
	}
	c.logger.DebugContext(ctx, "submitted", slog.String("url", c.url), slog.Int("status", resp.Status))
	if c.onResponse != nil {
		c.onResponse(resp)
	}
}

// Send performs one request and returns the response. Non-2xx responses
// yield a *StatusError.
func (c *Client) Send(ctx context.Context, data map[string]any) (Response, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return Response{}, ErrBreakerOpen
	}

	var body any = data
	if c.transform != nil {
		body = c.transform(data)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.url, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header[k] = v
	}
	if c.secret != "" {
		sig, err := Sign(c.secret, payload, time.Now())
		if err != nil {
			return Response{}, err
		}
		sig.Apply(req.Header)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.record(false)
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	decoded, err := decodeBody(res)
	if err != nil {
		c.record(false)
		return Response{}, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.record(res.StatusCode < 500)
		return Response{}, &StatusError{Status: res.StatusCode, Data: decoded}
	}
	c.record(true)
	return Response{Status: res.StatusCode, Header: res.Header, Data: decoded}, nil
}

// record feeds the breaker. Client errors (4xx) do not count as endpoint
// failures.
func (c *Client) record(ok bool) {
	if c.breaker == nil {
		return
	}
	if ok {
		c.breaker.RecordSuccess()
	} else {
		c.breaker.RecordFailure()
	}
}

func decodeBody(res *http.Response) (any, error) {
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrRequestFailed, err)
	}

	mediaType, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return string(raw), nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return string(raw), nil
	}
	return data, nil
}

package submit

import (
	"log/slog"
	"net/http"
	"time"
)

// Transform reshapes the form data before it is encoded.
type Transform func(data map[string]any) any

// Option configures a Client.
type Option func(*Client)

// WithMethod sets the HTTP method. Defaults to POST.
func WithMethod(method string) Option {
	return func(c *Client) {
		if method != "" {
			c.method = method
		}
	}
}

// WithHeader adds a request header. Content-Type is always
// application/json.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if key != "" {
			c.headers.Set(key, value)
		}
	}
}

func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			if k != "" {
				c.headers.Set(k, v)
			}
		}
	}
}

func WithTransform(fn Transform) Option {
	return func(c *Client) {
		c.transform = fn
	}
}

// WithOnResponse sets the hook receiving successful responses.
func WithOnResponse(fn func(Response)) Option {
	return func(c *Client) {
		c.onResponse = fn
	}
}

// WithOnError sets the hook receiving transport failures and
// *StatusError values for non-2xx responses.
func WithOnError(fn func(error)) Option {
	return func(c *Client) {
		c.onError = fn
	}
}

// WithTimeout bounds each request. There is no timeout by default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithSignature signs every request body with secret.
func WithSignature(secret string) Option {
	return func(c *Client) {
		c.secret = secret
	}
}

// WithBreaker stops sending while b is open.
func WithBreaker(b *Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

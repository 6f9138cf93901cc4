package ratelimiter_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newBucket(t *testing.T, c *clock, cfg ratelimiter.Config) *ratelimiter.Bucket {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0), ratelimiter.WithClock(c.Now))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b
}

func TestNewBucketRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	for name, cfg := range map[string]ratelimiter.Config{
		"capacity": {Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		"rate":     {Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		"interval": {Capacity: 1, RefillRate: 1},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0)), cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	t.Run("burst then deny then refill", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Second})
		ctx := t.Context()

		for range 2 {
			res, err := b.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
		}

		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Equal(t, 2, res.Limit)

		// Denials do not push the bucket further into debt.
		status, err := b.Status(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 0, status.Remaining)

		c.Advance(time.Second)
		res, err = b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		ctx := t.Context()

		res, err := b.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		res, err = b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		ctx := t.Context()

		_, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		require.NoError(t, b.Reset(ctx, "k"))
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("non-positive token count", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		_, err := b.AllowN(t.Context(), "k", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "forwarded first valid", headers: map[string]string{"X-Forwarded-For": "garbage, 198.51.100.7, 10.0.0.1"}, remote: "10.0.0.2:80", want: "198.51.100.7"},
		{name: "real ip wins over forwarded", headers: map[string]string{"X-Real-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.7"}, remote: "10.0.0.2:80", want: "203.0.113.9"},
		{name: "ipv6 normalized", remote: "[2001:DB8::1]:443", want: "2001:db8::1"},
		{name: "invalid", remote: "nope", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ratelimiter.ClientIP(r))
		})
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()

	static := func(s string) ratelimiter.KeyFunc {
		return func(*http.Request) string { return s }
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "a:b", ratelimiter.Composite(static("a"), static(""), static("b"))(r))
	assert.Empty(t, ratelimiter.Composite(static(""))(r))

	long := ratelimiter.Composite(static(string(make([]byte, 80))), static("x"))(r)
	assert.NotEmpty(t, long)
	assert.LessOrEqual(t, len(long), 16)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	// Retry-After is measured against the wall clock.
	c := &clock{now: time.Now()}
	b := newBucket(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

	var denied error
	mw := ratelimiter.Middleware(b,
		ratelimiter.Composite(ratelimiter.ClientIP, ratelimiter.URLParam("form")),
		ratelimiter.WithErrorFunc(func(w http.ResponseWriter, _ *http.Request, err error) {
			denied = err
			w.WriteHeader(http.StatusTooManyRequests)
		}),
	)

	r := chi.NewRouter()
	r.With(mw).Post("/forms/{form}/validate", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	send := func(formID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/forms/"+formID+"/validate", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	first := send("signup")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send("signup")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.True(t, errors.Is(denied, ratelimiter.ErrLimitExceeded))

	// Another form has its own bucket.
	assert.Equal(t, http.StatusNoContent, send("contact").Code)
}

package submit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/submit"
)

func TestNewClientRejectsBadURLs(t *testing.T) {
	t.Parallel()
	for _, endpoint := range []string{"", "ftp://example.com", "/relative", "http://", "://bad"} {
		_, err := submit.NewClient(endpoint)
		assert.ErrorIs(t, err, submit.ErrInvalidURL, endpoint)
	}
}

func TestSubmitJSON(t *testing.T) {
	t.Parallel()
	var (
		gotMethod string
		gotHeader http.Header
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"id":42}`)
	}))
	defer srv.Close()

	var resp submit.Response
	client, err := submit.NewClient(srv.URL,
		submit.WithHeader("X-CSRF-Token", "abc"),
		submit.WithOnResponse(func(r submit.Response) { resp = r }),
		submit.WithOnError(func(err error) { t.Errorf("unexpected error: %v", err) }),
	)
	require.NoError(t, err)

	client.Submit(context.Background(), map[string]any{"email": "ada@example.com", "pets": []string{"dog"}})

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "abc", gotHeader.Get("X-CSRF-Token"))
	assert.Equal(t, map[string]any{"email": "ada@example.com", "pets": []any{"dog"}}, gotBody)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, map[string]any{"id": float64(42)}, resp.Data)
}

func TestSubmitTransformAndMethod(t *testing.T) {
	t.Parallel()
	var body string
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		method = r.Method
		_, _ = io.WriteString(w, "saved")
	}))
	defer srv.Close()

	client, err := submit.NewClient(srv.URL,
		submit.WithMethod(http.MethodPut),
		submit.WithTransform(func(data map[string]any) any {
			return map[string]any{"user": data}
		}),
	)
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.JSONEq(t, `{"user":{"name":"Ada"}}`, body)
	assert.Equal(t, "saved", resp.Data, "non-JSON responses are kept as text")
}

func TestSubmitStatusError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"error":"email taken"}`)
	}))
	defer srv.Close()

	var got error
	client, err := submit.NewClient(srv.URL,
		submit.WithOnResponse(func(submit.Response) { t.Error("response hook called for 422") }),
		submit.WithOnError(func(err error) { got = err }),
	)
	require.NoError(t, err)

	client.Submit(context.Background(), map[string]any{"email": "ada@example.com"})

	require.Error(t, got)
	assert.True(t, submit.IsStatusError(got))
	se, ok := submit.AsStatusError(got)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
	assert.Equal(t, map[string]any{"error": "email taken"}, se.Data)
}

func TestSubmitTransportError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var got error
	client, err := submit.NewClient(url, submit.WithOnError(func(err error) { got = err }))
	require.NoError(t, err)

	client.Submit(context.Background(), map[string]any{})
	assert.ErrorIs(t, got, submit.ErrRequestFailed)
	assert.False(t, submit.IsStatusError(got))
}

func TestSubmitNeverRetries(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := submit.NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSubmitTimeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client, err := submit.NewClient(srv.URL, submit.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Send(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, submit.ErrRequestFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitSigned(t *testing.T) {
	t.Parallel()
	const secret = "s3cr3t"
	verified := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		verified <- submit.Verify(secret, raw, r.Header, time.Minute)
	}))
	defer srv.Close()

	client, err := submit.NewClient(srv.URL, submit.WithSignature(secret))
	require.NoError(t, err)
	_, err = client.Send(context.Background(), map[string]any{"a": "b"})
	require.NoError(t, err)
	assert.NoError(t, <-verified)
}

func TestSubmitBreaker(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	breaker := submit.NewBreaker(2, time.Hour)
	client, err := submit.NewClient(srv.URL, submit.WithBreaker(breaker))
	require.NoError(t, err)

	for range 2 {
		_, err = client.Send(context.Background(), map[string]any{})
		require.True(t, submit.IsStatusError(err))
	}
	_, err = client.Send(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, submit.ErrBreakerOpen)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, submit.BreakerOpen, breaker.State())
}

func TestStatusErrorMessage(t *testing.T) {
	t.Parallel()
	err := &submit.StatusError{Status: 500}
	assert.True(t, strings.Contains(err.Error(), "500"))
}

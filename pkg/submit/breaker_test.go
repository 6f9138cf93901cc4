package submit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/beast/pkg/submit"
)

func TestBreaker(t *testing.T) {
	t.Parallel()
	b := submit.NewBreaker(2, 30*time.Millisecond)
	assert.True(t, b.Allow())
	assert.Equal(t, "closed", b.State().String())

	b.RecordFailure()
	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.False(t, b.Allow())
	assert.Equal(t, submit.BreakerOpen, b.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, submit.BreakerHalfOpen, b.State())
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.False(t, b.Allow(), "a failed probe reopens the breaker")

	time.Sleep(40 * time.Millisecond)
	assert.True(t, b.Allow())
	b.RecordSuccess()
	assert.Equal(t, submit.BreakerClosed, b.State())

	b.RecordFailure()
	b.RecordFailure()
	b.Reset()
	assert.True(t, b.Allow())
}

func TestBreakerDefaults(t *testing.T) {
	t.Parallel()
	b := submit.NewBreaker(0, 0)
	for range 4 {
		b.RecordFailure()
	}
	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.False(t, b.Allow())
	assert.Equal(t, "open", b.State().String())
}

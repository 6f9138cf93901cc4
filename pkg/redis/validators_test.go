package redis_test

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/redis"
	"github.com/dmitrymomot/beast/pkg/registry"
)

type fakeSets struct {
	sets map[string]map[string]bool
	err  error
	keys []string
}

func newFakeSets() *fakeSets {
	return &fakeSets{sets: make(map[string]map[string]bool)}
}

func (f *fakeSets) SIsMember(_ context.Context, key string, member any) *goredis.BoolCmd {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return goredis.NewBoolResult(false, f.err)
	}
	return goredis.NewBoolResult(f.sets[key][member.(string)], nil)
}

func (f *fakeSets) SAdd(_ context.Context, key string, members ...any) *goredis.IntCmd {
	if f.sets[key] == nil {
		f.sets[key] = make(map[string]bool)
	}
	for _, m := range members {
		f.sets[key][m.(string)] = true
	}
	return goredis.NewIntResult(int64(len(members)), nil)
}

func TestUnique(t *testing.T) {
	t.Parallel()
	sets := newFakeSets()
	ctx := context.Background()
	require.NoError(t, redis.Add(ctx, sets, "beast:usernames", " Admin", "root", ""))

	check := redis.Unique(sets, "beast:usernames", "Username is already taken")

	out, err := check(ctx, form.Field{Value: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, registry.Fail("Username is already taken"), out)

	out, err = check(ctx, form.Field{Value: "ada"})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	out, err = check(ctx, form.Field{Value: "  "})
	require.NoError(t, err)
	assert.True(t, out.Valid, "empty values are left to the required rule")
	assert.Equal(t, []string{"beast:usernames", "beast:usernames"}, sets.keys)
}

func TestMember(t *testing.T) {
	t.Parallel()
	sets := newFakeSets()
	ctx := context.Background()
	require.NoError(t, redis.Add(ctx, sets, "invites", "WELCOME-2024"))

	check := redis.Member(sets, "invites", "Unknown invite code")

	out, err := check(ctx, form.Field{Value: "welcome-2024"})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	out, err = check(ctx, form.Field{Value: "guess"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown invite code", out.Message)
}

func TestLookupError(t *testing.T) {
	t.Parallel()
	sets := newFakeSets()
	sets.err = errors.New("connection refused")

	_, err := redis.Unique(sets, "k", "taken")(context.Background(), form.Field{Value: "x"})
	assert.ErrorIs(t, err, redis.ErrLookupFailed)
}

func TestAddSkipsEmptyValues(t *testing.T) {
	t.Parallel()
	sets := newFakeSets()
	require.NoError(t, redis.Add(context.Background(), sets, "k"))
	require.NoError(t, redis.Add(context.Background(), sets, "k", " ", ""))
	assert.Empty(t, sets.sets)
}

func TestConnectValidatesURL(t *testing.T) {
	t.Parallel()
	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "mysql://nope"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}

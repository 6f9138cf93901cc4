package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/registry"
)

// SetChecker is the subset of the go-redis client used by the validators.
type SetChecker interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
}

// SetWriter adds members to a set.
type SetWriter interface {
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
}

// Normalize lowercases and trims values before they are stored or looked
// up, so "Admin " and "admin" collide.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Unique fails when the field value is a member of the set at key, for
// example a set of taken usernames.
func Unique(client SetChecker, key, message string) registry.Func {
	return lookup(client, key, message, false)
}

// Member fails when the field value is not a member of the set at key, for
// example a set of valid invite codes.
func Member(client SetChecker, key, message string) registry.Func {
	return lookup(client, key, message, true)
}

func lookup(client SetChecker, key, message string, want bool) registry.Func {
	return func(ctx context.Context, field form.Field) (registry.Outcome, error) {
		value := Normalize(field.Value)
		if value == "" {
			return registry.Pass(), nil
		}
		found, err := client.SIsMember(ctx, key, value).Result()
		if err != nil {
			return registry.Outcome{}, errors.Join(ErrLookupFailed, err)
		}
		if found != want {
			return registry.Fail(message), nil
		}
		return registry.Pass(), nil
	}
}

// Add stores normalized values in the set at key.
func Add(ctx context.Context, client SetWriter, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, 0, len(values))
	for _, v := range values {
		if v = Normalize(v); v != "" {
			members = append(members, v)
		}
	}
	if len(members) == 0 {
		return nil
	}
	return client.SAdd(ctx, key, members...).Err()
}

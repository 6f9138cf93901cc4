// Package redis connects to Redis and turns Redis sets into custom
// validators.
//
// Connect retries until the server answers a ping; Healthcheck plugs into
// readiness probes. Unique and Member build registry functions that check a
// field value against a set, which is how remote "is this username taken"
// checks are usually done:
//
//	client, err := redis.Connect(ctx, cfg)
//	reg.MustRegister("checkUsername",
//		redis.Unique(client, cfg.KeyPrefix+"usernames", "Username is already taken"))
//
// Values are normalized with Normalize on both write (Add) and lookup.
// Lookup errors fail the field closed through the validation engine.
package redis

// Package ratelimiter throttles server-side validation requests with a
// token bucket per key.
//
// Live field validation fires on every change event and custom validators
// may hit Redis or PostgreSQL, so beastd limits the validation routes per
// client and form:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
//	mw := ratelimiter.Middleware(bucket,
//		ratelimiter.Composite(ratelimiter.ClientIP, ratelimiter.URLParam("form")),
//	)
//
// Denied requests get 429 with Retry-After. Store errors are logged and the
// request is let through.
package ratelimiter

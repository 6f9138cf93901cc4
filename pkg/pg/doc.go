// Package pg provides the PostgreSQL side of server validation: a pooled
// connection with retries, embedded goose migrations and a small table of
// reserved values backing uniqueness validators.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
//	reg.MustRegister("uniqueEmail", pg.Unique(pool, "email", "Email is already registered"))
//
// Reserve and Release claim and free values once a submission is accepted.
// Values are compared after Normalize.
package pg

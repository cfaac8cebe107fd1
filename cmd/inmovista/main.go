package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inmovista/inmovista/modules"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/configuration"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/ratelimit"
)

func main() {
	execute()
}

// loadApp builds the full application without starting the HTTP server, so
// commands can reach services and the migration registry.
func loadApp(ctx context.Context) (application.Application, *pgxpool.Pool, error) {
	conf := configuration.Use()
	logger := conf.Logger()

	poolCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(poolCtx, conf.Database.Opts)
	if err != nil {
		return nil, nil, err
	}

	app := application.New(&application.ApplicationOptions{
		Pool:         pool,
		EventBus:     eventbus.NewEventPublisher(logger),
		Logger:       logger,
		Capabilities: capabilities.New(capabilities.NewPgProber()),
		LeadLimiter:  ratelimit.NewMemoryStore(conf.LeadRateLimit.Window, conf.LeadRateLimit.Limit, nil),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool, nil
}

package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/internal/server"
	"github.com/inmovista/inmovista/modules"
	"github.com/inmovista/inmovista/pkg/application"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/configuration"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/ratelimit"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:         pool,
		EventBus:     eventbus.NewEventPublisher(logger),
		Logger:       logger,
		Capabilities: capabilities.New(capabilities.NewPgProber()),
		LeadLimiter:  newLeadLimiter(conf, logger),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func newLeadLimiter(conf *configuration.Configuration, logger *logrus.Logger) ratelimit.Store {
	opts := conf.LeadRateLimit
	if opts.Storage == "redis" {
		store, err := ratelimit.NewRedisStore(opts.RedisURL, opts.Window, opts.Limit)
		if err == nil {
			return store
		}
		logger.WithError(err).Warn("failed to connect lead limiter to redis, falling back to memory")
	}
	return ratelimit.NewMemoryStore(opts.Window, opts.Limit, nil)
}

// Package application wires configuration, connectors, services and
// transports into one process and runs it until the context is canceled.
package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"valuebet/internal/config"
	"valuebet/internal/domain/service/detect"
	"valuebet/internal/domain/service/fairvalue"
	"valuebet/internal/domain/service/tracker"
	"valuebet/internal/infrastructure/docstore"
	"valuebet/internal/infrastructure/notifier"
	"valuebet/internal/infrastructure/oddsfeed"
	"valuebet/internal/infrastructure/persistence"
	"valuebet/internal/infrastructure/queue"
	"valuebet/internal/infrastructure/results"
	"valuebet/internal/server"
	"valuebet/internal/transport/bot"
	"valuebet/internal/transport/bot/handler"
	"valuebet/internal/worker"
	"valuebet/pkg/application/connectors"
	"valuebet/pkg/application/modules"
	"valuebet/pkg/contextx"
	"valuebet/pkg/httpx"
	"valuebet/pkg/logx"
	"valuebet/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func Run(ctx context.Context) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	fairMethod, err := fairvalue.ParseMethod(cfg.Engine.FairMethod)
	if err != nil {
		return fmt.Errorf("fairvalue.ParseMethod: %w", err)
	}

	postgres := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := postgres.Client(ctx)
	defer postgres.Close(ctx)

	redis := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := redis.Client(ctx)
	defer redis.Close(ctx)

	masker := logx.NewSensitiveDataMasker()

	feed := oddsfeed.NewClient(
		oddsfeed.Config{
			BaseURL:    cfg.OddsFeed.BaseURL,
			APIKey:     cfg.OddsFeed.APIKey,
			Regions:    cfg.OddsFeed.Regions,
			Markets:    cfg.OddsFeed.Markets,
			Bookmakers: lo.Union(cfg.Engine.SharpBooks, cfg.Engine.BettableBooks),
		},
		&http.Client{
			Timeout: cfg.OddsFeed.Timeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(masker),
				httpx.WithLogFieldMaxLen(cfg.OddsFeed.LogFieldMaxLen),
			),
		},
	)

	resultsClient := results.NewClient(
		cfg.Results.BaseURL,
		&http.Client{
			Timeout: cfg.Results.Timeout,
			Transport: httpx.NewAuthBearerRoundTripper(
				httpx.NewLoggingRoundTripper(
					http.DefaultTransport,
					httpx.WithSensitiveDataMasker(masker),
				),
				httpx.NewStaticTokenAuthenticator(cfg.Results.APIKey),
			),
		},
	)

	betStore := docstore.NewBetStore(docstore.NewClient(
		cfg.DocStore.BaseURL,
		cfg.DocStore.Auth,
		&http.Client{
			Timeout: cfg.DocStore.Timeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(masker),
			),
		},
	))

	archive := persistence.NewArchiveRepository(db)
	dispatchQueue := queue.NewDispatchQueue(redisClient)

	alertBot, err := notifier.NewAlertBot(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewAlertBot: %w", err)
	}

	estimator := fairvalue.NewEstimator(fairMethod).
		WithMinSources(cfg.Engine.MinSources)

	detector := detect.NewDetector(cfg.Engine.BettableBooks).
		WithEdgeBounds(cfg.Engine.MinEdgePercent, cfg.Engine.MaxEdgePercent).
		WithOddsBounds(cfg.Engine.MinOdds, cfg.Engine.MaxOdds).
		WithFreshness(cfg.Engine.FreshnessWindow).
		WithMaxPerBook(cfg.Engine.MaxPerBook)

	trackerService := tracker.NewService(betStore, archive, alertBot).
		WithBaseUnit(cfg.Engine.BaseUnit).
		WithVoidMinEdge(cfg.Engine.VoidMinEdgePercent).
		WithRecentTTL(cfg.Engine.RecentAlertTTL)

	engine := worker.NewEngine(feed, dispatchQueue, resultsClient, estimator, detector, trackerService).
		WithSports(cfg.OddsFeed.Sports).
		WithKickoffLookahead(cfg.Worker.KickoffLookahead).
		WithDrainBatchSize(cfg.Worker.DrainBatchSize).
		WithSettleGrace(cfg.Worker.SettleGrace).
		WithScanConcurrency(cfg.Worker.ScanConcurrency)

	commandHandler := handler.New(trackerService, dispatchQueue, handler.Settings{
		MinEdgePercent: cfg.Engine.MinEdgePercent,
		MaxEdgePercent: cfg.Engine.MaxEdgePercent,
		FairMethod:     cfg.Engine.FairMethod,
		ScanInterval:   cfg.Worker.ScanInterval,
		BettableBooks:  cfg.Engine.BettableBooks,
		SharpBooks:     cfg.Engine.SharpBooks,
	})

	alertRouter, err := bot.New(ctx, cfg.Telegram, commandHandler)
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Server.MetricsListenAddress,
	}.Run(ctx, g)

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Recovery)
	server.NewServer(server.NewBetServer(trackerService)).RegisterRoutes(router)

	modules.HTTPServer{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	})

	modules.AsynqServer{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g, modules.AsynqQueues{"default": 1}, engine.Handlers()...)

	modules.AsynqScheduler{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqScheduleEntry{Spec: every(cfg.Worker.ScanInterval), Task: asynq.NewTask(worker.TaskScan, nil)},
		modules.AsynqScheduleEntry{Spec: every(cfg.Worker.DrainInterval), Task: asynq.NewTask(worker.TaskDrain, nil)},
		modules.AsynqScheduleEntry{Spec: every(cfg.Worker.SweepInterval), Task: asynq.NewTask(worker.TaskSweep, nil)},
		modules.AsynqScheduleEntry{Spec: every(cfg.Worker.SettleInterval), Task: asynq.NewTask(worker.TaskSettle, nil)},
	)

	g.Go(func() error {
		return alertRouter.Run(ctx)
	})

	if err := alertBot.SendText(ctx, startupMessage(cfg.App)); err != nil {
		logger(ctx).Warn("startup notification failed", logx.Error(err))
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func every(interval fmt.Stringer) string {
	return "@every " + interval.String()
}

func startupMessage(app config.App) string {
	return fmt.Sprintf("🚀 <b>%s %s</b> is up, scanning for value", app.Name, app.Version)
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/peerrank/internal/app"
	"github.com/Spok95/peerrank/internal/config"
	"github.com/Spok95/peerrank/internal/db"
	"github.com/Spok95/peerrank/internal/jobs"
	"github.com/Spok95/peerrank/internal/logging"
	"github.com/Spok95/peerrank/internal/observability"
	"github.com/Spok95/peerrank/internal/rating"
)

var release = "dev" // подставляется при сборке через -ldflags

func main() {
	// .env опционален: в проде всё приходит из окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		log.Sugar.Warnw("sentry не инициализирован", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Sugar.Fatalw("подключение к БД", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		log.Sugar.Fatalw("миграция не удалась", "err", err)
	}

	store := db.New(database)

	var cache rating.Cache
	if cfg.RedisAddr != "" {
		lc, err := rating.NewLeaderboardCache(cfg.RedisAddr, cfg.CacheTTL, log.Base)
		if err != nil {
			log.Sugar.Warnw("redis недоступен, кэш выключен", "err", err)
		} else {
			cache = lc
			defer func() { _ = lc.Close() }()
		}
	}

	svc := rating.NewService(store, cache, cfg.StrictRanks)
	api := app.NewAPI(cfg, store, svc, log.Base)

	runner := jobs.New(ctx)
	runner.Every(30*time.Second, "db_stats", jobs.DBStats(store))

	app.Start(ctx, cfg.HTTPAddr, api.Router(), log.Base)
	log.Base.Info("сервер запущен", zap.String("addr", cfg.HTTPAddr), zap.Bool("strict_ranks", cfg.StrictRanks))

	<-ctx.Done()
	log.Base.Info("останавливаемся")
	// даём серверу время дослужить запросы (Shutdown внутри app.Start)
	time.Sleep(100 * time.Millisecond)
}

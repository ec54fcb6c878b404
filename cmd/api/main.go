package main

import (
	"context"

	"github.com/bhushananokar/interview-assistant/internal/cache"
	"github.com/bhushananokar/interview-assistant/internal/config"
	"github.com/bhushananokar/interview-assistant/internal/database"
	"github.com/bhushananokar/interview-assistant/internal/evaluator"
	"github.com/bhushananokar/interview-assistant/internal/groq"
	"github.com/bhushananokar/interview-assistant/internal/handler"
	"github.com/bhushananokar/interview-assistant/internal/logger"
	"github.com/bhushananokar/interview-assistant/internal/question"
	"github.com/bhushananokar/interview-assistant/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	DB      *pgxpool.Pool
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxLifetime)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		sugar.Fatal(err)
	}

	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx, rdb); err != nil {
		sugar.Fatal(err)
	}
	defer rdb.Close()

	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)
	repo := repository.NewRepository(pool)

	handlerApp := &handler.Handler{
		Logger:     log,
		Repository: repo,
		Evaluator:  evaluator.New(groqClient, log),
		Questions:  question.New(groqClient, log),
		Results:    cache.NewResultsCache(rdb, cfg.Redis.ResultsTTL),
	}

	app := &application{
		DB:      pool,
		Logger:  log,
		Config:  cfg,
		Handler: handlerApp,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}

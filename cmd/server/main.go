package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saludplus/consultas-backend/internal/ai"
	"github.com/saludplus/consultas-backend/internal/analytics"
	"github.com/saludplus/consultas-backend/internal/config"
	"github.com/saludplus/consultas-backend/internal/consultation"
	"github.com/saludplus/consultas-backend/internal/db"
	"github.com/saludplus/consultas-backend/internal/httpapi"
	"github.com/saludplus/consultas-backend/internal/httpapi/handlers"
	"github.com/saludplus/consultas-backend/internal/logger"
	"github.com/saludplus/consultas-backend/internal/store/rabbitmq"
	"github.com/saludplus/consultas-backend/internal/store/redisstore"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogDebug, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("database migrate failed")
	}
	if err := db.SeedCategories(ctx, gdb); err != nil {
		log.Fatal().Err(err).Msg("category seed failed")
	}
	if err := db.SeedAgent(ctx, gdb, cfg.AgentEmail, cfg.AgentPassword); err != nil {
		log.Fatal().Err(err).Msg("agent seed failed")
	}

	aiClient := ai.NewClient(cfg.DeepSeekBaseURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.AICallTimeout)

	// Escalation notifications are supplementary: run without them if the
	// broker is unreachable.
	var escalation consultation.EscalationPublisher
	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, escalation events disabled")
	} else {
		escalation = pub
		defer pub.Close()
	}

	cache := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AnalyticsCacheTTL)
	defer cache.Close()

	repo := consultation.NewRepo(gdb)
	intake := consultation.NewService(repo, aiClient, aiClient, escalation)
	analyticsSvc := analytics.NewService(repo, aiClient, cache)

	h := handlers.NewHandler(cfg, intake, analyticsSvc, repo)
	router := httpapi.NewRouter(h, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

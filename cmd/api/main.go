package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/election-service/internal/api/http"
	"github.com/spec-kit/election-service/internal/api/http/handlers"
	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/config"
	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/observability"
	"github.com/spec-kit/election-service/internal/persistence"
	"github.com/spec-kit/election-service/internal/repository"
	"github.com/spec-kit/election-service/internal/service"
	"github.com/spec-kit/election-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)
	tallyCache := repository.NewRedisTallyCache(redis.Client, cfg.Redis.TallyTTL())

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	candidateService := service.NewCandidateService(candidateRepo, dispatcher)
	votingService := service.NewVotingService(service.VotingDependencies{
		CandidateRepo: candidateRepo,
		UserRepo:      userRepo,
		VoteRepo:      voteRepo,
		Dispatcher:    dispatcher,
	})
	resultService := service.NewResultService(candidateRepo, tallyCache, logger)

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
	}

	worker.NewTallyWorker(dispatcher, tallyCache, logger).Start()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Candidates:     handlers.NewCandidatesHandler(candidateService),
		Votes:          handlers.NewVotesHandler(votingService, resultService),
		AuthMiddleware: authMiddleware,
		AdminGate:      auth.RequireAdmin(userRepo),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/rafaelrch/koplai/api/handler"
	openaiClient "github.com/rafaelrch/koplai/internal/client/openai"
	resendClient "github.com/rafaelrch/koplai/internal/client/resend"
	"github.com/rafaelrch/koplai/internal/config"
	"github.com/rafaelrch/koplai/internal/infrastructure/buffer"
	"github.com/rafaelrch/koplai/internal/infrastructure/monitor"
	pgInfra "github.com/rafaelrch/koplai/internal/infrastructure/postgres"
	redisInfra "github.com/rafaelrch/koplai/internal/infrastructure/redis"
	"github.com/rafaelrch/koplai/internal/middleware"
	"github.com/rafaelrch/koplai/internal/router"
	"github.com/rafaelrch/koplai/internal/services"
	"github.com/rafaelrch/koplai/internal/services/lifecycle"
	"github.com/rafaelrch/koplai/pkg/httpcontext"
	"github.com/rafaelrch/koplai/pkg/logger"
	"github.com/rafaelrch/koplai/repository/postgres"
	redisRepo "github.com/rafaelrch/koplai/repository/redis"
	agentUC "github.com/rafaelrch/koplai/usecase/agent"
	authUC "github.com/rafaelrch/koplai/usecase/auth"
	boardUC "github.com/rafaelrch/koplai/usecase/board"
	feedbackUC "github.com/rafaelrch/koplai/usecase/feedback"
	inviteUC "github.com/rafaelrch/koplai/usecase/invite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	columnRepo := postgres.NewColumnRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	feedbackRepo := postgres.NewFeedbackRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	completer := openaiClient.New(cfg.OpenAI, zapLogger)
	mailer := resendClient.New(cfg.Resend, zapLogger)

	authUseCase := authUC.New(userRepo, sessionRepo, companyRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.Session.TTL, zapLogger)
	boardUseCase := boardUC.New(columnRepo, taskRepo, bufferBridge, zapLogger)
	agentUseCase := agentUC.New(agentRepo, historyRepo, completer, zapLogger)
	inviteUseCase := inviteUC.New(invitationRepo, userRepo, companyRepo, mailer, zapLogger)
	feedbackUseCase := feedbackUC.New(feedbackRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Board:    apiHandler.NewBoardHandler(boardUseCase, ctxAdapter, zapLogger),
		Agent:    apiHandler.NewAgentHandler(agentUseCase, ctxAdapter, zapLogger),
		Invite:   apiHandler.NewInviteHandler(inviteUseCase, ctxAdapter, zapLogger),
		Feedback: apiHandler.NewFeedbackHandler(feedbackUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

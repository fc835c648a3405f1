package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/registration-system/config"
	"github.com/Dosada05/registration-system/db"
	"github.com/Dosada05/registration-system/fig"
	"github.com/Dosada05/registration-system/handlers"
	"github.com/Dosada05/registration-system/live"
	"github.com/Dosada05/registration-system/repositories"
	api "github.com/Dosada05/registration-system/routes"
	"github.com/Dosada05/registration-system/services"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Клиент внешнего реестра FIG с кэшем
	figRegistry, err := fig.NewHTTPClient(fig.HTTPClientConfig{
		BaseURL:  cfg.FigAPIBaseURL,
		CacheTTL: cfg.FigCacheTTL,
	})
	if err != nil {
		logger.Error("failed to initialize FIG registry client", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("FIG registry client initialized")

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	gymnastRepo := repositories.NewPostgresGymnastRepository(dbConn)
	choreoRepo := repositories.NewPostgresChoreographyRepository(dbConn)
	coachRepo := repositories.NewPostgresCoachRepository(dbConn)
	judgeRepo := repositories.NewPostgresJudgeRepository(dbConn)
	txRunner := repositories.NewTxRunner(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	strategies := services.NewStrategyResolver()
	gymnastService := services.NewGymnastService(figRegistry, gymnastRepo, logger)
	choreographyService := services.NewChoreographyService(
		txRunner,
		choreoRepo,
		gymnastRepo,
		tournamentRepo,
		gymnastService,
		strategies,
		logger,
	)
	coachService := services.NewCoachService(coachRepo, tournamentRepo, logger)
	judgeService := services.NewJudgeService(judgeRepo, tournamentRepo, logger)
	batchService := services.NewBatchService(
		choreographyService,
		coachService,
		judgeService,
		choreoRepo,
		coachRepo,
		judgeRepo,
		logger,
	)
	statusService := services.NewStatusService(choreoRepo, coachRepo, judgeRepo, wsHub, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, strategies)
	dashboardService := services.NewDashboardService(choreoRepo, coachRepo, judgeRepo)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	choreographyHandler := handlers.NewChoreographyHandler(choreographyService)
	coachHandler := handlers.NewCoachHandler(coachService)
	judgeHandler := handlers.NewJudgeHandler(judgeService)
	batchHandler := handlers.NewBatchHandler(batchService)
	statusHandler := handlers.NewStatusHandler(statusService)
	gymnastHandler := handlers.NewGymnastHandler(gymnastService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		choreographyHandler,
		coachHandler,
		judgeHandler,
		batchHandler,
		statusHandler,
		gymnastHandler,
		tournamentHandler,
		dashboardHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

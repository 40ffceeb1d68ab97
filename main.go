package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kickoffAPI/handlers"
	"kickoffAPI/internal/config"
	"kickoffAPI/internal/metrics"
	"kickoffAPI/internal/notification"
	"kickoffAPI/internal/resultsync"
	"kickoffAPI/middleware"
	"kickoffAPI/services"

	_ "net/http/pprof"
)

func connectDB(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	clerk.SetKey(cfg.ClerkSecretKey)
	log.Println("Clerk initialized successfully")

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbPool, err := connectDB(connectCtx, cfg.DatabaseURL)
	connectCancel()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()
	log.Println("Successfully connected to database")

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Services
	userService := services.NewUserService(dbPool)
	matchService := services.NewMatchService(dbPool)
	predictionService := services.NewPredictionService(dbPool)
	leagueService := services.NewLeagueService(dbPool, cfg.InviteBaseURL)
	leaderboardService := services.NewLeaderboardService(dbPool)

	dispatcher := services.NewNotificationDispatcher(4, 256)
	defer dispatcher.Stop()

	fcmService, err := notification.NewFCMService(cfg.FCMCredentialsFile)
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		dispatcher.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}
	notificationService := services.NewNotificationService(dbPool, dispatcher)

	liveHub := services.NewLiveHub()
	go liveHub.Run(appCtx)

	matchService.AddResultListener(notificationService)
	matchService.AddResultListener(liveHub)

	adminHandler := handlers.NewAdminHandler(nil)
	if cfg.ResultsFeedURL != "" {
		feed := resultsync.NewClient(cfg.ResultsFeedURL, cfg.ResultsFeedToken)
		worker := services.NewResultSyncWorker(matchService, feed, cfg.ResultSyncInterval)
		worker.Start()
		defer worker.Stop()
		adminHandler = handlers.NewAdminHandler(worker)
	} else {
		log.Println("RESULTS_FEED_URL not set, results must be entered manually")
	}

	metrics.Register()
	middleware.InitPrometheus()

	// Handlers
	userHandler := handlers.NewUserHandler(userService, predictionService)
	matchHandler := handlers.NewMatchHandler(matchService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	leagueHandler := handlers.NewLeagueHandler(leagueService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(userService, cfg.ClerkWebhookSecret)
	liveHandler := handlers.NewLiveHandler(liveHub)

	r := mux.NewRouter()

	// Websocket upgrades need the raw ResponseWriter, so this sits outside the monitored router.
	r.HandleFunc("/api/v1/live/ws", liveHandler.Connect)

	standardRouter := r.PathPrefix("/").Subrouter()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.CleanupVisitors(appCtx.Done())

	standardRouter.Use(rateLimiter.Middleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(cfg.PprofSecret)(http.DefaultServeMux))

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := dbPool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "kickoff-api"}`))
	}).Methods("GET")

	standardRouter.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/matches", matchHandler.ListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", matchHandler.GetMatch).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user", userHandler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/user/summary", userHandler.GetSummary).Methods("GET")

	protected.HandleFunc("/predictions", predictionHandler.SubmitPrediction).Methods("POST")
	protected.HandleFunc("/predictions", predictionHandler.ListPredictions).Methods("GET")

	protected.HandleFunc("/leaderboard", leaderboardHandler.GetGlobalLeaderboard).Methods("GET")

	protected.HandleFunc("/leagues", leagueHandler.CreateLeague).Methods("POST")
	protected.HandleFunc("/leagues", leagueHandler.ListLeagues).Methods("GET")
	protected.HandleFunc("/leagues/join", leagueHandler.JoinLeague).Methods("POST")
	protected.HandleFunc("/leagues/{id}/membership", leagueHandler.LeaveLeague).Methods("DELETE")
	protected.HandleFunc("/leagues/{id}/invite", leagueHandler.GetInvite).Methods("GET")
	protected.HandleFunc("/leagues/{id}/leaderboard", leaderboardHandler.GetLeagueLeaderboard).Methods("GET")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/test", notificationHandler.SendTestNotification).Methods("POST")

	// -------------------------------------------------------------------------
	// ADMIN ROUTES
	// -------------------------------------------------------------------------
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(cfg.IsAdmin))

	admin.HandleFunc("/matches", matchHandler.CreateMatch).Methods("POST")
	admin.HandleFunc("/matches/{id}/result", matchHandler.RecordResult).Methods("PUT")
	admin.HandleFunc("/results/sync", adminHandler.SyncResults).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
	)

	port := ":" + cfg.Port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	courseapp "github.com/acp/web/internal/application/course"
	personapp "github.com/acp/web/internal/application/person"
	pniapp "github.com/acp/web/internal/application/pni"
	referralapp "github.com/acp/web/internal/application/referral"
	userapp "github.com/acp/web/internal/application/user"
	"github.com/acp/web/internal/infrastructure/auth"
	"github.com/acp/web/internal/infrastructure/cache"
	"github.com/acp/web/internal/infrastructure/client"
	"github.com/acp/web/internal/infrastructure/config"
	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/infrastructure/session"
	"github.com/acp/web/internal/infrastructure/telemetry"
	"github.com/acp/web/internal/interfaces/http/handler"
	"github.com/acp/web/internal/interfaces/http/middleware"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/router"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry pipelines. Each one is a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.InfoLevel)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:              cfg.Telemetry.ProfilingEnabled,
		ServerAddress:        cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:      cfg.Telemetry.ServiceName,
		MutexProfileFraction: cfg.Telemetry.ProfilingMutexFraction,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting accredited programmes UI",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	workflowMetrics, err := telemetry.NewWorkflowMetrics(meterProvider.Meter("acp-web"))
	if err != nil {
		log.Fatal("Failed to create workflow metrics", zap.Error(err))
	}

	// Shared store for sessions and cached system tokens
	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.Session.AllowInMemoryFallback),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()

	// Upstream clients
	tokens := client.NewSystemTokenClient(cfg.Auth, store)
	programmes := client.NewProgrammesClient(
		client.NewRestClient("accreditedProgrammesApi", cfg.APIs.AccreditedProgrammes, client.WithMetrics(workflowMetrics)))
	prisonerSearch := client.NewPrisonerSearchClient(
		client.NewRestClient("prisonerSearchApi", cfg.APIs.PrisonerSearch, client.WithMetrics(workflowMetrics)))
	manageUsers := client.NewManageUsersClient(
		client.NewRestClient("manageUsersApi", cfg.APIs.ManageUsers, client.WithMetrics(workflowMetrics)))

	// Application services
	userService := userapp.NewUserService(manageUsers)
	referralService := referralapp.NewReferralService(tokens, programmes, userService)
	referenceDataService := referralapp.NewReferenceDataService(tokens, programmes)
	courseService := courseapp.NewCourseService(tokens, programmes)
	personService := personapp.NewPersonService(tokens, prisonerSearch)
	pniService := pniapp.NewPniService(tokens, programmes)

	// Handlers
	referralHandlers := router.ReferralHandlers{
		StatusHistory: handler.NewStatusHistoryHandler(referralService, courseService, personService),
		UpdateStatus:  handler.NewUpdateStatusHandler(referralService, workflowMetrics),
		Category:      handler.NewCategoryHandler(referralService, referenceDataService, workflowMetrics),
		Reason:        handler.NewReasonHandler(referralService, referenceDataService, workflowMetrics),
		Confirm:       handler.NewConfirmHandler(referralService, referenceDataService, workflowMetrics),
		Pni:           handler.NewPniHandler(referralService, personService, pniService),
	}
	var pinger handler.Pinger
	if p, ok := store.(handler.Pinger); ok {
		pinger = p
	}
	healthHandler := handler.NewHealthHandler(pinger)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Form field names in validation errors come from form tags
	middleware.SetupValidator()

	engine := gin.New()
	engine.HTMLRender = views.MustNewRenderer()

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	securityConfig := middleware.DefaultSecurityConfig()
	securityConfig.HSTSEnabled = cfg.IsProduction()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
	}))
	engine.Use(middleware.SecureWithConfig(securityConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.ErrorPages())

	engine.GET("/health", healthHandler.Health)
	engine.GET("/ping", healthHandler.Ping)

	// Journey routes
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		log.Fatal("Failed to configure token validation", zap.Error(err))
	}
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	journeyConfig := router.JourneyConfig{
		Auth: middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		After: []gin.HandlerFunc{
			middleware.Session(middleware.SessionConfig{
				Manager:    session.NewManager(store, cfg.Session.TTL),
				Signer:     session.NewCookieSigner(cfg.Session.Secret),
				CookieName: cfg.Session.CookieName,
				Secure:     cfg.Session.Secure,
				SameSite:   middleware.ParseSameSite(cfg.Session.SameSite),
			}),
			middleware.CaseListMemory(cfg.HTTP.CaseListPrefixes),
		},
	}

	r := router.NewRouter(engine)
	r.Register(router.NewJourneyGroup(presenter.Refer, referralHandlers, journeyConfig)).
		Register(router.NewJourneyGroup(presenter.Assess, referralHandlers, journeyConfig))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush telemetry after the last request has been served
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

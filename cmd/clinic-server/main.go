package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/automation"
	"github.com/clinic/clinic/internal/domain/dashboard"
	"github.com/clinic/clinic/internal/domain/financial"
	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/domain/integrations"
	"github.com/clinic/clinic/internal/domain/inventory"
	"github.com/clinic/clinic/internal/domain/orders"
	"github.com/clinic/clinic/internal/domain/patients"
	"github.com/clinic/clinic/internal/domain/procedures"
	"github.com/clinic/clinic/internal/domain/records"
	"github.com/clinic/clinic/internal/domain/scheduling"
	"github.com/clinic/clinic/internal/domain/telemedicine"
	"github.com/clinic/clinic/internal/domain/whatsappbot"
	"github.com/clinic/clinic/internal/platform/ai"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/blobstore"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/middleware"
	"github.com/clinic/clinic/internal/platform/signaling"
	"github.com/clinic/clinic/internal/platform/whatsapp"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Aesthetics clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// publicPath reports whether a request path is reachable without a bearer
// token: health checks, login/signup, the Evolution API webhook, and the
// telemedicine signaling socket (joined from a room link, not a session).
func publicPath(path string) bool {
	switch path {
	case "/health", "/health/db",
		"/api/auth/login", "/api/auth/signup",
		"/api/whatsapp/webhook":
		return true
	}
	return strings.HasPrefix(path, "/api/telemedicine/ws/")
}

// skipPublic wraps an auth middleware so that public endpoints bypass it.
func skipPublic(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := mw(next)
		return func(c echo.Context) error {
			if publicPath(c.Request().URL.Path) {
				return next(c)
			}
			return guarded(c)
		}
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M", "25M"))
	e.Use(middleware.RequestTimeout(60 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	jwtCfg := auth.JWTConfig{
		SigningKey: []byte(cfg.JWTSecret),
		TokenTTL:   auth.DefaultTokenTTL,
	}
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(skipPublic(auth.JWTMiddleware(jwtCfg)))
	}

	// API group with rate limiting
	api := e.Group("/api")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// WhatsApp client. Outbound messages are recorded through the bot's
	// message repository so the dashboard can show delivery history.
	messageRepo := whatsappbot.NewMessageRepoPG(pool)
	waClient := whatsapp.NewClient(
		cfg.EvolutionAPIURL, cfg.EvolutionAPIKey, cfg.WhatsAppInstance,
		logger, whatsapp.WithRecorder(messageRepo),
	)
	if waClient.Enabled() && cfg.PublicBaseURL != "" {
		webhookURL := strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/whatsapp/webhook"
		if err := waClient.SetupWebhook(ctx, webhookURL); err != nil {
			logger.Warn().Err(err).Msg("failed to configure whatsapp webhook")
		}
	}

	// AI services degrade to disabled implementations when unconfigured.
	var assistant ai.Assistant = ai.DisabledAssistant{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiAssistant(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create gemini client")
		}
		defer gemini.Close()
		assistant = gemini
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, ai summaries disabled")
	}

	var transcriber ai.Transcriber = ai.DisabledTranscriber{}
	if cfg.SpeechCredentials != "" {
		speech, err := ai.NewSpeechTranscriber(ctx, cfg.SpeechCredentials, cfg.SpeechLanguage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create speech client")
		}
		defer speech.Close()
		transcriber = speech
	} else {
		logger.Warn().Msg("SPEECH_CREDENTIALS_FILE not set, transcription disabled")
	}

	// Audio uploads
	blobs, err := blobstore.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to create upload store")
	}

	// Domain services
	identitySvc := identity.NewService(identity.NewRepoPG(pool), jwtCfg)
	patientSvc := patients.NewService(patients.NewRepoPG(pool))
	procedureSvc := procedures.NewService(procedures.NewRepoPG(pool))

	schedulingSvc := scheduling.NewService(
		scheduling.NewWindowRepoPG(pool),
		scheduling.NewAppointmentRepoPG(pool),
		procedureSvc, patientSvc, identitySvc,
		waClient, logger,
	)

	financialSvc := financial.NewService(financial.NewRepoPG(pool))
	inventorySvc := inventory.NewService(inventory.NewRepoPG(pool))
	orderSvc := orders.NewService(orders.NewRepoPG(pool))
	dashboardSvc := dashboard.NewService(dashboard.NewRepoPG(pool))
	integrationSvc := integrations.NewService(integrations.NewRepoPG(pool))
	automationSvc := automation.NewService(automation.NewRepoPG(pool), waClient)

	recordSvc := records.NewService(
		records.NewRepoPG(pool),
		blobs, transcriber, assistant, patientSvc, logger,
	)

	botSvc := whatsappbot.NewService(
		patientSvc, patientSvc,
		identitySvc, identitySvc,
		schedulingSvc, procedureSvc,
		assistant, waClient, logger,
	)

	telemedicineSvc := telemedicine.NewService(telemedicine.NewRepoPG(pool))
	signalingHandler := signaling.NewHandler(signaling.NewRegistry(), logger)

	// Routes. Finance, analytics, and configuration surfaces are limited to
	// clinic staff; booking and shop endpoints stay open to patient roles.
	staff := api.Group("", auth.RequireRole("professional"))

	identity.NewHandler(identitySvc).RegisterRoutes(api)
	patients.NewHandler(patientSvc).RegisterRoutes(api)
	procedures.NewHandler(procedureSvc).RegisterRoutes(api)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)
	orders.NewHandler(orderSvc).RegisterRoutes(api)
	inventory.NewHandler(inventorySvc).RegisterRoutes(api)
	records.NewHandler(recordSvc, cfg.PublicBaseURL).RegisterRoutes(api)
	whatsappbot.NewHandler(botSvc, messageRepo, waClient, logger).RegisterRoutes(api)
	telemedicine.NewHandler(telemedicineSvc, signalingHandler).RegisterRoutes(api)

	financial.NewHandler(financialSvc).RegisterRoutes(staff)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(staff)
	integrations.NewHandler(integrationSvc).RegisterRoutes(staff)
	automation.NewHandler(automationSvc).RegisterRoutes(staff)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

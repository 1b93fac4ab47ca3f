package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/nutrisense/backend/internal/handlers"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.log
	log.Info("starting NutriSense API server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage", cfg.Storage.Driver),
	)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"env":     cfg.Server.Env,
			"storage": cfg.Storage.Driver,
		})
	})

	h := handlers.Handlers{
		Advice:   handlers.NewAdviceHandler(a.advice, time.Now),
		Analysis: handlers.NewAnalysisHandler(a.analysis, time.Now),
		Days:     handlers.NewDayHandler(a.days, time.Now),
		Profile:  handlers.NewProfileHandler(a.profiles),
		Products: handlers.NewProductHandler(a.products),
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	if a.supabase != nil {
		v1.Use(middleware.Auth(a.supabase))
	} else {
		log.Warn("no auth provider configured, using development auth",
			logger.String("default_user", cfg.Server.DevUser))
		v1.Use(middleware.DevAuth(cfg.Server.DevUser))
	}
	if cfg.Server.RateLimit > 0 {
		v1.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateWindow, "api"))
	}
	h.Register(v1)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

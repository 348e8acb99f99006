package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinsearch/clinsearch/internal/archive"
	"github.com/clinsearch/clinsearch/internal/config"
	"github.com/clinsearch/clinsearch/internal/etl"
	"github.com/clinsearch/clinsearch/internal/platform/db"
	"github.com/clinsearch/clinsearch/internal/platform/embedding"
	"github.com/clinsearch/clinsearch/internal/platform/middleware"
	"github.com/clinsearch/clinsearch/internal/search"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinsearch",
		Short: "Clinical record normalization and hybrid search",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(provisionCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(extractCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the search API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func provisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the database schema and indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, pool, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			mgr := db.NewSchemaManager(pool, schemaConfig(cfg))
			if err := mgr.Provision(context.Background()); err != nil {
				return err
			}
			logger.Info().Int("dim", cfg.EmbeddingDim).Str("metric", cfg.VectorMetric).Msg("schema provisioned")
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [folder]",
		Short: "Archive raw bundle files into the repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, pool, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			dir := cfg.BundleDir
			if len(args) > 0 {
				dir = args[0]
			}

			importer := archive.NewImporter(archive.NewStorePG(pool), logger, cfg.ETLWorkers)
			result, err := importer.ImportDir(context.Background(), dir)
			if err != nil {
				return err
			}

			for _, e := range result.Errors {
				logger.Warn().Err(e).Msg("file not imported")
			}
			logger.Info().
				Int("files", result.Files).
				Int("imported", result.Imported).
				Int("failed", result.Failed).
				Msg("import finished")
			if result.Failed > 0 {
				return fmt.Errorf("%d of %d files failed to import", result.Failed, result.Files)
			}
			return nil
		},
	}
	return cmd
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Normalize archived bundles into relational rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, pool, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			embedder := embedding.NewClient(cfg.EmbeddingURL, cfg.EmbeddingModel, cfg.EmbeddingDim)
			schema := db.NewSchemaManager(pool, schemaConfig(cfg))
			orch := etl.NewOrchestrator(
				archive.NewStorePG(pool),
				etl.NewRepoPG(pool),
				embedder,
				schema,
				logger,
				cfg.ETLWorkers,
			)

			report, err := orch.Run(context.Background())
			if err != nil {
				return err
			}

			for _, f := range report.Failures {
				logger.Warn().Str("patient_id", f.PatientID).Err(f.Err).Msg("document not extracted")
			}
			logger.Info().
				Int("documents", report.Documents).
				Int("extracted", report.Extracted).
				Int("failed", report.Failed).
				Dur("elapsed", report.Elapsed).
				Msg("extraction finished")
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d documents failed to extract", report.Failed, report.Documents)
			}
			return nil
		},
	}
}

func runServer() error {
	cfg, logger, pool, err := bootstrap()
	if err != nil {
		return err
	}
	defer pool.Close()

	embedder := embedding.NewClient(cfg.EmbeddingURL, cfg.EmbeddingModel, cfg.EmbeddingDim)
	searchSvc := search.NewService(search.NewRepoPG(pool), embedder, logger, cfg.SearchMaxResults)
	searchHandler := search.NewHandler(searchSvc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.BearerAuth(cfg.APITokenSecret))
	searchHandler.RegisterRoutes(apiV1)
	archive.NewHandler(archive.NewStorePG(pool)).RegisterRoutes(apiV1)

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// bootstrap loads and validates configuration, builds the logger, and opens
// the connection pool shared by every command.
func bootstrap() (*config.Config, zerolog.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("validate config: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, logger, nil, fmt.Errorf("connect database: %w", err)
	}

	return cfg, logger, pool, nil
}

func schemaConfig(cfg *config.Config) db.SchemaConfig {
	return db.SchemaConfig{
		VectorDim:       cfg.EmbeddingDim,
		Metric:          cfg.VectorMetric,
		HNSWM:           cfg.HNSWM,
		HNSWEfConstruct: cfg.HNSWEfConstruct,
	}
}

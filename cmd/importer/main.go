package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nutellove/internal/catalog"
	"nutellove/internal/config"
	"nutellove/internal/database"
	"nutellove/internal/repository"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	batchSize int
	migrate   bool
)

var rootCmd = &cobra.Command{
	Use:   "importer [files...]",
	Short: "Import Open Food Facts exports into the nutellove catalogue",
	Long: `importer reads gzip-compressed JSON-lines exports from Open Food Facts and
upserts their products, categories, brands and stores into PostgreSQL.

Files are read from S3 when S3_ENABLED is set, falling back to the local file
system. With no arguments the files listed in CATALOG_FILES are imported.`,
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.Flags().IntVar(&batchSize, "batch-size", 0, "products written per transaction (default IMPORT_BATCH_SIZE)")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "create the database schema before importing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	files := args
	if len(files) == 0 {
		files = cfg.Catalog.Files
	}

	size := batchSize
	if size <= 0 {
		size = cfg.Catalog.BatchSize
	}

	importer := catalog.NewImporter(
		newLoader(ctx, cfg.S3, logger),
		repository.NewCatalogRepository(pool, logger),
		size,
		logger,
	)

	stats, err := importer.Import(ctx, files)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"imported %d products from %d files (%d rejected, %d duplicates, %d batches)\n",
		stats.Written, stats.Files, stats.Rejected, stats.Duplicates, stats.Batches)

	return nil
}

func newLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)

	if !cfg.Enabled {
		logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, true, logger)
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/port"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/bundle"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/config"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/ffmpeg"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/metrics"
	miniostorage "github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/minio"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/postgres"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/rabbitmq"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/tracing"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/usecase"
	"github.com/eirikeg1/dribbling-detection-pipeline/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	rootCmd := &cobra.Command{
		Use:   "sequencer",
		Short: "Format match-footage videos into a sequence dataset with frames and labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().StringVarP(&cfg.InputDir, "input_dir", "i", cfg.InputDir, "Input directory containing videos")
	rootCmd.Flags().StringVarP(&cfg.OutputDir, "output_dir", "o", cfg.OutputDir, "Output directory for structured data")
	rootCmd.Flags().StringVar(&cfg.Layout, "layout", cfg.Layout, "Slot naming policy: named or run")
	rootCmd.Flags().StringVar(&cfg.ProcessedDir, "processed_dir", cfg.ProcessedDir, "Relocation area for processed sources (run layout)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting sequence dataset converter",
		zap.String("input", cfg.InputDir),
		zap.String("output", cfg.OutputDir),
		zap.String("layout", cfg.Layout),
	)

	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(ctx)
		}
	}

	if cfg.MetricsPort > 0 {
		srv := metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	var ledger port.RunLedger
	if cfg.RunDBURL != "" {
		pool, err := pgxpool.New(ctx, cfg.RunDBURL)
		if err != nil {
			return fmt.Errorf("connect to run ledger db: %w", err)
		}
		defer pool.Close()
		if err := postgres.RunMigrations(cfg.RunDBURL, "migrations"); err != nil {
			log.Warn("migration warning", zap.Error(err))
		}
		ledger = postgres.NewLedger(pool)
	}

	var events port.EventPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		defer conn.Close()
		pub, err := rabbitmq.NewPublisher(conn, cfg.RabbitMQExchange)
		if err != nil {
			return fmt.Errorf("create publisher: %w", err)
		}
		events = pub
	}

	var bundler port.Bundler
	var bundles port.BundleStore
	if cfg.MinIOEndpoint != "" {
		store, err := miniostorage.NewStorage(miniostorage.StorageConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.BundleBucket,
		})
		if err != nil {
			return fmt.Errorf("create bundle store: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("ensure bundle bucket: %w", err)
		}
		bundler = bundle.NewZipper()
		bundles = store
	}

	uc := usecase.NewConvertBatchUseCase(
		ffmpeg.NewProber(),
		ffmpeg.NewRasterizer(cfg.FFmpegQScale, log),
		ffmpeg.NewCounter(),
		ledger, bundler, bundles, events,
		log,
		usecase.ConvertConfig{
			InputDir:     cfg.InputDir,
			OutputDir:    cfg.OutputDir,
			ProcessedDir: cfg.ProcessedDir,
			Layout:       usecase.Layout(cfg.Layout),
		},
	)

	run, err := uc.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Processing completed: %d videos in %.2fs\n", len(run.Details), run.DurationSeconds())
	return nil
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}

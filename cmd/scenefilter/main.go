package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/port"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/config"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/ffmpeg"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/postgres"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/yolo"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/usecase"
	"github.com/eirikeg1/dribbling-detection-pipeline/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	var videoDir string
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "scenefilter",
		Short: "Delete low-quality clips based on player detection in the middle frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, videoDir, dryRun)
		},
	}

	rootCmd.Flags().StringVar(&videoDir, "video_dir", "", "Path to the folder containing video files")
	rootCmd.Flags().StringVar(&cfg.DetectorModel, "model", cfg.DetectorModel, "Detection model weights reference")
	rootCmd.Flags().StringVar(&cfg.DetectorURL, "detector_url", cfg.DetectorURL, "Base URL of the detection sidecar")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report verdicts without deleting anything")
	rootCmd.MarkFlagRequired("video_dir")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, videoDir string, dryRun bool) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting clip quality gate",
		zap.String("video_dir", videoDir),
		zap.String("model", cfg.DetectorModel),
		zap.Bool("dry_run", dryRun),
	)

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

	gate := entity.GateConfig{
		ConfThreshold:      cfg.ConfThreshold,
		MinPlayers:         cfg.MinPlayers,
		MaxBBoxHeightRatio: cfg.MaxBoxRatio,
	}

	uc := usecase.NewFilterClipsUseCase(
		ffmpeg.NewMidFrameExtractor(),
		yolo.NewClient(cfg.DetectorURL, cfg.DetectorModel, log),
		ledger,
		log,
		usecase.FilterConfig{
			VideoDir: videoDir,
			Gate:     gate,
			DryRun:   dryRun,
		},
	)

	report, err := uc.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d videos, deleted %d.\n", report.Processed, report.Deleted)
	return nil
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}

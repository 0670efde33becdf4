package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/port"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/metrics"
)

// FilterConfig configures one quality-gate invocation.
type FilterConfig struct {
	VideoDir string
	Gate     entity.GateConfig
	// DryRun reports verdicts without deleting anything.
	DryRun bool
}

// FilterReport summarizes a gate run.
type FilterReport struct {
	Processed  int
	Kept       int
	Deleted    int
	Unreadable int
}

// FilterClipsUseCase inspects the middle frame of every clip in a
// directory and deletes the ones that fail the detection criteria.
// Deletion is irreversible, so every rejection is logged with the numbers
// that triggered it, and a clip the gate cannot evaluate is always kept.
type FilterClipsUseCase struct {
	frames   port.MidFrameExtractor
	detector port.Detector
	ledger   port.RunLedger // optional
	logger   *zap.Logger
	cfg      FilterConfig
}

func NewFilterClipsUseCase(
	frames port.MidFrameExtractor,
	detector port.Detector,
	ledger port.RunLedger,
	logger *zap.Logger,
	cfg FilterConfig,
) *FilterClipsUseCase {
	return &FilterClipsUseCase{
		frames:   frames,
		detector: detector,
		ledger:   ledger,
		logger:   logger,
		cfg:      cfg,
	}
}

func (uc *FilterClipsUseCase) Execute(ctx context.Context) (*FilterReport, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "FilterClips.Execute")
	defer span.End()

	info, err := os.Stat(uc.cfg.VideoDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s is not a valid directory", uc.cfg.VideoDir)
	}

	entries, err := os.ReadDir(uc.cfg.VideoDir)
	if err != nil {
		return nil, fmt.Errorf("read video dir %s: %w", uc.cfg.VideoDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !entity.IsFilterable(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(uc.cfg.VideoDir, e.Name()))
	}
	sort.Strings(files)

	runID := uuid.New()
	report := &FilterReport{}

	for _, path := range files {
		report.Processed++

		verdict, result := uc.evaluateClip(ctx, path)
		metrics.GateVerdictsTotal.WithLabelValues(strings.ToLower(string(verdict))).Inc()

		switch verdict {
		case entity.VerdictKept:
			report.Kept++
		case entity.VerdictDeleted:
			report.Deleted++
		case entity.VerdictUnreadable:
			report.Unreadable++
		}

		if uc.ledger != nil && !uc.cfg.DryRun {
			if err := uc.ledger.RecordGateDecision(ctx, runID, path, verdict, result); err != nil {
				uc.logger.Warn("failed to record gate decision", zap.Error(err))
			}
		}
	}

	if report.Processed == 0 {
		uc.logger.Warn("no video files found, make sure they are in a supported format",
			zap.String("dir", uc.cfg.VideoDir),
			zap.Strings("supported", entity.FilterExtensions()),
		)
	}

	uc.logger.Info("filtering completed",
		zap.Int("processed", report.Processed),
		zap.Int("kept", report.Kept),
		zap.Int("deleted", report.Deleted),
		zap.Int("unreadable", report.Unreadable),
		zap.Bool("dry_run", uc.cfg.DryRun),
	)

	return report, nil
}

// evaluateClip resolves one clip to its terminal verdict. Inability to
// read or score the probe frame keeps the clip: evaluation failure must
// never destroy data.
func (uc *FilterClipsUseCase) evaluateClip(ctx context.Context, path string) (entity.Verdict, entity.GateResult) {
	log := uc.logger.With(zap.String("clip", path))

	frame, err := uc.frames.ExtractMiddleFrame(ctx, path)
	if err != nil {
		log.Warn("unable to read middle frame, keeping clip", zap.Error(err))
		return entity.VerdictUnreadable, entity.GateResult{Reason: err.Error()}
	}

	detections, err := uc.detector.Detect(ctx, frame.JPEG)
	if err != nil {
		log.Warn("detector failed, keeping clip", zap.Error(err))
		return entity.VerdictUnreadable, entity.GateResult{Reason: err.Error()}
	}

	result := uc.cfg.Gate.Evaluate(detections, frame.Height)
	if result.Accepted {
		log.Info("kept", zap.Int("qualifying_detections", result.Qualifying))
		return entity.VerdictKept, result
	}

	if uc.cfg.DryRun {
		log.Info("would delete (dry run)",
			zap.String("reason", result.Reason),
			zap.Int("qualifying_detections", result.Qualifying),
		)
		return entity.VerdictDeleted, result
	}

	if err := os.Remove(path); err != nil {
		log.Error("rejected but could not delete", zap.String("reason", result.Reason), zap.Error(err))
		return entity.VerdictUnreadable, result
	}

	log.Info("deleted",
		zap.String("reason", result.Reason),
		zap.Int("qualifying_detections", result.Qualifying),
		zap.Float64("oversized_box_height", result.OversizedHeight),
		zap.Int("frame_height", frame.Height),
	)
	return entity.VerdictDeleted, result
}

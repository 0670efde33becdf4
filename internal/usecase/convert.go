package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/port"
	"github.com/eirikeg1/dribbling-detection-pipeline/internal/infra/metrics"
)

// Layout selects the slot naming and relocation policy of a batch run.
type Layout string

const (
	// LayoutNamed names each slot after the sanitized source file plus
	// the processing timestamp. Sources stay where they are.
	LayoutNamed Layout = "named"
	// LayoutRun numbers slots video1..videoN inside a run folder, moves
	// processed sources aside and writes a data_info.json report.
	LayoutRun Layout = "run"
)

// ConvertConfig configures one converter invocation.
type ConvertConfig struct {
	InputDir     string
	OutputDir    string
	ProcessedDir string
	Layout       Layout
}

// ConvertBatchUseCase turns every supported video in the input directory
// into a sequence slot: probed frame rate, densely numbered 1920x1080
// frames under img1, and a Labels-GameState.json sibling.
//
// Clips are processed one at a time, in lexicographic order so run-layout
// ordinals are stable across platforms. A failure on one clip is logged
// and isolated; the batch always continues.
type ConvertBatchUseCase struct {
	prober  port.RateProber
	raster  port.Rasterizer
	counter port.FrameCounter
	ledger  port.RunLedger      // optional
	bundler port.Bundler        // optional
	bundles port.BundleStore    // optional
	events  port.EventPublisher // optional
	logger  *zap.Logger
	cfg     ConvertConfig
}

func NewConvertBatchUseCase(
	prober port.RateProber,
	raster port.Rasterizer,
	counter port.FrameCounter,
	ledger port.RunLedger,
	bundler port.Bundler,
	bundles port.BundleStore,
	events port.EventPublisher,
	logger *zap.Logger,
	cfg ConvertConfig,
) *ConvertBatchUseCase {
	return &ConvertBatchUseCase{
		prober:  prober,
		raster:  raster,
		counter: counter,
		ledger:  ledger,
		bundler: bundler,
		bundles: bundles,
		events:  events,
		logger:  logger,
		cfg:     cfg,
	}
}

func (uc *ConvertBatchUseCase) Execute(ctx context.Context) (*entity.BatchRun, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "ConvertBatch.Execute")
	defer span.End()

	run := entity.NewBatchRun()

	clips, err := uc.discoverClips()
	if err != nil {
		return nil, err
	}

	runRoot, trainDir, processedDir, err := uc.prepareLayout(run)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("run.id", run.ID.String()),
		attribute.Int("run.clips", len(clips)),
	)

	failed := 0
	for i, clip := range clips {
		slot := uc.slotName(clip, i+1)
		slotDir := filepath.Join(trainDir, slot)

		log := uc.logger.With(zap.String("clip", clip.Path), zap.String("slot", slot))
		log.Info("processing clip")

		fps, frames, err := uc.processClip(ctx, clip, slotDir, log)
		if err != nil {
			failed++
			metrics.ClipsProcessedTotal.WithLabelValues("failed").Inc()
			log.Error("clip failed, continuing with next", zap.Error(err))
			continue
		}

		if processedDir != "" {
			dest := filepath.Join(processedDir, clip.FileName)
			if err := moveFile(clip.Path, dest); err != nil {
				failed++
				metrics.ClipsProcessedTotal.WithLabelValues("failed").Inc()
				log.Error("failed to relocate processed clip", zap.Error(err))
				continue
			}
			log.Info("moved clip to processed area", zap.String("dest", dest))
		}

		bundleKey := uc.handoff(ctx, run, slot, slotDir, log)
		uc.publishReady(ctx, run, clip, slot, fps, frames, bundleKey, log)

		run.Append(entity.ClipSummary{
			OriginalFileName: clip.FileName,
			VideoName:        clip.SanitizedName,
			FPS:              fps,
			FramesExtracted:  frames,
		})
		metrics.ClipsProcessedTotal.WithLabelValues("completed").Inc()
	}

	run.Finish()

	if uc.cfg.Layout == LayoutRun {
		infoPath := filepath.Join(runRoot, entity.RunInfoFileName)
		if err := run.WriteInfo(infoPath); err != nil {
			return run, err
		}
		uc.logger.Info("run information written", zap.String("path", infoPath))
	}

	if uc.ledger != nil {
		if err := uc.ledger.RecordRun(ctx, run); err != nil {
			uc.logger.Warn("failed to record run in ledger", zap.Error(err))
		}
	}

	uc.logger.Info("batch completed",
		zap.Int("processed", len(run.Details)),
		zap.Int("failed", failed),
		zap.Float64("duration_seconds", run.DurationSeconds()),
	)

	return run, nil
}

// discoverClips lists supported videos in the input directory, sorted by
// name so slot ordinals are deterministic.
func (uc *ConvertBatchUseCase) discoverClips() ([]entity.Clip, error) {
	entries, err := os.ReadDir(uc.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", uc.cfg.InputDir, err)
	}

	var clips []entity.Clip
	for _, e := range entries {
		if e.IsDir() || !entity.IsConvertible(e.Name()) {
			continue
		}
		clips = append(clips, entity.NewClip(filepath.Join(uc.cfg.InputDir, e.Name())))
	}
	sort.Slice(clips, func(i, j int) bool { return clips[i].FileName < clips[j].FileName })
	return clips, nil
}

// prepareLayout creates the run root and train directory, plus the
// processed area for the run layout. Named layout writes slots directly
// under the output directory's train folder and never relocates sources.
func (uc *ConvertBatchUseCase) prepareLayout(run *entity.BatchRun) (runRoot, trainDir, processedDir string, err error) {
	switch uc.cfg.Layout {
	case LayoutRun:
		stamp := run.StartedAt.Format("2006-01-02-15_04_05")
		runRoot = filepath.Join(uc.cfg.OutputDir, "run_"+stamp)
		processedDir = filepath.Join(uc.cfg.ProcessedDir, "run_"+stamp)
		if err = os.MkdirAll(processedDir, 0755); err != nil {
			return "", "", "", fmt.Errorf("create processed dir: %w", err)
		}
	case LayoutNamed:
		runRoot = uc.cfg.OutputDir
	default:
		return "", "", "", fmt.Errorf("unknown layout %q", uc.cfg.Layout)
	}

	trainDir = filepath.Join(runRoot, "train")
	if err = os.MkdirAll(trainDir, 0755); err != nil {
		return "", "", "", fmt.Errorf("create train dir: %w", err)
	}
	return runRoot, trainDir, processedDir, nil
}

// slotName assigns the destination sequence slot. The ordinal is threaded
// in explicitly; run-layout slots never depend on the file name.
func (uc *ConvertBatchUseCase) slotName(clip entity.Clip, ordinal int) string {
	if uc.cfg.Layout == LayoutRun {
		return fmt.Sprintf("video%d", ordinal)
	}
	return fmt.Sprintf("%s-%s", clip.SanitizedName, time.Now().Format("20060102-150405"))
}

// processClip runs probe -> rasterize -> count -> metadata for one clip.
// Any stage error stops that clip; frames already written stay on disk.
func (uc *ConvertBatchUseCase) processClip(ctx context.Context, clip entity.Clip, slotDir string, log *zap.Logger) (float64, int, error) {
	tracer := otel.Tracer("usecase")

	imgDir := filepath.Join(slotDir, "img1")
	if err := os.MkdirAll(imgDir, 0755); err != nil {
		return 0, 0, fmt.Errorf("create img dir: %w", err)
	}

	probeStart := time.Now()
	ctx1, spanProbe := tracer.Start(ctx, "probe_frame_rate")
	fps, err := uc.prober.ProbeFrameRate(ctx1, clip.Path)
	spanProbe.End()
	if err != nil {
		return 0, 0, err
	}
	metrics.StageDuration.WithLabelValues("probe").Observe(time.Since(probeStart).Seconds())
	log.Info("detected frame rate", zap.Float64("fps", fps))

	rasterStart := time.Now()
	ctx2, spanRaster := tracer.Start(ctx, "rasterize_frames")
	err = uc.raster.Rasterize(ctx2, clip.Path, imgDir)
	spanRaster.End()
	if err != nil {
		return 0, 0, err
	}
	metrics.StageDuration.WithLabelValues("rasterize").Observe(time.Since(rasterStart).Seconds())

	frames := uc.counter.CountFrames(imgDir)
	metrics.FramesExtractedTotal.Add(float64(frames))
	log.Info("frames extracted", zap.Int("count", frames), zap.String("dir", imgDir))

	metaStart := time.Now()
	_, spanMeta := tracer.Start(ctx, "write_metadata")
	labelsPath := filepath.Join(slotDir, entity.LabelsFileName)
	meta := entity.NewSequenceMetadata(clip.SanitizedName, fps, frames)
	err = meta.Write(labelsPath)
	spanMeta.End()
	if err != nil {
		return 0, 0, err
	}
	metrics.StageDuration.WithLabelValues("metadata").Observe(time.Since(metaStart).Seconds())
	log.Info("label file created", zap.String("path", labelsPath))

	return fps, frames, nil
}

// handoff optionally zips the finished slot and uploads it for the
// annotation team. Handoff failures never fail the clip: the sequence on
// disk is complete.
func (uc *ConvertBatchUseCase) handoff(ctx context.Context, run *entity.BatchRun, slot, slotDir string, log *zap.Logger) string {
	if uc.bundler == nil || uc.bundles == nil {
		return ""
	}

	bundlePath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.zip", run.ID, slot))
	defer os.Remove(bundlePath)

	if err := uc.bundler.CreateBundle(ctx, slotDir, bundlePath); err != nil {
		log.Warn("bundle creation failed", zap.Error(err))
		return ""
	}

	f, err := os.Open(bundlePath)
	if err != nil {
		log.Warn("bundle open failed", zap.Error(err))
		return ""
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		log.Warn("bundle stat failed", zap.Error(err))
		return ""
	}

	key := fmt.Sprintf("%s/%s.zip", run.ID, slot)
	if err := uc.bundles.UploadBundle(ctx, key, f, stat.Size()); err != nil {
		log.Warn("bundle upload failed", zap.Error(err))
		return ""
	}

	log.Info("bundle uploaded", zap.String("key", key))
	return key
}

func (uc *ConvertBatchUseCase) publishReady(ctx context.Context, run *entity.BatchRun, clip entity.Clip, slot string, fps float64, frames int, bundleKey string, log *zap.Logger) {
	if uc.events == nil {
		return
	}

	msg := entity.SequenceReadyMessage{
		RunID:           run.ID,
		Slot:            slot,
		VideoName:       clip.SanitizedName,
		FPS:             fps,
		FramesExtracted: frames,
		BundleKey:       bundleKey,
	}
	data, _ := json.Marshal(msg)
	if err := uc.events.PublishSequenceReady(ctx, data); err != nil {
		log.Warn("failed to publish sequence.ready", zap.Error(err))
	}
}

// moveFile renames when possible and falls back to copy+remove across
// filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	return os.Remove(src)
}

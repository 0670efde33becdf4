package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

// Rasterizer drives ffmpeg to decode a clip into a canonical image
// sequence: every decoded frame, hard-scaled to 1920x1080, numbered
// 000001.jpg onward with no gaps.
type Rasterizer struct {
	qscale int
	logger *zap.Logger
}

func NewRasterizer(qscale int, logger *zap.Logger) *Rasterizer {
	return &Rasterizer{qscale: qscale, logger: logger}
}

func (r *Rasterizer) Rasterize(ctx context.Context, videoPath string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	pattern := filepath.Join(outputDir, "%06d"+entity.ImageExt)

	r.logger.Info("rasterizing clip",
		zap.String("video", videoPath),
		zap.String("output", pattern),
	)

	// vsync 0 disables frame drop/duplication so the written sequence
	// stays contiguous even when source timestamps are irregular.
	err := ffmpeggo.Input(videoPath).
		Filter("scale", ffmpeggo.Args{fmt.Sprintf("%d:%d", entity.FrameWidth, entity.FrameHeight)}).
		Output(pattern, ffmpeggo.KwArgs{
			"qscale:v":     r.qscale,
			"start_number": 1,
			"vsync":        0,
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return &entity.RasterizeError{Path: videoPath, Err: err}
	}
	return nil
}

package port

import "context"

// RateProber derives a clip's frame rate from its container metadata.
type RateProber interface {
	// ProbeFrameRate returns the frame rate of the first video stream as
	// a positive real number, resolving rational encoder output such as
	// "30000/1001" with full floating-point precision.
	ProbeFrameRate(ctx context.Context, videoPath string) (float64, error)
}

// Rasterizer materializes a clip as a densely numbered image sequence.
type Rasterizer interface {
	// Rasterize writes one image per decoded frame into outputDir,
	// numbered from 000001 with no gaps, each hard-scaled to the fixed
	// output resolution.
	Rasterize(ctx context.Context, videoPath string, outputDir string) error
}

// FrameCounter counts materialized frame images. The count on disk is the
// ground truth for sequence length.
type FrameCounter interface {
	// CountFrames never fails; an absent or empty directory counts as 0.
	CountFrames(dir string) int
}

// MidFrame is the decoded middle frame of a clip, held in memory for one
// gate evaluation.
type MidFrame struct {
	JPEG   []byte
	Height int
	Width  int
}

// MidFrameExtractor seeks the representative frame the quality gate
// inspects.
type MidFrameExtractor interface {
	// ExtractMiddleFrame decodes the frame at floor(totalFrames/2).
	// Any failure to open, seek or decode is an inability to evaluate,
	// never grounds for deletion.
	ExtractMiddleFrame(ctx context.Context, videoPath string) (*MidFrame, error)
}

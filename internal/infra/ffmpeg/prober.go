package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

// Prober reads stream metadata through ffprobe.
type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

// ProbeFrameRate returns the frame rate of the first video stream.
// ffprobe reports r_frame_rate as a rational, e.g. "25/1" or "30000/1001";
// the ratio is resolved with float division so non-integral rates like
// 29.97 survive intact.
func (p *Prober) ProbeFrameRate(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, &entity.ProbeError{Path: videoPath, Err: fmt.Errorf("ffprobe: %w", err)}
	}

	rate, err := ParseFrameRate(string(output))
	if err != nil {
		return 0, &entity.ProbeError{Path: videoPath, Err: err}
	}
	return rate, nil
}

// ParseFrameRate parses ffprobe's rate output, either a bare number or a
// "numerator/denominator" rational.
func ParseFrameRate(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty frame rate")
	}

	if num, den, found := strings.Cut(raw, "/"); found {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", raw, err)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", raw, err)
		}
		if d == 0 {
			return 0, fmt.Errorf("parse frame rate %q: zero denominator", raw)
		}
		return n / d, nil
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", raw, err)
	}
	return rate, nil
}

package ffmpeg

import (
	"path/filepath"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

// Counter counts materialized frame files. The disk count is authoritative
// over any rate-derived estimate of sequence length.
type Counter struct{}

func NewCounter() *Counter {
	return &Counter{}
}

// CountFrames returns the number of frame images in dir. An absent or
// empty directory yields 0.
func (c *Counter) CountFrames(dir string) int {
	frames, err := filepath.Glob(filepath.Join(dir, "*"+entity.ImageExt))
	if err != nil {
		return 0
	}
	return len(frames)
}

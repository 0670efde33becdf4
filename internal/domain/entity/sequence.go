package entity

import (
	"fmt"
	"math"
)

// FrameFileName returns the zero-padded file name of the 1-based frame
// index, e.g. 1 -> "000001.jpg".
func FrameFileName(index int) string {
	return fmt.Sprintf("%06d%s", index, ImageExt)
}

// FrameImageID returns the zero-padded 9-digit identifier of the 1-based
// frame index, e.g. 1 -> "000000001".
func FrameImageID(index int) string {
	return fmt.Sprintf("%09d", index)
}

// DurationMS derives the sequence duration in whole milliseconds from the
// materialized frame count and the probed frame rate. A rate of zero (or
// less) yields zero rather than dividing by it.
func DurationMS(frameCount int, frameRate float64) int64 {
	if frameRate <= 0 {
		return 0
	}
	return int64(math.Round(float64(frameCount) / frameRate * 1000))
}

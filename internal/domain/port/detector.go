package port

import (
	"context"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

// Detector is the external inference engine. Loaded once per gate
// invocation and reused read-only across all clips.
type Detector interface {
	// Detect runs the model on a single in-memory frame and returns all
	// detections, unfiltered. Thresholding is the gate's job.
	Detect(ctx context.Context, frameJPEG []byte) ([]entity.Detection, error)
}

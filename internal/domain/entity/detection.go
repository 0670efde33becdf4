package entity

import "fmt"

// Detection is one candidate object returned by the inference engine for a
// probe frame. Coordinates are absolute pixels in the probed frame.
type Detection struct {
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Confidence float64 `json:"confidence"`
}

// BoxHeight returns the pixel height of the bounding box.
func (d Detection) BoxHeight() float64 {
	return d.Y2 - d.Y1
}

// GateConfig holds the quality-gate thresholds.
type GateConfig struct {
	// ConfThreshold is the minimum confidence for a detection to count.
	ConfThreshold float64
	// MinPlayers is the minimum number of qualifying detections.
	MinPlayers int
	// MaxBBoxHeightRatio is the largest allowed fraction of the frame
	// height for any qualifying bounding box. Boxes at or above it mark
	// the clip as a zoomed-in shot.
	MaxBBoxHeightRatio float64
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		ConfThreshold:      0.6,
		MinPlayers:         4,
		MaxBBoxHeightRatio: 1.0 / 3.0,
	}
}

// Verdict is the terminal state of one quality-gate evaluation.
// A clip moves Pending -> {Unreadable, Kept, Deleted} in a single step.
type Verdict string

const (
	VerdictPending    Verdict = "PENDING"
	VerdictUnreadable Verdict = "UNREADABLE"
	VerdictKept       Verdict = "KEPT"
	VerdictDeleted    Verdict = "DELETED"
)

// GateResult is the outcome of evaluating one probe frame.
type GateResult struct {
	Accepted bool
	// Qualifying is the number of detections at or above the confidence
	// threshold.
	Qualifying int
	// Reason explains a rejection with the exact numbers that triggered
	// it. Empty when accepted.
	Reason string
	// OversizedHeight is the offending box height when the rejection was
	// an oversized box, 0 otherwise.
	OversizedHeight float64
}

// Evaluate applies the accept/reject rule to the detections of a probe
// frame of the given pixel height. Detections below the confidence
// threshold are excluded entirely and never count toward the minimum.
func (c GateConfig) Evaluate(detections []Detection, frameHeight int) GateResult {
	qualifying := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence >= c.ConfThreshold {
			qualifying = append(qualifying, d)
		}
	}

	if len(qualifying) < c.MinPlayers {
		return GateResult{
			Qualifying: len(qualifying),
			Reason: fmt.Sprintf("not enough players detected (%d of minimum %d)",
				len(qualifying), c.MinPlayers),
		}
	}

	maxHeight := float64(frameHeight) * c.MaxBBoxHeightRatio
	for _, d := range qualifying {
		if d.BoxHeight() >= maxHeight {
			return GateResult{
				Qualifying:      len(qualifying),
				OversizedHeight: d.BoxHeight(),
				Reason: fmt.Sprintf("bounding box too large: %.1f >= %.1f (frame height %d)",
					d.BoxHeight(), maxHeight, frameHeight),
			}
		}
	}

	return GateResult{Accepted: true, Qualifying: len(qualifying)}
}

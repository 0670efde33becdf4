package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
)

// RunInfoFileName is the batch report written once at the end of a run,
// at the root of the run folder.
const RunInfoFileName = "data_info.json"

// ClipSummary is the per-clip entry of a batch report.
type ClipSummary struct {
	OriginalFileName string  `json:"original_file_name"`
	VideoName        string  `json:"video_name"`
	FPS              float64 `json:"fps"`
	FramesExtracted  int     `json:"frames_extracted"`
}

// BatchRun aggregates one invocation of the run-layout converter. It is
// appended to sequentially while clips are processed and persisted exactly
// once after the last clip.
type BatchRun struct {
	ID        uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Details   []ClipSummary
}

func NewBatchRun() *BatchRun {
	return &BatchRun{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
}

// Append records the summary of one successfully converted clip.
func (r *BatchRun) Append(s ClipSummary) {
	r.Details = append(r.Details, s)
}

// Finish stamps the end time.
func (r *BatchRun) Finish() {
	r.EndedAt = time.Now()
}

// DurationSeconds is the elapsed wall time rounded to two decimals.
func (r *BatchRun) DurationSeconds() float64 {
	return math.Round(r.EndedAt.Sub(r.StartedAt).Seconds()*100) / 100
}

type runInfo struct {
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	DurationSeconds float64       `json:"duration_seconds"`
	VideosProcessed int           `json:"videos_processed"`
	Details         []ClipSummary `json:"details"`
}

// WriteInfo persists the data_info.json report for the run.
func (r *BatchRun) WriteInfo(path string) error {
	details := r.Details
	if details == nil {
		details = []ClipSummary{}
	}
	info := runInfo{
		StartTime:       r.StartedAt.Format(time.RFC3339),
		EndTime:         r.EndedAt.Format(time.RFC3339),
		DurationSeconds: r.DurationSeconds(),
		VideosProcessed: len(r.Details),
		Details:         details,
	}

	data, err := json.MarshalIndent(info, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal run info: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package entity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRunWriteInfo(t *testing.T) {
	run := NewBatchRun()
	run.StartedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run.Append(ClipSummary{
		OriginalFileName: "First Half.mp4",
		VideoName:        "video1",
		FPS:              29.97,
		FramesExtracted:  300,
	})
	run.Append(ClipSummary{
		OriginalFileName: "second.webm",
		VideoName:        "video2",
		FPS:              30.0,
		FramesExtracted:  150,
	})
	run.EndedAt = run.StartedAt.Add(12*time.Second + 345*time.Millisecond)

	path := filepath.Join(t.TempDir(), RunInfoFileName)
	require.NoError(t, run.WriteInfo(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		StartTime       string        `json:"start_time"`
		EndTime         string        `json:"end_time"`
		DurationSeconds float64       `json:"duration_seconds"`
		VideosProcessed int           `json:"videos_processed"`
		Details         []ClipSummary `json:"details"`
	}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "2026-03-01T10:00:00Z", got.StartTime)
	assert.Equal(t, 12.35, got.DurationSeconds)
	assert.Equal(t, 2, got.VideosProcessed)
	require.Len(t, got.Details, 2)
	assert.Equal(t, "video1", got.Details[0].VideoName)
	assert.Equal(t, 300, got.Details[0].FramesExtracted)
}

func TestBatchRunWriteInfoEmpty(t *testing.T) {
	run := NewBatchRun()
	run.Finish()

	path := filepath.Join(t.TempDir(), RunInfoFileName)
	require.NoError(t, run.WriteInfo(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "[]", string(raw["details"]))
}

func TestBatchRunDurationSeconds(t *testing.T) {
	run := NewBatchRun()
	run.EndedAt = run.StartedAt.Add(1500 * time.Millisecond)
	assert.Equal(t, 1.5, run.DurationSeconds())

	run.EndedAt = run.StartedAt.Add(1*time.Second + 234567*time.Microsecond)
	assert.Equal(t, 1.23, run.DurationSeconds())
}

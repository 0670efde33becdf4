package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

type fakeProber struct {
	rates map[string]float64
	fails map[string]bool
}

func (f *fakeProber) ProbeFrameRate(_ context.Context, videoPath string) (float64, error) {
	name := filepath.Base(videoPath)
	if f.fails[name] {
		return 0, &entity.ProbeError{Path: videoPath, Err: fmt.Errorf("no video stream")}
	}
	if rate, ok := f.rates[name]; ok {
		return rate, nil
	}
	return 30.0, nil
}

// fakeRasterizer writes a fixed number of placeholder frames per clip.
type fakeRasterizer struct {
	frames map[string]int
}

func (f *fakeRasterizer) Rasterize(_ context.Context, videoPath string, outputDir string) error {
	n := f.frames[filepath.Base(videoPath)]
	for i := 1; i <= n; i++ {
		path := filepath.Join(outputDir, entity.FrameFileName(i))
		if err := os.WriteFile(path, []byte("frame"), 0644); err != nil {
			return err
		}
	}
	return nil
}

type globCounter struct{}

func (globCounter) CountFrames(dir string) int {
	frames, err := filepath.Glob(filepath.Join(dir, "*"+entity.ImageExt))
	if err != nil {
		return 0
	}
	return len(frames)
}

type fakeLedger struct {
	runs      []*entity.BatchRun
	decisions []entity.Verdict
}

func (f *fakeLedger) RecordRun(_ context.Context, run *entity.BatchRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeLedger) RecordGateDecision(_ context.Context, _ uuid.UUID, _ string, verdict entity.Verdict, _ entity.GateResult) error {
	f.decisions = append(f.decisions, verdict)
	return nil
}

func writeInput(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("video-bytes"), 0644))
	}
}

func findRunRoot(t *testing.T, outputDir string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(outputDir, "run_*"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	return matches[0]
}

func TestConvertBatchRunLayout(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	processedDir := t.TempDir()
	// Intentionally unsorted on disk; ordinals must follow name order.
	writeInput(t, inputDir, "b clip.mp4", "a clip.webm", "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(inputDir, "subdir"), 0755))

	ledger := &fakeLedger{}
	uc := NewConvertBatchUseCase(
		&fakeProber{rates: map[string]float64{"a clip.webm": 30.0, "b clip.mp4": 29.97}},
		&fakeRasterizer{frames: map[string]int{"a clip.webm": 5, "b clip.mp4": 3}},
		globCounter{},
		ledger, nil, nil, nil,
		zap.NewNop(),
		ConvertConfig{InputDir: inputDir, OutputDir: outputDir, ProcessedDir: processedDir, Layout: LayoutRun},
	)

	run, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, run.Details, 2)

	// Slots follow lexicographic source order, not processing luck.
	assert.Equal(t, "a clip.webm", run.Details[0].OriginalFileName)
	assert.Equal(t, "a-clip", run.Details[0].VideoName)
	assert.Equal(t, 5, run.Details[0].FramesExtracted)
	assert.Equal(t, "b clip.mp4", run.Details[1].OriginalFileName)
	assert.Equal(t, 29.97, run.Details[1].FPS)

	runRoot := findRunRoot(t, outputDir)

	for i, want := range []int{5, 3} {
		slotDir := filepath.Join(runRoot, "train", fmt.Sprintf("video%d", i+1))
		frames, err := filepath.Glob(filepath.Join(slotDir, "img1", "*.jpg"))
		require.NoError(t, err)
		assert.Len(t, frames, want)

		data, err := os.ReadFile(filepath.Join(slotDir, entity.LabelsFileName))
		require.NoError(t, err)
		var meta entity.SequenceMetadata
		require.NoError(t, json.Unmarshal(data, &meta))
		assert.Equal(t, want, meta.Info.SeqLength)
		assert.Len(t, meta.Images, want)
	}

	// Sources were relocated into the matching processed run folder.
	stamp := filepath.Base(runRoot)
	for _, name := range []string{"a clip.webm", "b clip.mp4"} {
		assert.NoFileExists(t, filepath.Join(inputDir, name))
		assert.FileExists(t, filepath.Join(processedDir, stamp, name))
	}
	// Unsupported files stay put.
	assert.FileExists(t, filepath.Join(inputDir, "notes.txt"))

	// Batch report at the run root.
	var info struct {
		VideosProcessed int                 `json:"videos_processed"`
		Details         []entity.ClipSummary `json:"details"`
	}
	data, err := os.ReadFile(filepath.Join(runRoot, entity.RunInfoFileName))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, 2, info.VideosProcessed)
	require.Len(t, info.Details, 2)

	require.Len(t, ledger.runs, 1)
	assert.Equal(t, run.ID, ledger.runs[0].ID)
}

func TestConvertBatchNamedLayout(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeInput(t, inputDir, "Match Highlights.mp4")

	uc := NewConvertBatchUseCase(
		&fakeProber{},
		&fakeRasterizer{frames: map[string]int{"Match Highlights.mp4": 2}},
		globCounter{},
		nil, nil, nil, nil,
		zap.NewNop(),
		ConvertConfig{InputDir: inputDir, OutputDir: outputDir, Layout: LayoutNamed},
	)

	run, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, run.Details, 1)

	slots, err := filepath.Glob(filepath.Join(outputDir, "train", "match-highlights-*"))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.FileExists(t, filepath.Join(slots[0], entity.LabelsFileName))

	// Named layout never relocates sources and writes no batch report.
	assert.FileExists(t, filepath.Join(inputDir, "Match Highlights.mp4"))
	assert.NoFileExists(t, filepath.Join(outputDir, entity.RunInfoFileName))
}

func TestConvertBatchClipFailureIsIsolated(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	processedDir := t.TempDir()
	writeInput(t, inputDir, "bad.mp4", "good.mp4")

	uc := NewConvertBatchUseCase(
		&fakeProber{fails: map[string]bool{"bad.mp4": true}},
		&fakeRasterizer{frames: map[string]int{"good.mp4": 4}},
		globCounter{},
		nil, nil, nil, nil,
		zap.NewNop(),
		ConvertConfig{InputDir: inputDir, OutputDir: outputDir, ProcessedDir: processedDir, Layout: LayoutRun},
	)

	run, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// The failed clip is skipped, keeps its ordinal and stays in place.
	require.Len(t, run.Details, 1)
	assert.Equal(t, "good.mp4", run.Details[0].OriginalFileName)
	assert.FileExists(t, filepath.Join(inputDir, "bad.mp4"))

	runRoot := findRunRoot(t, outputDir)
	badFrames, err := filepath.Glob(filepath.Join(runRoot, "train", "video1", "img1", "*.jpg"))
	require.NoError(t, err)
	assert.Empty(t, badFrames)
	assert.NoFileExists(t, filepath.Join(runRoot, "train", "video1", entity.LabelsFileName))
	frames, err := filepath.Glob(filepath.Join(runRoot, "train", "video2", "img1", "*.jpg"))
	require.NoError(t, err)
	assert.Len(t, frames, 4)
}

func TestConvertBatchEmptyInput(t *testing.T) {
	uc := NewConvertBatchUseCase(
		&fakeProber{},
		&fakeRasterizer{},
		globCounter{},
		nil, nil, nil, nil,
		zap.NewNop(),
		ConvertConfig{InputDir: t.TempDir(), OutputDir: t.TempDir(), ProcessedDir: t.TempDir(), Layout: LayoutRun},
	)

	run, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, run.Details)

	// The report is still written, with an empty details list.
	runRoot := findRunRoot(t, uc.cfg.OutputDir)
	assert.FileExists(t, filepath.Join(runRoot, entity.RunInfoFileName))
}

func TestConvertBatchMissingInputDir(t *testing.T) {
	uc := NewConvertBatchUseCase(
		&fakeProber{},
		&fakeRasterizer{},
		globCounter{},
		nil, nil, nil, nil,
		zap.NewNop(),
		ConvertConfig{InputDir: filepath.Join(t.TempDir(), "nope"), OutputDir: t.TempDir(), Layout: LayoutNamed},
	)

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestMoveFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "clip.mp4")
	dest := filepath.Join(destDir, "clip.mp4")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, moveFile(src, dest))

	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os/exec"
	"strconv"
	"strings"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/port"
)

// MidFrameExtractor decodes the single frame at floor(totalFrames/2) of a
// clip into memory for the quality gate.
type MidFrameExtractor struct{}

func NewMidFrameExtractor() *MidFrameExtractor {
	return &MidFrameExtractor{}
}

func (e *MidFrameExtractor) ExtractMiddleFrame(ctx context.Context, videoPath string) (*port.MidFrame, error) {
	total, err := e.countTotalFrames(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, fmt.Errorf("no decodable frames in %s", videoPath)
	}

	buf := &bytes.Buffer{}
	err = ffmpeggo.Input(videoPath).
		Filter("select", ffmpeggo.Args{fmt.Sprintf("gte(n,%d)", total/2)}).
		Output("pipe:", ffmpeggo.KwArgs{"vframes": 1, "format": "image2", "vcodec": "mjpeg"}).
		Silent(true).
		WithOutput(buf).
		Run()
	if err != nil {
		return nil, fmt.Errorf("decode middle frame of %s: %w", videoPath, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decode middle frame of %s: empty output", videoPath)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("read middle frame of %s: %w", videoPath, err)
	}

	return &port.MidFrame{
		JPEG:   buf.Bytes(),
		Height: cfg.Height,
		Width:  cfg.Width,
	}, nil
}

// countTotalFrames reads the container's frame count header. Some
// containers omit nb_frames; counting packets covers those without a full
// decode.
func (e *MidFrameExtractor) countTotalFrames(ctx context.Context, videoPath string) (int, error) {
	if n, err := e.probeStreamEntry(ctx, videoPath, "stream=nb_frames", nil); err == nil {
		return n, nil
	}

	return e.probeStreamEntry(ctx, videoPath, "stream=nb_read_packets", []string{"-count_packets"})
}

func (e *MidFrameExtractor) probeStreamEntry(ctx context.Context, videoPath, entry string, extra []string) (int, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
	}
	args = append(args, extra...)
	args = append(args,
		"-show_entries", entry,
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)

	output, err := exec.CommandContext(ctx, "ffprobe", args...).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", entry, err)
	}

	raw := strings.TrimSpace(string(output))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: unexpected output %q", entry, raw)
	}
	return n, nil
}

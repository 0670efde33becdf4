package yolo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

// Client talks to the detection sidecar, a small inference server that
// loads the YOLO weights once and scores frames over HTTP. The weights
// reference (file path or model id) is passed on every request so the
// sidecar can serve multiple models.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

type detectResponse struct {
	Detections []entity.Detection `json:"detections"`
}

func NewClient(baseURL, model string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// Detect posts one JPEG frame and returns every detection the model
// produced, with absolute pixel boxes and confidences in [0,1].
func (c *Client) Detect(ctx context.Context, frameJPEG []byte) ([]entity.Detection, error) {
	endpoint := fmt.Sprintf("%s/detect?model=%s", c.baseURL, url.QueryEscape(c.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(frameJPEG))
	if err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("detect request: status %d: %s", resp.StatusCode, body)
	}

	var parsed detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode detect response: %w", err)
	}

	c.logger.Debug("detector response",
		zap.String("model", c.model),
		zap.Int("detections", len(parsed.Detections)),
	)

	return parsed.Detections, nil
}

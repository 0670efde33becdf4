package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func det(conf, height float64) Detection {
	return Detection{X1: 100, Y1: 200, X2: 150, Y2: 200 + height, Confidence: conf}
}

func TestGateEvaluate(t *testing.T) {
	cfg := DefaultGateConfig()
	const frameHeight = 1080

	t.Run("accepts four clean detections", func(t *testing.T) {
		ds := []Detection{det(0.9, 120), det(0.8, 110), det(0.7, 130), det(0.61, 100)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.True(t, res.Accepted)
		assert.Equal(t, 4, res.Qualifying)
		assert.Empty(t, res.Reason)
	})

	t.Run("rejects three detections", func(t *testing.T) {
		ds := []Detection{det(0.9, 120), det(0.8, 110), det(0.7, 130)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.False(t, res.Accepted)
		assert.Equal(t, 3, res.Qualifying)
		assert.Contains(t, res.Reason, "not enough players")
	})

	t.Run("low confidence detections never count", func(t *testing.T) {
		ds := []Detection{det(0.9, 120), det(0.8, 110), det(0.7, 130), det(0.59, 100)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.False(t, res.Accepted)
		assert.Equal(t, 3, res.Qualifying)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		ds := []Detection{det(0.6, 120), det(0.6, 110), det(0.6, 130), det(0.6, 100)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.True(t, res.Accepted)
	})

	t.Run("rejects oversized box even with enough players", func(t *testing.T) {
		ds := []Detection{det(0.9, 500), det(0.8, 110), det(0.7, 130), det(0.9, 100), det(0.9, 90)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.False(t, res.Accepted)
		assert.Equal(t, 5, res.Qualifying)
		assert.InDelta(t, 500.0, res.OversizedHeight, 1e-9)
		assert.Contains(t, res.Reason, "bounding box too large")
	})

	t.Run("height limit is exclusive", func(t *testing.T) {
		// Exactly one third of the frame height counts as oversized.
		limit := float64(frameHeight) * cfg.MaxBBoxHeightRatio
		ds := []Detection{det(0.9, limit), det(0.8, 110), det(0.7, 130), det(0.9, 100)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.False(t, res.Accepted)
	})

	t.Run("oversized low-confidence box is ignored", func(t *testing.T) {
		ds := []Detection{det(0.5, 900), det(0.8, 110), det(0.7, 130), det(0.9, 100), det(0.9, 90)}
		res := cfg.Evaluate(ds, frameHeight)
		assert.True(t, res.Accepted)
		assert.Equal(t, 4, res.Qualifying)
	})

	t.Run("no detections", func(t *testing.T) {
		res := cfg.Evaluate(nil, frameHeight)
		assert.False(t, res.Accepted)
		assert.Equal(t, 0, res.Qualifying)
	})
}

func TestGateEvaluateCustomConfig(t *testing.T) {
	cfg := GateConfig{ConfThreshold: 0.3, MinPlayers: 2, MaxBBoxHeightRatio: 0.5}
	ds := []Detection{det(0.35, 100), det(0.4, 120)}
	res := cfg.Evaluate(ds, 720)
	assert.True(t, res.Accepted)
	assert.Equal(t, 2, res.Qualifying)
}

func TestDefaultGateConfig(t *testing.T) {
	cfg := DefaultGateConfig()
	assert.Equal(t, 0.6, cfg.ConfThreshold)
	assert.Equal(t, 4, cfg.MinPlayers)
	assert.InDelta(t, 1.0/3.0, cfg.MaxBBoxHeightRatio, 1e-12)
}

func TestBoxHeight(t *testing.T) {
	d := Detection{Y1: 250.5, Y2: 400.25}
	assert.InDelta(t, 149.75, d.BoxHeight(), 1e-9)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClipsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sequencer_clips_processed_total",
		Help: "Total number of clips processed by the converter, by status",
	}, []string{"status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sequencer_stage_duration_seconds",
		Help:    "Duration of each conversion pipeline stage",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	FramesExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sequencer_frames_extracted_total",
		Help: "Total number of frame images written across all clips",
	})

	GateVerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sequencer_gate_verdicts_total",
		Help: "Total number of quality-gate verdicts, by outcome",
	}, []string{"verdict"})
)

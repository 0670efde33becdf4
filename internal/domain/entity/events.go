package entity

import "github.com/google/uuid"

// SequenceReadyMessage is published after a clip has been fully converted,
// so downstream annotation tooling can pick the sequence up.
type SequenceReadyMessage struct {
	RunID           uuid.UUID `json:"run_id"`
	Slot            string    `json:"slot"`
	VideoName       string    `json:"video_name"`
	FPS             float64   `json:"fps"`
	FramesExtracted int       `json:"frames_extracted"`
	BundleKey       string    `json:"bundle_key,omitempty"`
}

package entity

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// LabelsFileName is the per-sequence metadata file, written as a sibling of
// the img1 frame directory inside the sequence slot.
const LabelsFileName = "Labels-GameState.json"

// SequenceInfo is the info block of a sequence metadata record.
type SequenceInfo struct {
	Version   string  `json:"version"`
	Name      string  `json:"name"`
	ImDir     string  `json:"im_dir"`
	FrameRate float64 `json:"frame_rate"`
	SeqLength int     `json:"seq_length"`
	ImExt     string  `json:"im_ext"`
	ClipStart string  `json:"clip_start"`
	ClipStop  string  `json:"clip_stop"`
}

// SequenceImage describes one materialized frame. Frames carry no
// annotations at creation time, so IsLabeled is always false here.
type SequenceImage struct {
	IsLabeled bool   `json:"is_labeled"`
	ImageID   string `json:"image_id"`
	FileName  string `json:"file_name"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
}

// SequenceMetadata is the persisted Labels-GameState.json record.
// Annotations and Categories are reserved for downstream tooling and are
// always emitted as empty lists.
type SequenceMetadata struct {
	Info        SequenceInfo     `json:"info"`
	Images      []SequenceImage  `json:"images"`
	Annotations []map[string]any `json:"annotations"`
	Categories  []map[string]any `json:"categories"`
}

// NewSequenceMetadata builds the canonical metadata record for a sequence.
// frameCount must be the count of frame files on disk, not a rate-derived
// estimate.
func NewSequenceMetadata(name string, frameRate float64, frameCount int) *SequenceMetadata {
	images := make([]SequenceImage, 0, frameCount)
	for i := 1; i <= frameCount; i++ {
		images = append(images, SequenceImage{
			IsLabeled: false,
			ImageID:   FrameImageID(i),
			FileName:  FrameFileName(i),
			Height:    FrameHeight,
			Width:     FrameWidth,
		})
	}

	return &SequenceMetadata{
		Info: SequenceInfo{
			Version:   "1.3",
			Name:      name,
			ImDir:     "img1",
			FrameRate: frameRate,
			SeqLength: frameCount,
			ImExt:     ImageExt,
			ClipStart: "0",
			ClipStop:  strconv.FormatInt(DurationMS(frameCount, frameRate), 10),
		},
		Images:      images,
		Annotations: []map[string]any{},
		Categories:  []map[string]any{},
	}
}

// Write persists the record as 4-space indented JSON. Identical inputs
// produce byte-identical files.
func (m *SequenceMetadata) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal sequence metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

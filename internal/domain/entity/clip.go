package entity

import (
	"path/filepath"
	"strings"
)

// Fixed output resolution for every rasterized frame. Source resolution is
// ignored: frames are hard-scaled, not fitted.
const (
	FrameWidth  = 1920
	FrameHeight = 1080
)

// ImageExt is the extension of every materialized frame image.
const ImageExt = ".jpg"

// convertExts are the formats the batch converter picks up.
var convertExts = map[string]bool{
	".mp4":  true,
	".webm": true,
}

// filterExts are the formats the quality gate picks up. Superset of
// convertExts: the gate runs on raw downloads before conversion.
var filterExts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
}

// Clip is a single source video file discovered in an input directory.
type Clip struct {
	Path          string
	FileName      string
	SanitizedName string
	FPS           float64
}

func NewClip(path string) Clip {
	fileName := filepath.Base(path)
	return Clip{
		Path:          path,
		FileName:      fileName,
		SanitizedName: SanitizeName(fileName),
	}
}

// SanitizeName strips the extension, replaces spaces with hyphens and
// lower-cases the result. Used for display and labeling only; the run
// layout never uses it for slot identity.
func SanitizeName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return strings.ToLower(strings.ReplaceAll(base, " ", "-"))
}

// IsConvertible reports whether the file name has a supported extension
// for the batch converter (case-insensitive).
func IsConvertible(fileName string) bool {
	return convertExts[strings.ToLower(filepath.Ext(fileName))]
}

// IsFilterable reports whether the file name has a supported extension
// for the quality gate (case-insensitive).
func IsFilterable(fileName string) bool {
	return filterExts[strings.ToLower(filepath.Ext(fileName))]
}

// FilterExtensions lists the gate's supported extensions, for user-facing
// messages.
func FilterExtensions() []string {
	return []string{".webm", ".mp4", ".avi", ".mov", ".mkv"}
}

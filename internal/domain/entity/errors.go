package entity

import "fmt"

// ProbeError means a clip's frame-rate metadata could not be read or
// parsed. Fatal for that clip; the batch continues.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// RasterizeError means the external decode/scale step failed. Fatal for
// that clip, never retried; frames already written stay on disk.
type RasterizeError struct {
	Path string
	Err  error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("rasterize %s: %v", e.Path, e.Err)
}

func (e *RasterizeError) Unwrap() error { return e.Err }

package port

import (
	"context"
	"io"
)

// Bundler packs a finished sequence slot into a single archive.
type Bundler interface {
	CreateBundle(ctx context.Context, slotDir string, outputPath string) error
}

// BundleStore uploads sequence bundles for the annotation team. Optional.
type BundleStore interface {
	EnsureBucket(ctx context.Context) error
	UploadBundle(ctx context.Context, objectKey string, reader io.Reader, size int64) error
}

// EventPublisher emits sequence.ready events. Optional.
type EventPublisher interface {
	PublishSequenceReady(ctx context.Context, msg []byte) error
}

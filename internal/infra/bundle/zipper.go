package bundle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Zipper packs a finished sequence slot (img1 frames plus the label file)
// into a single archive for handoff to the annotation team.
type Zipper struct{}

func NewZipper() *Zipper {
	return &Zipper{}
}

func (z *Zipper) CreateBundle(ctx context.Context, slotDir string, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create bundle file: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	err = filepath.WalkDir(slotDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(slotDir, path)
		if err != nil {
			return err
		}
		return addFileToZip(zipWriter, path, filepath.ToSlash(rel))
	})
	if err != nil {
		return fmt.Errorf("bundle %s: %w", slotDir, err)
	}

	return nil
}

func addFileToZip(zw *zip.Writer, filename, name string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = name
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}

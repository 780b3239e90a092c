package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func New(fs afero.Fs, logger *zap.Logger) *Writer {
	return &Writer{fs: fs, logger: logger}
}

// Writer persists captured frames.
type Writer struct {
	fs     afero.Fs
	logger *zap.Logger
}

// Save encodes img in the format named by the file extension and replaces
// name with it. An existing file is overwritten.
func (w *Writer) Save(name string, img image.Image) error {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return fmt.Errorf("output format: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	dir := filepath.Dir(name)
	if exists, err := afero.DirExists(w.fs, dir); err != nil {
		return err
	} else if !exists {
		if err2 := w.fs.MkdirAll(dir, 0755); err2 != nil {
			return err2
		}
	}

	tmp := filepath.Join(dir, "."+xid.New().String()+filepath.Ext(name))
	if err := afero.WriteFile(w.fs, tmp, buf.Bytes(), 0644); err != nil {
		return err
	}

	if err := w.fs.Rename(tmp, name); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}

	w.logger.With(
		zap.String("file", name),
		zap.String("format", format.String()),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Info("snapshot saved")

	return nil
}

// Package debug provides debugging aids for the windowed front ends.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Image formats accepted by SetFormat.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ScreenshotCapture writes numbered PNG or BMP screenshots.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	seq       int
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    FormatPNG,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// SetFormat selects the image format. Unknown formats are rejected.
func (sc *ScreenshotCapture) SetFormat(format string) error {
	switch format {
	case FormatPNG, FormatBMP:
		sc.format = format
		return nil
	default:
		return fmt.Errorf("unsupported screenshot format %q", format)
	}
}

// CaptureFromPixels captures a screenshot from top-down RGBA pixel data of
// width*height*4 bytes.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return sc.CaptureFromImage(img)
}

// CaptureFromImage captures a screenshot from an existing image.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	sc.seq++

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if sc.format == FormatBMP {
		err = bmp.Encode(file, img)
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", sc.format, err)
	}

	return filename, nil
}

// GenerateFilename returns the name the next capture will use.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%03d.%s", sc.prefix, timestamp, sc.seq, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

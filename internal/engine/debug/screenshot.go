// Package debug provides debug capture utilities.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Format selects the screenshot encoding.
type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

// ErrFormat is returned for an unknown screenshot format.
var ErrFormat = errors.New("unknown screenshot format")

// ScreenshotCapture writes framebuffer captures to disk.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler. An empty format means WebP.
func NewScreenshotCapture(outputDir, prefix string, format Format) (*ScreenshotCapture, error) {
	switch format {
	case "":
		format = FormatWebP
	case FormatWebP, FormatPNG:
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}, nil
}

// FlipPixels converts bottom-up RGBA rows as read from OpenGL into an image.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CaptureFromPixels flips and saves raw framebuffer pixels.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img and returns the written path.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := sc.encode(file, img); err != nil {
		file.Close()
		os.Remove(filename)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	return filename, nil
}

func (sc *ScreenshotCapture) encode(w io.Writer, img image.Image) error {
	if sc.format == FormatPNG {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		return nil
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("encoding WebP: %w", err)
	}
	return nil
}

// GenerateFilename returns the path the next capture would be written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

package jpgpdf

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	green = color.RGBA{R: 30, G: 200, B: 30, A: 255}
	blue  = color.RGBA{R: 30, G: 30, B: 220, A: 255}
)

// writeJPEG writes a solid-colored width x height JPEG into dir, and returns its path.
func writeJPEG(t *testing.T, dir, name string, c color.Color, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return encodeJPEG(t, dir, name, img)
}

// writeGrayJPEG writes a single channel JPEG into dir, and returns its path.
func writeGrayJPEG(t *testing.T, dir, name string, level uint8, width, height int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return encodeJPEG(t, dir, name, img)
}

func encodeJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 95}))
	return path
}

// dominantChannel returns 0, 1 or 2 for a page that is mostly red, green or blue.
func dominantChannel(c [3]uint8) int {
	best := 0
	for i := 1; i < 3; i++ {
		if c[i] > c[best] {
			best = i
		}
	}
	return best
}

// quietOptions returns the default options, with progress output discarded.
func quietOptions() Options {
	opts := DefaultOptions()
	opts.Log = nil
	return opts
}

// openReport opens the PDF at path and returns its report.
func openReport(t *testing.T, path string) *Report {
	t.Helper()
	doc, err := Open(path)
	require.NoError(t, err)
	defer doc.Close()
	report, err := doc.Report()
	require.NoError(t, err)
	return report
}

// listDir returns the names of the entries in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

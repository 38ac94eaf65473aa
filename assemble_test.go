package jpgpdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPages(t *testing.T, paths ...string) []*Page {
	t.Helper()
	pages := []*Page{}
	for _, p := range paths {
		page, err := LoadPage(p, PageOptions{})
		require.NoError(t, err)
		pages = append(pages, page)
	}
	return pages
}

func TestAssembler_PageDim(t *testing.T) {
	tests := []struct {
		dpi           int
		width, height int
		wantW, wantH  float64
	}{
		{100, 100, 200, 72, 144},
		{72, 100, 200, 100, 200},
		{300, 2550, 3300, 612, 792},
		{0, 50, 25, 36, 18}, // zero means default
	}
	for _, tt := range tests {
		a := &Assembler{DPI: tt.dpi}
		dim := a.pageDim(&Page{Width: tt.width, Height: tt.height})
		assert.InDelta(t, tt.wantW, dim.Width, 1e-9)
		assert.InDelta(t, tt.wantH, dim.Height, 1e-9)
	}
}

func TestAssembler_WriteFile(t *testing.T) {
	for _, optimize := range []bool{true, false} {
		t.Run(map[bool]string{true: "optimized", false: "plain"}[optimize], func(t *testing.T) {
			dir := t.TempDir()
			pages := loadPages(t,
				writeJPEG(t, dir, "1.jpg", red, 100, 150),
				writeJPEG(t, dir, "2.jpg", green, 100, 150),
				writeJPEG(t, dir, "3.jpg", blue, 150, 100),
				writeJPEG(t, dir, "4.jpg", red, 100, 150),
			)
			out := filepath.Join(dir, "out.pdf")

			a := NewAssembler()
			a.Optimize = optimize
			require.NoError(t, a.WriteFile(pages, out))

			report := openReport(t, out)
			require.Equal(t, 4, report.NumPages)
			wantColor := []int{0, 1, 2, 0}
			wantSize := [][2]float64{{72, 108}, {72, 108}, {108, 72}, {72, 108}}
			for i, p := range report.Pages {
				assert.Equal(t, wantColor[i], dominantChannel(p.MeanColor), "page %v", i+1)
				assert.InDelta(t, wantSize[i][0], p.WidthPt, 0.01, "page %v", i+1)
				assert.InDelta(t, wantSize[i][1], p.HeightPt, 0.01, "page %v", i+1)
			}

			// No temporary files are left behind
			assert.ElementsMatch(t, []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "out.pdf"}, listDir(t, dir))
		})
	}
}

func TestAssembler_Write(t *testing.T) {
	dir := t.TempDir()
	pages := loadPages(t, writeJPEG(t, dir, "only.jpg", blue, 60, 60))

	var buf bytes.Buffer
	require.NoError(t, NewAssembler().Write(&buf, pages))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	doc, err := OpenMemory(buf.Bytes())
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, 1, doc.NumPages)
}

func TestAssembler_NoPages(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	err := NewAssembler().WriteFile(nil, out)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.NoFileExists(t, out)

	assert.ErrorIs(t, NewAssembler().Write(&bytes.Buffer{}, nil), ErrEmptyInput)
}

func TestAssembler_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	pages := loadPages(t, writeJPEG(t, dir, "a.jpg", red, 20, 20))
	out := filepath.Join(dir, "missing", "out.pdf")

	err := NewAssembler().WriteFile(pages, out)
	var encodeErr *EncodeError
	require.True(t, errors.As(err, &encodeErr), "expected *EncodeError, got %T", err)
	assert.Equal(t, out, encodeErr.Path)
	assert.NoFileExists(t, out)
}

func TestAssembler_BadImageData(t *testing.T) {
	dir := t.TempDir()
	good := loadPages(t, writeJPEG(t, dir, "a.jpg", red, 20, 20))[0]
	bad := &Page{Name: "b.jpg", Width: 20, Height: 20, JPEG: []byte("garbage")}
	out := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	err := NewAssembler().WriteFile([]*Page{good, bad}, out)
	var encodeErr *EncodeError
	require.True(t, errors.As(err, &encodeErr), "expected *EncodeError, got %T", err)

	// The previous file is untouched, and no temporary file remains
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
	assert.ElementsMatch(t, []string{"a.jpg", "out.pdf"}, listDir(t, dir))
}

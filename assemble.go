package jpgpdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DefaultDPI is the resolution at which image pixels are mapped onto the page
const DefaultDPI = 100

// Assembler builds a multi-page PDF out of a sequence of pages
type Assembler struct {
	DPI      int       // Pixels per inch on the page. A page is Width*72/DPI points wide.
	Optimize bool      // Run the finished document through the PDF optimizer
	Verbose  bool      // If true, print debug information
	Log      io.Writer // Destination of verbose output
}

// NewAssembler returns an assembler with the default resolution, and optimization enabled
func NewAssembler() *Assembler {
	return &Assembler{
		DPI:      DefaultDPI,
		Optimize: true,
	}
}

// WriteFile writes the pages to outputPath, replacing any existing file.
// Either the complete document is written, or the filesystem is left untouched.
func (a *Assembler) WriteFile(pages []*Page, outputPath string) error {
	if len(pages) == 0 {
		return ErrEmptyInput
	}

	tmp, err := createTemp(outputPath)
	if err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	done := false
	defer func() {
		if !done {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := a.Write(tmp, pages); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	// A replaced file keeps its permissions
	if existing, err := os.Stat(outputPath); err == nil {
		if err := os.Chmod(tmp.Name(), existing.Mode().Perm()); err != nil {
			return &EncodeError{Path: outputPath, Err: err}
		}
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	done = true
	return nil
}

// Create an empty file next to outputPath.
// Unlike os.CreateTemp, the file gets the same permissions as os.Create would give it.
func createTemp(outputPath string) (*os.File, error) {
	dir, base := filepath.Split(outputPath)
	for range 100 {
		name := filepath.Join(dir, fmt.Sprintf(".%v.%08x.tmp", base, rand.Uint32()))
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("unable to create a temporary file next to %v", outputPath)
}

// Write the PDF document to w.
// The first page forms the base document, and the remaining pages are appended in order.
func (a *Assembler) Write(w io.Writer, pages []*Page) error {
	if len(pages) == 0 {
		return ErrEmptyInput
	}

	// pdfcpu uses a single page size per import, so we import runs of equally sized pages together
	var doc []byte
	for start := 0; start < len(pages); {
		end := start + 1
		for end < len(pages) && pages[end].Width == pages[start].Width && pages[end].Height == pages[start].Height {
			end++
		}
		next, err := a.importPages(doc, pages[start:end])
		if err != nil {
			return err
		}
		a.verbose("pages %v-%v: %v x %v\n", start+1, end, pages[start].Width, pages[start].Height)
		doc = next
		start = end
	}

	if a.Optimize {
		conf := model.NewDefaultConfiguration()
		if err := pdfapi.Optimize(bytes.NewReader(doc), w, conf); err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
		return nil
	}
	_, err := w.Write(doc)
	return err
}

// Returns the page size, in points, of a page
func (a *Assembler) pageDim(p *Page) types.Dim {
	dpi := a.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return types.Dim{
		Width:  float64(p.Width) * 72 / float64(dpi),
		Height: float64(p.Height) * 72 / float64(dpi),
	}
}

// Append pages (which all have the same dimensions) to the document in base.
// If base is nil, a new document is created.
func (a *Assembler) importPages(base []byte, pages []*Page) ([]byte, error) {
	images := make([]io.Reader, len(pages))
	for i, p := range pages {
		images[i] = bytes.NewReader(p.JPEG)
	}

	dim := a.pageDim(pages[0])
	importConfig := pdfcpu.DefaultImportConfig()
	importConfig.PageDim = &dim
	importConfig.Pos = types.Center
	importConfig.Scale = 1

	var rs io.ReadSeeker
	if base != nil {
		rs = bytes.NewReader(base)
	}
	output := &bytes.Buffer{}
	if err := pdfapi.ImportImages(rs, output, images, importConfig, nil); err != nil {
		return nil, fmt.Errorf("import %v: %w", pages[0].Name, err)
	}
	return output.Bytes(), nil
}

func (a *Assembler) verbose(format string, args ...interface{}) {
	if a.Verbose && a.Log != nil {
		fmt.Fprintf(a.Log, format, args...)
	}
}

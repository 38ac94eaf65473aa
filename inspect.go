package jpgpdf

import (
	"bytes"
	"fmt"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	"github.com/bmharper/cimg/v2"
	"github.com/gen2brain/go-fitz"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is an existing PDF, opened for inspection
type Document struct {
	fz       *fitz.Document
	reader   io.ReadSeeker
	NumPages int
	Verbose  bool      // If true, print debug information
	Log      io.Writer // Destination of verbose output
}

// Report summarizes a document
type Report struct {
	Path      string       `yaml:"path,omitempty"`
	NumPages  int          `yaml:"pages"`
	ImageOnly bool         `yaml:"image_only"` // True if no page contains any text
	Pages     []PageReport `yaml:"page_details"`
}

// PageReport describes one page of a document
type PageReport struct {
	Number      int      `yaml:"number"` // 1-based
	WidthPt     float64  `yaml:"width_pt"`
	HeightPt    float64  `yaml:"height_pt"`
	ImageWidth  int      `yaml:"image_width"`
	ImageHeight int      `yaml:"image_height"`
	Channels    int      `yaml:"channels"`
	MeanColor   [3]uint8 `yaml:"mean_color,flow"` // Average RGB of the rendered page
}

// The resolution at which we render pages to compute their mean color
const reportDPI = 18

func newDocument(fz *fitz.Document, reader io.ReadSeeker) (*Document, error) {
	doc := &Document{
		fz:       fz,
		reader:   reader,
		NumPages: fz.NumPage(),
	}
	return doc, nil
}

// Open a PDF file
func Open(filename string) (*Document, error) {
	fz, err := fitz.New(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		fz.Close()
		return nil, err
	}
	return newDocument(fz, file)
}

// Open a PDF from bytes
func OpenMemory(doc []byte) (*Document, error) {
	fz, err := fitz.NewFromMemory(doc)
	if err != nil {
		return nil, err
	}
	return newDocument(fz, bytes.NewReader(doc))
}

func (d *Document) Close() {
	d.fz.Close()
	if closer, ok := d.reader.(io.Closer); ok {
		closer.Close()
	}
}

// Returns true if no page has any text on it
func (d *Document) IsImageOnly() (bool, error) {
	for i := range d.NumPages {
		txt, err := d.fz.Text(i)
		if err != nil {
			return false, err
		}
		if txt != "" {
			return false, nil
		}
	}
	return true, nil
}

// PageImage returns the raw (compressed) image bytes on the page, and the decompressed image
func (d *Document) PageImage(pageIdx int) ([]byte, *cimg.Image, error) {
	if _, err := d.reader.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	pageName := fmt.Sprintf("%d", pageIdx+1)
	images, err := pdfapi.ExtractImagesRaw(d.reader, []string{pageName}, nil)
	if err != nil {
		return nil, nil, err
	}
	if len(images) != 1 {
		return nil, nil, fmt.Errorf("ExtractImagesRaw returned an unexpected number of results (%v) on page %v", len(images), pageIdx+1)
	}
	for _, img := range images[0] {
		raw, err := io.ReadAll(img)
		if err != nil {
			return nil, nil, err
		}
		decoded, err := cimg.Decompress(raw)
		if err != nil {
			return nil, nil, err
		}
		return raw, decoded, nil
	}
	return nil, nil, fmt.Errorf("No image found on page %v", pageIdx+1)
}

// PageSizes returns the width and height, in points, of every page
func (d *Document) PageSizes() ([][2]float64, error) {
	if _, err := d.reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	dims, err := pdfapi.PageDims(d.reader, nil)
	if err != nil {
		return nil, err
	}
	sizes := make([][2]float64, len(dims))
	for i, dim := range dims {
		sizes[i] = [2]float64{dim.Width, dim.Height}
	}
	return sizes, nil
}

// MeanColor renders the page, and returns its average RGB value
func (d *Document) MeanColor(pageIdx int) ([3]uint8, error) {
	img, err := d.fz.ImageDPI(pageIdx, reportDPI)
	if err != nil {
		return [3]uint8{}, err
	}
	var sum [3]uint64
	n := uint64(0)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			sum[0] += uint64(row[x*4])
			sum[1] += uint64(row[x*4+1])
			sum[2] += uint64(row[x*4+2])
			n++
		}
	}
	if n == 0 {
		return [3]uint8{}, fmt.Errorf("page %v rendered to an empty image", pageIdx+1)
	}
	return [3]uint8{uint8(sum[0] / n), uint8(sum[1] / n), uint8(sum[2] / n)}, nil
}

// Report inspects every page of the document
func (d *Document) Report() (*Report, error) {
	imageOnly, err := d.IsImageOnly()
	if err != nil {
		return nil, err
	}
	sizes, err := d.PageSizes()
	if err != nil {
		return nil, err
	}
	if len(sizes) != d.NumPages {
		return nil, fmt.Errorf("pdfcpu found %v pages, but mupdf found %v", len(sizes), d.NumPages)
	}

	report := &Report{
		NumPages:  d.NumPages,
		ImageOnly: imageOnly,
	}
	for page := 0; page < d.NumPages; page++ {
		raw, img, err := d.PageImage(page)
		if err != nil {
			return nil, err
		}
		channels, err := jpegChannels(raw)
		if err != nil {
			return nil, err
		}
		mean, err := d.MeanColor(page)
		if err != nil {
			return nil, err
		}
		report.Pages = append(report.Pages, PageReport{
			Number:      page + 1,
			WidthPt:     sizes[page][0],
			HeightPt:    sizes[page][1],
			ImageWidth:  img.Width,
			ImageHeight: img.Height,
			Channels:    channels,
			MeanColor:   mean,
		})
		d.verbose("page %v: %8v %v x %v\n", page+1, len(raw), img.Width, img.Height)
	}
	return report, nil
}

// Returns the number of color components stored in a JPEG stream.
// libjpeg-turbo always hands back RGB, so the header is the only place that tells us how the image was encoded.
func jpegChannels(raw []byte) (int, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	switch cfg.ColorModel {
	case color.GrayModel:
		return 1, nil
	case color.YCbCrModel, color.RGBAModel:
		return 3, nil
	case color.CMYKModel:
		return 4, nil
	}
	return 0, fmt.Errorf("unrecognized JPEG color model %T", cfg.ColorModel)
}

func (d *Document) verbose(format string, args ...interface{}) {
	if d.Verbose && d.Log != nil {
		fmt.Fprintf(d.Log, format, args...)
	}
}

package jpgpdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/bmharper/cimg/v2"
)

// DefaultQuality is the JPEG quality used when embedding pages
const DefaultQuality = 95

// Page is a single normalized image, ready to be placed into the PDF
type Page struct {
	Name   string // Base name of the source file
	Width  int    // Pixel width
	Height int    // Pixel height
	JPEG   []byte // RGB image, compressed
}

// PageOptions controls how a source image is turned into a Page
type PageOptions struct {
	Quality      int
	Straightener *Straightener // If not nil, deskew and rotate upright before compressing
}

// LoadPage reads and decodes the image at path, and converts it into an RGB page.
// Failure to read or decode the file produces a *DecodeError.
func LoadPage(path string, opts PageOptions) (*Page, error) {
	name := filepath.Base(path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}
	if len(raw) == 0 {
		return nil, &DecodeError{File: name, Err: errors.New("file is empty")}
	}
	img, err := decodeImage(raw)
	if err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}
	img, err = toRGB(img)
	if err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}

	if opts.Straightener != nil {
		img, err = opts.Straightener.Straighten(name, img)
		if err != nil {
			return nil, fmt.Errorf("straighten %v: %w", name, err)
		}
	}

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	compressed, err := cimg.Compress(img, cimg.MakeCompressParams(cimg.Sampling444, quality, 0))
	if err != nil {
		return nil, fmt.Errorf("compress %v: %w", name, err)
	}

	return &Page{
		Name:   name,
		Width:  img.Width,
		Height: img.Height,
		JPEG:   compressed,
	}, nil
}

// Decode a JPEG with libjpeg-turbo.
// TurboJPEG refuses to convert CMYK and YCCK streams to RGB, so those fall back to image/jpeg,
// which understands the Adobe color transforms.
func decodeImage(raw []byte) (*cimg.Image, error) {
	img, err := cimg.Decompress(raw)
	if err == nil {
		return img, nil
	}
	decoded, fallbackErr := jpeg.Decode(bytes.NewReader(raw))
	if fallbackErr != nil {
		return nil, err
	}
	return fromGoImage(decoded), nil
}

// Copy any image.Image into a new RGB image
func fromGoImage(src image.Image) *cimg.Image {
	b := src.Bounds()
	rgb := cimg.NewImage(b.Dx(), b.Dy(), cimg.PixelFormatRGB)
	for y := 0; y < b.Dy(); y++ {
		row := rgb.Pixels[y*rgb.Stride:]
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			row[x*3] = c.R
			row[x*3+1] = c.G
			row[x*3+2] = c.B
		}
	}
	return rgb
}

// Return img if it is already RGB, otherwise a new RGB copy of it.
// Alpha is dropped.
func toRGB(img *cimg.Image) (*cimg.Image, error) {
	switch img.Format {
	case cimg.PixelFormatRGB:
		return img, nil
	case cimg.PixelFormatGRAY, cimg.PixelFormatRGBA:
		return img.ToRGB(), nil
	}
	return nil, fmt.Errorf("unsupported pixel format %v", img.Format)
}

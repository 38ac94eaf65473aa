// Package jpgpdf turns a directory of JPEG images into a single multi-page PDF.
//
// Images are picked up by filename suffix, sorted by name, converted to RGB,
// and placed one per page at a fixed resolution.
package jpgpdf

import (
	"fmt"
	"io"
	"os"
)

// Options controls a conversion
type Options struct {
	DPI        int     // Resolution of the pages. 0 means DefaultDPI.
	Quality    int     // JPEG quality of the embedded images (1..100). 0 means DefaultQuality.
	Suffix     string  // Only files ending in this suffix are included
	Optimize   bool    // Optimize the PDF after it's built
	Straighten bool    // Deskew pages, and rotate them upright
	MaxAngle   float64 // Largest skew angle (degrees) considered when straightening
	Verbose    bool    // If true, print debug information
	Log        io.Writer
}

// DefaultOptions returns 100 DPI, quality 95, optimized, with progress messages going to stdout
func DefaultOptions() Options {
	return Options{
		DPI:      DefaultDPI,
		Quality:  DefaultQuality,
		Suffix:   DefaultSuffix,
		Optimize: true,
		MaxAngle: DefaultMaxAngle,
		Log:      os.Stdout,
	}
}

// Result describes a successfully written document
type Result struct {
	OutputPath string
	Sources    []string // Source filenames, in page order
}

// NumPages returns the number of pages in the document
func (r *Result) NumPages() int {
	return len(r.Sources)
}

// Convert writes every image in inputDir into a PDF at outputPath, one image per page.
// If anything fails, outputPath is left as it was.
func Convert(inputDir, outputPath string, opts Options) (*Result, error) {
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, fmt.Errorf("quality must be between 1 and 100, not %v", opts.Quality)
	}
	if opts.DPI < 0 {
		return nil, fmt.Errorf("dpi must be positive, not %v", opts.DPI)
	}

	files, err := CollectImages(inputDir, opts.Suffix)
	if err != nil {
		return nil, err
	}

	pageOpts := PageOptions{
		Quality: opts.Quality,
	}
	if opts.Straighten {
		straightener, err := NewStraightener(opts.MaxAngle)
		if err != nil {
			return nil, fmt.Errorf("loading orientation model: %w", err)
		}
		straightener.Verbose = opts.Verbose
		straightener.Log = opts.Log
		pageOpts.Straightener = straightener
	}

	pages := make([]*Page, 0, len(files))
	for _, file := range files {
		page, err := LoadPage(file, pageOpts)
		if err != nil {
			return nil, err
		}
		if opts.Verbose {
			fmt.Fprintf(opts.Log, "%v: %v x %v, %v bytes\n", page.Name, page.Width, page.Height, len(page.JPEG))
		}
		pages = append(pages, page)
	}

	fmt.Fprintf(opts.Log, "Converting %v images to PDF...\n", len(pages))

	assembler := &Assembler{
		DPI:      opts.DPI,
		Optimize: opts.Optimize,
		Verbose:  opts.Verbose,
		Log:      opts.Log,
	}
	if err := assembler.WriteFile(pages, outputPath); err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath: outputPath,
	}
	for _, p := range pages {
		result.Sources = append(result.Sources, p.Name)
	}
	fmt.Fprintf(opts.Log, "PDF created successfully: %v\n", outputPath)
	fmt.Fprintf(opts.Log, "Total pages: %v\n", result.NumPages())
	return result, nil
}

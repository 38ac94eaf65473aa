// Package main contains Mage build targets for jpgpdf.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/bmharper/jpgpdf"
)

const (
	binDir    = "bin"
	binName   = "jpgpdf"
	cmdPkg    = "./cmd/jpgpdf"
	sampleDir = "sample"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// All runs the tests, and then builds the binary.
func All() {
	mg.SerialDeps(Test, Build)
}

// Sample writes a handful of colored JPEGs into sample/images, and converts them into sample/sample.pdf.
func Sample() error {
	imagesDir := filepath.Join(sampleDir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", imagesDir, err)
	}
	pages := []color.RGBA{
		{R: 200, G: 40, B: 40, A: 255},
		{R: 40, G: 160, B: 40, A: 255},
		{R: 40, G: 40, B: 200, A: 255},
		{R: 240, G: 220, B: 80, A: 255},
	}
	for i, c := range pages {
		path := filepath.Join(imagesDir, fmt.Sprintf("page_%02d.jpg", i+1))
		if err := writeSolidJPEG(path, c, 827, 1169); err != nil {
			return err
		}
		fmt.Println("  ", path)
	}

	opts := jpgpdf.DefaultOptions()
	_, err := jpgpdf.Convert(imagesDir, filepath.Join(sampleDir, "sample.pdf"), opts)
	return err
}

// writeSolidJPEG writes a width x height JPEG filled with c.
func writeSolidJPEG(path string, c color.RGBA, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

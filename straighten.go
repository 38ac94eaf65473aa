package jpgpdf

import (
	"fmt"
	"io"
	"math"

	"github.com/bmharper/cimg/v2"
	"github.com/bmharper/docangle"
	"github.com/bmharper/textorient"
)

// DefaultMaxAngle is the largest skew (in degrees) that we try to correct
const DefaultMaxAngle = 2.5

// Straightener removes small rotations from photographed or scanned pages,
// and then turns the page upright.
type Straightener struct {
	orient   *textorient.Orient
	MaxAngle float64   // We only scan between -MaxAngle and +MaxAngle degrees
	Verbose  bool      // If true, print the detected angle of every page
	Log      io.Writer // Destination of verbose output
}

// NewStraightener loads the text orientation model
func NewStraightener(maxAngle float64) (*Straightener, error) {
	orient, err := textorient.NewOrient()
	if err != nil {
		return nil, err
	}
	if maxAngle <= 0 {
		maxAngle = DefaultMaxAngle
	}
	return &Straightener{
		orient:   orient,
		MaxAngle: maxAngle,
	}, nil
}

// Straighten returns either img itself (if nothing needed to change), or a straightened copy.
// The name is only used for verbose output.
func (s *Straightener) Straighten(name string, img *cimg.Image) (*cimg.Image, error) {
	angle := s.imageAngle(img)
	s.verbose("%v: %.1f\n", name, angle)
	fixed := img
	if angle != 0 {
		fixed = rotateImage(img, -angle)
	}
	return s.orient.MakeUpright(fixed)
}

func (s *Straightener) imageAngle(img *cimg.Image) float64 {
	params := docangle.NewWhiteLinesParams()
	params.Include90Degrees = false
	params.MinDeltaDegrees = -s.MaxAngle
	params.MaxDeltaDegrees = s.MaxAngle
	_, angle := docangle.GetAngleWhiteLines(makeDocAngleImage(img), params)
	return angle
}

func (s *Straightener) verbose(format string, args ...interface{}) {
	if s.Verbose && s.Log != nil {
		fmt.Fprintf(s.Log, format, args...)
	}
}

// Rotate img by angle degrees, into a new image of rotatedSize()
func rotateImage(img *cimg.Image, angle float64) *cimg.Image {
	width, height := rotatedSize(img.Width, img.Height, angle)
	fixed := cimg.NewImage(width, height, img.Format)
	cimg.Rotate(img, fixed, angle*math.Pi/180, nil)
	return fixed
}

// Returns the dimensions of an image of width x height after rotating it by angle degrees
func rotatedSize(width, height int, angle float64) (int, int) {
	const cropLimitDegrees = 5
	if math.Abs(angle) <= cropLimitDegrees {
		// Small angles just clip, because the camera or scanner leaves a margin around the paper
		return width, height
	} else if math.Abs(angle-90) <= cropLimitDegrees || math.Abs(angle+90) <= cropLimitDegrees {
		// Same as above, but for landscape pages
		return height, width
	}
	cosA := math.Abs(math.Cos(angle * math.Pi / 180))
	sinA := math.Abs(math.Sin(angle * math.Pi / 180))
	newWidth := int(float64(width)*cosA + float64(height)*sinA)
	newHeight := int(float64(width)*sinA + float64(height)*cosA)
	return newWidth, newHeight
}

func makeDocAngleImage(img *cimg.Image) *docangle.Image {
	img = img.ToGray()
	return &docangle.Image{
		Pixels: img.Pixels,
		Width:  img.Width,
		Height: img.Height,
	}
}

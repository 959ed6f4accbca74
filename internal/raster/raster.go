// Package raster turns images into point sets and paints cluster labels back
// onto pixels.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"math/rand"
	"os"

	"github.com/TrevorS/dbscan/internal/errors"
)

// DefaultThreshold is the intensity a pixel must exceed to become a point.
const DefaultThreshold = 128

// Grid is the set of bright pixels of an image as 2-D points (row, col),
// relative to the image origin. It implements dbscan.Source.
type Grid struct {
	Bounds image.Rectangle
	coords []float64
}

// Len returns the number of extracted points.
func (g *Grid) Len() int { return len(g.coords) / 2 }

// At returns point i as (row, col).
func (g *Grid) At(i int) []float64 { return g.coords[2*i : 2*i+2 : 2*i+2] }

// Pixel returns the image coordinates of point i.
func (g *Grid) Pixel(i int) image.Point {
	p := g.At(i)
	return image.Pt(g.Bounds.Min.X+int(p[1]), g.Bounds.Min.Y+int(p[0]))
}

// Extract scans img row by row and returns every pixel whose gray intensity
// is strictly greater than threshold.
func Extract(img image.Image, threshold uint8) *Grid {
	b := img.Bounds()
	g := &Grid{Bounds: b}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y > threshold {
				g.coords = append(g.coords, float64(y-b.Min.Y), float64(x-b.Min.X))
			}
		}
	}
	return g
}

// Speckle returns a copy of img in which round(fraction·pixels) randomly
// chosen pixels are set to white. Pixels may be chosen more than once.
func Speckle(img image.Image, fraction float64, rng *rand.Rand) (*image.RGBA, error) {
	if fraction < 0 || fraction > 1 {
		return nil, errors.Newf("raster: speckle fraction must be in [0, 1], got %v", fraction)
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	if b.Empty() {
		return out, nil
	}
	count := int(fraction*float64(b.Dx()*b.Dy()) + 0.5)
	for k := 0; k < count; k++ {
		x := b.Min.X + rng.Intn(b.Dx())
		y := b.Min.Y + rng.Intn(b.Dy())
		out.Set(x, y, color.White)
	}
	return out, nil
}

// Load decodes a PNG, JPEG or GIF image from path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %s", path)
	}
	return img, nil
}

// SavePNG encodes img as PNG to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

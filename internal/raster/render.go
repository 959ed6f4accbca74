package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/errors"
)

// DefaultNoiseGray is the gray level used for noise pixels.
const DefaultNoiseGray = 50

// ClusterColor returns the color of cluster id out of numClusters: fully
// saturated, with the hue spread evenly over the color wheel.
func ClusterColor(id dbscan.ClusterID, numClusters int) color.RGBA {
	hue := 0.0
	if numClusters > 0 {
		hue = math.Mod(float64(id)/float64(numClusters)*360, 360)
	}
	r, g, b := colorful.Hsv(hue, 1, 1).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Render paints every point of grid on a black canvas the size of the grid's
// image: clustered points in their cluster color, noise in gray noiseGray.
// labels and numClusters come from a run over grid; a label count that does
// not match the grid is an error.
func Render(grid *Grid, labels []dbscan.ClusterID, numClusters int, noiseGray uint8) (*image.RGBA, error) {
	if len(labels) != grid.Len() {
		return nil, errors.Newf("raster: %d labels for %d points", len(labels), grid.Len())
	}
	out := image.NewRGBA(grid.Bounds)
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	noise := color.RGBA{R: noiseGray, G: noiseGray, B: noiseGray, A: 255}
	palette := make([]color.RGBA, numClusters+1)
	palette[dbscan.Noise] = noise
	for id := 1; id <= numClusters; id++ {
		palette[id] = ClusterColor(dbscan.ClusterID(id), numClusters)
	}

	for i, l := range labels {
		if int(l) > numClusters {
			return nil, errors.Newf("raster: point %d has label %d, want at most %d", i, l, numClusters)
		}
		px := grid.Pixel(i)
		out.SetRGBA(px.X, px.Y, palette[l])
	}
	return out, nil
}

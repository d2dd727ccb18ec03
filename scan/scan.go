// Package scan turns decoded frames into per-key brightness readings and
// pressed-key states.
package scan

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"

	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
)

// DefaultThreshold is the brightness percentage above which a key counts as
// pressed.
const DefaultThreshold = 70.0

// GeometryMismatchError reports a frame whose dimensions disagree with the
// configured geometry. It is fatal for the run: it means the upstream source
// is misconfigured, not that one frame is noisy.
type GeometryMismatchError struct {
	WantWidth  int
	WantHeight int
	GotWidth   int
	GotHeight  int
}

func (e *GeometryMismatchError) Error() string {
	return fmt.Sprintf("frame is %dx%d, configured geometry is %dx%d",
		e.GotWidth, e.GotHeight, e.WantWidth, e.WantHeight)
}

// Analyzer computes per-key brightness from a single pixel row of each frame.
// The pressed-key highlight sits at a fixed vertical position near the top of
// the frame, so one row is enough and avoids cross-talk from the rest of the
// picture.
type Analyzer struct {
	Table       *keyboard.Table
	FrameHeight int
	SampleRow   int
}

func NewAnalyzer(tab *keyboard.Table, frameHeight, sampleRow int) *Analyzer {
	return &Analyzer{Table: tab, FrameHeight: frameHeight, SampleRow: sampleRow}
}

// Brightness computes one brightness percentage per key slice: the mean
// Rec.601 luminance of the sample row's pixels within the slice, scaled to
// 0-100. Pure function of the frame and the geometry.
func (a *Analyzer) Brightness(img image.Image) (model.BrightnessVector, error) {
	var bv model.BrightnessVector

	b := img.Bounds()
	if b.Dx() != a.Table.FrameWidth || b.Dy() != a.FrameHeight {
		return bv, &GeometryMismatchError{
			WantWidth:  a.Table.FrameWidth,
			WantHeight: a.FrameHeight,
			GotWidth:   b.Dx(),
			GotHeight:  b.Dy(),
		}
	}

	y := b.Min.Y + a.SampleRow
	for i, key := range a.Table.Keys {
		samples := make([]float64, 0, key.XEnd-key.XStart)
		for x := key.XStart; x < key.XEnd; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, y).RGBA()
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
			samples = append(samples, lum/65535.0*100.0)
		}
		bv[i] = stat.Mean(samples, nil)
	}
	return bv, nil
}

// States thresholds a brightness vector into pressed-key states. Strictly
// greater than: a key sitting exactly on the threshold is not pressed. No
// hysteresis and no temporal smoothing; each frame stands alone.
func States(bv model.BrightnessVector, threshold float64) model.KeyStateVector {
	var ks model.KeyStateVector
	for i, v := range bv {
		ks[i] = v > threshold
	}
	return ks
}

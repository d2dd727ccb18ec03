package keyboard

import (
	"fmt"

	"github.com/keyscribe/keyscribe/model"
)

// Relative slice weights. White keys get wider slices than black keys to
// mirror real key spacing; at 1920px this yields 26-27px white and 15-16px
// black slices.
const (
	whiteWeight = 5
	blackWeight = 3
)

// ConfigurationError reports slice geometry that cannot partition the frame
// width. It aborts a run before any frame is processed, since misaligned
// slices silently corrupt every downstream brightness reading.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "keyboard geometry: " + e.Reason
}

// Key is one piano key with its slice of the frame. The slice is the
// half-open pixel column range [XStart, XEnd).
type Key struct {
	Index     int
	Label     string
	PitchRank int
	XStart    int
	XEnd      int
}

// Table holds the 88 key slices for one frame width. Slices are contiguous
// and partition the width exactly.
type Table struct {
	FrameWidth int
	Keys       [model.NumKeys]Key
}

func weight(index int) int {
	if IsBlack(index) {
		return blackWeight
	}
	return whiteWeight
}

// DefaultWidths derives per-key slice widths for a frame width from the key
// weights by cumulative rounding, so the widths always sum to the width
// exactly.
func DefaultWidths(frameWidth int) []int {
	total := 0
	for i := 0; i < model.NumKeys; i++ {
		total += weight(i)
	}

	widths := make([]int, model.NumKeys)
	cum, prevEdge := 0, 0
	for i := 0; i < model.NumKeys; i++ {
		cum += weight(i)
		edge := (cum*frameWidth + total/2) / total
		widths[i] = edge - prevEdge
		prevEdge = edge
	}
	return widths
}

// NewTable builds the geometry table for a frame width using the default
// weighted widths.
func NewTable(frameWidth int) (*Table, error) {
	return NewTableWithWidths(frameWidth, DefaultWidths(frameWidth))
}

// NewTableWithWidths builds a geometry table from explicit per-key widths.
// The widths must be positive and sum to the frame width.
func NewTableWithWidths(frameWidth int, widths []int) (*Table, error) {
	if frameWidth <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("frame width must be positive, got %d", frameWidth)}
	}
	if len(widths) != model.NumKeys {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("need %d slice widths, got %d", model.NumKeys, len(widths))}
	}

	sum := 0
	for i, w := range widths {
		if w <= 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("slice width for key %d must be positive, got %d", i, w)}
		}
		sum += w
	}
	if sum != frameWidth {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("slice widths sum to %d, want frame width %d", sum, frameWidth)}
	}

	t := &Table{FrameWidth: frameWidth}
	x := 0
	for i := 0; i < model.NumKeys; i++ {
		t.Keys[i] = Key{
			Index:     i,
			Label:     Label(i),
			PitchRank: i,
			XStart:    x,
			XEnd:      x + widths[i],
		}
		x += widths[i]
	}
	return t, nil
}

// Slices returns the JSON view of the table for the geometry endpoint.
func (t *Table) Slices() []model.KeySlice {
	res := make([]model.KeySlice, 0, model.NumKeys)
	for _, k := range t.Keys {
		res = append(res, model.KeySlice{
			Index:  k.Index,
			Label:  k.Label,
			XStart: k.XStart,
			XEnd:   k.XEnd,
		})
	}
	return res
}

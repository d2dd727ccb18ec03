package scan

import (
	"image"
	"image/color"
	"testing"

	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
	"github.com/stretchr/testify/assert"
)

// uniformTable builds a table where every key slice is 4px wide, so test
// images stay small.
func uniformTable(t *testing.T) *keyboard.Table {
	t.Helper()
	widths := make([]int, model.NumKeys)
	for i := range widths {
		widths[i] = 4
	}
	tab, err := keyboard.NewTableWithWidths(4*model.NumKeys, widths)
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestBrightnessReadsOnlyTopRow(t *testing.T) {
	tab := uniformTable(t)
	img := image.NewGray(image.Rect(0, 0, tab.FrameWidth, 2))

	// Light key 5 on the sample row; light everything on the row below.
	for x := tab.Keys[5].XStart; x < tab.Keys[5].XEnd; x++ {
		img.SetGray(x, 0, color.Gray{Y: 255})
	}
	for x := 0; x < tab.FrameWidth; x++ {
		img.SetGray(x, 1, color.Gray{Y: 255})
	}

	a := NewAnalyzer(tab, 2, 0)
	bv, err := a.Brightness(img)
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	assert.InDelta(100.0, bv[5], 0.5)
	for i := range bv {
		if i == 5 {
			continue
		}
		assert.InDelta(0.0, bv[i], 0.5, "key %d should be dark", i)
	}
}

func TestBrightnessIsPure(t *testing.T) {
	tab := uniformTable(t)
	img := image.NewGray(image.Rect(0, 0, tab.FrameWidth, 1))
	for x := 0; x < tab.FrameWidth; x += 3 {
		img.SetGray(x, 0, color.Gray{Y: 200})
	}

	a := NewAnalyzer(tab, 1, 0)
	first, err := a.Brightness(img)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Brightness(img)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, first, second)
}

func TestBrightnessRejectsWrongDimensions(t *testing.T) {
	tab := uniformTable(t)
	a := NewAnalyzer(tab, 1, 0)

	cases := []struct {
		name string
		img  image.Image
	}{
		{"wrong width", image.NewGray(image.Rect(0, 0, tab.FrameWidth-1, 1))},
		{"wrong height", image.NewGray(image.Rect(0, 0, tab.FrameWidth, 4))},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Brightness(tt.img)
			var gmErr *GeometryMismatchError
			assert.ErrorAs(t, err, &gmErr)
		})
	}
}

func TestStatesThresholdIsStrict(t *testing.T) {
	var bv model.BrightnessVector
	bv[0] = 70.0
	bv[1] = 70.0001
	bv[2] = 69.9999
	bv[3] = 100.0

	ks := States(bv, 70.0)

	assert := assert.New(t)
	assert.False(ks[0], "exactly at the threshold is not pressed")
	assert.True(ks[1])
	assert.False(ks[2])
	assert.True(ks[3])
	assert.False(ks[87])
}

func TestStatesIsDeterministic(t *testing.T) {
	var bv model.BrightnessVector
	for i := range bv {
		bv[i] = float64(i) * 100.0 / float64(model.NumKeys)
	}
	assert.Equal(t, States(bv, 70.0), States(bv, 70.0))
}

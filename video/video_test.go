package video

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFramePNG(t *testing.T, path string, shade uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 2))
	for x := 0; x < 8; x++ {
		img.SetGray(x, 0, color.Gray{Y: shade})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestSourceYieldsFramesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFramePNG(t, filepath.Join(dir, "frame_0001.png"), 10)
	writeFramePNG(t, filepath.Join(dir, "frame_0000.png"), 0)
	writeFramePNG(t, filepath.Join(dir, "frame_0002.png"), 20)

	src, err := NewSource(dir)
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	assert.Equal(3, src.Len())

	for want := 0; want < 3; want++ {
		frame, ok, err := src.Next()
		assert.NoError(err)
		assert.True(ok)
		assert.Equal(want, frame.Index)
		assert.Equal(8, frame.Image.Bounds().Dx())
	}

	_, ok, err := src.Next()
	assert.NoError(err)
	assert.False(ok, "stream exhausted")
}

func TestNewSourceEmptyDir(t *testing.T) {
	_, err := NewSource(t.TempDir())
	assert.Error(t, err)
}

func TestNextFailsOnCorruptFrame(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "frame_0000.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = src.Next()
	assert.Error(t, err)
}

//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keyscribe/keyscribe/cmd"
	"github.com/keyscribe/keyscribe/config"
	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
)

const (
	sliceWidth = 4
	frameW     = sliceWidth * model.NumKeys
	frameH     = 2
)

// testConfig shrinks the geometry to 4px slices so frames stay tiny.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Video.FrameWidth = frameW
	cfg.Video.FrameHeight = frameH
	cfg.Video.FPS = 25
	cfg.Output.BaseDir = t.TempDir()
	cfg.Output.WriteBrightness = true
	widths := make([]int, model.NumKeys)
	for i := range widths {
		widths[i] = sliceWidth
	}
	cfg.Detect.SliceWidths = widths
	return cfg
}

// writeFrame renders one synthetic frame with the named keys highlighted on
// the top row.
func writeFrame(t *testing.T, path string, labels ...string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, frameW, frameH))
	for _, label := range labels {
		idx, ok := keyboard.Rank(label)
		if !ok {
			t.Fatalf("unknown label %s", label)
		}
		for x := idx * sliceWidth; x < (idx+1)*sliceWidth; x++ {
			img.SetGray(x, 0, color.Gray{Y: 255})
		}
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

func TestTranscribeEndToEnd(t *testing.T) {
	cfg := testConfig(t)

	framesDir := t.TempDir()
	writeFrame(t, filepath.Join(framesDir, "frame_0000.png"), "C4")
	writeFrame(t, filepath.Join(framesDir, "frame_0001.png"), "C4", "E3")
	writeFrame(t, filepath.Join(framesDir, "frame_0002.png"))

	runDir, err := cmd.Transcribe(cfg, framesDir)
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)

	sheetData, err := os.ReadFile(filepath.Join(runDir, model.SheetFile))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal("C4  --- ---\n--- E3  ---\n", string(sheetData))

	csvData, err := os.ReadFile(filepath.Join(runDir, model.CSVFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(csvData), "\n"), "\n")
	assert.Len(lines, 4, "header plus one row per frame")
	assert.True(strings.HasPrefix(lines[0], "timestamp,A0,A#0,B0,C1"))
	assert.True(strings.HasSuffix(lines[0], ",C8"))
	assert.True(strings.HasPrefix(lines[1], "00:00:00.000000,"))
	assert.True(strings.HasPrefix(lines[2], "00:00:00.040000,"))

	c4, _ := keyboard.Rank("C4")
	row1 := strings.Split(lines[1], ",")
	assert.Equal("1", row1[c4+1], "C4 column set in frame 0")

	statesData, err := os.ReadFile(filepath.Join(runDir, model.StatesFile))
	if err != nil {
		t.Fatal(err)
	}
	stateLines := strings.Split(strings.TrimRight(string(statesData), "\n"), "\n")
	assert.Len(stateLines, 3)
	assert.True(strings.HasSuffix(stateLines[0], "] 00:00:00.000000"))
	assert.False(strings.Contains(stateLines[2], "1"), "frame 2 has no pressed keys")

	if _, err := os.Stat(filepath.Join(runDir, model.BrightnessFile)); err != nil {
		t.Errorf("brightness artifact missing: %v", err)
	}

	manifestData, err := os.ReadFile(filepath.Join(runDir, model.ManifestFile))
	if err != nil {
		t.Fatal(err)
	}
	var manifest model.RunManifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		t.Fatal(err)
	}
	assert.Equal(3, manifest.Frames)
	assert.Equal(2, manifest.MaxPolyphony)
	assert.Equal(25, manifest.FPS)
	assert.Equal(filepath.Base(runDir), manifest.ID)
}

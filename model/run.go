package model

import "time"

// Artifact filenames written into every run directory.
const (
	StatesFile     = "states.txt"
	BrightnessFile = "brightness.txt"
	CSVFile        = "timeline.csv"
	SheetFile      = "sheet.txt"
	TimelineFile   = "timeline.dat"
	ManifestFile   = "run.json"
)

// RunManifest describes one transcription run. It is written as run.json next
// to the run's artifacts.
type RunManifest struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Frames       int       `json:"frames"`
	FPS          int       `json:"fps"`
	FrameWidth   int       `json:"frame_width"`
	FrameHeight  int       `json:"frame_height"`
	Threshold    float64   `json:"threshold"`
	MaxPolyphony int       `json:"max_polyphony"`
}

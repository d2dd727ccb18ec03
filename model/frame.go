package model

import (
	"image"
	"time"
)

// NumKeys is the number of keys on a full piano, A0 through C8.
const NumKeys = 88

// Frame is one decoded video frame, identified by its position in the stream.
type Frame struct {
	Index int
	Image image.Image
}

// BrightnessVector holds one brightness percentage (0-100) per key for a
// single frame, indexed by key index.
type BrightnessVector [NumKeys]float64

// KeyStateVector holds one pressed/released state per key for a single frame.
type KeyStateVector [NumKeys]bool

// Entry is one processed frame folded into the timeline.
type Entry struct {
	FrameIndex int
	Timestamp  time.Duration
	States     KeyStateVector
	Brightness BrightnessVector
}

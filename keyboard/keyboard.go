// Package keyboard maps the 88 piano keys to note labels, pitch ranks and
// per-key vertical slices of a video frame.
package keyboard

import (
	"fmt"
	"strings"

	"github.com/keyscribe/keyscribe/model"
)

// noteNames uses sharps only; labels like "C#4" are canonical.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// A0 sits 9 semitones above C0, so key index i is semitone i+9 counted from C0.
const lowOffset = 9

// Label returns the note label for a key index, "A0" through "C8".
func Label(index int) string {
	semis := index + lowOffset
	return fmt.Sprintf("%s%d", noteNames[semis%12], semis/12)
}

// IsBlack reports whether a key index is a black (sharp) key.
func IsBlack(index int) bool {
	return strings.Contains(Label(index), "#")
}

var rankByLabel = func() map[string]int {
	m := make(map[string]int, model.NumKeys)
	for i := 0; i < model.NumKeys; i++ {
		m[Label(i)] = i
	}
	return m
}()

// Rank returns the pitch rank of a note label. Rank is the key index itself:
// strictly ascending in musical pitch from A0 (0) to C8 (87). Labels must
// never be compared lexically ("C#4" ranks above "C4", which ranks above
// "B3").
func Rank(label string) (int, bool) {
	r, ok := rankByLabel[label]
	return r, ok
}

// Package timeline accumulates per-frame key states in frame order and
// projects them into the raw text and CSV output formats.
package timeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
)

// SequenceError reports an entry appended out of timestamp order. That is a
// caller bug, not transient noise, and aborts the run.
type SequenceError struct {
	Prev time.Duration
	Next time.Duration
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("timeline append out of order: %s after %s",
		FormatTimestamp(e.Next), FormatTimestamp(e.Prev))
}

// Mode selects what the raw text emitter prints per key.
type Mode int

const (
	// ModeStates prints each key as 0/1.
	ModeStates Mode = iota
	// ModeBrightness prints each key's raw brightness percentage.
	ModeBrightness
)

// Timeline is the ordered sequence of processed frames. Single writer during
// accumulation, read-only once the frame stream ends.
type Timeline struct {
	entries []model.Entry
}

func New() *Timeline {
	return &Timeline{}
}

// FromEntries rebuilds a timeline from saved entries, e.g. a run's
// timeline.dat.
func FromEntries(entries []model.Entry) *Timeline {
	return &Timeline{entries: entries}
}

// Append adds one processed frame. Timestamps must be strictly increasing.
func (t *Timeline) Append(e model.Entry) error {
	if n := len(t.entries); n > 0 && e.Timestamp <= t.entries[n-1].Timestamp {
		return &SequenceError{Prev: t.entries[n-1].Timestamp, Next: e.Timestamp}
	}
	t.entries = append(t.entries, e)
	return nil
}

func (t *Timeline) Len() int {
	return len(t.entries)
}

// Entries exposes the accumulated frames to the renderers. Callers must not
// mutate the returned slice.
func (t *Timeline) Entries() []model.Entry {
	return t.entries
}

// Timestamp derives a frame's timestamp from its index and the fixed frame
// rate.
func Timestamp(frameIndex, fps int) time.Duration {
	return time.Duration(frameIndex) * time.Second / time.Duration(fps)
}

// FormatTimestamp renders a timestamp as HH:MM:SS.ffffff with microsecond
// precision.
func FormatTimestamp(d time.Duration) string {
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	us := int(d / time.Microsecond)
	return fmt.Sprintf("%02d:%02d:%02d.%06d", h, m, s, us)
}

// WriteRaw emits one line per frame: the 88 values in brackets followed by
// the timestamp, e.g. "[0, 1, ..., 0] 00:00:01.234567". A read-only
// projection; calling it twice yields identical bytes.
func (t *Timeline) WriteRaw(w io.Writer, mode Mode) error {
	vals := make([]string, model.NumKeys)
	for _, e := range t.entries {
		for i := 0; i < model.NumKeys; i++ {
			switch mode {
			case ModeBrightness:
				vals[i] = strconv.FormatFloat(e.Brightness[i], 'f', 2, 64)
			default:
				if e.States[i] {
					vals[i] = "1"
				} else {
					vals[i] = "0"
				}
			}
		}
		_, err := fmt.Fprintf(w, "[%s] %s\n", strings.Join(vals, ", "), FormatTimestamp(e.Timestamp))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV emits a header of "timestamp" plus the 88 note labels in ascending
// pitch order, then one 0/1 row per frame. Idempotent like WriteRaw.
func (t *Timeline) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, model.NumKeys+1)
	header = append(header, "timestamp")
	for i := 0; i < model.NumKeys; i++ {
		header = append(header, keyboard.Label(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, model.NumKeys+1)
	for _, e := range t.entries {
		row[0] = FormatTimestamp(e.Timestamp)
		for i := 0; i < model.NumKeys; i++ {
			if e.States[i] {
				row[i+1] = "1"
			} else {
				row[i+1] = "0"
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// MaxPolyphony returns the largest number of simultaneously pressed keys in
// any single frame.
func (t *Timeline) MaxPolyphony() int {
	max := 0
	for _, e := range t.entries {
		n := 0
		for _, on := range e.States {
			if on {
				n++
			}
		}
		if n > max {
			max = n
		}
	}
	return max
}

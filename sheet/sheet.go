// Package sheet renders a timeline of key states into time-aligned ASCII
// notation: columns are frames, rows hold simultaneous notes ordered highest
// pitch first, and repeated notes collapse into a continuation marker.
package sheet

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
)

// Marker fills three kinds of cell: a note unchanged from the previous
// column, a column with no note in that row, and padding rows below a
// column's active notes. The three are indistinguishable in the output; that
// is a documented limitation of the format.
const Marker = "---"

const cellWidth = 3

// ExtractColumns is the first pass: per timeline entry, the labels of the
// active keys sorted by descending pitch rank. Musical order, never lexical
// ("C#4" sorts above "C4" and above "B3").
func ExtractColumns(entries []model.Entry) [][]string {
	cols := make([][]string, 0, len(entries))
	for _, e := range entries {
		var labels []string
		for i := 0; i < model.NumKeys; i++ {
			if e.States[i] {
				labels = append(labels, keyboard.Label(i))
			}
		}
		sort.Slice(labels, func(i, j int) bool {
			ri, _ := keyboard.Rank(labels[i])
			rj, _ := keyboard.Rank(labels[j])
			return ri > rj
		})
		cols = append(cols, labels)
	}
	return cols
}

// Grid is the laid-out sheet. Cells[r][c] holds the r-th highest note of
// column c, or "" where that column has fewer active notes.
type Grid struct {
	Rows  int
	Cols  int
	Cells [][]string
}

// Layout is the second pass: the row count is the maximum polyphony across
// all columns, which is why the whole timeline must be known before any row
// can be rendered.
func Layout(cols [][]string) *Grid {
	rows := 0
	for _, c := range cols {
		if len(c) > rows {
			rows = len(c)
		}
	}

	g := &Grid{Rows: rows, Cols: len(cols)}
	g.Cells = make([][]string, rows)
	for r := range g.Cells {
		row := make([]string, len(cols))
		for c, labels := range cols {
			if r < len(labels) {
				row[c] = labels[r]
			}
		}
		g.Cells[r] = row
	}
	return g
}

// Collapse rewrites one row left to right: a label identical to the previous
// column's collapses into the marker, and an empty cell becomes the marker
// while resetting the comparison, so a note resuming after silence renders
// fresh. The first column is never collapsed. Pure function; no state is
// carried across rows.
func Collapse(row []string) []string {
	out := make([]string, len(row))
	prev := ""
	for i, label := range row {
		switch {
		case label == "":
			out[i] = Marker
			prev = ""
		case label == prev:
			out[i] = Marker
		default:
			out[i] = pad(label)
			prev = label
		}
	}
	return out
}

// pad normalizes a label to exactly three characters ("A0" -> "A0 ").
func pad(label string) string {
	if len(label) >= cellWidth {
		return label
	}
	return label + strings.Repeat(" ", cellWidth-len(label))
}

// Render writes the collapsed grid row-major: one output line per row, cells
// separated by a single space so all rows align in a fixed-width font. Time
// flows left to right, pitch top to bottom.
func Render(w io.Writer, g *Grid) error {
	for r := 0; r < g.Rows; r++ {
		if _, err := fmt.Fprintln(w, strings.Join(Collapse(g.Cells[r]), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Write runs both passes over a finished timeline and renders the result.
func Write(w io.Writer, entries []model.Entry) error {
	return Render(w, Layout(ExtractColumns(entries)))
}

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
	"github.com/keyscribe/keyscribe/timeline"
	"github.com/keyscribe/keyscribe/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <run-dir>",
	Short: "Prints statistics for a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(args[0])
	},
}

type keyCount struct {
	label  string
	frames int
}

func report(runDir string) error {
	entries, err := util.ReadBinary[[]model.Entry](filepath.Join(runDir, model.TimelineFile))
	if err != nil {
		return err
	}

	polyphony := make([]float64, len(entries))
	perKey := make([]int, model.NumKeys)
	maxPoly := 0
	for fi, e := range entries {
		n := 0
		for k, on := range e.States {
			if on {
				n++
				perKey[k]++
			}
		}
		polyphony[fi] = float64(n)
		if n > maxPoly {
			maxPoly = n
		}
	}

	var pressed []keyCount
	for k, frames := range perKey {
		if frames > 0 {
			pressed = append(pressed, keyCount{label: keyboard.Label(k), frames: frames})
		}
	}
	sort.Slice(pressed, func(i, j int) bool {
		return pressed[i].frames > pressed[j].frames
	})

	fmt.Printf("frames: %v\n", len(entries))
	if len(entries) > 0 {
		fmt.Printf("duration: %v\n", timeline.FormatTimestamp(entries[len(entries)-1].Timestamp))
		fmt.Printf("mean polyphony: %.2f\n", stat.Mean(polyphony, nil))
	}
	fmt.Printf("max polyphony: %v\n", maxPoly)
	fmt.Printf("keys pressed: %v of %v\n", len(pressed), model.NumKeys)
	fmt.Printf("total key-frames: %v\n", util.Sum(perKey))

	top := pressed
	if len(top) > 5 {
		top = top[:5]
	}
	for _, kc := range top {
		fmt.Printf("  %v pressed in %v frames\n", kc.label, kc.frames)
	}
	return nil
}

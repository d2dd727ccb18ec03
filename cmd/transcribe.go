package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/keyscribe/keyscribe/config"
	"github.com/keyscribe/keyscribe/keyboard"
	"github.com/keyscribe/keyscribe/model"
	"github.com/keyscribe/keyscribe/scan"
	"github.com/keyscribe/keyscribe/sheet"
	"github.com/keyscribe/keyscribe/timeline"
	"github.com/keyscribe/keyscribe/util"
	"github.com/keyscribe/keyscribe/video"
)

func init() {
	rootCmd.AddCommand(transcribeCmd)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <frames-dir>",
	Short: "Processes decoded frames into key states, CSV and sheet music",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runDir, err := Transcribe(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Run saved to %v\n", runDir)
		return nil
	},
}

// newTable builds the geometry table for the configured frame width, using
// explicit slice widths from the config when present.
func newTable(cfg config.Config) (*keyboard.Table, error) {
	if len(cfg.Detect.SliceWidths) > 0 {
		return keyboard.NewTableWithWidths(cfg.Video.FrameWidth, cfg.Detect.SliceWidths)
	}
	return keyboard.NewTable(cfg.Video.FrameWidth)
}

// Transcribe runs the full pipeline over a directory of decoded frames and
// writes all artifacts into a fresh run directory, whose path it returns.
func Transcribe(cfg config.Config, framesDir string) (string, error) {
	tab, err := newTable(cfg)
	if err != nil {
		return "", err
	}
	analyzer := scan.NewAnalyzer(tab, cfg.Video.FrameHeight, cfg.Detect.SampleRow)

	src, err := video.NewSource(framesDir)
	if err != nil {
		return "", err
	}

	tl := timeline.New()
	total := src.Len()
	for {
		frame, ok, err := src.Next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}

		bv, err := analyzer.Brightness(frame.Image)
		if err != nil {
			return "", err
		}
		entry := model.Entry{
			FrameIndex: frame.Index,
			Timestamp:  timeline.Timestamp(frame.Index, cfg.Video.FPS),
			States:     scan.States(bv, cfg.Detect.Threshold),
			Brightness: bv,
		}
		if err := tl.Append(entry); err != nil {
			return "", err
		}

		if (frame.Index+1)%100 == 0 || frame.Index+1 == total {
			fmt.Printf("Processed %v of %v frames\n", frame.Index+1, total)
		}
	}

	runID := uuid.New().String()
	runDir := filepath.Join(cfg.Output.BaseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}

	if err := writeArtifact(runDir, model.StatesFile, func(w io.Writer) error {
		return tl.WriteRaw(w, timeline.ModeStates)
	}); err != nil {
		return "", err
	}
	if cfg.Output.WriteBrightness {
		if err := writeArtifact(runDir, model.BrightnessFile, func(w io.Writer) error {
			return tl.WriteRaw(w, timeline.ModeBrightness)
		}); err != nil {
			return "", err
		}
	}
	if err := writeArtifact(runDir, model.CSVFile, tl.WriteCSV); err != nil {
		return "", err
	}
	if err := writeArtifact(runDir, model.SheetFile, func(w io.Writer) error {
		return sheet.Write(w, tl.Entries())
	}); err != nil {
		return "", err
	}
	if err := util.CreateBinary(filepath.Join(runDir, model.TimelineFile), tl.Entries()); err != nil {
		return "", err
	}

	manifest := model.RunManifest{
		ID:           runID,
		CreatedAt:    time.Now().UTC(),
		Frames:       tl.Len(),
		FPS:          cfg.Video.FPS,
		FrameWidth:   cfg.Video.FrameWidth,
		FrameHeight:  cfg.Video.FrameHeight,
		Threshold:    cfg.Detect.Threshold,
		MaxPolyphony: tl.MaxPolyphony(),
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, model.ManifestFile), data, 0644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}

	return runDir, nil
}

func writeArtifact(runDir, name string, write func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return fmt.Errorf("creating %v: %w", name, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %v: %w", name, err)
	}
	return nil
}

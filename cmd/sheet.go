package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keyscribe/keyscribe/model"
	"github.com/keyscribe/keyscribe/sheet"
	"github.com/keyscribe/keyscribe/util"
)

func init() {
	rootCmd.AddCommand(sheetCmd)
}

var sheetCmd = &cobra.Command{
	Use:   "sheet <run-dir>",
	Short: "Re-renders the ASCII sheet from a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := util.ReadBinary[[]model.Entry](filepath.Join(args[0], model.TimelineFile))
		if err != nil {
			return err
		}
		return sheet.Write(os.Stdout, entries)
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Prints the 88-key slice geometry for the configured frame width",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := newTable(cfg)
		if err != nil {
			return err
		}
		for _, k := range tab.Keys {
			fmt.Printf("%2d  %-3s  [%4d, %4d)  width %d\n",
				k.Index, k.Label, k.XStart, k.XEnd, k.XEnd-k.XStart)
		}
		return nil
	},
}

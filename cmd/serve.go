package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves saved runs and the slice geometry over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := newTable(cfg)
		if err != nil {
			return err
		}
		handler := NewRouter(cfg.Output.BaseDir, tab)
		fmt.Printf("Serving runs from %v on %v\n", cfg.Output.BaseDir, serveAddr)
		log.Fatal(http.ListenAndServe(serveAddr, handler))
		return nil
	},
}

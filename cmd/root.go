package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keyscribe/keyscribe/config"
)

var (
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "keyscribe",
	Short: "Transcribes piano performance videos into symbolic music data",
	Long: `keyscribe reads the decoded frames of a piano performance video,
detects which keys are visually pressed in each frame, and writes the result
as per-frame key states, a CSV timeline and ASCII sheet music.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyscribe/keyscribe/upload"
)

var (
	publishBucket string
	publishPrefix string
)

func init() {
	publishCmd.Flags().StringVar(&publishBucket, "bucket", "", "S3 bucket to upload to (required)")
	publishCmd.Flags().StringVar(&publishPrefix, "prefix", "keyscribe", "key prefix inside the bucket")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish <run-dir>",
	Short: "Uploads a run's artifacts to S3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if publishBucket == "" {
			return fmt.Errorf("--bucket is required")
		}
		return upload.PublishRun(publishBucket, publishPrefix, args[0])
	},
}

// Package upload pushes a run's artifacts to S3 so they can be shared or
// fetched by preview frontends.
package upload

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var contentTypes = map[string]string{
	".txt":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
}

// PublishRun uploads every regular file in a run directory to
// s3://<bucket>/<prefix>/<run-id>/. The run id is the directory's base name.
func PublishRun(bucket, prefix, runDir string) error {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return fmt.Errorf("creating AWS session: %w", err)
	}
	client := s3.New(sess)

	entries, err := os.ReadDir(runDir)
	if err != nil {
		return fmt.Errorf("reading run dir: %w", err)
	}

	runID := filepath.Base(runDir)
	uploaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		f, err := os.Open(filepath.Join(runDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("opening %v: %w", entry.Name(), err)
		}

		key := path.Join(prefix, runID, entry.Name())
		input := &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   f,
		}
		if ct, ok := contentTypes[filepath.Ext(entry.Name())]; ok {
			input.ContentType = aws.String(ct)
		}

		_, err = client.PutObject(input)
		f.Close()
		if err != nil {
			return fmt.Errorf("uploading %v: %w", key, err)
		}

		fmt.Printf("Uploaded s3://%v/%v\n", bucket, key)
		uploaded++
	}

	if uploaded == 0 {
		return fmt.Errorf("no artifacts found in %v", runDir)
	}
	return nil
}

// Package video hands decoded frames to the pipeline. Acquiring and
// normalizing the source video (download, resize, frame-rate conversion)
// happens upstream; this package only reads the already-decoded frame images
// from a directory, in filename order.
package video

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/keyscribe/keyscribe/model"
	"github.com/keyscribe/keyscribe/util"
)

// Source yields frames one at a time. Frame index equals position in the
// sorted file listing.
type Source struct {
	paths []string
	next  int
}

func NewSource(dir string) (*Source, error) {
	paths, err := util.GatherFramePaths(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frame images found in %v", dir)
	}
	return &Source{paths: paths}, nil
}

// Len returns the total number of frames.
func (s *Source) Len() int {
	return len(s.paths)
}

// Next decodes and returns the next frame. The second return is false once
// the stream is exhausted.
func (s *Source) Next() (model.Frame, bool, error) {
	if s.next >= len(s.paths) {
		return model.Frame{}, false, nil
	}

	path := s.paths[s.next]
	f, err := os.Open(path)
	if err != nil {
		return model.Frame{}, false, fmt.Errorf("opening frame %v: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return model.Frame{}, false, fmt.Errorf("decoding frame %v: %w", path, err)
	}

	frame := model.Frame{Index: s.next, Image: img}
	s.next++
	return frame, true, nil
}

package dso

import (
	"fmt"
	"io"

	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/imageformats"
	"github.com/kpfaulkner/dso-go/options"
)

// ReadStereoPFM builds a frame from a left and right greyscale PFM of the same
// size. The frame is released again if the right image cannot be used.
func ReadStereoPFM(left io.Reader, right io.Reader, opts *options.ImageOptions) (*image.ImageAndExposure, error) {
	img, err := imageformats.ReadPFM(left, image.LEFT, opts)
	if err != nil {
		return nil, fmt.Errorf("left image: %w", err)
	}

	if err := imageformats.ReadPFMInto(img, image.RIGHT, right); err != nil {
		img.Release()
		return nil, fmt.Errorf("right image: %w", err)
	}
	return img, nil
}

package options

import (
	"math"

	"github.com/kpfaulkner/dso-go/util"
)

// DefaultMaxPixels bounds width*height for a single channel.
const DefaultMaxPixels = 1 << 28

type ImageOptions struct {
	Debug bool

	// Timestamp of the frame, if known.
	Timestamp float64

	// Baseline is stereo baseline times focal length.
	Baseline float32

	// MaxPixels caps width*height. Zero means DefaultMaxPixels. Values above
	// math.MaxInt32 are clamped since frames are indexed with int32.
	MaxPixels int

	// Allocator supplies the left/right buffers. Nil means util.HeapAllocator.
	Allocator util.SampleAllocator
}

func NewImageOptions(options *ImageOptions) *ImageOptions {

	opt := &ImageOptions{
		MaxPixels: DefaultMaxPixels,
		Allocator: util.HeapAllocator{},
	}
	if options != nil {
		opt.Debug = options.Debug
		opt.Timestamp = options.Timestamp
		opt.Baseline = options.Baseline
		if options.MaxPixels > 0 {
			opt.MaxPixels = min(options.MaxPixels, math.MaxInt32)
		}
		if options.Allocator != nil {
			opt.Allocator = options.Allocator
		}
	}
	return opt
}

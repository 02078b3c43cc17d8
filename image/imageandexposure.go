package image

import (
	"errors"
	"fmt"
	"math"

	"github.com/kpfaulkner/dso-go/options"
	"github.com/kpfaulkner/dso-go/util"
	log "github.com/sirupsen/logrus"
)

type Side int

const (
	LEFT Side = iota
	RIGHT
)

func (s Side) String() string {
	switch s {
	case LEFT:
		return "left"
	case RIGHT:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

var (
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrTooLarge          = errors.New("image too large")
	ErrAllocation        = errors.New("sample buffer allocation failed")
	ErrReleased          = errors.New("image has been released")
)

// ImageAndExposure transports a rectified stereo pair of irradiance images
// together with exposure time, size and timestamp.
//
// Irradiance samples are nominally in [0, 256). Both channels are row-major
// with a stride of Width() and always hold exactly Width()*Height() samples
// until Release is called.
//
// An ImageAndExposure does no locking. Callers allow at most one writer, and
// readers only while no writer is active.
type ImageAndExposure struct {
	imageL *util.Matrix[float32]
	imageR *util.Matrix[float32]
	width  int
	height int

	// Timestamp of this image if we have it.
	Timestamp float64

	// ExposureTime in ms.
	ExposureTime float32

	// Baseline times focal length (top right of the right camera's projection matrix).
	Baseline float32

	allocator util.SampleAllocator
	maxPixels int
	released  bool
}

// NewImageAndExposure allocates both channels for a width x height frame.
// Sample contents are for the caller to populate.
func NewImageAndExposure(width int, height int, timestamp float64) (*ImageAndExposure, error) {
	return NewImageAndExposureWithOptions(width, height, &options.ImageOptions{Timestamp: timestamp})
}

func NewImageAndExposureWithOptions(width int, height int, opts *options.ImageOptions) (*ImageAndExposure, error) {
	opt := options.NewImageOptions(opts)

	if width <= 0 || height <= 0 {
		log.Errorf("Invalid image size: %d x %d", width, height)
		return nil, fmt.Errorf("%w: %d x %d", ErrInvalidDimensions, width, height)
	}
	area, ok := util.CheckedArea(width, height)
	if !ok || area > math.MaxInt32 || area > opt.MaxPixels {
		log.Errorf("Width times Height too large: %d %d", width, height)
		return nil, fmt.Errorf("%w: %d x %d exceeds %d samples", ErrTooLarge, width, height, opt.MaxPixels)
	}

	left := opt.Allocator.Alloc(area)
	right := opt.Allocator.Alloc(area)
	if len(left) != area || len(right) != area {
		opt.Allocator.Free(left)
		opt.Allocator.Free(right)
		log.Errorf("Allocator returned %d and %d samples, wanted %d", len(left), len(right), area)
		return nil, fmt.Errorf("%w: wanted %d samples", ErrAllocation, area)
	}

	img := &ImageAndExposure{
		imageL:       util.New2DMatrixFromData(int32(height), int32(width), left),
		imageR:       util.New2DMatrixFromData(int32(height), int32(width), right),
		width:        width,
		height:       height,
		Timestamp:    opt.Timestamp,
		ExposureTime: 1,
		Baseline:     opt.Baseline,
		allocator:    opt.Allocator,
		maxPixels:    opt.MaxPixels,
	}
	if opt.Debug {
		log.Debugf("allocated %dx%d stereo frame at %f", width, height, opt.Timestamp)
	}
	return img, nil
}

func (img *ImageAndExposure) Width() int {
	return img.width
}

func (img *ImageAndExposure) Height() int {
	return img.height
}

// Left returns the left irradiance samples, or nil once released.
func (img *ImageAndExposure) Left() []float32 {
	return img.Channel(LEFT)
}

// Right returns the right irradiance samples, or nil once released.
func (img *ImageAndExposure) Right() []float32 {
	return img.Channel(RIGHT)
}

func (img *ImageAndExposure) Channel(side Side) []float32 {
	if img.released {
		return nil
	}
	return img.matrix(side).Data
}

// Row returns row y of the given side. The slice aliases the frame's storage.
func (img *ImageAndExposure) Row(side Side, y int) []float32 {
	return img.matrix(side).GetRow(int32(y))
}

func (img *ImageAndExposure) At(side Side, x int, y int) float32 {
	return img.matrix(side).Get(int32(y), int32(x))
}

func (img *ImageAndExposure) Set(side Side, x int, y int, value float32) {
	img.matrix(side).Set(int32(y), int32(x), value)
}

func (img *ImageAndExposure) matrix(side Side) *util.Matrix[float32] {
	if img.released {
		panic(ErrReleased)
	}
	switch side {
	case LEFT:
		return img.imageL
	case RIGHT:
		return img.imageR
	default:
		panic(fmt.Sprintf("unknown side %d", int(side)))
	}
}

// Release hands both channels back to the allocator. Only the first call has
// any effect.
func (img *ImageAndExposure) Release() {
	if img.released {
		log.Debugf("release called on already released %dx%d image", img.width, img.height)
		return
	}
	img.released = true
	img.allocator.Free(img.imageL.Data)
	img.allocator.Free(img.imageR.Data)
	img.imageL = nil
	img.imageR = nil
}

func (img *ImageAndExposure) Released() bool {
	return img.released
}

// CopyMetaTo copies the exposure time to other. Nothing else is touched.
func (img *ImageAndExposure) CopyMetaTo(other *ImageAndExposure) {
	other.ExposureTime = img.ExposureTime
}

// DeepCopy returns a copy whose channels live in separate storage.
// Width, height, timestamp, exposure time and samples are copied; Baseline is
// left for the caller to set.
func (img *ImageAndExposure) DeepCopy() (*ImageAndExposure, error) {
	if img.released {
		return nil, ErrReleased
	}

	cp, err := NewImageAndExposureWithOptions(img.width, img.height, &options.ImageOptions{
		Timestamp: img.Timestamp,
		MaxPixels: img.maxPixels,
		Allocator: img.allocator,
	})
	if err != nil {
		return nil, fmt.Errorf("deep copy: %w", err)
	}
	img.CopyMetaTo(cp)
	img.imageL.CopyTo(cp.imageL)
	img.imageR.CopyTo(cp.imageR)
	return cp, nil
}

// Equals compares dimensions, timestamp, exposure time and samples. Baseline is
// calibration rather than frame content and is not compared, so a frame always
// equals its DeepCopy.
func (img *ImageAndExposure) Equals(other *ImageAndExposure) bool {
	if img == nil || other == nil {
		return img == other
	}
	if img.width != other.width || img.height != other.height || img.released != other.released {
		return false
	}
	if img.Timestamp != other.Timestamp || img.ExposureTime != other.ExposureTime {
		return false
	}
	return img.imageL.Equals(other.imageL) && img.imageR.Equals(other.imageR)
}

// DepthFromDisparity converts a disparity in pixels to depth using Baseline.
// Non-positive disparities map to +Inf.
func (img *ImageAndExposure) DepthFromDisparity(disparity float32) float32 {
	if disparity <= 0 {
		return float32(math.Inf(1))
	}
	return img.Baseline / disparity
}

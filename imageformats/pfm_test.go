package imageformats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/options"
	"github.com/kpfaulkner/dso-go/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrame(t *testing.T) *image.ImageAndExposure {
	img, err := image.NewImageAndExposure(3, 2, 0)
	require.NoError(t, err)
	copy(img.Left(), []float32{1, 2, 3, 4, 5, 6})
	copy(img.Right(), []float32{10, 20, 30, 40, 50, 60})
	return img
}

func TestWritePFM(t *testing.T) {
	img := newFrame(t)

	var buf bytes.Buffer
	require.NoError(t, WritePFM(img, image.LEFT, &buf))

	header := "Pf\n3 2\n1.0\n"
	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte(header)))
	body := out[len(header):]
	require.Len(t, body, 6*4)

	// bottom row first
	first := math.Float32frombits(binary.BigEndian.Uint32(body[0:4]))
	last := math.Float32frombits(binary.BigEndian.Uint32(body[20:24]))
	assert.Equal(t, float32(4), first)
	assert.Equal(t, float32(3), last)
}

func TestReadPFMInverseOfWrite(t *testing.T) {
	img := newFrame(t)

	var buf bytes.Buffer
	require.NoError(t, WritePFM(img, image.RIGHT, &buf))

	read, err := ReadPFM(&buf, image.LEFT, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, read.Width())
	assert.Equal(t, 2, read.Height())
	assert.Equal(t, img.Right(), read.Left())
}

func TestReadPFMLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("Pf\n2  1\n-1.0\n")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []float32{0.5, 255.5}))

	img, err := ReadPFM(&buf, image.RIGHT, &options.ImageOptions{Timestamp: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 1, img.Height())
	assert.Equal(t, 3.0, img.Timestamp)
	assert.Equal(t, []float32{0.5, 255.5}, img.Right())
}

func TestReadPFMErrors(t *testing.T) {
	for _, tc := range []struct {
		name      string
		input     string
		opts      *options.ImageOptions
		expectErr error
	}{
		{name: "empty", input: ""},
		{name: "colour", input: "PF\n1 1\n1.0\n", expectErr: ErrUnsupportedPFM},
		{name: "bad width", input: "Pf\nx 1\n1.0\n", expectErr: ErrUnsupportedPFM},
		{name: "zero height", input: "Pf\n1 0\n1.0\n", expectErr: image.ErrInvalidDimensions},
		{name: "zero scale", input: "Pf\n1 1\n0\n", expectErr: ErrUnsupportedPFM},
		{name: "truncated", input: "Pf\n2 2\n1.0\n\x00\x00"},
		{
			name:      "oversize header",
			input:     "Pf\n16777216 16777216\n-1.0\n",
			opts:      &options.ImageOptions{MaxPixels: 16},
			expectErr: image.ErrTooLarge,
		},
		{name: "oversize header default cap", input: "Pf\n16777216 16777216\n-1.0\n", expectErr: image.ErrTooLarge},
		{name: "over caller cap", input: "Pf\n5 4\n-1.0\n", opts: &options.ImageOptions{MaxPixels: 16}, expectErr: image.ErrTooLarge},
	} {
		t.Run(tc.name, func(t *testing.T) {
			alloc := testcommon.NewTrackingAllocator(t)
			opts := &options.ImageOptions{Allocator: alloc}
			if tc.opts != nil {
				opts.MaxPixels = tc.opts.MaxPixels
			}

			img, err := ReadPFM(strings.NewReader(tc.input), image.LEFT, opts)
			assert.Nil(t, img)
			require.Error(t, err)
			if tc.expectErr != nil {
				assert.True(t, errors.Is(err, tc.expectErr), "expected %v, got %v", tc.expectErr, err)
			}
			assert.Equal(t, 0, alloc.Live())
		})
	}
}

func TestReadPFMInto(t *testing.T) {
	src := newFrame(t)
	var buf bytes.Buffer
	require.NoError(t, WritePFM(src, image.LEFT, &buf))

	dst, err := image.NewImageAndExposure(3, 2, 0)
	require.NoError(t, err)
	require.NoError(t, ReadPFMInto(dst, image.RIGHT, bytes.NewReader(buf.Bytes())))
	assert.Equal(t, src.Left(), dst.Right())

	wrong, err := image.NewImageAndExposure(2, 3, 0)
	require.NoError(t, err)
	err = ReadPFMInto(wrong, image.LEFT, bytes.NewReader(buf.Bytes()))
	assert.True(t, errors.Is(err, image.ErrInvalidDimensions))
}

func TestWritePFMReleased(t *testing.T) {
	img := newFrame(t)
	img.Release()

	var buf bytes.Buffer
	assert.True(t, errors.Is(WritePFM(img, image.LEFT, &buf), image.ErrReleased))
}

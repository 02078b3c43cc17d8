package imageformats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/options"
	"github.com/kpfaulkner/dso-go/util"
	log "github.com/sirupsen/logrus"
)

var ErrUnsupportedPFM = errors.New("unsupported PFM")

// WritePFM writes one side of the frame as a greyscale big-endian PFM.
// PFM stores rows bottom to top.
func WritePFM(img *image.ImageAndExposure, side image.Side, output io.Writer) error {
	if img.Released() {
		return image.ErrReleased
	}

	width := img.Width()
	height := img.Height()

	bw := bufio.NewWriter(output)
	header := fmt.Sprintf("Pf\n%d %d\n1.0\n", width, height)
	if _, err := bw.WriteString(header); err != nil {
		return err
	}
	for y := height - 1; y >= 0; y-- {
		if err := binary.Write(bw, binary.BigEndian, img.Row(side, y)); err != nil {
			log.Errorf("binary.Write failed: %v", err)
			return err
		}
	}
	return bw.Flush()
}

// ReadPFM reads a greyscale PFM into the given side of a new frame. The size
// in the header is checked against opts before anything is allocated.
func ReadPFM(input io.Reader, side image.Side, opts *options.ImageOptions) (*image.ImageAndExposure, error) {
	br := bufio.NewReader(input)

	width, height, order, err := readPFMHeader(br)
	if err != nil {
		return nil, err
	}

	img, err := image.NewImageAndExposureWithOptions(width, height, opts)
	if err != nil {
		return nil, fmt.Errorf("PFM header %d x %d: %w", width, height, err)
	}
	if err := readPFMRows(br, order, img, side); err != nil {
		img.Release()
		return nil, err
	}
	return img, nil
}

// ReadPFMInto fills one side of img from a PFM of the same size.
func ReadPFMInto(img *image.ImageAndExposure, side image.Side, input io.Reader) error {
	if img.Released() {
		return image.ErrReleased
	}
	br := bufio.NewReader(input)

	width, height, order, err := readPFMHeader(br)
	if err != nil {
		return err
	}
	if width != img.Width() || height != img.Height() {
		log.Errorf("PFM is %d x %d, frame is %d x %d", width, height, img.Width(), img.Height())
		return fmt.Errorf("%w: PFM is %d x %d, frame is %d x %d", image.ErrInvalidDimensions, width, height, img.Width(), img.Height())
	}
	return readPFMRows(br, order, img, side)
}

func readPFMHeader(br *bufio.Reader) (width int, height int, order binary.ByteOrder, err error) {
	magic, err := readToken(br)
	if err != nil {
		return 0, 0, nil, err
	}
	if magic != "Pf" {
		return 0, 0, nil, fmt.Errorf("%w: magic %q, only greyscale Pf is supported", ErrUnsupportedPFM, magic)
	}

	var fields [3]string
	for i := range fields {
		if fields[i], err = readToken(br); err != nil {
			return 0, 0, nil, err
		}
	}
	if width, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: width %q", ErrUnsupportedPFM, fields[0])
	}
	if height, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: height %q", ErrUnsupportedPFM, fields[1])
	}
	scale, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || scale == 0 {
		return 0, 0, nil, fmt.Errorf("%w: scale %q", ErrUnsupportedPFM, fields[2])
	}

	// negative scale means little endian
	order = util.IfThenElse[binary.ByteOrder](scale < 0, binary.LittleEndian, binary.BigEndian)
	return width, height, order, nil
}

// readPFMRows decodes bottom-up rows straight into the frame's storage.
func readPFMRows(br *bufio.Reader, order binary.ByteOrder, img *image.ImageAndExposure, side image.Side) error {
	for y := img.Height() - 1; y >= 0; y-- {
		if err := binary.Read(br, order, img.Row(side, y)); err != nil {
			return fmt.Errorf("reading PFM row %d: %w", y, err)
		}
	}
	return nil
}

// readToken skips leading whitespace and returns the next token. The single
// whitespace byte ending the token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", fmt.Errorf("reading PFM header: %w", err)
		}
		if isSpace(b) {
			if len(token) > 0 {
				return string(token), nil
			}
			continue
		}
		token = append(token, b)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

package imageformats

import (
	image2 "image"
	"image/png"
	"io"

	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/util"
)

// ToGray converts one side to an 8 bit preview, clamping irradiance to [0, 255].
func ToGray(img *image.ImageAndExposure, side image.Side) (*image2.Gray, error) {
	if img.Released() {
		return nil, image.ErrReleased
	}

	width := img.Width()
	height := img.Height()
	gray := image2.NewGray(image2.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := img.Row(side, y)
		pix := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x, v := range row {
			pix[x] = uint8(util.Clamp(v+0.5, 0, 255))
		}
	}
	return gray, nil
}

func WritePNG(img *image.ImageAndExposure, side image.Side, output io.Writer) error {
	gray, err := ToGray(img, side)
	if err != nil {
		return err
	}
	return png.Encode(output, gray)
}

package main

import (
	"fmt"
	"reflect"

	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/util"
)

// displays sizes of main structs to determine any padding wasteage
// and the alignment the sample buffers actually get.
func memStats(input any) {

	rType := reflect.TypeOf(input)
	fmt.Printf("Size of %s : %d bytes\n", rType.Name(), rType.Size())

	if rType.Kind() == reflect.Struct {
		for i := 0; i < rType.NumField(); i++ {
			field := rType.Field(i)
			fmt.Printf("  Name %s\n", field.Name)
			fmt.Printf("    Offset of    : %d bytes\n", field.Offset)
			fmt.Printf("    Size of      : %d bytes\n", field.Type.Size())
			fmt.Printf("    Alignment of : %d bytes\n", field.Type.Align())
			fmt.Println()
		}
	}
}

func sampleAlignment(buf []float32) int {
	if len(buf) == 0 {
		return 0
	}
	addr := reflect.ValueOf(buf).Pointer()
	align := 1
	for addr%uintptr(align*2) == 0 && align < 64 {
		align *= 2
	}
	return align
}

func main() {
	memStats(image.ImageAndExposure{})
	memStats(util.Matrix[float32]{})

	img, err := image.NewImageAndExposure(640, 480, 0)
	if err != nil {
		fmt.Printf("error allocating frame %v\n", err)
		return
	}
	defer img.Release()
	fmt.Printf("left samples aligned to %d bytes\n", sampleAlignment(img.Left()))
	fmt.Printf("right samples aligned to %d bytes\n", sampleAlignment(img.Right()))
}

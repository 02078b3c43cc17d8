package util

func IfThenElse[T any](condition bool, a T, b T) T {
	if condition {
		return a
	}
	return b
}

func FillFloat32(a []float32, fromIndex uint32, toIndex uint32, val float32) {
	for i := fromIndex; i < toIndex; i++ {
		a[i] = val
	}
}

// CheckedArea returns width*height and false if the product overflows int.
func CheckedArea(width int, height int) (int, bool) {
	if width == 0 || height == 0 {
		return 0, true
	}
	area := width * height
	if area/height != width {
		return 0, false
	}
	return area, true
}

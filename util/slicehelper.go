package util

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Make 1D slice appear as 2D slice and helper functions.
// Row-major, stride is Width. Width*Height must fit in int32.

type Matrix[T constraints.Ordered] struct {
	Width  int32
	Height int32
	Data   []T
}

// New2DMatrixFromData wraps an existing buffer. The matrix takes ownership of data,
// which must hold exactly height*width elements.
func New2DMatrixFromData[T constraints.Ordered](height int32, width int32, data []T) *Matrix[T] {
	return &Matrix[T]{Width: width, Height: height, Data: data[:int(width)*int(height)]}
}

// Note y is first param...  just for compatibility
func (s *Matrix[T]) Get(y int32, x int32) T {
	return s.Data[y*s.Width+x]
}

func (s *Matrix[T]) Set(y int32, x int32, value T) {
	s.Data[y*s.Width+x] = value
}

func (s *Matrix[T]) GetRow(y int32) []T {
	return s.Data[y*s.Width : (y+1)*s.Width]
}

// CopyTo copies contents into dst, which must have the same dimensions.
func (s *Matrix[T]) CopyTo(dst *Matrix[T]) bool {
	if dst.Width != s.Width || dst.Height != s.Height || len(dst.Data) != len(s.Data) {
		return false
	}
	copy(dst.Data, s.Data)
	return true
}

// Equals compares dimensions and contents. NaN never equals NaN.
func (s *Matrix[T]) Equals(other *Matrix[T]) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Width != other.Width || s.Height != other.Height {
		return false
	}
	return slices.Equal(s.Data, other.Data)
}

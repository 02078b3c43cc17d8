package image

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type ChannelStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64

	// ExposureNormalisedMean is Mean divided by the exposure time, zero when
	// the exposure time is not positive.
	ExposureNormalisedMean float64
}

// Stats summarises the irradiance of one side. StdDev is the unbiased
// estimate and is NaN for a single-pixel frame.
func (img *ImageAndExposure) Stats(side Side) (ChannelStats, error) {
	if img.released {
		return ChannelStats{}, ErrReleased
	}

	data := img.Channel(side)
	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v)
	}

	mean, stdDev := stat.MeanStdDev(samples, nil)
	cs := ChannelStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    floats.Min(samples),
		Max:    floats.Max(samples),
	}
	if img.ExposureTime > 0 {
		cs.ExposureNormalisedMean = mean / float64(img.ExposureTime)
	}
	return cs, nil
}

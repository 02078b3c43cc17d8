package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	dso "github.com/kpfaulkner/dso-go"
	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/imageformats"
	"github.com/kpfaulkner/dso-go/options"
	log "github.com/sirupsen/logrus"
)

func main() {
	leftFile := flag.String("l", "", "left irradiance pfm")
	rightFile := flag.String("r", "", "right irradiance pfm")
	timestamp := flag.Float64("t", 0, "timestamp")
	exposure := flag.Float64("e", 1, "exposure time in ms")
	baseline := flag.Float64("b", 0, "baseline times focal length")
	prefix := flag.String("o", "", "output prefix")
	writePNG := flag.Bool("png", false, "also write png previews")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *leftFile == "" || *rightFile == "" || *prefix == "" {
		fmt.Printf("left, right and output prefix must be specified\n")
		os.Exit(1)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	l, err := os.Open(*leftFile)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer l.Close()
	r, err := os.Open(*rightFile)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer r.Close()

	start := time.Now()
	img, err := dso.ReadStereoPFM(l, r, &options.ImageOptions{
		Debug:     *verbose,
		Timestamp: *timestamp,
		Baseline:  float32(*baseline),
	})
	if err != nil {
		log.Fatalf("Error reading stereo pair: %v", err)
	}
	defer img.Release()
	img.ExposureTime = float32(*exposure)
	log.Infof("read %dx%d stereo pair in %d ms", img.Width(), img.Height(), time.Since(start).Milliseconds())

	for _, side := range []image.Side{image.LEFT, image.RIGHT} {
		cs, err := img.Stats(side)
		if err != nil {
			log.Fatalf("Error computing stats: %v", err)
		}
		log.WithFields(log.Fields{
			"side":       side,
			"mean":       cs.Mean,
			"stddev":     cs.StdDev,
			"min":        cs.Min,
			"max":        cs.Max,
			"normalised": cs.ExposureNormalisedMean,
		}).Info("irradiance")
	}

	cp, err := img.DeepCopy()
	if err != nil {
		log.Fatalf("Error copying frame: %v", err)
	}
	defer cp.Release()

	for _, side := range []image.Side{image.LEFT, image.RIGHT} {
		if err := writeFile(fmt.Sprintf("%s_%s.pfm", *prefix, side), func(f *os.File) error {
			return imageformats.WritePFM(cp, side, f)
		}); err != nil {
			log.Fatalf("boomage %v", err)
		}
		if !*writePNG {
			continue
		}
		if err := writeFile(fmt.Sprintf("%s_%s.png", *prefix, side), func(f *os.File) error {
			return imageformats.WritePNG(cp, side, f)
		}); err != nil {
			log.Fatalf("boomage %v", err)
		}
	}
}

func writeFile(name string, write func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/kpfaulkner/dso-go/image"
	"github.com/kpfaulkner/dso-go/options"
	"github.com/kpfaulkner/dso-go/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

func run(name string, opts *options.ImageOptions, width int, height int, count int) {
	start := time.Now()
	for i := 0; i < count; i++ {
		img, err := image.NewImageAndExposureWithOptions(width, height, opts)
		if err != nil {
			log.Fatalf("boomage %v", err)
		}
		util.FillFloat32(img.Left(), 0, uint32(len(img.Left())), float32(i%256))
		cp, err := img.DeepCopy()
		if err != nil {
			log.Fatalf("boomage %v", err)
		}
		img.Release()
		cp.Release()
	}
	fmt.Printf("%s: %d frames of %dx%d took %d ms\n", name, count, width, height, time.Since(start).Milliseconds())
}

func main() {
	memProfile := flag.Bool("mem", false, "heap profile instead of cpu")
	count := flag.Int("n", 1000, "frames")
	flag.Parse()

	var p interface{ Stop() }
	if *memProfile {
		p = profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	} else {
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	}
	defer p.Stop()

	pool := util.NewSamplePool()
	run("heap", nil, 640, 480, *count)
	run("pooled", &options.ImageOptions{Allocator: pool}, 640, 480, *count)

	hits, misses, frees := pool.GetMetrics()
	log.Infof("pool hits %d misses %d frees %d", hits, misses, frees)
}

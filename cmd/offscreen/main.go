// Command offscreen renders a light gray 640x480 image on a headless GPU
// context and saves it as test.png in the working directory.
//
// The device list, the picked config and a description of the captured
// framebuffer are printed to standard output. Any failure aborts with a
// non-zero exit status.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/offscreen"
)

func main() {
	offscreen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	job := offscreen.DefaultJob()
	state, err := offscreen.Run(job)
	if err != nil {
		log.Fatalf("offscreen: stopped at %s: %v", state, err)
	}
}

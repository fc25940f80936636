package renderer

import (
	"fmt"
	"log"
	"time"
)

// FrameWriter consumes RGBA frames, bottom row first, of FrameSize bytes.
type FrameWriter interface {
	FrameSize() int
	WriteFrame(pixels []byte) error
}

// RunOffscreen renders a fixed number of frames, reads each back from the
// framebuffer and hands it to w.
func (r *Renderer) RunOffscreen(w FrameWriter, frames int) error {
	width, height := r.frameSize()
	pixels := make([]byte, width*height*4)
	if size := w.FrameSize(); size != len(pixels) {
		return fmt.Errorf("writer expects %d byte frames, framebuffer is %dx%d", size, width, height)
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := r.RenderFrame(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		r.driver.ReadPixels(0, 0, int32(width), int32(height), pixels)
		if err := w.WriteFrame(pixels); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		r.context.EndFrame()
	}
	log.Printf("Rendered %d frames in %v", frames, time.Since(start))
	return nil
}

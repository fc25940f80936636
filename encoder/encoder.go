// Package encoder records rendered frames to a video file by piping raw RGBA
// pixels into an ffmpeg process.
package encoder

import (
	"fmt"
	"io"
	"log"

	options "github.com/richinsley/glcourse/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Recorder accepts bottom-up RGBA frames of a fixed size.
type Recorder struct {
	pipeWriter *io.PipeWriter
	errc       chan error
	frameSize  int
	frames     int
	closed     bool
}

func inputArgs(opts *options.Options) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       fmt.Sprintf("%d", opts.FPS),
	}
}

func outputArgs(opts *options.Options) ffmpeg.KwArgs {
	// GL rows start at the bottom of the image
	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if len(opts.OutputFile) >= 4 && opts.OutputFile[len(opts.OutputFile)-4:] == ".mp4" {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return outputArgs
}

// NewRecorder starts ffmpeg writing to opts.OutputFile.
func NewRecorder(opts *options.Options) (*Recorder, error) {
	if opts.OutputFile == "" {
		return nil, fmt.Errorf("no output file")
	}
	pipeReader, pipeWriter := io.Pipe()

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs(opts)).
		Output(opts.OutputFile, outputArgs(opts)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	r := &Recorder{
		pipeWriter: pipeWriter,
		errc:       make(chan error, 1),
		frameSize:  opts.Width * opts.Height * 4,
	}
	go func() {
		err := ffmpegCmd.Run()
		// unblock a writer if ffmpeg went away early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		r.errc <- err
	}()
	log.Printf("Recording %dx%d at %d fps to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)
	return r, nil
}

// FrameSize is the number of bytes each frame must have.
func (r *Recorder) FrameSize() int { return r.frameSize }

// WriteFrame sends one frame to ffmpeg.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if len(pixels) != r.frameSize {
		return fmt.Errorf("frame is %d bytes, expected %d", len(pixels), r.frameSize)
	}
	if _, err := r.pipeWriter.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to FFmpeg: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Close ends the stream and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.pipeWriter.Close()
	if err := <-r.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	log.Printf("Recorded %d frames", r.frames)
	return nil
}

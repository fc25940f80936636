package options

import (
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Scenes the renderer knows how to draw.
const (
	SceneTriangle = "triangle"
	SceneUniform  = "uniform"
	ScenePyramid  = "pyramid"
)

type Options struct {
	Scene  string `toml:"scene"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	// WebGL2 shader files that replace the scene's built-in program.
	VertexFile   string `toml:"vertex_file"`
	FragmentFile string `toml:"fragment_file"`

	// Recording renders headless and pipes frames to ffmpeg.
	OutputFile string `toml:"output"`
	Frames     int    `toml:"frames"`
	FPS        int    `toml:"fps"`
	Codec      string `toml:"codec"`
	FFMPEGPath string `toml:"ffmpeg"`

	ConfigFile string `toml:"-"`
}

// Default returns an 800x600 window drawing the pyramid.
func Default() *Options {
	return &Options{
		Scene:  ScenePyramid,
		Width:  800,
		Height: 600,
		Title:  "Test Window",
		Frames: 300,
		FPS:    60,
		Codec:  "h264",
	}
}

// Record reports whether frames go to a file instead of a window.
func (o *Options) Record() bool { return o.OutputFile != "" }

// Parse reads command-line arguments; -h and -help print the usage and return
// flag.ErrHelp. When -config names a TOML file its values are applied first
// and flags given explicitly on the command line take precedence.
func Parse(name string, args []string, output io.Writer) (*Options, error) {
	o := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&o.Scene, "scene", o.Scene, "Scene to draw: triangle, uniform or pyramid")
	fs.IntVar(&o.Width, "width", o.Width, "Width of the window or output")
	fs.IntVar(&o.Height, "height", o.Height, "Height of the window or output")
	fs.StringVar(&o.Title, "title", o.Title, "Window title")
	fs.StringVar(&o.VertexFile, "vert", o.VertexFile, "WebGL2 vertex shader file overriding the scene's program")
	fs.StringVar(&o.FragmentFile, "frag", o.FragmentFile, "WebGL2 fragment shader file overriding the scene's program")
	fs.StringVar(&o.OutputFile, "record", o.OutputFile, "Render headless and record to this file")
	fs.IntVar(&o.Frames, "frames", o.Frames, "Number of frames to record")
	fs.IntVar(&o.FPS, "fps", o.FPS, "Frames per second for recording")
	fs.StringVar(&o.Codec, "codec", o.Codec, "Video codec for recording: h264 or hevc")
	fs.StringVar(&o.FFMPEGPath, "ffmpeg", o.FFMPEGPath, "Path to ffmpeg executable")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "TOML configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if o.ConfigFile != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		if _, err := toml.DecodeFile(o.ConfigFile, o); err != nil {
			return nil, fmt.Errorf("couldn't read config file: %w", err)
		}
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// Validate checks the options for values the renderer cannot use.
func (o *Options) Validate() error {
	switch o.Scene {
	case SceneTriangle, SceneUniform, ScenePyramid:
	default:
		return fmt.Errorf("unknown scene %q", o.Scene)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if (o.VertexFile == "") != (o.FragmentFile == "") {
		return fmt.Errorf("-vert and -frag must be given together")
	}
	if o.Record() {
		if o.Frames <= 0 {
			return fmt.Errorf("frames must be positive, got %d", o.Frames)
		}
		if o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", o.FPS)
		}
		if o.Codec != "h264" && o.Codec != "hevc" {
			return fmt.Errorf("unsupported codec %q", o.Codec)
		}
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glcourse/encoder"
	"github.com/richinsley/glcourse/gldriver"
	"github.com/richinsley/glcourse/glfwcontext"
	"github.com/richinsley/glcourse/graphics"
	"github.com/richinsley/glcourse/headless"
	options "github.com/richinsley/glcourse/options"
	renderer "github.com/richinsley/glcourse/renderer"
	"github.com/richinsley/glcourse/translator"
)

func init() {
	runtime.LockOSThread()
}

// loadCustomProgram reads the user's WebGL2 shader files and translates them
// for the active context.
func loadCustomProgram(opts *options.Options, isGLES bool) (*renderer.ProgramSource, error) {
	if opts.VertexFile == "" {
		return nil, nil
	}
	vs, err := os.ReadFile(opts.VertexFile)
	if err != nil {
		return nil, err
	}
	fs, err := os.ReadFile(opts.FragmentFile)
	if err != nil {
		return nil, err
	}

	tr, err := translator.New(context.Background())
	if err != nil {
		return nil, err
	}
	defer tr.Close()

	out, err := tr.Translate(string(vs), string(fs), isGLES)
	if err != nil {
		return nil, err
	}
	return &renderer.ProgramSource{Vertex: out.Vertex, Fragment: out.Fragment, Names: out.Names}, nil
}

func run(opts *options.Options, ctx graphics.Context) error {
	ctx.MakeCurrent()
	driver, err := gldriver.Init()
	if err != nil {
		ctx.Shutdown()
		return err
	}

	r := renderer.NewRenderer(driver, ctx, opts.Width, opts.Height, opts.Record())
	defer r.Shutdown()

	custom, err := loadCustomProgram(opts, ctx.IsGLES())
	if err != nil {
		return fmt.Errorf("failed to load shader files: %w", err)
	}
	if err := r.InitScene(opts.Scene, custom); err != nil {
		return err
	}

	if !opts.Record() {
		// Tab steps through the built-in scenes
		if win, ok := ctx.(*glfwcontext.Context); ok && custom == nil {
			win.RegisterKeyCallback(glfw.KeyTab, func() {
				if err := r.NextScene(); err != nil {
					log.Printf("Failed to switch scene: %v", err)
				}
			})
		}
		log.Println("Starting interactive render loop...")
		return r.Run()
	}

	rec, err := encoder.NewRecorder(opts)
	if err != nil {
		return err
	}
	log.Println("Starting offscreen render loop...")
	if err := r.RunOffscreen(rec, opts.Frames); err != nil {
		rec.Close()
		return err
	}
	if err := rec.Close(); err != nil {
		return err
	}
	log.Printf("Successfully rendered to %s", opts.OutputFile)
	return nil
}

func main() {
	opts, err := options.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error parsing options: %v", err)
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	var ctx graphics.Context
	if opts.Record() {
		// If recording, render headless into a pbuffer
		ctx, err = headless.NewHeadless(opts.Width, opts.Height)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("GLFW initialization failed: %v", err)
		}
		defer glfwcontext.TerminateGraphics()

		ctx, err = glfwcontext.New(opts)
		if err != nil {
			log.Fatalf("GLFW window creation failed: %v", err)
		}
	}

	if err := run(opts, ctx); err != nil {
		log.Printf("Error: %v", err)
		if !opts.Record() {
			glfwcontext.TerminateGraphics()
		}
		os.Exit(1)
	}
}

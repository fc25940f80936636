package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	options "github.com/richinsley/glcourse/options"
)

// maxKeys bounds the key codes that are tracked.
const maxKeys = 1024

// Context is a GLFW window with an OpenGL 3.3 core context and the pressed
// state of every key below maxKeys.
type Context struct {
	window *glfw.Window
	keys   [maxKeys]bool
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

// New creates a window and makes its context current on the calling thread.
func New(opts *options.Options) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	// Core profile = No backwards compatibility
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.MakeContextCurrent()

	fbWidth, fbHeight := win.GetFramebufferSize()
	log.Printf("Window created, framebuffer %dx%d", fbWidth, fbHeight)
	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if c.handleKey(key, action) {
		w.SetShouldClose(true)
	}
}

// handleKey records the key transition and runs any registered callback. It
// reports whether the window should close.
func (c *Context) handleKey(key glfw.Key, action glfw.Action) bool {
	if key >= 0 && int(key) < maxKeys {
		switch action {
		case glfw.Press:
			c.keys[key] = true
			log.Printf("Pressed: %d", key)
		case glfw.Release:
			c.keys[key] = false
			log.Printf("Released: %d", key)
		}
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
	return key == glfw.KeyEscape && action == glfw.Press
}

// KeyDown reports whether the key is currently held.
func (c *Context) KeyDown(key glfw.Key) bool {
	if key < 0 || int(key) >= maxKeys {
		return false
	}
	return c.keys[key]
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

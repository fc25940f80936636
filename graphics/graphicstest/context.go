package graphicstest

import "github.com/richinsley/glcourse/graphics"

// Context is a scripted graphics.Context that asks to close after a fixed
// number of frames.
type Context struct {
	Width, Height int
	GLES          bool
	// Frames is how many EndFrame calls happen before ShouldClose reports true.
	Frames int

	Ended   int
	Current bool
	Closed  bool
}

func NewContext(width, height, frames int) *Context {
	return &Context{Width: width, Height: height, Frames: frames}
}

func (c *Context) MakeCurrent()                   { c.Current = true }
func (c *Context) Shutdown()                      { c.Closed = true }
func (c *Context) ShouldClose() bool              { return c.Ended >= c.Frames }
func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }
func (c *Context) IsGLES() bool                   { return c.GLES }

func (c *Context) EndFrame() { c.Ended++ }

var _ graphics.Context = (*Context)(nil)

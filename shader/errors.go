package shader

import (
	"errors"
	"fmt"

	"github.com/richinsley/glcourse/graphics"
)

var (
	// ErrProgramCreation is returned when the driver yields no program object,
	// typically because no context is current.
	ErrProgramCreation = errors.New("shader: error creating shader program")
	// ErrUnusable is returned when a program that did not validate is used.
	ErrUnusable = errors.New("shader: program is not usable")
	// ErrUnknownStage is returned for a stage other than vertex or fragment.
	ErrUnknownStage = errors.New("shader: unknown shader stage")
)

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage graphics.Enum
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: error compiling %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program whose stages compiled but did not link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: error linking program: %s", e.Log)
}

// ValidationError reports a linked program that failed validation.
type ValidationError struct {
	Log string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("shader: error validating program: %s", e.Log)
}

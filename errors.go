package glclass

import (
	"errors"
	"fmt"
)

// ErrContextUnavailable is returned when a surface cannot provide the
// requested graphics context.
var ErrContextUnavailable = errors.New("graphics context unavailable")

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// CompileError reports a shader stage rejected by the compiler.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError reports a program whose stages could not be linked.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

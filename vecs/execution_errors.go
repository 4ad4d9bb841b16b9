package vecs

import (
	"errors"
	"fmt"
	"strings"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is a fatal script error. Call names the function whose body
// (or argument binding) raised it.
type RuntimeError struct {
	Type      string
	Message   string
	Call      string
	CodeFrame string
	Frames    []StackFrame
	cause     error
}

const (
	runtimeErrorTypeBase  = "Error"
	runtimeErrorTypeQuota = "QuotaError"
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var (
	errLoopBreak         = errors.New("no loop for break/next, jumping to top level")
	errLoopNext          = errors.New("no loop for break/next, jumping to top level")
	errStepQuotaExceeded = errors.New("step quota exceeded")
)

// returnSignal unwinds evaluation to the nearest function boundary.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string {
	return "no function to return from, jumping to top level"
}

func isControlSignal(err error) bool {
	if err == errLoopBreak || err == errLoopNext {
		return true
	}
	_, ok := err.(*returnSignal)
	return ok
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	if re.Call != "" {
		fmt.Fprintf(&b, "Error in %s(): %s", re.Call, re.Message)
	} else {
		fmt.Fprintf(&b, "Error: %s", re.Message)
	}
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

// Unwrap exposes the underlying cause, such as a *BindingFailure.
func (re *RuntimeError) Unwrap() error {
	return re.cause
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.newRuntimeError(runtimeErrorTypeQuota, fmt.Sprintf("%v (%d)", errStepQuotaExceeded, exec.quota), exec.currentPos, errStepQuotaExceeded)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return exec.newRuntimeError(runtimeErrorTypeBase, fmt.Sprintf(format, args...), pos, nil)
}

func (exec *Execution) newRuntimeError(kind string, message string, pos Position, cause error) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	call := ""

	if len(exec.callStack) > 0 {
		// First frame: where the error occurred (within the current function)
		current := exec.callStack[len(exec.callStack)-1]
		call = current.Function
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})

		// Remaining frames: the call stack (where each function was called from).
		// A builtin fails at its own call site, so its entry repeats the first frame.
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			cf := exec.callStack[i]
			if i == len(exec.callStack)-1 && cf.Pos == pos {
				continue
			}
			frames = append(frames, StackFrame(cf))
		}
	} else {
		// No call stack means error at script top level
		frames = append(frames, StackFrame{Function: "<script>", Pos: pos})
	}
	return &RuntimeError{
		Type:      kind,
		Message:   message,
		Call:      call,
		CodeFrame: formatCodeFrame(exec.source, pos),
		Frames:    frames,
		cause:     cause,
	}
}

// wrapError converts a host error into a RuntimeError positioned at pos.
// Control signals, cancellation and errors that already carry a position
// pass through unchanged.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	if isControlSignal(err) {
		return err
	}
	if errors.Is(err, exec.ctxErr()) {
		return err
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return exec.newRuntimeError(runtimeErrorTypeBase, err.Error(), pos, err)
}

func (exec *Execution) ctxErr() error {
	if exec.ctx == nil {
		return nil
	}
	return exec.ctx.Err()
}

package vecs

import "fmt"

// warningLimit caps how many warnings one execution keeps; later ones are
// counted but dropped.
const warningLimit = 50

// Warning is an advisory diagnostic. Unlike a RuntimeError it never stops
// evaluation.
type Warning struct {
	Message string
	Call    string
	Pos     Position
}

func (w Warning) String() string {
	if w.Call != "" {
		return fmt.Sprintf("In %s(): %s", w.Call, w.Message)
	}
	return w.Message
}

// Warn records a warning against the function currently executing.
func (exec *Execution) Warn(pos Position, format string, args ...any) {
	call := ""
	if len(exec.callStack) > 0 {
		call = exec.callStack[len(exec.callStack)-1].Function
	}
	exec.warnIn(call, pos, fmt.Sprintf(format, args...))
}

func (exec *Execution) warnIn(call string, pos Position, message string) {
	w := Warning{Message: message, Call: call, Pos: pos}
	exec.logger.Warn("script warning",
		"call", call,
		"line", pos.Line,
		"column", pos.Column,
		"message", message,
	)
	if exec.onWarning != nil {
		exec.onWarning(w)
	}
	if len(exec.warnings) >= warningLimit {
		exec.droppedWarnings++
		return
	}
	exec.warnings = append(exec.warnings, w)
}

// Warnings returns the warnings recorded so far.
func (exec *Execution) Warnings() []Warning {
	return append([]Warning(nil), exec.warnings...)
}

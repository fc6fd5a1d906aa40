// Package replay drives a tracker from a timed script on virtual time
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Action is a script verb
type Action string

const (
	ActionDown    Action = "down"
	ActionUp      Action = "up"
	ActionBlur    Action = "blur"
	ActionDisable Action = "disable"
	ActionEnable  Action = "enable"
)

// Step is one parsed script line
type Step struct {
	At     time.Duration
	Action Action
	Combo  string
	Line   int
}

// ScriptError points at the offending script line
type ScriptError struct {
	Line int
	Msg  string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a script. Each non-blank line that does not start with '#' is
//
//	<ms> down <combo>
//	<ms> up <combo>
//	<ms> blur
//	<ms> disable
//	<ms> enable
//
// where <ms> is the absolute time of the step. Times must not decrease.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	var last time.Duration

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &ScriptError{Line: lineNo, Msg: fmt.Sprintf("expected '<ms> <action>', got %q", line)}
		}

		ms, err := strconv.Atoi(fields[0])
		if err != nil || ms < 0 {
			return nil, &ScriptError{Line: lineNo, Msg: fmt.Sprintf("invalid time %q", fields[0])}
		}
		at := time.Duration(ms) * time.Millisecond
		if at < last {
			return nil, &ScriptError{Line: lineNo, Msg: fmt.Sprintf("time %dms is before previous step at %dms", ms, last.Milliseconds())}
		}
		last = at

		step := Step{At: at, Action: Action(strings.ToLower(fields[1])), Line: lineNo}
		switch step.Action {
		case ActionDown, ActionUp:
			if len(fields) != 3 {
				return nil, &ScriptError{Line: lineNo, Msg: fmt.Sprintf("%s needs exactly one key combo", step.Action)}
			}
			step.Combo = fields[2]
		case ActionBlur, ActionDisable, ActionEnable:
			if len(fields) != 2 {
				return nil, &ScriptError{Line: lineNo, Msg: fmt.Sprintf("%s takes no arguments", step.Action)}
			}
		default:
			return nil, &ScriptError{Line: lineNo, Msg: fmt.Sprintf("unknown action %q", fields[1])}
		}

		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return steps, nil
}

package runtime

import (
	"fmt"
	"strings"
)

// execPilot handles one-letter-code commands ("T:text") and, for lines
// the classifier could not place anywhere else, bare free text typed to
// the output.
func (in *Interpreter) execPilot(text string) execResult {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 || trimmed[1] != ':' {
		// Free text behaves like T:.
		in.appendOutput(in.interpolate(trimmed))
		return execResult{kind: resNone}
	}
	code := trimmed[0] &^ 0x20 // uppercase ASCII letter
	payload := strings.TrimSpace(trimmed[2:])

	switch code {
	case 'T':
		in.appendOutput(in.interpolate(payload))
	case 'A':
		return in.pilotAccept(payload)
	case 'J':
		return in.pilotJump(payload)
	case 'Y':
		if in.matchFlag {
			return in.pilotJump(payload)
		}
	case 'N':
		if !in.matchFlag {
			return in.pilotJump(payload)
		}
	case 'U':
		in.pilotUpdate(payload)
	case 'C':
		ok, err := in.evalCondition(payload)
		if err != nil {
			in.logError(err)
			break
		}
		in.matchFlag = ok
	case 'L':
		// Label declaration, indexed at load time.
	case 'R':
		// Remark.
	case 'E':
		return execResult{kind: resEnd}
	default:
		in.logError(errUnknown("pilot code", string(rune(trimmed[0]))))
	}
	return execResult{kind: resNone}
}

// pilotAccept binds queued/provided input or suspends the run. The
// target defaults to ANSWER; names ending in $ take the value as text.
func (in *Interpreter) pilotAccept(payload string) execResult {
	name := strings.TrimSpace(payload)
	if name == "" {
		name = "ANSWER"
	}
	return in.requestInput(InputRequest{
		Prompt:        "",
		Variable:      name,
		PreferNumeric: !strings.HasSuffix(name, "$"),
	})
}

func (in *Interpreter) pilotJump(payload string) execResult {
	label := strings.TrimSpace(payload)
	idx, ok := in.prog.Labels[label]
	if !ok {
		in.logError(fmt.Errorf("%w: %s", ErrInvalidLabel, label))
		return execResult{kind: resNone}
	}
	return execResult{kind: resJump, target: idx}
}

// pilotUpdate assigns "VAR = expr", falling back to the raw text when
// the right side is not a valid expression. $ names always bind as
// text, same as LET.
func (in *Interpreter) pilotUpdate(payload string) {
	idx := strings.IndexByte(payload, '=')
	if idx <= 0 {
		in.logError(fmt.Errorf("%w: U needs VAR = expression", ErrUnknownCommand))
		return
	}
	name := strings.TrimSpace(payload[:idx])
	rhs := strings.TrimSpace(payload[idx+1:])
	if !isVarName(name) {
		in.logError(fmt.Errorf("%w: bad variable name %q", ErrUnknownCommand, name))
		return
	}
	if !strings.HasSuffix(name, "$") {
		if v, err := in.evaluate(rhs); err == nil {
			in.setVar(name, v)
			return
		}
	}
	in.setStringVar(name, unquote(rhs))
}

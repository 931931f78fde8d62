package runtime

import (
	"fmt"
	"strings"

	"github.com/James-HoneyBadger/Super-PILOT/turtle"
)

// Commands that take no argument, used when chunking bracketed bodies.
var logoZeroArg = map[string]bool{
	"PENUP": true, "PU": true,
	"PENDOWN": true, "PD": true,
	"HOME": true, "CLEARSCREEN": true, "CS": true,
	"SHOWTURTLE": true, "ST": true,
	"HIDETURTLE": true, "HT": true,
}

// execLogo maps movement/pen/color commands onto the turtle, handles
// REPEAT blocks and TO procedure definitions, and replays defined
// procedures.
func (in *Interpreter) execLogo(text string) execResult {
	trimmed := strings.TrimSpace(text)
	keyword, rest := splitKeyword(trimmed)

	switch keyword {
	case "FORWARD", "FD":
		in.logoMove(rest, func(t *turtle.State, v float64) { t.Forward(v) })
	case "BACK", "BK", "BACKWARD":
		in.logoMove(rest, func(t *turtle.State, v float64) { t.Back(v) })
	case "LEFT", "LT":
		in.logoMove(rest, func(t *turtle.State, v float64) { t.Left(v) })
	case "RIGHT", "RT":
		in.logoMove(rest, func(t *turtle.State, v float64) { t.Right(v) })
	case "SETHEADING", "SETH":
		in.logoMove(rest, func(t *turtle.State, v float64) { t.SetHeading(v) })
	case "SETWIDTH", "SETPENSIZE", "PENSIZE":
		in.logoMove(rest, func(t *turtle.State, v float64) { t.SetPenWidth(v) })
	case "SETXY", "SETPOS":
		in.logoSetXY(rest)
	case "PENUP", "PU":
		in.turtle.RaisePen()
	case "PENDOWN", "PD":
		in.turtle.LowerPen()
	case "HOME":
		in.turtle.Home()
	case "CLEARSCREEN", "CS":
		// Home first: the homing move itself draws while the pen is
		// down, and CS must leave an empty draw log.
		in.turtle.Home()
		in.turtle.Clear()
	case "SHOWTURTLE", "ST":
		in.turtle.Show()
	case "HIDETURTLE", "HT":
		in.turtle.Hide()
	case "SETCOLOR", "SETPENCOLOR", "PENCOLOR":
		in.logoColor(rest, in.turtle.SetPenColor)
	case "SETBG", "SETBACKGROUND":
		in.logoColor(rest, in.turtle.SetBackground)
	case "MAKE":
		in.logoMake(rest)
	case "REPEAT":
		return in.logoRepeat(rest)
	case "TO":
		return in.logoDefine(rest)
	default:
		if proc, ok := in.procs[keyword]; ok {
			return in.logoCall(proc, rest)
		}
		in.logError(errUnknown("logo command", keyword))
	}
	return execResult{kind: resNone}
}

func (in *Interpreter) logoMove(arg string, apply func(*turtle.State, float64)) {
	v, err := in.evaluate(arg)
	if err != nil {
		in.logError(err)
		return
	}
	apply(in.turtle, v)
}

// logoSetXY accepts "SETXY x y" and "SETXY x, y".
func (in *Interpreter) logoSetXY(args string) {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		parts = strings.Fields(args)
	}
	if len(parts) != 2 {
		in.logError(fmt.Errorf("%w: SETXY needs two coordinates", ErrUnknownCommand))
		return
	}
	x, err := in.evaluate(strings.TrimSpace(parts[0]))
	if err != nil {
		in.logError(err)
		return
	}
	y, err := in.evaluate(strings.TrimSpace(parts[1]))
	if err != nil {
		in.logError(err)
		return
	}
	in.turtle.Goto(x, y)
}

func (in *Interpreter) logoColor(spec string, apply func(turtle.RGB)) {
	c, err := turtle.ParseColor(spec)
	if err != nil {
		in.logError(err)
		return
	}
	apply(c)
}

// logoMake assigns `MAKE "NAME value` through the shared stores, numeric
// when the value evaluates and text otherwise.
func (in *Interpreter) logoMake(rest string) {
	fields := strings.SplitN(strings.TrimSpace(rest), " ", 2)
	if len(fields) != 2 {
		in.logError(fmt.Errorf("%w: MAKE needs a name and a value", ErrMalformedBlock))
		return
	}
	name := strings.Trim(strings.TrimSpace(fields[0]), `"`)
	if !isVarName(name) {
		in.logError(fmt.Errorf("%w: bad variable name %q", ErrUnknownCommand, name))
		return
	}
	rhs := strings.TrimSpace(fields[1])
	if v, err := in.evaluate(rhs); err == nil {
		in.setVar(name, v)
		return
	}
	// Word literals carry a leading quote, quoted strings a pair.
	in.setStringVar(name, strings.Trim(rhs, `"`))
}

// logoRepeat evaluates the count, isolates the bracketed body by its
// outermost [ ] pair, and replays the chunked commands count times
// through the full dispatcher. Nested REPEAT blocks recurse the same
// way. Any directive other than "keep going" escapes the replay: an
// input suspension or a jump raised inside the body ends the loop and
// propagates to the scheduler.
func (in *Interpreter) logoRepeat(rest string) execResult {
	open := strings.IndexByte(rest, '[')
	shut := strings.LastIndexByte(rest, ']')
	if open < 0 || shut < open {
		in.logError(fmt.Errorf("%w: REPEAT needs [ commands ]", ErrMalformedBlock))
		return execResult{kind: resNone}
	}
	count, err := in.evaluate(strings.TrimSpace(rest[:open]))
	if err != nil {
		in.logError(err)
		return execResult{kind: resNone}
	}
	cmds, err := chunkLogoBody(rest[open+1 : shut])
	if err != nil {
		in.logError(err)
		return execResult{kind: resNone}
	}
	for i := 0; i < int(count); i++ {
		for _, cmd := range cmds {
			if res := in.execLine(cmd); res.kind != resNone {
				return res
			}
		}
	}
	return execResult{kind: resNone}
}

// chunkLogoBody splits a bracketed body into replayable commands:
// keyword plus one argument, a bare zero-argument keyword, or a whole
// nested REPEAT group matched by bracket depth.
func chunkLogoBody(body string) ([]string, error) {
	spaced := strings.NewReplacer("[", " [ ", "]", " ] ").Replace(body)
	tokens := strings.Fields(spaced)
	var cmds []string
	i := 0
	for i < len(tokens) {
		word := strings.ToUpper(tokens[i])
		switch {
		case word == "REPEAT":
			end, err := matchBracket(tokens, i)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, strings.Join(tokens[i:end+1], " "))
			i = end + 1
		case word == "MAKE" && i+2 < len(tokens):
			// MAKE carries a name and a value.
			cmds = append(cmds, strings.Join(tokens[i:i+3], " "))
			i += 3
		case logoZeroArg[word] || i+1 >= len(tokens):
			cmds = append(cmds, tokens[i])
			i++
		default:
			cmds = append(cmds, tokens[i]+" "+tokens[i+1])
			i += 2
		}
	}
	return cmds, nil
}

// matchBracket finds the ] closing the first [ at or after start,
// honoring nesting.
func matchBracket(tokens []string, start int) (int, error) {
	depth := 0
	opened := false
	for i := start; i < len(tokens); i++ {
		switch tokens[i] {
		case "[":
			depth++
			opened = true
		case "]":
			depth--
			if opened && depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unbalanced brackets", ErrMalformedBlock)
}

// logoDefine captures the body of "TO name :param ..." by scanning
// forward to the matching END line, then jumps the cursor past it.
// The classifier treats the captured name as Logo from here on.
func (in *Interpreter) logoDefine(rest string) execResult {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		in.logError(fmt.Errorf("%w: TO needs a name", ErrMalformedBlock))
		return execResult{kind: resNone}
	}
	name := strings.ToUpper(fields[0])
	var params []string
	for _, f := range fields[1:] {
		params = append(params, strings.ToUpper(strings.TrimPrefix(f, ":")))
	}
	var body []string
	for idx := in.cursor + 1; idx < len(in.prog.Lines); idx++ {
		line := strings.TrimSpace(in.prog.Lines[idx].Text)
		if strings.EqualFold(line, "END") {
			in.procs[name] = &logoProc{params: params, body: body}
			return execResult{kind: resJump, target: idx + 1}
		}
		body = append(body, line)
	}
	in.logError(fmt.Errorf("%w: TO %s has no END", ErrMalformedBlock, name))
	return execResult{kind: resJump, target: len(in.prog.Lines)}
}

// logoCall replays a captured procedure body with arguments bound to
// its parameters, restoring any shadowed bindings afterward. Directives
// raised inside the body (end, jump, input suspension) propagate to the
// scheduler; the shadow restore still runs on the way out.
func (in *Interpreter) logoCall(proc *logoProc, rest string) execResult {
	args := strings.Fields(rest)
	if len(args) != len(proc.params) {
		in.logError(fmt.Errorf("%w: expected %d arguments, got %d", ErrUnknownCommand, len(proc.params), len(args)))
		return execResult{kind: resNone}
	}
	type saved struct {
		value float64
		had   bool
	}
	shadow := make(map[string]saved, len(proc.params))
	for i, p := range proc.params {
		v, err := in.evaluate(args[i])
		if err != nil {
			in.logError(err)
			return execResult{kind: resNone}
		}
		old, had := in.numVars[p]
		shadow[p] = saved{value: old, had: had}
		in.setVar(p, v)
	}
	defer func() {
		for p, s := range shadow {
			if s.had {
				in.numVars[p] = s.value
			} else {
				delete(in.numVars, p)
			}
		}
	}()
	for _, line := range proc.body {
		if res := in.execLine(line); res.kind != resNone {
			return res
		}
	}
	return execResult{kind: resNone}
}

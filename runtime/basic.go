package runtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// execBasic dispatches on the leading keyword. Bare "NAME = expr" lines
// arrive here too and behave like LET.
func (in *Interpreter) execBasic(text string) execResult {
	trimmed := strings.TrimSpace(text)
	keyword, rest := splitKeyword(trimmed)

	switch keyword {
	case "PRINT":
		in.basicPrint(rest)
	case "LET":
		in.basicAssign(rest)
	case "INPUT":
		return in.basicInput(rest)
	case "GOTO":
		return in.basicJump(rest, false)
	case "GOSUB":
		return in.basicJump(rest, true)
	case "RETURN":
		return in.basicReturn()
	case "IF":
		return in.basicIf(rest)
	case "FOR":
		in.basicFor(trimmed)
	case "NEXT":
		return in.basicNext(rest)
	case "READ":
		in.basicRead(rest)
	case "DATA":
		// Values pooled at load time.
	case "RESTORE":
		in.dataIndex = 0
	case "LOCATE":
		in.basicLocate(rest)
	case "REM":
		// Comment.
	case "END":
		return execResult{kind: resEnd}
	case "CLS":
		in.output = nil
	case "LINE":
		in.basicLine(rest)
	case "CIRCLE":
		in.basicCircle(rest)
	default:
		// Classifier sends bare assignments here.
		if strings.Contains(trimmed, "=") {
			in.basicAssign(trimmed)
		} else {
			in.logError(errUnknown("basic keyword", keyword))
		}
	}
	return execResult{kind: resNone}
}

func splitKeyword(line string) (string, string) {
	fields := strings.SplitN(line, " ", 2)
	keyword := strings.ToUpper(strings.TrimSpace(fields[0]))
	rest := ""
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	return keyword, rest
}

// basicPrint renders comma-separated items joined by single spaces.
// A quoted item prints literally; a bare name bound as a string prints
// the string (strings win ties with numerics); anything that evaluates
// prints as a number; leftovers print as interpolated raw text.
func (in *Interpreter) basicPrint(args string) {
	if args == "" {
		in.appendOutput("")
		return
	}
	var parts []string
	for _, item := range splitOutsideQuotes(args, ',') {
		item = strings.TrimSpace(item)
		switch {
		case len(item) >= 2 && item[0] == '"' && item[len(item)-1] == '"':
			parts = append(parts, item[1:len(item)-1])
		default:
			if isVarName(item) {
				if s, ok := in.strVars[strings.ToUpper(item)]; ok {
					parts = append(parts, s)
					continue
				}
			}
			if v, err := in.evaluate(item); err == nil {
				parts = append(parts, formatNumber(v))
				continue
			}
			parts = append(parts, in.interpolate(item))
		}
	}
	in.appendOutput(strings.Join(parts, " "))
}

// splitOutsideQuotes splits on sep, ignoring separators inside double
// quotes.
func splitOutsideQuotes(s string, sep byte) []string {
	var out []string
	depth := false
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			depth = !depth
		case sep:
			if !depth {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, s[last:])
	return out
}

func (in *Interpreter) basicAssign(stmt string) {
	idx := strings.IndexByte(stmt, '=')
	if idx <= 0 {
		in.logError(fmt.Errorf("%w: LET needs NAME = expression", ErrUnknownCommand))
		return
	}
	name := strings.TrimSpace(stmt[:idx])
	rhs := strings.TrimSpace(stmt[idx+1:])
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

// basicInput accepts 'INPUT VAR' and 'INPUT "prompt"; VAR' forms.
func (in *Interpreter) basicInput(args string) execResult {
	prompt := ""
	name := strings.TrimSpace(args)
	if strings.HasPrefix(name, "\"") {
		for _, sep := range []byte{';', ','} {
			parts := splitOutsideQuotes(name, sep)
			if len(parts) == 2 {
				prompt = unquote(strings.TrimSpace(parts[0]))
				name = strings.TrimSpace(parts[1])
				break
			}
		}
	}
	if name == "" || !isVarName(name) {
		in.logError(fmt.Errorf("%w: INPUT needs a variable", ErrUnknownCommand))
		return execResult{kind: resNone}
	}
	if prompt != "" {
		in.appendOutput(prompt)
	}
	return in.requestInput(InputRequest{
		Prompt:        prompt,
		Variable:      name,
		PreferNumeric: !strings.HasSuffix(name, "$"),
	})
}

// basicRead binds the next pooled DATA values to a comma-separated
// variable list. $ names take the value as text; other names bind
// numeric when the value parses. Exhausting the pool logs an error and
// leaves the remaining variables untouched.
func (in *Interpreter) basicRead(args string) {
	for _, raw := range strings.Split(args, ",") {
		name := strings.TrimSpace(raw)
		if !isVarName(name) {
			in.logError(fmt.Errorf("%w: bad variable name %q", ErrUnknownCommand, name))
			continue
		}
		if in.dataIndex >= len(in.dataValues) {
			in.logError(ErrOutOfData)
			return
		}
		value := in.dataValues[in.dataIndex]
		in.dataIndex++
		in.bindInput(InputRequest{
			Variable:      name,
			PreferNumeric: !strings.HasSuffix(name, "$"),
		}, unquote(value))
	}
}

// basicLocate checks LOCATE row, col. The output log has no cursor
// addressing, so the arguments are validated and nothing moves.
func (in *Interpreter) basicLocate(args string) {
	if _, err := in.evalArgs(args, 2); err != nil {
		in.logError(err)
	}
}

// basicJump resolves GOTO/GOSUB targets by BASIC line number. A missing
// target is logged and skipped, never fatal.
func (in *Interpreter) basicJump(arg string, push bool) execResult {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		in.logError(fmt.Errorf("%w: %q", ErrInvalidLineNumber, arg))
		return execResult{kind: resNone}
	}
	idx, ok := in.prog.FindLineNumber(n)
	if !ok {
		in.logError(fmt.Errorf("%w: %d", ErrInvalidLineNumber, n))
		return execResult{kind: resNone}
	}
	if push {
		in.gosubStack = append(in.gosubStack, in.cursor)
	}
	return execResult{kind: resJump, target: idx}
}

func (in *Interpreter) basicReturn() execResult {
	if len(in.gosubStack) == 0 {
		in.logError(ErrReturnWithoutGosub)
		return execResult{kind: resNone}
	}
	ret := in.gosubStack[len(in.gosubStack)-1]
	in.gosubStack = in.gosubStack[:len(in.gosubStack)-1]
	return execResult{kind: resJump, target: ret + 1}
}

var thenPattern = regexp.MustCompile(`(?i)\bTHEN\b`)

// basicIf evaluates the condition and either jumps to a line number or
// runs the inline command through the full dispatcher.
func (in *Interpreter) basicIf(rest string) execResult {
	loc := thenPattern.FindStringIndex(rest)
	if loc == nil {
		in.logError(fmt.Errorf("%w: IF needs THEN", ErrUnknownCommand))
		return execResult{kind: resNone}
	}
	cond := strings.TrimSpace(rest[:loc[0]])
	action := strings.TrimSpace(rest[loc[1]:])
	ok, err := in.evalCondition(cond)
	if err != nil {
		in.logError(err)
		return execResult{kind: resNone}
	}
	if !ok {
		return execResult{kind: resNone}
	}
	if _, err := strconv.Atoi(action); err == nil {
		return in.basicJump(action, false)
	}
	return in.execLine(action)
}

var forPattern = regexp.MustCompile(`(?i)^FOR\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+?)\s+TO\s+(.+?)(?:\s+STEP\s+(.+))?$`)

// basicFor pushes a loop frame and seeds the counter. Default step is 1.
func (in *Interpreter) basicFor(stmt string) {
	m := forPattern.FindStringSubmatch(stmt)
	if m == nil {
		in.logError(fmt.Errorf("%w: FOR var = start TO end [STEP n]", ErrUnknownCommand))
		return
	}
	start, err := in.evaluate(m[2])
	if err != nil {
		in.logError(err)
		return
	}
	end, err := in.evaluate(m[3])
	if err != nil {
		in.logError(err)
		return
	}
	step := 1.0
	if m[4] != "" {
		step, err = in.evaluate(m[4])
		if err != nil {
			in.logError(err)
			return
		}
	}
	in.setVar(m[1], start)
	in.forStack = append(in.forStack, forContext{
		varName: strings.ToUpper(m[1]),
		end:     end,
		step:    step,
		forLine: in.cursor,
	})
}

// basicNext advances the innermost loop, looping back to the line after
// its FOR while the bound holds, popping the frame otherwise.
func (in *Interpreter) basicNext(arg string) execResult {
	if len(in.forStack) == 0 {
		in.logError(ErrNextWithoutFor)
		return execResult{kind: resNone}
	}
	top := &in.forStack[len(in.forStack)-1]
	name := strings.ToUpper(strings.TrimSpace(arg))
	if name != "" && name != top.varName {
		in.logError(fmt.Errorf("%w: NEXT %s does not match FOR %s", ErrNextWithoutFor, name, top.varName))
		return execResult{kind: resNone}
	}
	next := in.numVars[top.varName] + top.step
	in.setVar(top.varName, next)
	keep := next <= top.end
	if top.step < 0 {
		keep = next >= top.end
	}
	if keep {
		return execResult{kind: resJump, target: top.forLine + 1}
	}
	in.forStack = in.forStack[:len(in.forStack)-1]
	return execResult{kind: resNone}
}

// evalArgs evaluates a comma-separated argument list to exactly n
// numbers.
func (in *Interpreter) evalArgs(args string, n int) ([]float64, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", ErrUnknownCommand, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := in.evaluate(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// basicLine draws a segment between two points, leaving the prior pen
// state intact.
func (in *Interpreter) basicLine(args string) {
	v, err := in.evalArgs(args, 4)
	if err != nil {
		in.logError(err)
		return
	}
	t := in.turtle
	wasDown := t.PenDown
	t.RaisePen()
	t.Goto(v[0], v[1])
	t.LowerPen()
	t.Goto(v[2], v[3])
	t.PenDown = wasDown
}

// basicCircle approximates a circle as a 36-segment polygon.
func (in *Interpreter) basicCircle(args string) {
	v, err := in.evalArgs(args, 3)
	if err != nil {
		in.logError(err)
		return
	}
	cx, cy, r := v[0], v[1], v[2]
	t := in.turtle
	wasDown := t.PenDown
	t.RaisePen()
	t.Goto(cx+r, cy)
	t.LowerPen()
	for i := 1; i <= 36; i++ {
		rad := float64(i) * 10 * math.Pi / 180
		t.Goto(cx+r*math.Cos(rad), cy+r*math.Sin(rad))
	}
	t.PenDown = wasDown
}

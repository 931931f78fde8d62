package runtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/James-HoneyBadger/Super-PILOT/ast"
	"github.com/James-HoneyBadger/Super-PILOT/expr"
	"github.com/James-HoneyBadger/Super-PILOT/turtle"
)

// Phase is the scheduler state. Execute transitions between phases;
// ProvideInput is the only way out of PhaseAwaitingInput.
type Phase string

const (
	PhaseReady         Phase = "ready"
	PhaseRunning       Phase = "running"
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseHalted        Phase = "halted"
	PhaseCompleted     Phase = "completed"
)

// Default circuit breakers against runaway programs.
const (
	DefaultMaxIterations = 100_000
	DefaultTimeLimit     = 10 * time.Second
)

// InputRequest describes one pending interactive read.
type InputRequest struct {
	Prompt        string
	Variable      string
	PreferNumeric bool
}

type pendingInput struct {
	req        InputRequest
	resumeLine int
}

type forContext struct {
	varName string
	end     float64
	step    float64
	forLine int
}

type logoProc struct {
	params []string
	body   []string
}

type resultKind int

const (
	resNone resultKind = iota // advance to the next line
	resJump                   // move the cursor to target
	resEnd                    // terminate the run
	resWait                   // suspend for input
)

type execResult struct {
	kind   resultKind
	target int
}

// Interpreter executes one loaded program against shared state. All
// three dialects read and write the same variables, output log, and
// turtle; exactly one command runs at a time. An Interpreter is not safe
// for concurrent use; a service host must serialize calls per instance.
type Interpreter struct {
	prog   *ast.Program
	turtle *turtle.State

	numVars map[string]float64
	strVars map[string]string
	output  []string

	gosubStack []int
	forStack   []forContext
	procs      map[string]*logoProc
	matchFlag  bool

	dataValues []string
	dataIndex  int

	cursor  int
	phase   Phase
	pending *pendingInput

	inputQueue    []string
	inputProvider func(req InputRequest) (string, bool)
	outputHook    func(line string)

	iterations     int
	iterCeilingHit bool
	maxIterations  int
	timeLimit      time.Duration
}

// New builds an interpreter over a loaded program with a fresh turtle.
func New(prog *ast.Program) *Interpreter {
	in := &Interpreter{
		maxIterations: DefaultMaxIterations,
		timeLimit:     DefaultTimeLimit,
	}
	in.Reset(prog)
	return in
}

// Reset rebinds the interpreter to a program and clears every piece of
// mutable state, variables included.
func (in *Interpreter) Reset(prog *ast.Program) {
	in.prog = prog
	in.turtle = turtle.New()
	in.numVars = map[string]float64{}
	in.strVars = map[string]string{}
	in.output = nil
	in.gosubStack = nil
	in.forStack = nil
	in.procs = map[string]*logoProc{}
	in.matchFlag = false
	in.scanData()
	in.cursor = 0
	in.phase = PhaseReady
	in.pending = nil
	in.inputQueue = nil
	in.iterations = 0
	in.iterCeilingHit = false
}

func (in *Interpreter) Phase() Phase          { return in.phase }
func (in *Interpreter) Turtle() *turtle.State { return in.turtle }
func (in *Interpreter) Output() []string      { return in.output }

// Pending returns the outstanding input request while suspended.
func (in *Interpreter) Pending() (InputRequest, bool) {
	if in.pending == nil {
		return InputRequest{}, false
	}
	return in.pending.req, true
}

// Var reads a numeric binding.
func (in *Interpreter) Var(name string) (float64, bool) {
	v, ok := in.numVars[strings.ToUpper(name)]
	return v, ok
}

// StringVar reads a string binding.
func (in *Interpreter) StringVar(name string) (string, bool) {
	v, ok := in.strVars[strings.ToUpper(name)]
	return v, ok
}

func (in *Interpreter) setVar(name string, v float64) {
	in.numVars[strings.ToUpper(name)] = v
}

func (in *Interpreter) setStringVar(name, v string) {
	in.strVars[strings.ToUpper(name)] = v
}

// Vars returns a copy of the numeric bindings.
func (in *Interpreter) Vars() map[string]float64 {
	out := make(map[string]float64, len(in.numVars))
	for k, v := range in.numVars {
		out[k] = v
	}
	return out
}

// StringVars returns a copy of the string bindings.
func (in *Interpreter) StringVars() map[string]string {
	out := make(map[string]string, len(in.strVars))
	for k, v := range in.strVars {
		out[k] = v
	}
	return out
}

// ForDepth reports the number of open FOR frames.
func (in *Interpreter) ForDepth() int { return len(in.forStack) }

// SetLimits overrides the iteration and wall-clock ceilings.
func (in *Interpreter) SetLimits(maxIterations int, timeLimit time.Duration) {
	if maxIterations > 0 {
		in.maxIterations = maxIterations
	}
	if timeLimit > 0 {
		in.timeLimit = timeLimit
	}
}

// EnqueueInput queues values consumed synchronously by A:/INPUT before
// any suspension happens. Useful for tests and scripted runs.
func (in *Interpreter) EnqueueInput(values ...string) {
	in.inputQueue = append(in.inputQueue, values...)
}

// SetInputProvider installs a synchronous input source. Returning false
// means "no value"; the interpreter then suspends.
func (in *Interpreter) SetInputProvider(fn func(req InputRequest) (string, bool)) {
	in.inputProvider = fn
}

// SetOutputHook mirrors every appended output line to fn.
func (in *Interpreter) SetOutputHook(fn func(line string)) {
	in.outputHook = fn
}

// Execute drives the fetch-classify-execute cycle. Starting from any
// phase except AwaitingInput begins a fresh run (output cleared,
// variables kept). Resuming after ProvideInput continues mid-program.
// The iteration ceiling ends the run with a warning but no error; the
// wall-clock ceiling returns ErrTimeout with accumulated output intact.
func (in *Interpreter) Execute() ([]string, error) {
	switch in.phase {
	case PhaseAwaitingInput:
		return in.output, nil
	case PhaseRunning:
		// resumed via ProvideInput
	default:
		in.startRun()
	}
	in.phase = PhaseRunning
	start := time.Now()

	for in.cursor < len(in.prog.Lines) {
		if time.Since(start) > in.timeLimit {
			in.appendOutput("warning: " + ErrTimeout.Error())
			in.phase = PhaseHalted
			return in.output, ErrTimeout
		}
		res := in.execLine(in.prog.Lines[in.cursor].Text)
		switch res.kind {
		case resJump:
			in.cursor = res.target
		case resEnd:
			in.phase = PhaseCompleted
			return in.output, nil
		case resWait:
			in.phase = PhaseAwaitingInput
			return in.output, nil
		default:
			in.cursor++
		}
	}
	in.phase = PhaseCompleted
	return in.output, nil
}

// ProvideInput satisfies the pending request: the value binds numeric
// when the request prefers numeric and the text parses, string
// otherwise. The cursor moves past the requesting line; the caller
// re-invokes Execute to continue.
func (in *Interpreter) ProvideInput(value string) {
	if in.phase != PhaseAwaitingInput || in.pending == nil {
		return
	}
	in.bindInput(in.pending.req, value)
	in.cursor = in.pending.resumeLine + 1
	in.pending = nil
	in.phase = PhaseRunning
}

func (in *Interpreter) startRun() {
	in.output = nil
	in.gosubStack = nil
	in.forStack = nil
	in.matchFlag = false
	in.cursor = 0
	in.pending = nil
	in.dataIndex = 0
	in.iterations = 0
	in.iterCeilingHit = false
}

// scanData pools every DATA statement's values in line order at load,
// the whole program ahead of the cursor included. READ consumes the
// pool sequentially; RESTORE rewinds it.
func (in *Interpreter) scanData() {
	in.dataValues = nil
	in.dataIndex = 0
	for _, line := range in.prog.Lines {
		trimmed := strings.TrimSpace(line.Text)
		if len(trimmed) < 5 || !strings.EqualFold(trimmed[:5], "DATA ") {
			continue
		}
		for _, v := range splitOutsideQuotes(trimmed[5:], ',') {
			in.dataValues = append(in.dataValues, strings.TrimSpace(v))
		}
	}
}

// execLine is the per-command dispatcher. Nested REPEAT bodies and
// procedure replay recurse back into it, so the iteration ceiling is
// charged here rather than in the outer loop.
func (in *Interpreter) execLine(text string) execResult {
	in.iterations++
	if in.iterations > in.maxIterations {
		if !in.iterCeilingHit {
			in.iterCeilingHit = true
			in.appendOutput("warning: maximum iterations reached, stopping")
		}
		return execResult{kind: resEnd}
	}
	switch in.classify(text) {
	case DialectLogo:
		return in.execLogo(text)
	case DialectBasic:
		return in.execBasic(text)
	default:
		return in.execPilot(text)
	}
}

func (in *Interpreter) appendOutput(line string) {
	in.output = append(in.output, line)
	if in.outputHook != nil {
		in.outputHook(line)
	}
}

func (in *Interpreter) logError(err error) {
	in.appendOutput("error: " + err.Error())
}

// resolveInput tries the queue first, then the registered provider.
func (in *Interpreter) resolveInput(req InputRequest) (string, bool) {
	if len(in.inputQueue) > 0 {
		v := in.inputQueue[0]
		in.inputQueue = in.inputQueue[1:]
		return v, true
	}
	if in.inputProvider != nil {
		if v, ok := in.inputProvider(req); ok {
			return v, true
		}
	}
	return "", false
}

func (in *Interpreter) bindInput(req InputRequest, value string) {
	if req.PreferNumeric {
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			in.setVar(req.Variable, n)
			return
		}
	}
	in.setStringVar(req.Variable, value)
}

// requestInput either consumes a synchronous value or suspends the run
// on a pending request anchored at the current line.
func (in *Interpreter) requestInput(req InputRequest) execResult {
	if v, ok := in.resolveInput(req); ok {
		in.bindInput(req, v)
		return execResult{kind: resNone}
	}
	in.pending = &pendingInput{req: req, resumeLine: in.cursor}
	return execResult{kind: resWait}
}

var interpolatePattern = regexp.MustCompile(`\*([A-Za-z_][A-Za-z0-9_]*\$?)\*`)

// interpolate substitutes *VAR* markers from string or numeric bindings,
// string first. Text without a marker passes through untouched.
func (in *Interpreter) interpolate(text string) string {
	if !strings.Contains(text, "*") {
		return text
	}
	return interpolatePattern.ReplaceAllStringFunc(text, func(m string) string {
		name := strings.ToUpper(m[1 : len(m)-1])
		if s, ok := in.strVars[name]; ok {
			return s
		}
		if n, ok := in.numVars[name]; ok {
			return formatNumber(n)
		}
		return m
	})
}

// formatNumber renders 3.0 as "3" the way the classic interpreters did.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var paramRefPattern = regexp.MustCompile(`:([A-Za-z_])`)

func (in *Interpreter) evaluate(text string) (float64, error) {
	// Logo writes parameter references as :NAME; the evaluator sees the
	// plain variable.
	if strings.Contains(text, ":") {
		text = paramRefPattern.ReplaceAllString(text, "$1")
	}
	return expr.Evaluate(text, in.numVars)
}

// Comparison operators ordered so two-character forms match first.
var comparisonOps = []string{"<=", ">=", "<>", "!=", "==", "<", ">", "="}

// evalCondition decides PILOT C: and BASIC IF conditions. With a
// comparison operator both sides evaluate numerically, falling back to a
// string comparison for (in)equality; without one the whole expression
// must be nonzero.
func (in *Interpreter) evalCondition(text string) (bool, error) {
	for _, op := range comparisonOps {
		idx := strings.Index(text, op)
		if idx <= 0 {
			continue
		}
		lhs := strings.TrimSpace(text[:idx])
		rhs := strings.TrimSpace(text[idx+len(op):])
		if lhs == "" || rhs == "" {
			continue
		}
		l, errL := in.evaluate(lhs)
		r, errR := in.evaluate(rhs)
		if errL != nil || errR != nil {
			if op == "=" || op == "==" || op == "<>" || op == "!=" {
				ls, lok := in.stringOperand(lhs)
				rs, rok := in.stringOperand(rhs)
				if lok && rok {
					eq := ls == rs
					if op == "<>" || op == "!=" {
						return !eq, nil
					}
					return eq, nil
				}
			}
			if errL != nil {
				return false, errL
			}
			return false, errR
		}
		switch op {
		case "<=":
			return l <= r, nil
		case ">=":
			return l >= r, nil
		case "<>", "!=":
			return l != r, nil
		case "<":
			return l < r, nil
		case ">":
			return l > r, nil
		default:
			return l == r, nil
		}
	}
	v, err := in.evaluate(text)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// stringOperand resolves a condition side as a quoted literal or a
// string variable.
func (in *Interpreter) stringOperand(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	if isVarName(s) {
		if v, ok := in.strVars[strings.ToUpper(s)]; ok {
			return v, true
		}
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func errUnknown(what, name string) error {
	return fmt.Errorf("%w: %s %s", ErrUnknownCommand, what, name)
}

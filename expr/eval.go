package expr

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Epsilon bounds how close a denominator may get to zero before division
// is rejected.
const Epsilon = 1e-12

var (
	ErrParse           = errors.New("malformed expression")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownFunction = errors.New("unknown function")
	ErrDivisionByZero  = errors.New("division by zero")
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokFunc
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type funcDef struct {
	arity int
	apply func(args []float64) (float64, error)
}

var functions = map[string]funcDef{
	"SIN":   {1, func(a []float64) (float64, error) { return math.Sin(a[0]), nil }},
	"COS":   {1, func(a []float64) (float64, error) { return math.Cos(a[0]), nil }},
	"TAN":   {1, func(a []float64) (float64, error) { return math.Tan(a[0]), nil }},
	"ATAN":  {1, func(a []float64) (float64, error) { return math.Atan(a[0]), nil }},
	"SQRT":  {1, func(a []float64) (float64, error) { return math.Sqrt(a[0]), nil }},
	"ABS":   {1, func(a []float64) (float64, error) { return math.Abs(a[0]), nil }},
	"EXP":   {1, func(a []float64) (float64, error) { return math.Exp(a[0]), nil }},
	"LOG":   {1, func(a []float64) (float64, error) { return math.Log(a[0]), nil }},
	"LOG10": {1, func(a []float64) (float64, error) { return math.Log10(a[0]), nil }},
	"INT":   {1, func(a []float64) (float64, error) { return math.Floor(a[0]), nil }},
	"ROUND": {1, func(a []float64) (float64, error) { return math.Round(a[0]), nil }},
	"SGN": {1, func(a []float64) (float64, error) {
		switch {
		case a[0] > 0:
			return 1, nil
		case a[0] < 0:
			return -1, nil
		default:
			return 0, nil
		}
	}},
	"MAX": {2, func(a []float64) (float64, error) { return math.Max(a[0], a[1]), nil }},
	"MIN": {2, func(a []float64) (float64, error) { return math.Min(a[0], a[1]), nil }},
	"POW": {2, func(a []float64) (float64, error) { return math.Pow(a[0], a[1]), nil }},
	"RND": {0, func(a []float64) (float64, error) { return rand.Float64(), nil }},
}

// Legacy BASIC spellings for the same functions.
var funcAliases = map[string]string{
	"ATN": "ATAN",
	"SQR": "SQRT",
	"LN":  "LOG",
}

// Precedence: + - bind loosest, then * / %, then ^.
// ^ is right-associative; everything else groups left to right.
func precedence(op string) int {
	switch op {
	case "+", "-":
		return 1
	case "*", "/", "%":
		return 2
	case "^":
		return 3
	}
	return 0
}

func rightAssoc(op string) bool { return op == "^" }

// Evaluate tokenizes an arithmetic expression, reorders it to
// reverse-Polish form with a shunting-yard pass, and folds the result
// with an operand stack. Variables resolve through vars; an unbound name
// is an error, never zero.
func Evaluate(text string, vars map[string]float64) (float64, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, fmt.Errorf("%w: empty expression", ErrParse)
	}
	rpn, err := toRPN(tokens)
	if err != nil {
		return 0, err
	}
	return evalRPN(rpn, vars)
}

func tokenize(text string) ([]token, error) {
	var out []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(text) && (text[j] >= '0' && text[j] <= '9' || text[j] == '.') {
				j++
			}
			n, err := strconv.ParseFloat(text[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrParse, text[i:j])
			}
			out = append(out, token{kind: tokNumber, num: n})
			i = j
		case c == '-' && unaryMinusPosition(out) && followedByDigit(text, i+1):
			// Negative literal, not subtraction.
			j := i + 1
			for j < len(text) && (text[j] >= '0' && text[j] <= '9' || text[j] == '.') {
				j++
			}
			n, err := strconv.ParseFloat(text[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrParse, text[i:j])
			}
			out = append(out, token{kind: tokNumber, num: n})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(text) && isIdentPart(text[j]) {
				j++
			}
			out = append(out, token{kind: tokIdent, text: strings.ToUpper(text[i:j])})
			i = j
		case strings.ContainsRune("+-*/%^", rune(c)):
			out = append(out, token{kind: tokOp, text: string(c)})
			i++
		case c == '(':
			out = append(out, token{kind: tokLParen})
			i++
		case c == ')':
			out = append(out, token{kind: tokRParen})
			i++
		case c == ',':
			out = append(out, token{kind: tokComma})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrParse, string(c))
		}
	}
	// An identifier directly before "(" names a function call.
	for k := 0; k+1 < len(out); k++ {
		if out[k].kind == tokIdent && out[k+1].kind == tokLParen {
			out[k].kind = tokFunc
		}
	}
	return out, nil
}

// A "-" starts a numeric literal only at the beginning of the expression
// or right after an operator, "(", or ",".
func unaryMinusPosition(sofar []token) bool {
	if len(sofar) == 0 {
		return true
	}
	switch sofar[len(sofar)-1].kind {
	case tokOp, tokLParen, tokComma:
		return true
	}
	return false
}

func followedByDigit(text string, i int) bool {
	return i < len(text) && text[i] >= '0' && text[i] <= '9'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func toRPN(tokens []token) ([]token, error) {
	var out []token
	var ops []token
	for _, t := range tokens {
		switch t.kind {
		case tokNumber, tokIdent:
			out = append(out, t)
		case tokFunc:
			ops = append(ops, t)
		case tokOp:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != tokOp {
					break
				}
				if precedence(top.text) > precedence(t.text) ||
					(precedence(top.text) == precedence(t.text) && !rightAssoc(t.text)) {
					out = append(out, top)
					ops = ops[:len(ops)-1]
					continue
				}
				break
			}
			ops = append(ops, t)
		case tokLParen:
			ops = append(ops, t)
		case tokComma:
			for len(ops) > 0 && ops[len(ops)-1].kind != tokLParen {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, fmt.Errorf("%w: misplaced comma", ErrParse)
			}
		case tokRParen:
			for len(ops) > 0 && ops[len(ops)-1].kind != tokLParen {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, fmt.Errorf("%w: unbalanced parentheses", ErrParse)
			}
			ops = ops[:len(ops)-1]
			if len(ops) > 0 && ops[len(ops)-1].kind == tokFunc {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.kind == tokLParen {
			return nil, fmt.Errorf("%w: unbalanced parentheses", ErrParse)
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}
	return out, nil
}

func evalRPN(rpn []token, vars map[string]float64) (float64, error) {
	var stack []float64
	pop := func() (float64, bool) {
		if len(stack) == 0 {
			return 0, false
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, true
	}
	for _, t := range rpn {
		switch t.kind {
		case tokNumber:
			stack = append(stack, t.num)
		case tokIdent:
			v, ok := vars[t.text]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, t.text)
			}
			stack = append(stack, v)
		case tokFunc:
			name := t.text
			if canon, ok := funcAliases[name]; ok {
				name = canon
			}
			def, ok := functions[name]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, t.text)
			}
			args := make([]float64, def.arity)
			for k := def.arity - 1; k >= 0; k-- {
				v, ok := pop()
				if !ok {
					return 0, fmt.Errorf("%w: %s expects %d arguments", ErrParse, t.text, def.arity)
				}
				args[k] = v
			}
			v, err := def.apply(args)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)
		case tokOp:
			b, okB := pop()
			a, okA := pop()
			if !okA || !okB {
				return 0, fmt.Errorf("%w: operator %s needs two operands", ErrParse, t.text)
			}
			v, err := applyOp(t.text, a, b)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)
		}
	}
	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: leftover operands", ErrParse)
	}
	return stack[0], nil
}

func applyOp(op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if math.Abs(b) < Epsilon {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case "%":
		if math.Abs(b) < Epsilon {
			return 0, ErrDivisionByZero
		}
		return math.Mod(a, b), nil
	case "^":
		return math.Pow(a, b), nil
	}
	return 0, fmt.Errorf("%w: unknown operator %s", ErrParse, op)
}

package parser

import (
	"strconv"
	"strings"

	"github.com/James-HoneyBadger/Super-PILOT/ast"
)

// ParseProgram turns raw program text into an addressable line sequence
// plus the PILOT label table. Blank lines are dropped; everything else is
// kept verbatim so execution-time errors stay recoverable per line.
func ParseProgram(text string) (*ast.Program, error) {
	prog := &ast.Program{
		Labels: map[string]int{},
	}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		num, rest := splitLineNumber(line)
		pl := ast.ProgramLine{Number: num, Text: rest}
		idx := len(prog.Lines)
		prog.Lines = append(prog.Lines, pl)
		if label, ok := labelName(rest); ok {
			prog.Labels[label] = idx
		}
	}
	return prog, nil
}

// splitLineNumber peels a leading BASIC line number off a command line.
// A line without a parseable leading integer keeps its full text.
func splitLineNumber(line string) (*int, string) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return nil, line
	}
	// "10PRINT" is not a numbered line; the number must be followed by
	// whitespace or end the line.
	if i < len(line) && line[i] != ' ' && line[i] != '\t' {
		return nil, line
	}
	n, err := strconv.Atoi(line[:i])
	if err != nil {
		return nil, line
	}
	return &n, strings.TrimSpace(line[i:])
}

// labelName extracts a PILOT label declaration ("L:NAME"). Labels map to
// line indices, never to BASIC line numbers.
func labelName(text string) (string, bool) {
	if len(text) < 2 || !strings.HasPrefix(strings.ToUpper(text[:2]), "L:") {
		return "", false
	}
	name := strings.TrimSpace(text[2:])
	if name == "" {
		return "", false
	}
	return name, true
}

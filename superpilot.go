package superpilot

import (
	"github.com/James-HoneyBadger/Super-PILOT/ast"
	"github.com/James-HoneyBadger/Super-PILOT/parser"
	"github.com/James-HoneyBadger/Super-PILOT/runtime"
)

// Load parses a multi-dialect program (PILOT, BASIC, and Logo lines may
// interleave freely) and builds an interpreter over it.
func Load(program string) (*runtime.Interpreter, error) {
	prog, err := parser.ParseProgram(program)
	if err != nil {
		return nil, err
	}
	return runtime.New(prog), nil
}

// Parse only returns the loaded program model for tooling use.
func Parse(program string) (*ast.Program, error) {
	return parser.ParseProgram(program)
}

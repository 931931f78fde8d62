package ast

// ProgramLine is one source line of a loaded program. Number is the
// leading BASIC line number when the line has one; Text is the command
// with the number stripped.
type ProgramLine struct {
	Number *int
	Text   string
}

// Program is the loaded form of a multi-dialect source text. Lines keep
// source order; Labels maps a PILOT label to the index of the line that
// declares it.
type Program struct {
	Lines  []ProgramLine
	Labels map[string]int
}

// FindLineNumber resolves a BASIC line number to a line index by linear
// scan. Line numbers and line indices are distinct addressing schemes.
func (p *Program) FindLineNumber(n int) (int, bool) {
	for i, ln := range p.Lines {
		if ln.Number != nil && *ln.Number == n {
			return i, true
		}
	}
	return 0, false
}

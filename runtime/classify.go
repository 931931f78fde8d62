package runtime

import "strings"

// Dialect tags which executor handles a command line.
type Dialect int

const (
	DialectPilot Dialect = iota
	DialectBasic
	DialectLogo
)

func (d Dialect) String() string {
	switch d {
	case DialectBasic:
		return "basic"
	case DialectLogo:
		return "logo"
	default:
		return "pilot"
	}
}

var logoKeywords = map[string]bool{
	"FORWARD": true, "FD": true,
	"BACK": true, "BK": true, "BACKWARD": true,
	"LEFT": true, "LT": true,
	"RIGHT": true, "RT": true,
	"PENUP": true, "PU": true,
	"PENDOWN": true, "PD": true,
	"HOME": true, "CLEARSCREEN": true, "CS": true,
	"SETXY": true, "SETPOS": true,
	"SETHEADING": true, "SETH": true,
	"SETCOLOR": true, "SETPENCOLOR": true, "PENCOLOR": true,
	"SETBG": true, "SETBACKGROUND": true,
	"SETWIDTH": true, "SETPENSIZE": true, "PENSIZE": true,
	"SHOWTURTLE": true, "ST": true,
	"HIDETURTLE": true, "HT": true,
	"REPEAT": true, "TO": true, "MAKE": true,
}

var basicKeywords = map[string]bool{
	"PRINT": true, "LET": true, "INPUT": true,
	"GOTO": true, "GOSUB": true, "RETURN": true,
	"IF": true, "FOR": true, "NEXT": true,
	"REM": true, "END": true, "CLS": true,
	"READ": true, "DATA": true, "RESTORE": true, "LOCATE": true,
	"LINE": true, "CIRCLE": true,
}

// classify picks the dialect for one command line. The checks are
// ordered: the PILOT code+colon shape wins, then Logo keywords and known
// procedure names, then BASIC keywords, then bare assignments; anything
// left is PILOT free text. Dialects may interleave line by line, so this
// runs fresh on every fetch.
func (in *Interpreter) classify(line string) Dialect {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) >= 2 && trimmed[1] == ':' {
		return DialectPilot
	}
	first := firstToken(trimmed)
	if logoKeywords[first] {
		return DialectLogo
	}
	if _, ok := in.procs[first]; ok {
		return DialectLogo
	}
	if basicKeywords[first] {
		return DialectBasic
	}
	if i := strings.IndexByte(trimmed, '='); i > 0 {
		if isVarName(strings.TrimSpace(trimmed[:i])) {
			return DialectBasic
		}
	}
	return DialectPilot
}

// Classify reports which dialect a command line would dispatch to.
// Procedure names defined by TO during a run count as Logo.
func (in *Interpreter) Classify(line string) Dialect {
	return in.classify(line)
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// isVarName reports whether s is a plain variable name, optionally with
// the string-variable $ suffix.
func isVarName(s string) bool {
	if s == "" {
		return false
	}
	body := strings.TrimSuffix(s, "$")
	if body == "" {
		return false
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

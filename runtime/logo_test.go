package runtime

import (
	"math"
	"strings"
	"testing"
)

func TestLogoRepeatSquare(t *testing.T) {
	in, _ := run(t, "REPEAT 4 [FORWARD 50 RIGHT 90]\n")
	tt := in.Turtle()
	if math.Abs(tt.X) > 1e-9 || math.Abs(tt.Y) > 1e-9 {
		t.Fatalf("turtle not home: (%v, %v)", tt.X, tt.Y)
	}
	if math.Abs(tt.Heading) > 1e-9 {
		t.Fatalf("heading: %v", tt.Heading)
	}
	if len(tt.Segments) != 4 {
		t.Fatalf("segment count: %d", len(tt.Segments))
	}
}

func TestLogoNestedRepeat(t *testing.T) {
	in, _ := run(t, "REPEAT 2 [REPEAT 3 [FD 10 RT 120] RT 180]\n")
	if got := len(in.Turtle().Segments); got != 6 {
		t.Fatalf("segment count: %d", got)
	}
}

func TestLogoRepeatZeroArgInBody(t *testing.T) {
	in, _ := run(t, "REPEAT 2 [PENUP FD 10 PENDOWN FD 5]\n")
	if got := len(in.Turtle().Segments); got != 2 {
		t.Fatalf("segment count: %d", got)
	}
}

func TestLogoRepeatMissingBracket(t *testing.T) {
	_, out := run(t, "REPEAT 4 FORWARD 50\n")
	if len(out) != 1 || !strings.Contains(out[0], "malformed block") {
		t.Fatalf("output: %v", out)
	}
}

func TestLogoProcedure(t *testing.T) {
	src := `TO SQUARE :SIZE
REPEAT 4 [FORWARD :SIZE RIGHT 90]
END
SQUARE 30
SQUARE 60
`
	in, out := run(t, src)
	if len(out) != 0 {
		t.Fatalf("unexpected output: %v", out)
	}
	if got := len(in.Turtle().Segments); got != 8 {
		t.Fatalf("segment count: %d", got)
	}
	if in.Turtle().Segments[0].X2-in.Turtle().Segments[0].X1 != 0 {
		// first stroke is straight up
		t.Fatalf("unexpected first segment: %+v", in.Turtle().Segments[0])
	}
}

func TestLogoProcedureRestoresShadowedParam(t *testing.T) {
	src := `U:SIZE = 7
TO STRIDE :SIZE
FORWARD :SIZE
END
STRIDE 3
`
	in, _ := run(t, src)
	if v, _ := in.Var("SIZE"); v != 7 {
		t.Fatalf("SIZE after call: %v", v)
	}
}

func TestLogoDefinitionSkipsBody(t *testing.T) {
	src := `TO NOISY
T:should not print
END
T:after
`
	_, out := run(t, src)
	if len(out) != 1 || out[0] != "after" {
		t.Fatalf("output: %v", out)
	}
}

func TestLogoMissingEnd(t *testing.T) {
	_, out := run(t, "TO BROKEN\nFD 10\n")
	if len(out) != 1 || !strings.Contains(out[0], "malformed block") {
		t.Fatalf("output: %v", out)
	}
}

func TestLogoPenAndMovement(t *testing.T) {
	src := `PENUP
SETXY 10 20
PENDOWN
FD 5
BK 5
LT 90
`
	in, _ := run(t, src)
	tt := in.Turtle()
	if tt.X != 10 || tt.Y != 20 {
		t.Fatalf("position: (%v, %v)", tt.X, tt.Y)
	}
	if len(tt.Segments) != 2 {
		t.Fatalf("segment count: %d", len(tt.Segments))
	}
	if tt.Heading != 270 {
		t.Fatalf("heading: %v", tt.Heading)
	}
}

func TestLogoColors(t *testing.T) {
	src := `SETCOLOR red
FD 10
SETBG #000
`
	in, _ := run(t, src)
	tt := in.Turtle()
	if tt.Segments[0].Color.R != 255 || tt.Segments[0].Color.G != 0 {
		t.Fatalf("segment color: %+v", tt.Segments[0].Color)
	}
	if tt.Background.R != 0 || tt.Background.G != 0 || tt.Background.B != 0 {
		t.Fatalf("background: %+v", tt.Background)
	}
}

func TestLogoClearScreenHomes(t *testing.T) {
	in, _ := run(t, "FD 50\nRT 90\nCS\n")
	tt := in.Turtle()
	if tt.X != 0 || tt.Y != 0 || tt.Heading != 0 {
		t.Fatalf("turtle after CS: %+v", tt)
	}
	if len(tt.Segments) != 0 {
		t.Fatalf("segments after CS: %d", len(tt.Segments))
	}
}

func TestLogoMake(t *testing.T) {
	src := `MAKE "SIDE 30+10
FORWARD SIDE
MAKE "GREETING "hello
`
	in, _ := run(t, src)
	if v, ok := in.Var("SIDE"); !ok || v != 40 {
		t.Fatalf("SIDE = %v, %v", v, ok)
	}
	if got := in.Turtle().Y; math.Abs(got+40) > 1e-9 {
		t.Fatalf("turtle Y: %v", got)
	}
	if s, ok := in.StringVar("GREETING"); !ok || s != "hello" {
		t.Fatalf("GREETING = %q, %v", s, ok)
	}
}

func TestLogoMakeInRepeatBody(t *testing.T) {
	in, _ := run(t, "MAKE \"N 0\nREPEAT 3 [MAKE \"N N+2 FD N]\n")
	if v, _ := in.Var("N"); v != 6 {
		t.Fatalf("N = %v", v)
	}
	if got := len(in.Turtle().Segments); got != 3 {
		t.Fatalf("segment count: %d", got)
	}
}

func TestProcedureBodyInputSuspends(t *testing.T) {
	src := `TO ASK
A:NAME$
END
ASK
T:after *NAME$*
`
	in := load(t, src)
	if _, err := in.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if in.Phase() != PhaseAwaitingInput {
		t.Fatalf("phase: %v", in.Phase())
	}
	req, ok := in.Pending()
	if !ok || req.Variable != "NAME$" {
		t.Fatalf("pending request: %+v, %v", req, ok)
	}

	in.ProvideInput("Ada")
	out, err := in.Execute()
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if in.Phase() != PhaseCompleted {
		t.Fatalf("phase after resume: %v", in.Phase())
	}
	if _, ok := in.Pending(); ok {
		t.Fatalf("pending request left after completion")
	}
	if len(out) != 1 || out[0] != "after Ada" {
		t.Fatalf("output: %v", out)
	}
}

func TestRepeatBodyInputSuspends(t *testing.T) {
	in := load(t, "REPEAT 2 [A:X]\nT:got *X*\n")
	if _, err := in.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if in.Phase() != PhaseAwaitingInput {
		t.Fatalf("phase: %v", in.Phase())
	}
	req, ok := in.Pending()
	if !ok || req.Variable != "X" || !req.PreferNumeric {
		t.Fatalf("pending request: %+v, %v", req, ok)
	}

	in.ProvideInput("5")
	out, err := in.Execute()
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if in.Phase() != PhaseCompleted {
		t.Fatalf("phase after resume: %v", in.Phase())
	}
	if _, ok := in.Pending(); ok {
		t.Fatalf("pending request left after completion")
	}
	if v, _ := in.Var("X"); v != 5 {
		t.Fatalf("X = %v", v)
	}
	if len(out) != 1 || out[0] != "got 5" {
		t.Fatalf("output: %v", out)
	}
}

func TestProcedureBodyJumpPropagates(t *testing.T) {
	src := `TO BAIL
J:DONE
END
BAIL
T:skipped
L:DONE
T:landed
`
	_, out := run(t, src)
	if len(out) != 1 || out[0] != "landed" {
		t.Fatalf("output: %v", out)
	}
}

func TestLogoExpressionArguments(t *testing.T) {
	src := "U:N = 3\nFORWARD N*10+5\n"
	in, _ := run(t, src)
	if got := in.Turtle().Y; math.Abs(got+35) > 1e-9 {
		t.Fatalf("turtle Y: %v", got)
	}
}

package runtime

import (
	"strings"
	"testing"
)

func TestBasicForLoop(t *testing.T) {
	src := "10 FOR I = 1 TO 3\n20 PRINT I\n30 NEXT I\n"
	in, out := run(t, src)
	want := []string{"1", "2", "3"}
	if len(out) != len(want) {
		t.Fatalf("output: %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("output[%d] = %q, want %q", i, out[i], want[i])
		}
	}
	if in.ForDepth() != 0 {
		t.Fatalf("FOR stack not empty: %d", in.ForDepth())
	}
}

func TestBasicForStep(t *testing.T) {
	_, out := run(t, "10 FOR I = 10 TO 1 STEP -3\n20 PRINT I\n30 NEXT\n")
	want := []string{"10", "7", "4", "1"}
	if strings.Join(out, ",") != strings.Join(want, ",") {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicNextWithoutFor(t *testing.T) {
	_, out := run(t, "10 NEXT I\n20 PRINT \"after\"\n")
	if len(out) != 2 || !strings.Contains(out[0], "NEXT without FOR") {
		t.Fatalf("output: %v", out)
	}
	if out[1] != "after" {
		t.Fatalf("run must continue: %v", out)
	}
}

func TestBasicPrintItems(t *testing.T) {
	src := `10 LET X = 6
20 LET NAME$ = "Ada"
30 PRINT "X is", X * 7, NAME$
`
	_, out := run(t, src)
	if len(out) != 1 || out[0] != "X is 42 Ada" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicPrintStringBeatsNumericOnTies(t *testing.T) {
	src := "10 LET V = 1\n20 V$ = \"text\"\n30 PRINT V$\n40 PRINT V\n"
	_, out := run(t, src)
	if out[0] != "text" || out[1] != "1" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicPrintQuotedCommaStaysWhole(t *testing.T) {
	_, out := run(t, `10 PRINT "a, b", 3`)
	if out[0] != "a, b 3" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicGotoSkipsLines(t *testing.T) {
	src := "10 GOTO 40\n20 PRINT \"skipped\"\n40 PRINT \"landed\"\n"
	_, out := run(t, src)
	if len(out) != 1 || out[0] != "landed" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicGotoMissingLineRecovers(t *testing.T) {
	src := "10 GOTO 99\n20 PRINT \"next\"\n"
	_, out := run(t, src)
	if len(out) != 2 || !strings.Contains(out[0], "invalid line number") {
		t.Fatalf("output: %v", out)
	}
	if out[1] != "next" {
		t.Fatalf("run must continue: %v", out)
	}
}

func TestBasicGosubReturn(t *testing.T) {
	src := `10 GOSUB 100
20 PRINT "back"
30 END
100 PRINT "sub"
110 RETURN
`
	_, out := run(t, src)
	if len(out) != 2 || out[0] != "sub" || out[1] != "back" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicReturnWithoutGosub(t *testing.T) {
	_, out := run(t, "10 RETURN\n")
	if len(out) != 1 || !strings.Contains(out[0], "RETURN without GOSUB") {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicIfThenLineNumber(t *testing.T) {
	src := `10 LET X = 9
20 IF X > 5 THEN 50
30 PRINT "low"
40 END
50 PRINT "high"
`
	_, out := run(t, src)
	if len(out) != 1 || out[0] != "high" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicIfThenInlineCommand(t *testing.T) {
	_, out := run(t, "10 IF 2 < 3 THEN PRINT \"yes\"\n20 IF 3 < 2 THEN PRINT \"no\"\n")
	if len(out) != 1 || out[0] != "yes" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicBareAssignment(t *testing.T) {
	in, _ := run(t, "COUNT = 2\nCOUNT = COUNT + 3\n10 PRINT COUNT\n")
	if v, ok := in.Var("COUNT"); !ok || v != 5 {
		t.Fatalf("COUNT = %v, %v", v, ok)
	}
}

func TestBasicInputPrompt(t *testing.T) {
	in := load(t, `10 INPUT "how many"; N
20 PRINT N + 1
`)
	out, err := in.Execute()
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if in.Phase() != PhaseAwaitingInput {
		t.Fatalf("phase: %v", in.Phase())
	}
	if len(out) != 1 || out[0] != "how many" {
		t.Fatalf("prompt output: %v", out)
	}
	in.ProvideInput("4")
	out, err = in.Execute()
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if out[len(out)-1] != "5" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicLineDrawsOneSegment(t *testing.T) {
	in, _ := run(t, "10 LINE 0,0,10,10\n")
	segs := in.Turtle().Segments
	if len(segs) != 1 {
		t.Fatalf("segment count: %d", len(segs))
	}
	s := segs[0]
	if s.X1 != 0 || s.Y1 != 0 || s.X2 != 10 || s.Y2 != 10 {
		t.Fatalf("segment: %+v", s)
	}
}

func TestBasicCircleDraws36Segments(t *testing.T) {
	in, _ := run(t, "10 CIRCLE 0, 0, 50\n")
	if got := len(in.Turtle().Segments); got != 36 {
		t.Fatalf("segment count: %d", got)
	}
}

func TestBasicLineRestoresPenState(t *testing.T) {
	in, _ := run(t, "PENUP\n10 LINE 0,0,5,5\nFD 10\n")
	// Pen was up before LINE, so the later move must not draw.
	if got := len(in.Turtle().Segments); got != 1 {
		t.Fatalf("segment count: %d", got)
	}
}

func TestBasicCls(t *testing.T) {
	_, out := run(t, "10 PRINT \"gone\"\n20 CLS\n30 PRINT \"kept\"\n")
	if len(out) != 1 || out[0] != "kept" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicReadData(t *testing.T) {
	src := `10 READ A, B$, C
20 DATA 4, "hello", 9
30 PRINT A + C
40 PRINT B$
`
	_, out := run(t, src)
	if len(out) != 2 || out[0] != "13" || out[1] != "hello" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicRestoreRewindsData(t *testing.T) {
	src := `10 READ A
20 RESTORE
30 READ B
40 PRINT A + B
50 DATA 7
`
	_, out := run(t, src)
	if len(out) != 1 || out[0] != "14" {
		t.Fatalf("output: %v", out)
	}
}

func TestBasicReadOutOfData(t *testing.T) {
	src := "10 DATA 1\n20 READ A\n30 READ B\n40 PRINT A\n"
	_, out := run(t, src)
	if len(out) != 2 || !strings.Contains(out[0], "READ out of DATA") {
		t.Fatalf("output: %v", out)
	}
	if out[1] != "1" {
		t.Fatalf("run must continue: %v", out)
	}
}

func TestBasicLocateValidatesArguments(t *testing.T) {
	_, out := run(t, "10 LOCATE 2, 40\n20 LOCATE 1\n")
	if len(out) != 1 || !strings.HasPrefix(out[0], "error:") {
		t.Fatalf("output: %v", out)
	}
}

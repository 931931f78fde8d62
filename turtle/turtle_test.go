package turtle

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func TestForwardHeadingUp(t *testing.T) {
	s := New()
	s.Forward(50)
	if !near(s.X, 0) || !near(s.Y, -50) {
		t.Fatalf("position after forward: (%v, %v)", s.X, s.Y)
	}
	if len(s.Segments) != 1 {
		t.Fatalf("segment count: %d", len(s.Segments))
	}
}

func TestSquareReturnsHome(t *testing.T) {
	s := New()
	for i := 0; i < 4; i++ {
		s.Forward(50)
		s.Right(90)
	}
	if !near(s.X, 0) || !near(s.Y, 0) {
		t.Fatalf("did not return to origin: (%v, %v)", s.X, s.Y)
	}
	if !near(s.Heading, 0) {
		t.Fatalf("heading after square: %v", s.Heading)
	}
	if len(s.Segments) != 4 {
		t.Fatalf("segment count: %d", len(s.Segments))
	}
}

func TestHeadingNormalization(t *testing.T) {
	s := New()
	s.Left(90)
	if !near(s.Heading, 270) {
		t.Fatalf("heading after left 90: %v", s.Heading)
	}
	s.Right(450)
	if !near(s.Heading, 0) {
		t.Fatalf("heading after right 450: %v", s.Heading)
	}
}

func TestPenUpSkipsSegments(t *testing.T) {
	s := New()
	s.RaisePen()
	s.Forward(10)
	s.Goto(3, 4)
	if len(s.Segments) != 0 {
		t.Fatalf("pen-up moves drew %d segments", len(s.Segments))
	}
	s.LowerPen()
	s.Goto(0, 0)
	if len(s.Segments) != 1 {
		t.Fatalf("pen-down goto drew %d segments", len(s.Segments))
	}
	seg := s.Segments[0]
	if !near(seg.X1, 3) || !near(seg.Y1, 4) || !near(seg.X2, 0) || !near(seg.Y2, 0) {
		t.Fatalf("unexpected segment: %+v", seg)
	}
}

func TestHomeResetsHeading(t *testing.T) {
	s := New()
	s.Right(45)
	s.Forward(10)
	s.Home()
	if !near(s.X, 0) || !near(s.Y, 0) || !near(s.Heading, 0) {
		t.Fatalf("home left state (%v, %v, %v)", s.X, s.Y, s.Heading)
	}
}

func TestClearKeepsPosition(t *testing.T) {
	s := New()
	s.Forward(10)
	s.Clear()
	if len(s.Segments) != 0 {
		t.Fatalf("clear kept %d segments", len(s.Segments))
	}
	if near(s.Y, 0) {
		t.Fatalf("clear must not move the turtle")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"red", RGB{255, 0, 0}},
		{"BLUE", RGB{0, 0, 255}},
		{"#ff8000", RGB{255, 128, 0}},
		{"#f00", RGB{255, 0, 0}},
		{"10, 20, 30", RGB{10, 20, 30}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
	for _, in := range []string{"", "chartreuse-ish", "#12", "1,2", "300,0,0"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("ParseColor(%q) should fail", in)
		}
	}
}

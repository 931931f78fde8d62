package turtle

import "math"

// Segment is one drawn line. The segment log is append-only: executors
// add to it and Clear empties it, nothing ever rewrites an entry.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  RGB
	Width  float64
}

// State is the shared turtle cursor. Heading uses screen convention:
// 0 degrees points up and positive turns go clockwise. Heading stays
// normalized into [0, 360).
type State struct {
	X, Y       float64
	Heading    float64
	PenDown    bool
	PenColor   RGB
	PenWidth   float64
	Background RGB
	Visible    bool
	Segments   []Segment
}

func New() *State {
	return &State{
		PenDown:    true,
		PenColor:   RGB{0, 0, 0},
		PenWidth:   1,
		Background: RGB{255, 255, 255},
		Visible:    true,
	}
}

func (s *State) Forward(distance float64) {
	rad := s.Heading * math.Pi / 180
	s.moveTo(s.X+distance*math.Sin(rad), s.Y-distance*math.Cos(rad))
}

func (s *State) Back(distance float64) {
	s.Forward(-distance)
}

func (s *State) Left(degrees float64) {
	s.Heading = normalize(s.Heading - degrees)
}

func (s *State) Right(degrees float64) {
	s.Heading = normalize(s.Heading + degrees)
}

func (s *State) SetHeading(degrees float64) {
	s.Heading = normalize(degrees)
}

// Goto teleports to (x, y), drawing on the way when the pen is down.
func (s *State) Goto(x, y float64) {
	s.moveTo(x, y)
}

// Home returns to the origin and points the turtle up again.
func (s *State) Home() {
	s.moveTo(0, 0)
	s.Heading = 0
}

// Clear drops every drawn segment; position and pen state survive.
func (s *State) Clear() {
	s.Segments = nil
}

func (s *State) RaisePen() { s.PenDown = false }
func (s *State) LowerPen() { s.PenDown = true }

func (s *State) SetPenColor(c RGB)   { s.PenColor = c }
func (s *State) SetBackground(c RGB) { s.Background = c }

func (s *State) SetPenWidth(w float64) {
	if w < 1 {
		w = 1
	}
	s.PenWidth = w
}

func (s *State) Show() { s.Visible = true }
func (s *State) Hide() { s.Visible = false }

func (s *State) moveTo(x, y float64) {
	if s.PenDown {
		s.Segments = append(s.Segments, Segment{
			X1: s.X, Y1: s.Y,
			X2: x, Y2: y,
			Color: s.PenColor,
			Width: s.PenWidth,
		})
	}
	s.X, s.Y = x, y
}

func normalize(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

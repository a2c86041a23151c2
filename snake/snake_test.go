package snake

import "testing"

func TestSnakeMoveShiftsTailToHead(t *testing.T) {
	s := Snake{
		Segments:  []Point{{0, 0}, {-8, 0}, {-16, 0}},
		Direction: Up,
	}
	s.Move(8)
	want := []Point{{0, 8}, {0, 0}, {-8, 0}}
	for i := range want {
		if s.Segments[i] != want[i] {
			t.Errorf("segment %d: expected %v, got %v", i, want[i], s.Segments[i])
		}
	}
}

func TestSnakeGrowProjectsAlongCurrentDirection(t *testing.T) {
	s := Snake{
		Segments:  []Point{{0, 8}, {0, 0}},
		Direction: Up,
	}
	s.Grow(8)
	if len(s.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(s.Segments))
	}
	// Up from the tail at (0,0), not away from the head.
	if tail := s.Tail(); tail != (Point{0, 8}) {
		t.Errorf("expected tail (0,8), got %v", tail)
	}
}

func TestContiguous(t *testing.T) {
	if !contiguous([]Point{{0, 0}, {-8, 0}, {-8, 8}}, 8) {
		t.Error("expected L shape to be contiguous")
	}
	if contiguous([]Point{{0, 0}, {-16, 0}}, 8) {
		t.Error("expected gap to be rejected")
	}
	if contiguous([]Point{{0, 0}, {8, 8}}, 8) {
		t.Error("expected diagonal to be rejected")
	}
}

func TestOccupancy(t *testing.T) {
	o := NewOccupancy(8)
	o.Insert(Point{-8, 0})
	o.Insert(Point{16, -24})
	if !o.Contains(Point{-8, 0}) || !o.Contains(Point{16, -24}) {
		t.Error("expected inserted cells to be present")
	}
	if o.Contains(Point{0, 0}) {
		t.Error("(0,0) should be free")
	}
	if o.Len() != 2 {
		t.Errorf("expected 2 cells, got %d", o.Len())
	}
	o.Clear()
	if o.Len() != 0 {
		t.Errorf("expected empty after Clear, got %d", o.Len())
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 8, 0},
		{7, 8, 0},
		{-1, 8, -1},
		{-8, 8, -1},
		{-9, 8, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"up": Up, "K": Up, "down": Down, "j": Down,
		"Left": Left, "h": Left, " right ": Right, "l": Right,
	}
	for in, want := range cases {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := [][2]Direction{{Up, Down}, {Left, Right}}
	for _, p := range pairs {
		if p[0].Opposite() != p[1] || p[1].Opposite() != p[0] {
			t.Errorf("%v and %v should be a reversal pair", p[0], p[1])
		}
	}
}

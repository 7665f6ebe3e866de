package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 {
		t.Errorf("Right() = %d, expected 6", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %d, expected 8", r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{5, 5, true},
		{9, 9, true},
		{10, 10, false},
		{-1, 0, false},
		{0, 10, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestCentered(t *testing.T) {
	r := Centered(20, 10, 6, 4)
	if r.X != 7 || r.Y != 3 || r.W != 6 || r.H != 4 {
		t.Errorf("Centered = %+v", r)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionPause)
	f.Set(ActionUp)

	if !f.Has(ActionPause) || !f.Has(ActionLeft) {
		t.Error("Has should report set actions")
	}
	if f.Has(ActionQuit) {
		t.Error("Has should not report unset actions")
	}
	if len(f.Directions) != 2 || f.Directions[0] != ActionLeft || f.Directions[1] != ActionUp {
		t.Errorf("Directions = %v, expected [Left Up]", f.Directions)
	}

	c := f.Clone()
	f.Clear()
	if f.Has(ActionLeft) || len(f.Directions) != 0 {
		t.Error("Clear should reset the frame")
	}
	if !c.Has(ActionLeft) || len(c.Directions) != 2 {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionRight)
	if !zero.Has(ActionRight) {
		t.Error("Set on zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
	if !ActionLeft.IsDirection() || ActionPause.IsDirection() {
		t.Error("IsDirection mismatch")
	}
}

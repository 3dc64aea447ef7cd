package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	testCases := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tc := range testCases {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
	if r.Right() != 6 || r.Bottom() != 5 {
		t.Errorf("Right/Bottom = %d/%d, expected 6/5", r.Right(), r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	if got := NewRect(0, 0, 10, 6).Inset(1); got != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v, expected {1 1 8 4}", got)
	}
	if got := NewRect(0, 0, 3, 3).Inset(2); got.W != 0 || got.H != 0 {
		t.Errorf("Inset(2) = %+v, expected an empty rect", got)
	}
}

func TestClamp(t *testing.T) {
	testCases := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range testCases {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %v, expected 0", got)
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFire) {
		t.Error("zero frame Has(Fire) = true")
	}
	f.Set(ActionFire)
	if !f.Has(ActionFire) || f.Has(ActionLeft) {
		t.Error("Set(Fire) did not mark only Fire")
	}
	f.Set(ActionNone)
	f.Set(Action(99))
	if f.Has(ActionNone) || f.Has(Action(99)) {
		t.Error("Set() accepted an invalid action")
	}

	copied := f
	f.Clear()
	if f.Has(ActionFire) || !f.Empty() {
		t.Error("Clear() kept Fire")
	}
	if !copied.Has(ActionFire) {
		t.Error("Clear() changed a copy")
	}
	if ActionPause.String() != "Pause" || Action(-1).String() != "Unknown" {
		t.Errorf("String() = %q/%q, expected Pause/Unknown", ActionPause.String(), Action(-1).String())
	}
	if ActionSwitch.String() != "Switch" {
		t.Errorf("String() = %q, expected Switch", ActionSwitch.String())
	}
}

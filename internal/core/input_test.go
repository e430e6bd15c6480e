package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionConfirm) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionConfirm)
	if !f.Has(ActionConfirm) || f.Has(ActionQuit) {
		t.Errorf("after Set(Confirm): %v", f.Actions)
	}

	f.Clear()
	if f.Has(ActionConfirm) {
		t.Error("Clear should reset every action")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Fatal("zero frame should be empty")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set should work on a zero frame")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionConfirm: "Confirm",
		ActionQuit:    "Quit",
		Action(42):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}

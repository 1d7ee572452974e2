package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionTurn) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionTurn)
	f.Set(ActionPause)
	if !f.Has(ActionTurn) || !f.Has(ActionPause) {
		t.Error("Set actions should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionTurn) || f.Has(ActionPause) {
		t.Error("Clear should remove all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionTurn:   "Turn",
		ActionShop:   "Shop",
		ActionMute:   "Mute",
		Action(1000): "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}

package input

import (
	"strings"
	"testing"

	"mcrogueface/pkg/engine/geom"
)

// TestReadKeyDecodesSequences tests printable keys, arrows and control bytes
func TestReadKeyDecodesSequences(t *testing.T) {
	k := NewKeyReader(strings.NewReader("k\x1b[A\x1bOD\x03\r\x1b[Zq"))
	want := []string{"k", "arrow_up", "arrow_left", "ctrl_c", "enter", "", "q"}
	for i, w := range want {
		got, err := k.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey #%d: %v", i, err)
		}
		if got != w {
			t.Errorf("ReadKey #%d = %q, want %q", i, got, w)
		}
	}
}

// TestReadIntentSkipsUnbound tests that unbound keys are ignored
func TestReadIntentSkipsUnbound(t *testing.T) {
	k := NewKeyReader(strings.NewReader("zx\x1b[Cg"))
	intent, err := k.ReadIntent()
	if err != nil {
		t.Fatal(err)
	}
	if intent.Action != ActionMoveEast {
		t.Errorf("first intent = %s, want Move East", ActionName(intent.Action))
	}
	intent, _ = k.ReadIntent()
	if intent.Action != ActionGotoExit {
		t.Errorf("second intent = %s, want Go To Exit", ActionName(intent.Action))
	}
	intent, _ = k.ReadIntent()
	if intent.Action != ActionQuit {
		t.Errorf("intent at EOF = %s, want Quit", ActionName(intent.Action))
	}
}

// TestMoveActionsCoverAllDirections tests that every direction has a move action
func TestMoveActionsCoverAllDirections(t *testing.T) {
	seen := map[geom.Direction]bool{}
	for a := ActionMoveNorth; a <= ActionMoveNorthWest; a++ {
		d, ok := a.Direction()
		if !ok {
			t.Errorf("%s has no direction", ActionName(a))
		}
		seen[d] = true
	}
	if len(seen) != 8 {
		t.Errorf("move actions cover %d directions, want 8", len(seen))
	}
	if _, ok := ActionQuit.Direction(); ok {
		t.Error("Quit has a direction")
	}
}

// TestSetSingleBindingKeepsReserved tests that arrows survive rebinding
func TestSetSingleBindingKeepsReserved(t *testing.T) {
	SetSingleBinding(ActionMoveNorth, "w")
	t.Cleanup(func() {
		delete(bindings, "w")
		bindings["k"] = ActionMoveNorth
		bindings["8"] = ActionMoveNorth
		bindings["5"] = ActionWait
		bindings["."] = ActionWait
	})

	codes := GetBindingsByAction()[ActionMoveNorth]
	if strings.Join(codes, ",") != "arrow_up,w" {
		t.Errorf("bindings after rebind = %v, want [arrow_up w]", codes)
	}
	SetSingleBinding(ActionWait, "arrow_up")
	if MapToIntent(DebouncedInput{Code: "arrow_up"}).Action != ActionMoveNorth {
		t.Error("arrow_up was rebound")
	}
}

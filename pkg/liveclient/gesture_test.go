package liveclient

import "testing"

func TestTapUnderThreshold(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(100, 100, Origin{MemberID: "m1"})
	tr.Move(103, 102) // within threshold

	action := tr.Up(&DropTarget{TruckID: "t1", PositionID: "p1"})
	if action.Kind != ActionTap {
		t.Fatalf("small movement produced %q, want tap", action.Kind)
	}
	if action.MemberID != "m1" {
		t.Fatalf("tap lost its origin member")
	}
}

func TestDragAssignFromAvailable(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(100, 100, Origin{MemberID: "m1"})
	if tr.Move(104, 104) {
		t.Fatalf("drag started inside the threshold")
	}
	if !tr.Move(130, 100) {
		t.Fatalf("drag did not start past the threshold")
	}

	action := tr.Up(&DropTarget{TruckID: "t1", PositionID: "p1"})
	if action.Kind != ActionAssign {
		t.Fatalf("drop on position produced %q, want assign", action.Kind)
	}
	if action.MemberID != "m1" || action.TruckID != "t1" || action.PositionID != "p1" {
		t.Fatalf("assign action incomplete: %+v", action)
	}
}

func TestDragMoveBetweenSlots(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(50, 50, Origin{AttendanceID: "a1"})
	tr.Move(90, 50)

	action := tr.Up(&DropTarget{TruckID: "t1", PositionID: "p2"})
	if action.Kind != ActionMove {
		t.Fatalf("slot-to-slot drop produced %q, want move", action.Kind)
	}
	if action.AttendanceID != "a1" || action.PositionID != "p2" {
		t.Fatalf("move action incomplete: %+v", action)
	}
}

func TestDragRemoveOntoAvailablePanel(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(50, 50, Origin{AttendanceID: "a1"})
	tr.Move(50, 120)

	action := tr.Up(&DropTarget{AvailablePanel: true})
	if action.Kind != ActionRemove {
		t.Fatalf("drop on available panel produced %q, want remove", action.Kind)
	}
	if action.AttendanceID != "a1" {
		t.Fatalf("remove action lost its attendance id")
	}
}

func TestDragOntoDeadSpace(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(50, 50, Origin{MemberID: "m1"})
	tr.Move(120, 120)

	if action := tr.Up(nil); action.Kind != ActionNone {
		t.Fatalf("drop on dead space produced %q, want none", action.Kind)
	}
}

func TestAvailableMemberCannotBeRemoved(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(50, 50, Origin{MemberID: "m1"})
	tr.Move(120, 120)

	// Dragging a pool member back onto the pool is a no-op.
	if action := tr.Up(&DropTarget{AvailablePanel: true}); action.Kind != ActionNone {
		t.Fatalf("pool-to-pool drag produced %q, want none", action.Kind)
	}
}

func TestUpWithoutDown(t *testing.T) {
	tr := NewPointerTracker(8)
	if action := tr.Up(&DropTarget{PositionID: "p1"}); action.Kind != ActionNone {
		t.Fatalf("stray pointer-up produced %q, want none", action.Kind)
	}
}

func TestNewDownResetsGesture(t *testing.T) {
	tr := NewPointerTracker(8)
	tr.Down(0, 0, Origin{MemberID: "m1"})
	tr.Move(50, 50)

	tr.Down(100, 100, Origin{MemberID: "m2"})
	action := tr.Up(&DropTarget{PositionID: "p1"})
	if action.Kind != ActionTap {
		t.Fatalf("new press inherited old drag state: %q", action.Kind)
	}
	if action.MemberID != "m2" {
		t.Fatalf("new press kept the old origin: %+v", action)
	}
}

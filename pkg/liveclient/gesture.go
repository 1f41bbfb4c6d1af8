package liveclient

import "math"

// DefaultDragThreshold is how far the pointer must travel, in display
// units, before a press turns into a drag instead of a tap.
const DefaultDragThreshold = 8

// Origin describes what the pointer went down on.
type Origin struct {
	// MemberID is set when the press started on an available-member
	// chip.
	MemberID string
	// AttendanceID is set when the press started on a filled slot.
	AttendanceID string
}

// DropTarget describes what the pointer was over on release.
type DropTarget struct {
	// TruckID and PositionID are set when released over a position
	// slot.
	TruckID    string
	PositionID string
	// AvailablePanel is set when released over the available-member
	// panel.
	AvailablePanel bool
}

// Action kinds produced by a completed gesture.
const (
	ActionNone   = "none"
	ActionTap    = "tap"
	ActionAssign = "assign"
	ActionMove   = "move"
	ActionRemove = "remove"
)

// Action is the board operation a finished gesture maps to.
type Action struct {
	Kind         string
	MemberID     string
	AttendanceID string
	TruckID      string
	PositionID   string
}

// PointerTracker turns a down/move/up pointer sequence into an Action.
// Movement under the threshold stays a tap; beyond it the press
// becomes a drag and the release target decides the operation:
//   - available member dropped on a position → assign
//   - filled slot dropped on a position → move
//   - filled slot dropped on the available panel → remove
//
// Anything else resolves to none. The tracker is single-pointer; a new
// Down discards any sequence still open.
type PointerTracker struct {
	threshold float64

	active   bool
	dragging bool
	origin   Origin
	downX    float64
	downY    float64
}

// NewPointerTracker creates a tracker; threshold <= 0 selects the
// default.
func NewPointerTracker(threshold float64) *PointerTracker {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &PointerTracker{threshold: threshold}
}

// Down starts a gesture at (x, y) on the given origin.
func (t *PointerTracker) Down(x, y float64, origin Origin) {
	t.active = true
	t.dragging = false
	t.origin = origin
	t.downX = x
	t.downY = y
}

// Move updates the pointer location and reports whether the gesture is
// now a drag.
func (t *PointerTracker) Move(x, y float64) bool {
	if !t.active || t.dragging {
		return t.dragging
	}
	if math.Hypot(x-t.downX, y-t.downY) > t.threshold {
		t.dragging = true
	}
	return t.dragging
}

// Dragging reports whether the open gesture crossed the threshold.
func (t *PointerTracker) Dragging() bool {
	return t.active && t.dragging
}

// Up finishes the gesture over the given target and returns the
// resulting action. A nil target means the release happened over dead
// space.
func (t *PointerTracker) Up(target *DropTarget) Action {
	if !t.active {
		return Action{Kind: ActionNone}
	}
	origin := t.origin
	wasDrag := t.dragging
	t.active = false
	t.dragging = false

	if !wasDrag {
		return Action{
			Kind:         ActionTap,
			MemberID:     origin.MemberID,
			AttendanceID: origin.AttendanceID,
		}
	}
	if target == nil {
		return Action{Kind: ActionNone}
	}

	switch {
	case target.PositionID != "" && origin.MemberID != "":
		return Action{
			Kind:       ActionAssign,
			MemberID:   origin.MemberID,
			TruckID:    target.TruckID,
			PositionID: target.PositionID,
		}
	case target.PositionID != "" && origin.AttendanceID != "":
		return Action{
			Kind:         ActionMove,
			AttendanceID: origin.AttendanceID,
			TruckID:      target.TruckID,
			PositionID:   target.PositionID,
		}
	case target.AvailablePanel && origin.AttendanceID != "":
		return Action{
			Kind:         ActionRemove,
			AttendanceID: origin.AttendanceID,
		}
	}
	return Action{Kind: ActionNone}
}

// Package liveclient holds the client-side reconciliation logic for
// the live attendance board: an optimistic local view that serializes
// mutations and converges on server snapshots, and a pointer tracker
// that turns raw pointer events into board actions. It is transport
// agnostic so that any frontend shell (wasm, mobile bridge, test
// harness) can drive it.
package liveclient

import (
	"context"
	"errors"
	"sync"

	"turnout/backend/internal/dto"
)

// ErrMutationInFlight reports that a mutation was ignored because one
// is already running. Second taps are dropped, not queued.
var ErrMutationInFlight = errors.New("a mutation is already in flight")

// Mutator performs one board mutation against the server and returns
// the authoritative board. A conflict should return both the attached
// board and the error.
type Mutator func(ctx context.Context) (*dto.BoardResponse, error)

// Reloader fetches a full board snapshot from the server.
type Reloader func(ctx context.Context) (*dto.BoardResponse, error)

// View is the client's copy of the attendance board. At most one
// mutation runs at a time; stream snapshots arriving while a mutation
// is in flight are deferred and applied once it settles, so a foreign
// update can never overwrite the mutation's own result mid-request.
// The stream itself stays open throughout.
type View struct {
	reload Reloader

	mu             sync.Mutex
	board          *dto.BoardResponse
	selectedMember string
	inFlight       bool
	deferred       *dto.BoardResponse
}

// NewView creates a View. reload is the recovery path: it is called
// whenever a mutation fails without an authoritative board attached.
func NewView(reload Reloader) *View {
	return &View{reload: reload}
}

// Board returns the current snapshot, nil before the first one lands.
func (v *View) Board() *dto.BoardResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board
}

// Processing reports whether a mutation is in flight.
func (v *View) Processing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight
}

// Select marks a member chip as selected; an empty id clears it.
func (v *View) Select(memberID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedMember = memberID
}

// Selected returns the selected member id, empty when none.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedMember
}

// ApplySnapshot installs a stream snapshot. While a mutation is in
// flight the snapshot is held back instead; it reports whether the
// board changed immediately.
func (v *View) ApplySnapshot(board *dto.BoardResponse) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFlight {
		v.deferred = board
		return false
	}
	v.board = board
	return true
}

// Mutate runs one mutation. The member, if given, is removed from the
// local available list up front so the UI reflects the action before
// the server answers. Resolution order:
//   - success: install the returned board, then any snapshot that
//     arrived mid-flight (it is newer).
//   - conflict with an attached board: install that board and return
//     the error; the caller reconciles silently.
//   - any other failure: reload the full state — correctness over
//     minimizing requests — and return the original error.
//
// A second call while one is running returns ErrMutationInFlight
// without touching anything.
func (v *View) Mutate(ctx context.Context, optimisticMemberID string, m Mutator) (*dto.BoardResponse, error) {
	v.mu.Lock()
	if v.inFlight {
		v.mu.Unlock()
		return nil, ErrMutationInFlight
	}
	v.inFlight = true
	v.selectedMember = ""
	if optimisticMemberID != "" && v.board != nil {
		v.board = removeAvailable(v.board, optimisticMemberID)
	}
	v.mu.Unlock()

	board, err := m(ctx)

	v.mu.Lock()
	v.inFlight = false
	deferred := v.deferred
	v.deferred = nil
	v.mu.Unlock()

	if err != nil {
		if board != nil {
			v.install(board)
			return board, err
		}
		if reloaded, rerr := v.reload(ctx); rerr == nil {
			v.install(reloaded)
			return reloaded, err
		}
		return v.Board(), err
	}

	v.install(board)
	if deferred != nil {
		v.install(deferred)
		return deferred, nil
	}
	return board, nil
}

func (v *View) install(board *dto.BoardResponse) {
	v.mu.Lock()
	v.board = board
	v.mu.Unlock()
}

// removeAvailable returns a shallow copy of the board with the member
// dropped from the available list. The original is left untouched so a
// failed mutation cannot leave a half-patched snapshot behind.
func removeAvailable(board *dto.BoardResponse, memberID string) *dto.BoardResponse {
	next := *board
	next.Available = make([]dto.AvailableMember, 0, len(board.Available))
	for _, m := range board.Available {
		if m.MemberID == memberID {
			continue
		}
		next.Available = append(next.Available, m)
	}
	return &next
}

package errors

import "errors"

// ErrOptimisticLock signals the record was modified by another operation
// between read and write; the caller should refresh and retry.
var ErrOptimisticLock = errors.New("record modified by another operation")

// ErrSlotTaken signals a single-occupant position is already held by a
// different member. Raised inside the replace transaction so two clients
// racing for the same empty seat resolve to exactly one winner.
var ErrSlotTaken = errors.New("position already occupied by another member")

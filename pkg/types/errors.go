package types

import "errors"

// Standard errors returned by the store and service layers. Callers
// distinguish outcomes with errors.Is; none of these is fatal.
var (
	// ErrNotFound indicates the referenced book ID does not exist.
	// A normal outcome, distinguishable from validation failure.
	ErrNotFound = errors.New("book not found")

	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrSourceMissing indicates a backup or import source file that
	// does not exist.
	ErrSourceMissing = errors.New("source file does not exist")

	// ErrSnapshotMissing indicates a restore against an unknown snapshot.
	ErrSnapshotMissing = errors.New("snapshot does not exist")
)

package engine

import (
	"time"

	"github.com/danieljhkim/rip/internal/record"
)

// Status classifies the per-target outcome of an operation.
type Status string

const (
	// StatusBuried means the target was moved into the graveyard.
	StatusBuried Status = "buried"

	// StatusRestored means the grave was moved back out.
	StatusRestored Status = "restored"

	// StatusDeleted means the target was permanently unlinked.
	StatusDeleted Status = "deleted"

	// StatusSkipped means the user declined a prompt; not an error.
	StatusSkipped Status = "skipped"

	// StatusFailed means the target's operation failed; the batch
	// continues with the next target.
	StatusFailed Status = "failed"
)

// BuryRequest asks to send targets to the graveyard.
type BuryRequest struct {
	// Targets are the files or directories to bury, absolute or
	// relative to the working directory.
	Targets []string

	// Inspect previews each target and confirms before burying.
	Inspect bool
}

// BuryOutcome is the result for a single bury target.
type BuryOutcome struct {
	// Target is the path as the user gave it.
	Target string

	// Source is the canonical path the target resolved to.
	Source string

	// Grave is where the target ended up inside the graveyard.
	Grave string

	Status Status
	Err    error
}

// BuryResult holds the per-target outcomes, in target order.
type BuryResult struct {
	Outcomes []BuryOutcome
}

// UnburyRequest asks to restore graves.
type UnburyRequest struct {
	// Targets select graves: literal paths (absolute, under the
	// graveyard, or relative to the scope) or glob patterns.
	// Empty targets restore the most recent bury.
	Targets []string

	// Local scopes selection to graves under the working directory.
	Local bool

	// Seance additionally selects every grave under the scope.
	Seance bool
}

// UnburyOutcome is the result for a single selected grave.
type UnburyOutcome struct {
	// Grave is the selected grave path.
	Grave string

	// RestoredTo is where the item was returned, which differs from
	// the recorded original path when that path was occupied.
	RestoredTo string

	Status Status
	Err    error
}

// UnburyResult holds the per-grave outcomes, in selection order.
type UnburyResult struct {
	Outcomes []UnburyOutcome
}

// SeanceRequest asks for a listing of recorded graves.
type SeanceRequest struct {
	// All lists the entire graveyard instead of only graves under the
	// working directory.
	All bool
}

// GraveInfo annotates a record entry with the grave's on-disk state.
type GraveInfo struct {
	Entry record.Entry

	// Type is "file", "dir" or "other".
	Type string

	// ModTime is the grave's modification time; zero when Missing.
	ModTime time.Time

	// Missing means the grave path no longer exists on disk.
	Missing bool
}

// SeanceResult lists graves in record (chronological) order.
type SeanceResult struct {
	Graves []GraveInfo
}

// DecomposeRequest asks to erase the graveyard.
type DecomposeRequest struct {
	// Inventory collects the recorded entries before deletion, for
	// display.
	Inventory bool
}

// DecomposeEntry is one recorded grave included in the inventory.
type DecomposeEntry struct {
	Original string
	Type     string
}

// DecomposeResult reports whether the graveyard was removed.
type DecomposeResult struct {
	Removed   bool
	Inventory []DecomposeEntry
}

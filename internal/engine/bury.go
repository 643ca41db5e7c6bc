package engine

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/danieljhkim/rip/internal/grave"
)

// Bury sends each target to the graveyard. Targets fail independently:
// a failed target is reported in its outcome and the batch continues.
// Only a failure to update the record log aborts the whole operation.
func (e *Engine) Bury(req *BuryRequest) (*BuryResult, error) {
	result := &BuryResult{}
	for _, target := range req.Targets {
		outcome, err := e.buryOne(target, req.Inspect)
		if err != nil {
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (e *Engine) buryOne(target string, inspect bool) (BuryOutcome, error) {
	outcome := BuryOutcome{Target: target}

	joined := target
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(e.paths.Cwd, target)
	}
	joined = filepath.Clean(joined)

	info, err := e.fs.Lstat(joined)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("cannot remove %s: %w", target, ErrNotFound)
		return outcome, nil
	}

	// Canonicalize unless the target itself is a symlink: a symlink is
	// buried as a link, never its referent.
	source := joined
	if info.Mode()&os.ModeSymlink == 0 {
		source, err = filepath.EvalSymlinks(joined)
		if err != nil {
			outcome.Status = StatusFailed
			outcome.Err = fmt.Errorf("canonicalizing %s: %w", target, err)
			return outcome, nil
		}
	}
	outcome.Source = source
	e.logger.WithFields(log.Fields{"target": target, "source": source}).
		Debug("resolved bury target")

	if inspect {
		preview := e.preview(source, info)
		if !e.confirm(fmt.Sprintf("%sSend %s to the graveyard?", preview, target)) {
			outcome.Status = StatusSkipped
			return outcome, nil
		}
	}

	// Burying something already in the graveyard means the user wants
	// it gone for good.
	if e.inGraveyard(source) {
		if !e.confirm(fmt.Sprintf("%s is already in the graveyard. Permanently unlink it?", source)) {
			outcome.Status = StatusSkipped
			return outcome, nil
		}
		if err := e.fs.RemoveAll(source); err != nil {
			outcome.Status = StatusFailed
			outcome.Err = fmt.Errorf("unlinking %s: %w", source, err)
			return outcome, nil
		}
		outcome.Status = StatusDeleted
		return outcome, nil
	}

	dest, err := e.resolveGrave(source)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome, nil
	}
	outcome.Grave = dest

	if err := e.mover.Relocate(source, dest); err != nil {
		// Clean up any partial bury so no orphaned half-grave is left
		// without a record entry.
		_ = e.fs.RemoveAll(dest)
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("burying %s: %w", source, err)
		return outcome, nil
	}

	if err := e.records.Append(source, dest, e.clock.Now()); err != nil {
		return outcome, fmt.Errorf("recording burial of %s: %w", source, err)
	}
	outcome.Status = StatusBuried
	return outcome, nil
}

// resolveGrave mirrors source under the graveyard and resolves name
// collisions: an occupied grave path gets a ~N suffix, and an ancestor
// that exists as a plain file redirects the grave under a suffixed
// variant of that ancestor.
func (e *Engine) resolveGrave(source string) (string, error) {
	dest := grave.Path(e.paths.Graveyard, source)

	if e.fs.Exists(dest) {
		renamed, err := grave.ResolveConflict(e.fs, dest)
		if err != nil {
			return "", err
		}
		e.logger.WithFields(log.Fields{"grave": dest, "renamed": renamed}).
			Debug("grave name conflict")
		return renamed, nil
	}

	if ancestor, ok := grave.BlockingAncestor(e.fs, dest); ok {
		renamed, err := grave.ResolveConflict(e.fs, ancestor)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(ancestor, dest)
		if err != nil {
			return "", fmt.Errorf("relativizing %s against %s: %w", dest, ancestor, err)
		}
		e.logger.WithFields(log.Fields{"ancestor": ancestor, "renamed": renamed}).
			Debug("blocking ancestor conflict")
		return filepath.Join(renamed, rel), nil
	}

	return dest, nil
}

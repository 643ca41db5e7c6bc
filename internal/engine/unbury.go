package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/danieljhkim/rip/internal/glob"
	"github.com/danieljhkim/rip/internal/grave"
	"github.com/danieljhkim/rip/internal/record"
)

// Unbury restores graves to their original locations. Candidates come
// from explicit targets (literal or glob), from every grave under the
// scope when combined with seance, and failing all that from the most
// recent bury. Successfully exhumed graves are removed from the record
// once the batch finishes.
func (e *Engine) Unbury(req *UnburyRequest) (*UnburyResult, error) {
	candidates, err := e.collectCandidates(req)
	if err != nil {
		return nil, err
	}
	e.logger.WithField("candidates", candidates).Debug("graves to exhume")

	entries, err := e.records.Scan()
	if err != nil {
		return nil, err
	}
	byGrave := make(map[string]record.Entry, len(entries))
	for _, entry := range entries {
		byGrave[entry.Grave] = entry
	}

	result := &UnburyResult{}
	exhumed := make(map[string]bool)
	for _, g := range candidates {
		entry, ok := byGrave[g]
		if !ok {
			e.logger.WithField("grave", g).Debug("no record entry, skipping")
			continue
		}
		outcome := e.exhume(g, entry)
		if outcome.Status == StatusRestored {
			exhumed[g] = true
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if err := e.records.Remove(exhumed); err != nil {
		return result, fmt.Errorf("removing unburied entries from record: %w", err)
	}
	return result, nil
}

// exhume moves a single grave back to its original path, renaming the
// destination when something already occupies it.
func (e *Engine) exhume(g string, entry record.Entry) UnburyOutcome {
	outcome := UnburyOutcome{Grave: g}

	dest := entry.Original
	if e.fs.Exists(dest) {
		renamed, err := grave.ResolveConflict(e.fs, dest)
		if err != nil {
			outcome.Status = StatusFailed
			outcome.Err = err
			return outcome
		}
		e.logger.WithFields(log.Fields{"original": dest, "renamed": renamed}).
			Debug("restore destination occupied")
		dest = renamed
	}

	if err := e.mover.Relocate(g, dest); err != nil {
		// dest did not exist before the move, so removing it only
		// discards the partial copy.
		_ = e.fs.RemoveAll(dest)
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("unburying %s to %s: %w", g, dest, err)
		return outcome
	}

	outcome.Status = StatusRestored
	outcome.RestoredTo = dest
	return outcome
}

// collectCandidates builds the ordered, deduplicated set of grave paths
// to exhume.
func (e *Engine) collectCandidates(req *UnburyRequest) ([]string, error) {
	scope := e.paths.Graveyard
	if req.Local {
		scope = e.localScope()
	}

	var (
		candidates []string
		seen       = make(map[string]bool)
		patterns   []string
	)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			candidates = append(candidates, p)
		}
	}

	for _, target := range req.Targets {
		if glob.HasMeta(target) || strings.HasPrefix(target, "!") {
			patterns = append(patterns, target)
			continue
		}
		add(e.resolveTarget(target, req.Local))
	}
	if len(patterns) > 0 {
		matches, err := e.selector.ExpandAll(patterns, scope)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	if req.Seance {
		entries, err := e.records.Scan()
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if underScope(entry.Grave, scope) {
				add(entry.Grave)
			}
		}
	}

	if len(candidates) == 0 {
		var pred func(string) bool
		if req.Local {
			local := e.localScope()
			pred = func(g string) bool { return underScope(g, local) }
		}
		entry, ok, err := e.records.FindLatest(pred)
		if err != nil {
			return nil, err
		}
		if ok {
			e.logger.WithField("grave", entry.Grave).Debug("exhuming last bury")
			add(entry.Grave)
		}
	}
	return candidates, nil
}

// resolveTarget maps a literal unbury target to a grave path. An
// explicit graveyard prefix wins; otherwise the target is joined under
// the graveyard root (plus the working directory when local).
func (e *Engine) resolveTarget(target string, local bool) string {
	if local {
		return grave.Path(e.localScope(), target)
	}
	if e.inGraveyard(target) {
		return filepath.Clean(target)
	}
	return grave.Path(e.paths.Graveyard, target)
}

func underScope(path, scope string) bool {
	return path == scope || strings.HasPrefix(path, scope+string(filepath.Separator))
}

package engine

import "fmt"

// Decompose permanently erases the entire graveyard, record log
// included, after confirmation. There is no selective purge.
func (e *Engine) Decompose(req *DecomposeRequest) (*DecomposeResult, error) {
	result := &DecomposeResult{}

	if !e.confirm("Really unlink the entire graveyard?") {
		return result, nil
	}

	if req.Inventory {
		entries, err := e.records.Scan()
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			item := DecomposeEntry{Original: entry.Original, Type: "gone"}
			if info, err := e.fs.Lstat(entry.Grave); err == nil {
				item.Type = fileType(info)
			}
			result.Inventory = append(result.Inventory, item)
		}
	}

	if err := e.fs.RemoveAll(e.paths.Graveyard); err != nil {
		return result, fmt.Errorf("couldn't unlink graveyard %s: %w", e.paths.Graveyard, err)
	}
	result.Removed = true
	return result, nil
}

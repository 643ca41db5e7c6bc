package engine

import "os"

// Seance lists every recorded grave under the scope, in record order,
// annotated with the grave's file type and modification time. It never
// mutates the record: stale entries are reported as missing, not
// pruned.
func (e *Engine) Seance(req *SeanceRequest) (*SeanceResult, error) {
	scope := e.localScope()
	if req.All {
		scope = e.paths.Graveyard
	}

	entries, err := e.records.Scan()
	if err != nil {
		return nil, err
	}

	result := &SeanceResult{}
	for _, entry := range entries {
		if !underScope(entry.Grave, scope) {
			continue
		}
		info := GraveInfo{Entry: entry}
		if stat, err := e.fs.Lstat(entry.Grave); err == nil {
			info.Type = fileType(stat)
			info.ModTime = stat.ModTime()
		} else {
			info.Missing = true
			info.Type = "gone"
		}
		result.Graves = append(result.Graves, info)
	}
	return result, nil
}

func fileType(info os.FileInfo) string {
	switch {
	case info.IsDir():
		return "dir"
	case info.Mode().IsRegular():
		return "file"
	default:
		return "other"
	}
}

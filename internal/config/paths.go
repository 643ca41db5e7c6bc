// Package config resolves the graveyard location and related paths.
//
// The graveyard is picked from, in order: an explicit override, the
// GRAVEYARD environment variable, the optional config file, the XDG
// data directory convention, and finally a per-user directory under
// /tmp. The engine never consults the environment itself; it receives
// a resolved Paths value built once at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// defaultGraveyard is the stem of the fallback graveyard location;
	// the user name is appended.
	defaultGraveyard = "/tmp/graveyard"

	// recordName is the name of the record log inside the graveyard.
	recordName = ".record"
)

// Paths contains the resolved filesystem locations used by rip.
type Paths struct {
	// Graveyard is the root directory deleted files are moved into.
	Graveyard string

	// Record is the record log inside the graveyard.
	Record string

	// Cwd is the working directory the invocation runs from.
	Cwd string
}

// Resolve builds Paths from an optional explicit graveyard override.
func Resolve(override string) (*Paths, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	graveyard := override
	if graveyard == "" {
		graveyard = os.Getenv("GRAVEYARD")
	}
	if graveyard == "" {
		if fileCfg, err := LoadFile(); err == nil && fileCfg.Graveyard != "" {
			graveyard = fileCfg.Graveyard
		}
	}
	if graveyard == "" {
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			graveyard = filepath.Join(dataHome, "graveyard")
		}
	}
	if graveyard == "" {
		graveyard = fmt.Sprintf("%s-%s", defaultGraveyard, userName())
	}

	return &Paths{
		Graveyard: graveyard,
		Record:    filepath.Join(graveyard, recordName),
		Cwd:       cwd,
	}, nil
}

// EnsureGraveyard creates the graveyard root if it does not exist.
func (p *Paths) EnsureGraveyard() error {
	if err := os.MkdirAll(p.Graveyard, 0700); err != nil {
		return fmt.Errorf("creating graveyard %s: %w", p.Graveyard, err)
	}
	return nil
}

func userName() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

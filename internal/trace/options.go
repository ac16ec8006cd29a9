package trace

import (
	"fmt"
	"strings"
)

// Level selects how much of a check run is traced. Every level admits
// what the previous one does.
type Level uint8

const (
	LevelOff   Level = iota
	LevelPhase       // run and pass spans
	LevelFile        // plus one span per checked file
	LevelScope       // plus every scope the resolver enters and leaves
)

var levelNames = [...]string{"off", "phase", "file", "scope"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Admits reports whether events of category c pass the level.
func (l Level) Admits(c Category) bool {
	switch l {
	case LevelPhase:
		return c <= CatPass
	case LevelFile:
		return c <= CatFile
	case LevelScope:
		return c <= CatScope
	}
	return false
}

// Category names the part of the checker an event comes from.
type Category uint8

const (
	CatRun   Category = iota + 1 // CLI command, directory walk, heartbeat
	CatPass                      // load, tokenize, parse, sema.def, sema.ref, cache
	CatFile                      // one source file
	CatScope                     // resolver stack moves inside a pass
)

var categoryNames = [...]string{"", "run", "pass", "file", "scope"}

func (c Category) String() string {
	if c > 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // last N kept for a dump on panic
	ModeBoth
)

var modeNames = [...]string{"", "stream", "ring", "both"}

func (m StorageMode) String() string {
	if m > 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

func ParseMode(s string) (StorageMode, error) {
	for i, name := range modeNames[1:] {
		if strings.EqualFold(s, name) {
			return StorageMode(i + 1), nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

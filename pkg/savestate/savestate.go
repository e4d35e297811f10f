// Package savestate implements the persistent key-value contract of spec
// (s)6: get/put of a level's current display state and mistake count,
// indexed by the exact pristine level text. Following the teacher's
// common.BackupLevels convention (plain files under a resolved directory,
// JSON payloads, os.MkdirAll/ReadFile/WriteFile), entries are stored one
// file per level under a base directory, rather than adopting a database
// dependency absent from the example corpus.
package savestate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexsolve/hexsolve/pkg/hexlog"
)

// entry is the on-disk JSON payload for one saved level.
type entry struct {
	StateText string `json:"state_text"`
	Mistakes  int    `json:"mistakes"`
}

// Store is a file-backed key-value store rooted at a base directory.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating it if necessary.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("savestate: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// keyFile maps the pristine level text to a deterministic file path. The
// text itself is not filesystem-safe (it contains newlines), so the key
// is its sha256 hex digest, matching common.go's level_<id>.json naming
// idea but keyed by content instead of a numeric ID.
func (s *Store) keyFile(levelText string) string {
	sum := sha256.Sum256([]byte(levelText))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

// Get returns the saved state text and mistake count for levelText, and
// whether an entry exists at all (spec (s)6's get(level_text) -> (state_text,
// mistakes) | None).
func (s *Store) Get(levelText string) (stateText string, mistakes int, ok bool) {
	path := s.keyFile(levelText)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		hexlog.Warning("savestate: corrupt entry at %s: %v", path, err)
		return "", 0, false
	}
	return e.StateText, e.Mistakes, true
}

// Put writes stateText and mistakes for levelText, overwriting any
// existing entry (spec (s)6's put(level_text, state_text, mistakes)).
func (s *Store) Put(levelText, stateText string, mistakes int) error {
	path := s.keyFile(levelText)
	data, err := json.MarshalIndent(entry{StateText: stateText, Mistakes: mistakes}, "", "  ")
	if err != nil {
		return fmt.Errorf("savestate: marshal entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("savestate: write %s: %w", path, err)
	}
	hexlog.Verbose("savestate: saved %s (mistakes=%d)", path, mistakes)
	return nil
}

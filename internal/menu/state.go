package menu

import "github.com/quantmind-br/gitpilot/internal/core"

// Filter keeps the records that can run on platform, preserving order
func Filter(records []core.RepositoryRecord, platform core.Platform) []core.RepositoryRecord {
	var compatible []core.RepositoryRecord
	for _, r := range records {
		if r.CompatibleWith(platform) {
			compatible = append(compatible, r)
		}
	}
	return compatible
}

// State is the cursor over a non-empty list of records
type State struct {
	Cursor int
	Items  []core.RepositoryRecord
}

// Move shifts the cursor by delta, wrapping at both ends
func (s *State) Move(delta int) {
	n := len(s.Items)
	if n == 0 {
		return
	}
	s.Cursor = ((s.Cursor+delta)%n + n) % n
}

// Current returns the record under the cursor
func (s *State) Current() core.RepositoryRecord {
	return s.Items[s.Cursor]
}

package engine

import "github.com/verte-zerg/fingertypos/internal/model"

// Transcript is an append-only keystroke log. The newest entry may be amended
// once; older entries are never touched.
type Transcript struct {
	entries   []model.KeystrokeLogEntry
	amendable bool
}

// Append adds an entry and makes it the amendable one.
func (t *Transcript) Append(entry model.KeystrokeLogEntry) {
	t.entries = append(t.entries, entry)
	t.amendable = true
}

// AmendLast replaces the newest entry. It reports false when there is nothing
// to amend or the newest entry was already amended.
func (t *Transcript) AmendLast(entry model.KeystrokeLogEntry) bool {
	if !t.amendable || len(t.entries) == 0 {
		return false
	}
	t.entries[len(t.entries)-1] = entry
	t.amendable = false
	return true
}

// Last returns the newest entry.
func (t *Transcript) Last() (model.KeystrokeLogEntry, bool) {
	if len(t.entries) == 0 {
		return model.KeystrokeLogEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the log.
func (t *Transcript) Entries() []model.KeystrokeLogEntry {
	out := make([]model.KeystrokeLogEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) reset() {
	t.entries = nil
	t.amendable = false
}

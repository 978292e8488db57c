package model

// TrialBalanceSnapshot is an immutable trial balance for one exercise.
// Re-importing a balance produces a new snapshot with a bumped version,
// never a mutation; derived reports are keyed by the snapshot ID.
type TrialBalanceSnapshot struct {
	id       string
	exercise string
	version  int
	entries  []LedgerEntry
}

// NewSnapshot creates a snapshot, copying the entry slice so later changes to
// the caller's slice cannot leak in.
func NewSnapshot(id, exercise string, version int, entries []LedgerEntry) *TrialBalanceSnapshot {
	cp := make([]LedgerEntry, len(entries))
	copy(cp, entries)
	return &TrialBalanceSnapshot{id: id, exercise: exercise, version: version, entries: cp}
}

// ID returns the snapshot identifier.
func (s *TrialBalanceSnapshot) ID() string { return s.id }

// Exercise returns the fiscal exercise the snapshot belongs to.
func (s *TrialBalanceSnapshot) Exercise() string { return s.exercise }

// Version returns the import version within the exercise.
func (s *TrialBalanceSnapshot) Version() int { return s.version }

// Len returns the number of entries.
func (s *TrialBalanceSnapshot) Len() int { return len(s.entries) }

// Entry returns the i-th entry.
func (s *TrialBalanceSnapshot) Entry(i int) LedgerEntry { return s.entries[i] }

// Entries returns a copy of all entries.
func (s *TrialBalanceSnapshot) Entries() []LedgerEntry {
	cp := make([]LedgerEntry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

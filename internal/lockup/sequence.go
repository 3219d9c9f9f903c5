package lockup

import "sort"

// FindAtOrBefore searches sorted ascending keys for target. If the target is
// present its index is returned; otherwise the index of the greatest key
// strictly below the target. The second return is false when every key is
// greater than the target.
func FindAtOrBefore(keys []uint64, target uint64) (int, bool) {
	i := sort.Search(len(keys), func(j int) bool { return keys[j] > target })
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

// SequenceSchedule is the live sequence → percent unlock set of a
// sequence-consuming lockup, kept sorted ascending by sequence. It shrinks
// monotonically as claims consume prefixes.
type SequenceSchedule struct {
	entries []Unlock
}

// NewSequenceSchedule builds a schedule from entries sorted by sequence.
func NewSequenceSchedule(entries []Unlock) *SequenceSchedule {
	sorted := make([]Unlock, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &SequenceSchedule{entries: sorted}
}

// Entries returns the remaining unlocks in ascending sequence order.
func (s *SequenceSchedule) Entries() []Unlock {
	out := make([]Unlock, len(s.entries))
	copy(out, s.entries)
	return out
}

// Keys returns the remaining unlock sequences in ascending order.
func (s *SequenceSchedule) Keys() []uint64 {
	keys := make([]uint64, len(s.entries))
	for i, u := range s.entries {
		keys[i] = u.Time
	}
	return keys
}

// Get returns the percent stored at the given sequence.
func (s *SequenceSchedule) Get(sequence uint64) (uint32, bool) {
	i, ok := FindAtOrBefore(s.Keys(), sequence)
	if !ok || s.entries[i].Time != sequence {
		return 0, false
	}
	return s.entries[i].Percent, true
}

// Set inserts or overwrites the unlock at the given sequence.
func (s *SequenceSchedule) Set(sequence uint64, percent uint32) {
	i, ok := FindAtOrBefore(s.Keys(), sequence)
	if ok && s.entries[i].Time == sequence {
		s.entries[i].Percent = percent
		return
	}
	at := 0
	if ok {
		at = i + 1
	}
	s.entries = append(s.entries, Unlock{})
	copy(s.entries[at+1:], s.entries[at:])
	s.entries[at] = Unlock{Time: sequence, Percent: percent}
}

// Remove deletes the unlock at the given sequence. It returns
// ErrInvalidUnlockKey when no such unlock exists.
func (s *SequenceSchedule) Remove(sequence uint64) error {
	i, ok := FindAtOrBefore(s.Keys(), sequence)
	if !ok || s.entries[i].Time != sequence {
		return ErrInvalidUnlockKey
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// ConsumePrefix removes every unlock at index <= idx and returns their
// percents in order. Once consumed, no asset can claim those unlocks again.
func (s *SequenceSchedule) ConsumePrefix(idx int) []uint32 {
	percents := make([]uint32, 0, idx+1)
	for _, u := range s.entries[:idx+1] {
		percents = append(percents, u.Percent)
	}
	s.entries = s.entries[idx+1:]
	return percents
}

// Len returns the number of remaining unlocks.
func (s *SequenceSchedule) Len() int {
	return len(s.entries)
}

// Package assemble turns the flat accepted-neighbor stream and per-point
// counts into per-point neighbor lists.
package assemble

import (
	"fmt"

	"github.com/hupe1980/nblist/model"
)

// ErrCountMismatch indicates that the counts do not describe the entries.
type ErrCountMismatch struct {
	Entries int
	Counted int
}

func (e *ErrCountMismatch) Error() string {
	return fmt.Sprintf("counts cover %d entries, buffer holds %d", e.Counted, e.Entries)
}

// Assemble slices entries into len(counts) lists in owner order. Entries keep
// the order in which they were appended; nothing is sorted or deduplicated.
// The result takes ownership of entries.
func Assemble(entries []int32, counts []int) (*model.NeighborLists, error) {
	offsets := make([]int, len(counts)+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}
	if total := offsets[len(counts)]; total != len(entries) {
		return nil, &ErrCountMismatch{Entries: len(entries), Counted: total}
	}

	return model.FromCSR(offsets, entries)
}

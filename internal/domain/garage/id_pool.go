package garage

import (
	"sort"
	"strconv"
)

// IDPool is a recyclable set of integer IDs split into available and
// assigned. Both halves are kept sorted by numeric value, and together they
// always partition the pool's ID space.
type IDPool struct {
	name      string
	available []int
	assigned  []int
}

// NewIDPool builds a pool from the full ID space and the IDs already in use.
// IDs in assigned that are not part of space are ignored.
func NewIDPool(name string, space []int, assigned []int) *IDPool {
	inUse := make(map[int]bool, len(assigned))
	for _, id := range assigned {
		inUse[id] = true
	}

	p := &IDPool{
		name:      name,
		available: make([]int, 0, len(space)),
		assigned:  make([]int, 0, len(assigned)),
	}
	for _, id := range space {
		if inUse[id] {
			p.assigned = append(p.assigned, id)
		} else {
			p.available = append(p.available, id)
		}
	}
	sort.Ints(p.available)
	sort.Ints(p.assigned)
	return p
}

// NewRangePool builds a pool over [0, size)
func NewRangePool(name string, size int, assigned []int) *IDPool {
	space := make([]int, size)
	for i := range space {
		space[i] = i
	}
	return NewIDPool(name, space, assigned)
}

// Acquire moves the numerically smallest available ID to assigned and
// returns it.
func (p *IDPool) Acquire() (string, error) {
	if len(p.available) == 0 {
		return "", NewPoolExhaustedError(p.name)
	}
	id := p.available[0]
	p.available = p.available[1:]
	p.assigned = insertSorted(p.assigned, id)
	return strconv.Itoa(id), nil
}

// Take moves a specific ID from available to assigned
func (p *IDPool) Take(id string) error {
	n, err := ParseID(id)
	if err != nil {
		return NewNotAvailableError(p.name, id)
	}
	var ok bool
	p.available, ok = removeSorted(p.available, n)
	if !ok {
		return NewNotAvailableError(p.name, id)
	}
	p.assigned = insertSorted(p.assigned, n)
	return nil
}

// Release moves id from assigned back to available
func (p *IDPool) Release(id string) error {
	n, err := ParseID(id)
	if err != nil {
		return NewNotAssignedError(p.name, id)
	}
	var ok bool
	p.assigned, ok = removeSorted(p.assigned, n)
	if !ok {
		return NewNotAssignedError(p.name, id)
	}
	p.available = insertSorted(p.available, n)
	return nil
}

// IsAssigned reports whether id is currently assigned
func (p *IDPool) IsAssigned(id string) bool {
	n, err := ParseID(id)
	if err != nil {
		return false
	}
	return containsSorted(p.assigned, n)
}

// IsAvailable reports whether id is currently available
func (p *IDPool) IsAvailable(id string) bool {
	n, err := ParseID(id)
	if err != nil {
		return false
	}
	return containsSorted(p.available, n)
}

// Available returns the available IDs in ascending numeric order
func (p *IDPool) Available() []string {
	return toStrings(p.available)
}

// Assigned returns the assigned IDs in ascending numeric order
func (p *IDPool) Assigned() []string {
	return toStrings(p.assigned)
}

func (p *IDPool) AvailableCount() int { return len(p.available) }
func (p *IDPool) AssignedCount() int  { return len(p.assigned) }

func insertSorted(ids []int, id int) []int {
	i := sort.SearchInts(ids, id)
	if i < len(ids) && ids[i] == id {
		return ids
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func removeSorted(ids []int, id int) ([]int, bool) {
	i := sort.SearchInts(ids, id)
	if i == len(ids) || ids[i] != id {
		return ids, false
	}
	return append(ids[:i], ids[i+1:]...), true
}

func containsSorted(ids []int, id int) bool {
	i := sort.SearchInts(ids, id)
	return i < len(ids) && ids[i] == id
}

func toStrings(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}

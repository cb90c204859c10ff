package canon

import "sort"

// permuter walks every ordering of a list in lexicographic order, starting
// from the sorted list. Duplicate elements yield each distinct ordering once.
type permuter struct {
	items   []string
	started bool
	done    bool
}

func newPermuter(items []string) *permuter {
	p := &permuter{items: make([]string, len(items))}
	copy(p.items, items)
	sort.Strings(p.items)
	return p
}

// next advances to the following permutation. The first call yields the
// sorted list itself. Returns false when every ordering has been visited.
func (p *permuter) next() bool {
	if p.done {
		return false
	}
	if !p.started {
		p.started = true
		return true
	}
	a := p.items
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		p.done = true
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}

// current returns the permutation the last next call produced.
// The slice is reused; callers must not retain it.
func (p *permuter) current() []string {
	return p.items
}

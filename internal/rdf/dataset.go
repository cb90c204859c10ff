package rdf

// Dataset is a set of quads. Add ignores quads already present.
// Order of insertion is kept as discovery order.
type Dataset struct {
	quads []Quad
	seen  map[string]struct{}
}

// NewDataset creates a dataset holding the given quads.
func NewDataset(quads ...Quad) *Dataset {
	d := &Dataset{seen: make(map[string]struct{}, len(quads))}
	for _, q := range quads {
		d.Add(q)
	}
	return d
}

// Add inserts q unless an equal quad is already present.
// Returns true when the quad was added.
func (d *Dataset) Add(q Quad) bool {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	key := string(AppendQuad(nil, q))
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	d.quads = append(d.quads, q)
	return true
}

// Len returns the number of distinct quads.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.quads)
}

// Quads returns a copy of the quads in discovery order.
func (d *Dataset) Quads() []Quad {
	if d == nil {
		return nil
	}
	out := make([]Quad, len(d.quads))
	copy(out, d.quads)
	return out
}

// BlankNodes returns every blank node identifier in order of first appearance.
func (d *Dataset) BlankNodes() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var ids []string
	for _, q := range d.quads {
		for _, id := range q.BlankNodes() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Validate checks every quad and returns the first error.
func (d *Dataset) Validate() error {
	if d == nil {
		return nil
	}
	for _, q := range d.quads {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

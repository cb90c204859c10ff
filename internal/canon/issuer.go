package canon

import "strconv"

// Issuer hands out sequential labels (prefix0, prefix1, ...) to blank node
// identifiers and remembers the order they were issued in.
//
// An Issuer is owned by a single run. N-degree trials work on a Clone and
// the winner is folded back with Merge.
type Issuer struct {
	prefix  string
	counter int
	issued  map[string]string
	order   []string
}

// NewIssuer creates an empty issuer for prefix.
func NewIssuer(prefix string) *Issuer {
	return &Issuer{prefix: prefix, issued: make(map[string]string)}
}

// Issue returns the label for id, minting the next one if id is new.
func (i *Issuer) Issue(id string) string {
	if label, ok := i.issued[id]; ok {
		return label
	}
	label := i.prefix + strconv.Itoa(i.counter)
	i.counter++
	i.issued[id] = label
	i.order = append(i.order, id)
	return label
}

// Has reports whether id has been issued a label.
func (i *Issuer) Has(id string) bool {
	_, ok := i.issued[id]
	return ok
}

// Lookup returns the label issued to id, if any.
func (i *Issuer) Lookup(id string) (string, bool) {
	label, ok := i.issued[id]
	return label, ok
}

// Len returns the number of issued labels.
func (i *Issuer) Len() int { return len(i.order) }

// Order returns the identifiers in issue order.
func (i *Issuer) Order() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Labels returns a copy of the identifier to label map.
func (i *Issuer) Labels() map[string]string {
	out := make(map[string]string, len(i.issued))
	for id, label := range i.issued {
		out[id] = label
	}
	return out
}

// Clone returns an independent copy.
func (i *Issuer) Clone() *Issuer {
	c := &Issuer{
		prefix:  i.prefix,
		counter: i.counter,
		issued:  make(map[string]string, len(i.issued)),
		order:   make([]string, len(i.order), len(i.order)+4),
	}
	for id, label := range i.issued {
		c.issued[id] = label
	}
	copy(c.order, i.order)
	return c
}

// Merge issues labels for trial's identifiers in trial's issue order.
//
// When trial shares i's prefix it must be a fork of i: every label in
// trial has to equal the label i holds or would mint for that identifier.
// A mismatch returns an INTERNAL error and leaves i unchanged.
func (i *Issuer) Merge(trial *Issuer) error {
	if trial.prefix == i.prefix {
		next := i.counter
		for _, id := range trial.order {
			label := trial.issued[id]
			if have, ok := i.issued[id]; ok {
				if have != label {
					return internalError(id, "merge conflict: issued %s, trial has %s", have, label)
				}
				continue
			}
			if want := i.prefix + strconv.Itoa(next); label != want {
				return internalError(id, "merge conflict: would issue %s, trial has %s", want, label)
			}
			next++
		}
	}
	for _, id := range trial.order {
		i.Issue(id)
	}
	return nil
}

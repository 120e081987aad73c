package source

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

type StringID uint32

const NoStringID StringID = 0

// Interner maps strings to dense ids. Identifiers written with different
// Unicode compositions of the same text intern to the same id when the
// interner was created with NewNFCInterner.
type Interner struct {
	byID      []string            // byID[0] = "" for NoStringID
	index     map[string]StringID // string -> ID
	normalize func(string) string
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// NewNFCInterner returns an interner that folds keys to Unicode NFC first.
func NewNFCInterner() *Interner {
	in := NewInterner()
	in.normalize = norm.NFC.String
	return in
}

// Intern inserts s and returns its ID; existing strings keep their ID.
func (i *Interner) Intern(s string) StringID {
	if i.normalize != nil {
		s = i.normalize(s)
	}
	if id, ok := i.index[s]; ok {
		return id
	}

	// own copy so the interner never pins the source buffer
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the ID of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	if i.normalize != nil {
		s = i.normalize(s)
	}
	id, ok := i.index[s]
	return id, ok && id != NoStringID
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts NoStringID too, so it is never below 1.
func (i *Interner) Len() int {
	return len(i.byID)
}

func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}

package wxf

import (
	"slices"
	"sort"
)

// RuleKind distinguishes k -> v from k :> v inside an association.
type RuleKind uint8

const (
	Rule RuleKind = iota
	RuleDelayed
)

func (r RuleKind) String() string {
	if r == RuleDelayed {
		return "RuleDelayed"
	}
	return "Rule"
}

// Entry is one key of an association with its relation and value.
type Entry struct {
	Key   Value
	Rule  RuleKind
	Value Value
}

// Association is a key-unique map kept in canonical key order, so equal
// associations encode to identical bytes whatever order they were
// assembled in.
type Association struct {
	entries []Entry
}

// NewAssociation returns an association of entries. When a key appears
// more than once the last entry wins.
//
// Keys are compared with Compare, which qualifies bare symbols with
// Global`. A bare NewSymbol("x") key and GlobalSymbol("x") are therefore
// the same key even when the encoder uses another default context.
func NewAssociation(entries ...Entry) Value {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	unique := sorted[:0]
	for _, e := range sorted {
		if n := len(unique); n > 0 && Compare(unique[n-1].Key, e.Key) == 0 {
			unique[n-1] = e
			continue
		}
		unique = append(unique, e)
	}
	return Value{kind: KindAssociation, assoc: &Association{entries: unique}}
}

// Len returns the number of entries.
func (a *Association) Len() int {
	return len(a.entries)
}

// Entries returns a copy of the entries in canonical order.
func (a *Association) Entries() []Entry {
	return slices.Clone(a.entries)
}

// Lookup returns the entry stored under key.
func (a *Association) Lookup(key Value) (Entry, bool) {
	i := sort.Search(len(a.entries), func(i int) bool {
		return Compare(a.entries[i].Key, key) >= 0
	})
	if i < len(a.entries) && Compare(a.entries[i].Key, key) == 0 {
		return a.entries[i], true
	}
	return Entry{}, false
}

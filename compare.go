package wxf

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"math"
	"strings"
)

// kindRank fixes the order between variants. It is spelled out instead of
// derived from the Kind constants so that adding a variant cannot reorder
// existing association keys.
var kindRank = map[Kind]int{
	KindSkip:         0,
	KindFunction:     1,
	KindBoolean:      2,
	KindString:       3,
	KindBytes:        4,
	KindSymbol:       5,
	KindInteger8:     6,
	KindInteger16:    7,
	KindInteger32:    8,
	KindInteger64:    9,
	KindBigInteger:   10,
	KindDecimal64:    11,
	KindBigDecimal:   12,
	KindPackedArray:  13,
	KindNumericArray: 14,
	KindAssociation:  15,
	KindRule:         16,
	KindRuleDelayed:  17,
}

// Compare is a total order over values: first by variant rank, then
// structurally within a variant. It returns -1, 0 or +1. Symbols compare
// by FullName, so a bare symbol equals its Global` form.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(kindRank[a.kind], kindRank[b.kind])
	}

	switch a.kind {
	case KindFunction:
		if c := Compare(a.fn.head, b.fn.head); c != 0 {
			return c
		}
		return compareSlices(a.fn.args, b.fn.args)
	case KindBoolean, KindInteger8, KindInteger16, KindInteger32, KindInteger64:
		return cmp.Compare(a.num, b.num)
	case KindString, KindBigDecimal:
		return strings.Compare(a.str, b.str)
	case KindBytes, KindPackedArray, KindNumericArray:
		return bytes.Compare(a.raw, b.raw)
	case KindSymbol:
		return strings.Compare(a.sym.FullName(), b.sym.FullName())
	case KindBigInteger:
		return a.big.Cmp(b.big)
	case KindDecimal64:
		return compareDecimal(a.dec, b.dec)
	case KindAssociation:
		return compareEntries(a.assoc.entries, b.assoc.entries)
	default:
		return 0
	}
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

func compareSlices(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareEntries(a, b []Entry) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := cmp.Compare(a[i].Rule, b[i].Rule); c != 0 {
			return c
		}
		if c := Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareDecimal orders by numeric value, NaN first, and breaks ties on
// the bit pattern so that -0 and 0 or two NaN payloads stay distinct keys.
func compareDecimal(a, b [8]byte) int {
	ba, bb := binary.LittleEndian.Uint64(a[:]), binary.LittleEndian.Uint64(b[:])
	if c := cmp.Compare(math.Float64frombits(ba), math.Float64frombits(bb)); c != 0 {
		return c
	}
	return cmp.Compare(ba, bb)
}

package pairs

import "fmt"

// Pair is the canonical unordered key of two artist names:
// names are kept in lexicographic order so that (A, B) and (B, A) are one key.
type Pair struct {
	First  string
	Second string
}

func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{First: a, Second: b}
}

// Selfie reports whether both names are equal,
// which happens when one customer's record lists the same artist twice.
func (p Pair) Selfie() bool {
	return p.First == p.Second
}

// Less implements regs.Lesser for sorted reporting.
func (p Pair) Less(other interface{}) bool {
	o, ok := other.(Pair)
	if !ok {
		return false
	}
	if p.First != o.First {
		return p.First < o.First
	}
	return p.Second < o.Second
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.First, p.Second)
}

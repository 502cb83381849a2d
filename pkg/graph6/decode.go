package graph6

import (
	"math"
	"math/bits"

	errs "github.com/matzehuels/g6conv/pkg/errors"
)

const (
	digraphPrefix    = '&'
	sparse6Prefix    = ':'
	incSparse6Prefix = ';'
	flatZero         = '0'
	flatOne          = '1'
)

// DecodeGraph6 decodes an undirected graph6 line.
//
// The size prefix is followed by the strict upper triangle of the adjacency
// matrix taken column by column: for j = 1..n-1, for i = 0..j-1, the next bit
// sets (i,j) and (j,i). Bits past the triangle, including padding, are
// ignored.
func DecodeGraph6(line string) (*Graph, error) {
	if len(line) > 0 {
		switch line[0] {
		case digraphPrefix, sparse6Prefix, incSparse6Prefix, flatZero, flatOne:
			return nil, errs.New(errs.ErrCodeFormatMismatch, "graph6 line cannot start with %q", line[0])
		}
	}
	return decodeMatrix(Undirected, []byte(line))
}

// DecodeDigraph6 decodes a digraph6 line. The line must start with '&';
// the remaining bytes hold a size prefix and the full matrix row by row.
func DecodeDigraph6(line string) (*Graph, error) {
	if len(line) == 0 || line[0] != digraphPrefix {
		return nil, errs.New(errs.ErrCodeFormatMismatch, "digraph6 line must start with '&'")
	}
	return decodeMatrix(Directed, []byte(line[1:]))
}

func decodeMatrix(kind Kind, data []byte) (*Graph, error) {
	order, consumed, err := DecodeSize(data)
	if err != nil {
		return nil, err
	}
	body := data[consumed:]

	seq, err := Unpack(body)
	if err != nil {
		return nil, err
	}

	need, ok := requiredBits(kind, order)
	if !ok || need > 6*len(body) {
		return nil, errs.New(errs.ErrCodeInsufficientBits, "order %d needs %v bits, have %d", order, bitCount(need, ok), 6*len(body))
	}

	g := newGraph(kind, order)
	if kind == Directed {
		k := 0
		for bit := range seq {
			if k == need {
				break
			}
			g.adj[k] = bit
			k++
		}
		return g, nil
	}

	i, j := 0, 1
	for bit := range seq {
		if j >= order {
			break
		}
		if bit {
			g.set(i, j)
		}
		if i++; i == j {
			i, j = 0, j+1
		}
	}
	return g, nil
}

// requiredBits returns n(n-1)/2 for undirected and n*n for directed graphs.
// ok is false when the count overflows int.
func requiredBits(kind Kind, order int) (int, bool) {
	if order == 0 {
		return 0, true
	}
	n := uint64(order)
	var hi, lo uint64
	switch kind {
	case Directed:
		hi, lo = bits.Mul64(n, n)
	default:
		hi, lo = bits.Mul64(n, n-1)
		lo = lo>>1 | hi<<63
		hi >>= 1
	}
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

func bitCount(n int, ok bool) any {
	if !ok {
		return "more than 2^63"
	}
	return n
}

// DecodeFlat decodes a line of n*n '0'/'1' characters into a graph of
// order n, filling the matrix row by row. Flat lines carry no size prefix
// and no packing, so kind must come from the caller.
//
// Characters other than '0' and '1' yield ErrCodeInvalidCharacter; a length
// that is not a perfect square yields ErrCodeNotASquare. An undirected
// result must be symmetric with an empty diagonal (ErrCodeInvalidMatrix).
func DecodeFlat(line string, kind Kind) (*Graph, error) {
	if len(line) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty flat line")
	}
	for i := 0; i < len(line); i++ {
		if c := line[i]; c != flatZero && c != flatOne {
			return nil, errs.New(errs.ErrCodeInvalidCharacter, "character %q at offset %d is not 0 or 1", c, i)
		}
	}

	order, ok := isqrt(len(line))
	if !ok {
		return nil, errs.New(errs.ErrCodeNotASquare, "length %d is not a perfect square", len(line))
	}

	g := newGraph(kind, order)
	for i := 0; i < len(line); i++ {
		g.adj[i] = line[i] == flatOne
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// isqrt returns floor(sqrt(l)) and whether l is a perfect square.
func isqrt(l int) (int, bool) {
	r := int(math.Sqrt(float64(l)))
	for r > 0 && r*r > l {
		r--
	}
	for (r+1)*(r+1) <= l {
		r++
	}
	return r, r*r == l
}

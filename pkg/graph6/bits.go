package graph6

import (
	"iter"

	errs "github.com/matzehuels/g6conv/pkg/errors"
)

// Unpack validates data and returns its bits, six per byte, most significant
// bit first. Every byte must lie in [63,126]; otherwise Unpack returns an
// ErrCodeInvalidBitByte error and no sequence.
//
// The returned sequence is lazy and restartable: each range over it walks
// data again from the start and yields exactly 6*len(data) values.
func Unpack(data []byte) (iter.Seq[bool], error) {
	for i, b := range data {
		if b < bias || b > maxPrintable {
			return nil, errs.New(errs.ErrCodeInvalidBitByte, "data byte %d at offset %d outside [63,126]", b, i)
		}
	}
	return func(yield func(bool) bool) {
		for _, b := range data {
			v := b - bias
			for shift := 5; shift >= 0; shift-- {
				if !yield(v>>shift&1 == 1) {
					return
				}
			}
		}
	}, nil
}

// Pack groups bits into 6-bit chunks, zero-padding the last chunk on the
// right, and returns one printable byte (chunk+63) per chunk.
func Pack(bits []bool) []byte {
	var p packer
	p.buf = make([]byte, 0, (len(bits)+5)/6)
	for _, b := range bits {
		p.push(b)
	}
	return p.flush()
}

// packer accumulates bits into printable bytes without materializing the
// whole bit sequence.
type packer struct {
	buf []byte
	cur byte
	n   int
}

func (p *packer) push(bit bool) {
	p.cur <<= 1
	if bit {
		p.cur |= 1
	}
	p.n++
	if p.n == 6 {
		p.buf = append(p.buf, p.cur+bias)
		p.cur, p.n = 0, 0
	}
}

// flush pads a partial chunk with zero bits and returns the packed bytes.
func (p *packer) flush() []byte {
	if p.n > 0 {
		p.buf = append(p.buf, p.cur<<(6-p.n)+bias)
		p.cur, p.n = 0, 0
	}
	return p.buf
}

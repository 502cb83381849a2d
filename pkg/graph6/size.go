package graph6

import (
	errs "github.com/matzehuels/g6conv/pkg/errors"
)

const (
	// bias is added to every 6-bit group to move it into the printable range.
	bias = 63

	// maxPrintable is the largest byte in the graph6 alphabet ('~').
	maxPrintable = 126

	// sizeMarker introduces the 4- and 8-byte size forms.
	sizeMarker = '~'

	// MaxShortOrder is the largest order encoded in a single size byte.
	MaxShortOrder = 62

	// MaxMediumOrder is the largest order encoded in the 4-byte form.
	MaxMediumOrder = 258047

	// MaxOrder is the largest order representable by the 8-byte form.
	MaxOrder = 1<<36 - 1
)

// DecodeSize reads the vertex-count prefix at the start of data and returns
// the order together with the number of bytes it occupied.
//
// The prefix uses the R(x) scheme:
//   - one byte (order+63) for 0 <= order <= 62
//   - '~' followed by three bytes (18 bits) for 63 <= order <= 258047
//   - '~~' followed by six bytes (36 bits) for larger orders
//
// A byte outside [63,126], or a prefix cut short by the end of data, yields
// an ErrCodeInvalidSizeByte error.
func DecodeSize(data []byte) (order, consumed int, err error) {
	if len(data) == 0 {
		return 0, 0, errs.New(errs.ErrCodeInvalidSizeByte, "missing size prefix")
	}
	if err := checkSizeByte(data[0], 0); err != nil {
		return 0, 0, err
	}
	if data[0] != sizeMarker {
		return int(data[0]) - bias, 1, nil
	}

	if len(data) < 2 {
		return 0, 0, errs.New(errs.ErrCodeInvalidSizeByte, "truncated size prefix: need 4 bytes, have %d", len(data))
	}
	if data[1] != sizeMarker {
		n, err := readSizeGroups(data, 1, 3)
		return n, 4, err
	}
	n, err := readSizeGroups(data, 2, 6)
	return n, 8, err
}

// readSizeGroups packs count 6-bit groups starting at data[start] big-endian.
func readSizeGroups(data []byte, start, count int) (int, error) {
	end := start + count
	if len(data) < end {
		return 0, errs.New(errs.ErrCodeInvalidSizeByte, "truncated size prefix: need %d bytes, have %d", end, len(data))
	}
	n := 0
	for i := start; i < end; i++ {
		if err := checkSizeByte(data[i], i); err != nil {
			return 0, err
		}
		n = n<<6 | int(data[i]-bias)
	}
	return n, nil
}

func checkSizeByte(b byte, offset int) error {
	if b < bias || b > maxPrintable {
		return errs.New(errs.ErrCodeInvalidSizeByte, "size byte %d at offset %d outside [63,126]", b, offset)
	}
	return nil
}

// EncodeSize returns the shortest R(x) prefix for order.
// It panics if order is negative or exceeds MaxOrder; no Graph can have such an order.
func EncodeSize(order int) []byte {
	return appendSize(nil, order)
}

func appendSize(dst []byte, order int) []byte {
	switch {
	case order < 0 || order > MaxOrder:
		panic("graph6: order out of range")
	case order <= MaxShortOrder:
		return append(dst, byte(order+bias))
	case order <= MaxMediumOrder:
		dst = append(dst, sizeMarker)
		return appendSizeGroups(dst, order, 3)
	default:
		dst = append(dst, sizeMarker, sizeMarker)
		return appendSizeGroups(dst, order, 6)
	}
}

func appendSizeGroups(dst []byte, order, count int) []byte {
	for shift := 6 * (count - 1); shift >= 0; shift -= 6 {
		dst = append(dst, byte((order>>shift)&0x3f)+bias)
	}
	return dst
}

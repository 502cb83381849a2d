// Package graph6 implements the graph6 family of compact ASCII graph
// encodings used by nauty and related tools.
//
// # Encodings
//
// Every graph6-family line uses bytes in the printable range [63,126]:
//
//   - graph6: size prefix, then the strict upper triangle of the adjacency
//     matrix, column by column, six bits per byte
//   - digraph6: '&', size prefix, then the full matrix row by row
//   - flat: no prefix, one '0'/'1' character per matrix cell
//
// Lines starting with ':' (sparse6) or ';' (incremental sparse6) are
// recognized by [Detect] but [Decode] rejects them with an UNSUPPORTED error.
//
// # Size Prefix
//
// The vertex count n is stored as R(n): one byte n+63 when n <= 62; '~' plus
// three bytes (18 bits) when n <= 258047; '~~' plus six bytes (36 bits)
// otherwise. See [DecodeSize] and [EncodeSize].
//
// # Bit Packing
//
// [Unpack] turns each byte into six bits, most significant first, after
// subtracting 63. [Pack] does the reverse and zero-pads the last group, so
// Pack(Unpack(b)) == b while Unpack(Pack(bits)) returns bits padded to a
// multiple of six.
//
// # Usage
//
//	g, err := graph6.Decode("Cr", graph6.FormatAuto)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Order(), g.EdgeCount()) // 4 4
//	fmt.Println(graph6.Encode(g))         // Cr
//	fmt.Println(graph6.EncodeFlat(g))     // 0110100110010110
//
// Graphs are immutable once built. Undirected graphs always have a
// symmetric matrix with an empty diagonal; every constructor enforces it.
package graph6

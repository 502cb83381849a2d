package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

const conversionKeyPrefix = "conv:"

// Keyer builds cache keys for conversion results.
type Keyer interface {
	// ConversionKey identifies the result of converting line from one
	// format to another.
	ConversionKey(from, to, line string) string
}

// DefaultKeyer hashes the conversion parameters into a fixed-size key, so
// megabyte-long lines do not become megabyte-long Redis keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConversionKey returns "conv:" followed by the hex SHA-256 of the
// length-prefixed fields.
func (DefaultKeyer) ConversionKey(from, to, line string) string {
	h := sha256.New()
	var n [binary.MaxVarintLen64]byte
	for _, field := range [...]string{from, to, line} {
		h.Write(n[:binary.PutUvarint(n[:], uint64(len(field)))])
		h.Write([]byte(field))
	}
	return conversionKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// ScopedKeyer namespaces another Keyer so several deployments can share
// one Redis:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "g6conv:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prepends prefix to every key of inner, or of the default
// keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ConversionKey(from, to, line string) string {
	return k.prefix + k.inner.ConversionKey(from, to, line)
}

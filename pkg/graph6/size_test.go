package graph6

import (
	"testing"

	errs "github.com/matzehuels/g6conv/pkg/errors"
)

func TestDecodeSize(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantOrder    int
		wantConsumed int
	}{
		{"zero", "?", 0, 1},
		{"one", "@", 1, 1},
		{"four", "Cr", 4, 1},
		{"max short", "}", 62, 1},
		{"min medium", "~??~", 63, 4},
		{"medium", "~WY_", 100000, 4},
		{"max medium", "~}~~", 258047, 4},
		{"min long", "~~???~??", 258048, 8},
		{"max long", "~~~~~~~~", MaxOrder, 8},
		{"trailing data ignored", "~??~ABC", 63, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, consumed, err := DecodeSize([]byte(tt.data))
			if err != nil {
				t.Fatalf("DecodeSize(%q) error: %v", tt.data, err)
			}
			if order != tt.wantOrder {
				t.Errorf("order = %d, want %d", order, tt.wantOrder)
			}
			if consumed != tt.wantConsumed {
				t.Errorf("consumed = %d, want %d", consumed, tt.wantConsumed)
			}
		})
	}
}

func TestDecodeSizeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"byte 200", []byte{200}},
		{"below range", []byte{62}},
		{"above range", []byte{127}},
		{"lone marker", []byte("~")},
		{"truncated medium", []byte("~??")},
		{"truncated long", []byte("~~????")},
		{"bad medium byte", []byte{'~', '?', 200, '?'}},
		{"bad long byte", []byte{'~', '~', '?', '?', '?', 10, '?', '?'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeSize(tt.data)
			if !errs.Is(err, errs.ErrCodeInvalidSizeByte) {
				t.Errorf("DecodeSize(%v) error = %v, want %s", tt.data, err, errs.ErrCodeInvalidSizeByte)
			}
		})
	}
}

func TestEncodeSizeBoundaries(t *testing.T) {
	tests := []struct {
		order   int
		wantLen int
		want    string
	}{
		{0, 1, "?"},
		{62, 1, "}"},
		{63, 4, "~??~"},
		{258047, 4, "~}~~"},
		{258048, 8, "~~???~??"},
		{MaxOrder, 8, "~~~~~~~~"},
	}

	for _, tt := range tests {
		got := EncodeSize(tt.order)
		if len(got) != tt.wantLen {
			t.Errorf("EncodeSize(%d) length = %d, want %d", tt.order, len(got), tt.wantLen)
		}
		if string(got) != tt.want {
			t.Errorf("EncodeSize(%d) = %q, want %q", tt.order, got, tt.want)
		}
	}
}

func TestSizeRoundTrip(t *testing.T) {
	for _, order := range []int{0, 1, 2, 30, 61, 62, 63, 64, 4095, 4096, 100000, 258046, 258047, 258048, 1 << 30, MaxOrder - 1, MaxOrder} {
		enc := EncodeSize(order)
		got, consumed, err := DecodeSize(enc)
		if err != nil {
			t.Fatalf("DecodeSize(EncodeSize(%d)) error: %v", order, err)
		}
		if got != order || consumed != len(enc) {
			t.Errorf("round trip %d: got order %d consumed %d (encoded %q)", order, got, consumed, enc)
		}
	}
}

func TestEncodeSizePanicsOutOfRange(t *testing.T) {
	for _, order := range []int{-1, MaxOrder + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("EncodeSize(%d) did not panic", order)
				}
			}()
			EncodeSize(order)
		}()
	}
}

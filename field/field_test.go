// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"testing"
)

func TestCanonicalRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 7, 0xFFFFFFFF, 0xFFFFFFFF00000000, 0xFFFFFFFF00000000 + 1}
	for _, v := range values {
		e := FromUint64(v)
		enc := AppendLE(nil, &e)
		if len(enc) != ElementSize {
			t.Fatalf("encoding size %d", len(enc))
		}
		back := FromLEBytes(enc)
		if back != e {
			t.Errorf("round trip mismatch for %d", v)
		}
	}
}

func TestFromUint64Reduces(t *testing.T) {
	// p = 2^64 - 2^32 + 1, so p reduces to 0 and p+5 to 5.
	p := uint64(0xFFFFFFFF00000001)
	e := FromUint64(p)
	if !e.IsZero() {
		t.Error("p should reduce to zero")
	}
	e = FromUint64(p + 5)
	if Canonical(&e) != 5 {
		t.Errorf("p+5 should reduce to 5, got %d", Canonical(&e))
	}
}

func TestSerializeVec(t *testing.T) {
	vs := []Element{FromUint64(1), FromUint64(2), FromUint64(3)}
	ser := SerializeVec(vs)
	if len(ser) != 3*ElementSize {
		t.Fatalf("serialized size %d", len(ser))
	}
	back, err := DeserializeVec(ser)
	if err != nil {
		t.Fatal(err)
	}
	for i := range vs {
		if back[i] != vs[i] {
			t.Errorf("element %d mismatch", i)
		}
	}

	if _, err := DeserializeVec(ser[:5]); err == nil {
		t.Error("expected error for truncated input")
	}
}

func TestArithmeticHelpers(t *testing.T) {
	a := FromUint64(10)
	b := FromUint64(32)
	if got := Add(a, b); Canonical(&got) != 42 {
		t.Error("add mismatch")
	}
	if got := Sub(b, a); Canonical(&got) != 22 {
		t.Error("sub mismatch")
	}
	if got := Mul(a, b); Canonical(&got) != 320 {
		t.Error("mul mismatch")
	}
}

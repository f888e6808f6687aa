package core

import (
	"math"
	"testing"
)

func TestHasherDeterministic(t *testing.T) {
	build := func() Hash {
		var h Hasher
		h.WriteString("otu_1")
		h.WriteFloat(0.5)
		h.WriteFloat(math.NaN())
		return h.Sum()
	}

	if build() != build() {
		t.Error("Expected identical input to produce identical hash")
	}
}

func TestHasherSeparatesFields(t *testing.T) {
	var a, b Hasher
	a.WriteString("ab")
	a.WriteString("c")
	b.WriteString("a")
	b.WriteString("bc")

	if a.Sum() == b.Sum() {
		t.Error("Expected length prefix to separate adjacent strings")
	}
}

func TestHasherSignedZero(t *testing.T) {
	var a, b Hasher
	a.WriteFloat(0)
	b.WriteFloat(math.Copysign(0, -1))

	if a.Sum() == b.Sum() {
		t.Error("Expected +0 and -0 to hash differently")
	}
}

func TestHasherMatchesNewHash(t *testing.T) {
	var h Hasher
	h.WriteString("ab")
	h.WriteFloat(1)

	want := []byte{2, 0, 0, 0, 0, 0, 0, 0, 'a', 'b', 0, 0, 0, 0, 0, 0, 0xf0, 0x3f}
	if h.Sum() != NewHash(want) {
		t.Error("Expected streamed hash to equal the hash of the encoded bytes")
	}

	var empty Hasher
	if empty.Sum() != NewHash(nil) {
		t.Error("Expected zero Hasher to hash the empty input")
	}
}

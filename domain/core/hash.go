package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"io"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Hasher streams labels and float64 bit patterns into a single Hash.
// Floats are hashed by their IEEE-754 bits so NaN payloads and signed
// zeros are distinguished. The zero value is ready to use.
type Hasher struct {
	h   hash.Hash
	buf [8]byte
}

func (h *Hasher) state() hash.Hash {
	if h.h == nil {
		h.h = sha256.New()
	}
	return h.h
}

func (h *Hasher) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.state().Write(h.buf[:])
}

// WriteString writes a length-prefixed string
func (h *Hasher) WriteString(s string) {
	h.writeUint64(uint64(len(s)))
	io.WriteString(h.state(), s)
}

// WriteFloat writes the bit pattern of f
func (h *Hasher) WriteFloat(f float64) {
	h.writeUint64(math.Float64bits(f))
}

// Sum returns the hash of everything written so far
func (h *Hasher) Sum() Hash {
	return Hash(hex.EncodeToString(h.state().Sum(nil)))
}

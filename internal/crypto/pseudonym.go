// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrInvalidKey is returned when the pseudonym key is empty or longer than
// a BLAKE2b key may be.
var ErrInvalidKey = errors.New("invalid pseudonym key")

// MaxKeySize is the longest accepted key, in bytes.
const MaxKeySize = blake2b.Size

type blakePseudonymizer struct {
	key []byte
}

// NewPseudonymizer returns a keyed BLAKE2b-256 [Pseudonymizer]. key must be
// 1..[MaxKeySize] bytes long.
func NewPseudonymizer(key []byte) (Pseudonymizer, error) {
	if n := len(key); n == 0 || n > MaxKeySize {
		return nil, fmt.Errorf("%w: key must be 1..%d bytes, got %d", ErrInvalidKey, MaxKeySize, n)
	}
	return &blakePseudonymizer{key: append([]byte(nil), key...)}, nil
}

func (p *blakePseudonymizer) Pseudonym(value string, n int) string {
	// key length is checked in NewPseudonymizer
	h, _ := blake2b.New256(p.key)
	h.Write([]byte(value))

	sum := hex.EncodeToString(h.Sum(nil))
	if n <= 0 || n > len(sum) {
		return sum
	}
	return sum[:n]
}

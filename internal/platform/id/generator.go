// Package id generates the opaque identifiers the importer assigns to
// games and stat rows it creates.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator produces unique string IDs. The importer takes the
// interface so tests can substitute deterministic sequences.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits 128-bit hex identifiers from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (*RandomGenerator) NewID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return hex.EncodeToString(buf[:]), nil
}

package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Alphabet holds the 36 symbols identifiers are drawn from.
	Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// Length is the number of symbols in a generated identifier.
	Length = 8
)

// Generator produces short identifiers. Uniqueness is left to the store.
type Generator interface {
	Generate() (string, error)
}

type randomGenerator struct {
	length int
}

// NewRandomGenerator returns a Generator drawing Length symbols uniformly from Alphabet.
func NewRandomGenerator() Generator {
	return &randomGenerator{length: Length}
}

func (g *randomGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	b := make([]byte, g.length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}

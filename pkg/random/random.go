// Package random generates short identifier strings over fixed alphabets.
package random

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Charset selects the alphabet drawn from.
type Charset int

const (
	Alphanumeric Charset = iota
	Alphabetic
	Numeric
)

// Case selects how letters are capitalized.
type Case int

const (
	Lowercase Case = iota
	Uppercase
	Mixed
)

const (
	digits = "0123456789"
	lower  = "abcdefghijklmnopqrstuvwxyz"
	upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator produces random strings. Implementations must be safe for concurrent use.
type Generator interface {
	Generate(length int, charset Charset, capitalization Case) string
}

// Alphabet returns the characters a Generator draws from for the given charset and case.
func Alphabet(charset Charset, capitalization Case) string {
	var letters string
	switch capitalization {
	case Uppercase:
		letters = upper
	case Mixed:
		letters = lower + upper
	default:
		letters = lower
	}

	switch charset {
	case Numeric:
		return digits
	case Alphabetic:
		return letters
	default:
		return digits + letters
	}
}

// PRNG is the default Generator. Identifiers are not secrets, so a fast
// non-cryptographic source is used.
type PRNG struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPRNG returns a generator seeded from the runtime's random source.
func NewPRNG() *PRNG {
	return &PRNG{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a reproducible generator for tests and fixtures.
func NewSeeded(seed1, seed2 uint64) *PRNG {
	return &PRNG{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Generate returns length characters drawn uniformly from Alphabet(charset, capitalization).
func (g *PRNG) Generate(length int, charset Charset, capitalization Case) string {
	if length <= 0 {
		return ""
	}
	alphabet := Alphabet(charset, capitalization)

	var b strings.Builder
	b.Grow(length)

	g.mu.Lock()
	defer g.mu.Unlock()
	for range length {
		b.WriteByte(alphabet[g.rng.IntN(len(alphabet))])
	}
	return b.String()
}

// Fixed is a Generator that always returns the same value, truncated or
// padded with '0' to the requested length.
type Fixed string

func (f Fixed) Generate(length int, _ Charset, _ Case) string {
	s := string(f)
	if len(s) >= length {
		return s[:max(length, 0)]
	}
	return s + strings.Repeat("0", length-len(s))
}

// Package uniqueid generates the 10-digit suffixes carried by detail links.
package uniqueid

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	// Length is the number of digits in a unique id.
	Length = 10

	// MaxAttempts bounds collision retries in Generator.Unique.
	MaxAttempts = 100
)

var ErrExhausted = errors.New("failed to generate unique id after max attempts")

var ten = big.NewInt(10)

// ExistsFunc reports whether a candidate id is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

type Generator struct {
	rand io.Reader
}

func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewGeneratorWithSource is for deterministic ids in tests.
func NewGeneratorWithSource(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns Length random decimal digits; leading zeros are kept.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(g.rand, ten)
		if err != nil {
			return "", fmt.Errorf("read random digit: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}

// Unique draws ids until exists reports one as free, giving up after
// MaxAttempts.
func (g *Generator) Unique(ctx context.Context, exists ExistsFunc) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate, err := g.Generate()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check unique id: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

// Valid reports whether s has the shape of a unique id.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

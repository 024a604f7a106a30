// Package keygen generates random alphanumeric keys.
package keygen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Alphabet is the set keys are drawn from: A-Z, a-z and 0-9.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the key length used when none is configured.
const DefaultLength = 32

// ErrInvalidLength is returned for negative key lengths.
var ErrInvalidLength = errors.New("key length must not be negative")

// Options configures key generation.
type Options struct {
	// Length is the number of characters per key. Zero yields an empty key.
	Length int
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Length < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, o.Length)
	}
	return nil
}

// Generator draws keys from a random source.
type Generator struct {
	opts   Options
	random io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom replaces the random source (default crypto/rand.Reader).
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

// New creates a generator after validating opts.
func New(opts Options, options ...Option) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		opts:   opts,
		random: rand.Reader,
	}
	for _, o := range options {
		o(g)
	}
	return g, nil
}

// Generate returns one key. Every character is chosen independently and
// uniformly from Alphabet.
func (g *Generator) Generate() (string, error) {
	size := big.NewInt(int64(len(Alphabet)))
	key := make([]byte, g.opts.Length)
	for i := range key {
		n, err := rand.Int(g.random, size)
		if err != nil {
			return "", fmt.Errorf("generating random index: %w", err)
		}
		key[i] = Alphabet[n.Int64()]
	}
	return string(key), nil
}

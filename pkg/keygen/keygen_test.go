package keygen

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isAlphanumeric(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}
	return true
}

func generateKey(length int) (string, error) {
	g, err := New(Options{Length: length})
	if err != nil {
		return "", err
	}
	return g.Generate()
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 62)

	seen := make(map[rune]bool)
	for _, c := range Alphabet {
		assert.False(t, seen[c], "duplicate %q in alphabet", c)
		seen[c] = true
		assert.True(t, (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'))
	}
}

func TestGenerate_Default(t *testing.T) {
	g, err := New(Options{Length: DefaultLength})
	require.NoError(t, err)

	key, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, key, 32)
	assert.True(t, isAlphanumeric(key), "key %q has characters outside the alphabet", key)
}

func TestGenerate_ZeroLength(t *testing.T) {
	key, err := generateKey(0)
	require.NoError(t, err)
	assert.Equal(t, "", key)
}

func TestNew_NegativeLength(t *testing.T) {
	_, err := New(Options{Length: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLength))

	_, err = generateKey(-5)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestGenerate_RandomSourceFailure(t *testing.T) {
	g, err := New(Options{Length: DefaultLength}, WithRandom(strings.NewReader("")))
	require.NoError(t, err)

	_, err = g.Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating random index")
}

func TestGenerate_Independent(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := generateKey(DefaultLength)
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

// TestGenerate_Uniform runs a chi-square test over the 62 symbols. With 61
// degrees of freedom the 0.9999 quantile is about 114, so a fair generator
// fails this check far less than once in a thousand runs.
func TestGenerate_Uniform(t *testing.T) {
	const keys = 2000
	counts := make(map[byte]int)
	total := 0

	for i := 0; i < keys; i++ {
		key, err := generateKey(DefaultLength)
		require.NoError(t, err)
		for j := 0; j < len(key); j++ {
			counts[key[j]]++
			total++
		}
	}

	require.Len(t, counts, len(Alphabet), "every symbol should appear")

	expected := float64(total) / float64(len(Alphabet))
	chi2 := 0.0
	for i := 0; i < len(Alphabet); i++ {
		diff := float64(counts[Alphabet[i]]) - expected
		chi2 += diff * diff / expected
	}
	assert.Less(t, chi2, 130.0, "chi-square %.1f suggests a biased distribution", chi2)

	classes := map[string]int{}
	for c, n := range counts {
		switch {
		case c >= 'A' && c <= 'Z':
			classes["upper"] += n
		case c >= 'a' && c <= 'z':
			classes["lower"] += n
		default:
			classes["digit"] += n
		}
	}
	// 26/62, 26/62 and 10/62 of all draws, within 5%.
	assert.InEpsilon(t, float64(total)*26/62, float64(classes["upper"]), 0.05)
	assert.InEpsilon(t, float64(total)*26/62, float64(classes["lower"]), 0.05)
	assert.InEpsilon(t, float64(total)*10/62, float64(classes["digit"]), 0.05)
}

func TestGenerateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("keys have the requested length and alphabet", prop.ForAll(
		func(length int) bool {
			key, err := generateKey(length)
			if err != nil {
				return false
			}
			return len(key) == length && isAlphanumeric(key)
		},
		gen.IntRange(0, 256),
	))

	properties.Property("negative lengths are rejected", prop.ForAll(
		func(length int) bool {
			_, err := generateKey(length)
			return errors.Is(err, ErrInvalidLength)
		},
		gen.IntRange(-1000, -1),
	))

	properties.TestingRun(t)
}

package generators

import (
	"math/rand"

	"github.com/mmrzaf/jsonfixture/internal/domain"
)

func chooseKind(rng *rand.Rand, kinds []domain.Kind) domain.Kind {
	return kinds[rng.Intn(len(kinds))]
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n characters drawn uniformly from [a-zA-Z0-9].
func (g *Generator) RandomString(n int) string {
	return randomString(g.rng, n)
}

func randomString(rng *rand.Rand, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

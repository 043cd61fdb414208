package generators

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/jsonfixture/internal/domain"
)

// KeyNamer picks object field names.
type KeyNamer interface {
	Key(rng *rand.Rand, limits domain.Limits) string
}

// AlnumKeyNamer draws KeyLen alphanumeric characters from the generator's
// source, so keys are reproducible for a given seed.
type AlnumKeyNamer struct{}

func (k *AlnumKeyNamer) Key(rng *rand.Rand, limits domain.Limits) string {
	return randomString(rng, limits.KeyLen)
}

// FakerKeyNamer uses dictionary words. faker has its own random source, so
// the seed does not fix these keys.
type FakerKeyNamer struct{}

func (k *FakerKeyNamer) Key(rng *rand.Rand, limits domain.Limits) string {
	w := faker.Word()
	if w == "" {
		return randomString(rng, limits.KeyLen)
	}
	return w
}

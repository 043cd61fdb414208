package generators

import (
	"math/rand"

	"github.com/mmrzaf/jsonfixture/internal/domain"
)

// Generator produces random values from a single seeded source. It is not
// safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	seed   int64
	limits domain.Limits
	keys   KeyNamer
}

type Option func(*Generator)

func WithLimits(l domain.Limits) Option {
	return func(g *Generator) { g.limits = l }
}

func WithKeyNamer(k KeyNamer) Option {
	return func(g *Generator) {
		if k != nil {
			g.keys = k
		}
	}
}

func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		limits: domain.DefaultLimits(),
		keys:   &AlnumKeyNamer{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Seed() int64 { return g.seed }

func (g *Generator) Limits() domain.Limits { return g.limits }

// Generate returns a value of a uniformly chosen kind. Containers are only
// eligible while depth < MaxDepth.
func (g *Generator) Generate(depth int) domain.Value {
	kinds := domain.AllKinds
	if depth >= g.limits.MaxDepth {
		kinds = domain.LeafKinds
	}

	switch chooseKind(g.rng, kinds) {
	case domain.KindString:
		n := intBetween(g.rng, g.limits.StringMinLen, g.limits.StringMaxLen)
		return domain.StringValue(g.RandomString(n))
	case domain.KindNumber:
		return domain.NumberValue(floatBetween(g.rng, g.limits.NumberMin, g.limits.NumberMax))
	case domain.KindBoolean:
		return domain.BoolValue(g.rng.Intn(2) == 1)
	case domain.KindObject:
		n := intBetween(g.rng, g.limits.ContainerMin, g.limits.ContainerMax)
		return domain.ObjectValue(g.fields(n, depth+1))
	case domain.KindArray:
		n := intBetween(g.rng, g.limits.ContainerMin, g.limits.ContainerMax)
		items := make([]domain.Value, n)
		for i := range items {
			items[i] = g.Generate(depth + 1)
		}
		return domain.ArrayValue(items)
	default:
		return domain.NullValue()
	}
}

// GenerateDocument returns a top-level object; its field values start at depth 0.
func (g *Generator) GenerateDocument() domain.Value {
	n := intBetween(g.rng, g.limits.DocumentFieldsMin, g.limits.DocumentFieldsMax)
	return domain.ObjectValue(g.fields(n, 0))
}

func (g *Generator) fields(n, depth int) []domain.Field {
	fields := make([]domain.Field, n)
	for i := range fields {
		key := g.keys.Key(g.rng, g.limits)
		fields[i] = domain.Field{Key: key, Value: g.Generate(depth)}
	}
	return fields
}

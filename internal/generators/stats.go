package generators

import "github.com/mmrzaf/jsonfixture/internal/domain"

// Stats accumulates per-kind counts over observed documents. Document roots
// are not counted as objects.
type Stats struct {
	Documents  int
	KindCounts map[string]int
	MaxDepth   int
}

func NewStats() *Stats {
	return &Stats{KindCounts: make(map[string]int)}
}

func (s *Stats) Observe(doc domain.Value) {
	s.Documents++
	if doc.Kind != domain.KindObject {
		s.walk(doc, 0)
		return
	}
	for _, f := range doc.Fields {
		s.walk(f.Value, 0)
	}
}

func (s *Stats) walk(v domain.Value, depth int) {
	s.KindCounts[v.Kind.String()]++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	switch v.Kind {
	case domain.KindObject:
		for _, f := range v.Fields {
			s.walk(f.Value, depth+1)
		}
	case domain.KindArray:
		for _, item := range v.Items {
			s.walk(item, depth+1)
		}
	}
}

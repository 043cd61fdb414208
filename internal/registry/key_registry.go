package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mmrzaf/jsonfixture/internal/generators"
)

type KeyNamerRegistry struct {
	mu     sync.RWMutex
	namers map[string]generators.KeyNamer
}

func NewKeyNamerRegistry() *KeyNamerRegistry {
	return &KeyNamerRegistry{
		namers: make(map[string]generators.KeyNamer),
	}
}

func (r *KeyNamerRegistry) Register(name string, k generators.KeyNamer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namers[name] = k
}

func (r *KeyNamerRegistry) Get(name string) (generators.KeyNamer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.namers[name]
	if !ok {
		return nil, fmt.Errorf("key namer not found: %s", name)
	}
	return k, nil
}

func (r *KeyNamerRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.namers))
	for name := range r.namers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DefaultKeyNamerRegistry() *KeyNamerRegistry {
	r := NewKeyNamerRegistry()
	r.Register("alnum", &generators.AlnumKeyNamer{})
	r.Register("faker", &generators.FakerKeyNamer{})
	return r
}

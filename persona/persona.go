// Package persona ships the built-in personality pool that flavors agent
// prompts. Personalities shape tone only: they never grant information or
// mechanical advantages, so any mix of them yields a fair game. The pool is
// embedded at build time; callers wanting custom casts can load their own
// YAML through NewPoolFromBytes.
package persona

import (
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/wolfarena/core"
)

//go:embed personas.yaml
var personasYAML []byte

// Pool is a validated collection of personalities players can be cast from.
type Pool struct {
	Personas []core.Personality `yaml:"personas"`
}

// NewPool loads the embedded personality pool.
func NewPool() (*Pool, error) {
	return NewPoolFromBytes(personasYAML)
}

// NewPoolFromBytes parses a personality pool from YAML and validates it:
// every personality needs a name and a style, and names must be unique.
func NewPoolFromBytes(data []byte) (*Pool, error) {
	var p Pool
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal personas: %w", err)
	}
	if len(p.Personas) == 0 {
		return nil, fmt.Errorf("persona pool is empty")
	}
	seen := make(map[string]struct{}, len(p.Personas))
	for i, pers := range p.Personas {
		if pers.Name == "" {
			return nil, fmt.Errorf("persona %d: missing name", i)
		}
		if pers.Style == "" {
			return nil, fmt.Errorf("persona %q: missing style", pers.Name)
		}
		if _, dup := seen[pers.Name]; dup {
			return nil, fmt.Errorf("persona %q: duplicate name", pers.Name)
		}
		seen[pers.Name] = struct{}{}
	}
	return &p, nil
}

// All returns the personalities in declaration order.
func (p *Pool) All() []core.Personality {
	if p == nil {
		return nil
	}
	return p.Personas
}

// Len reports the pool size.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Personas)
}

// ByName looks a personality up by its unique name.
func (p *Pool) ByName(name string) (core.Personality, error) {
	for _, pers := range p.Personas {
		if pers.Name == name {
			return pers, nil
		}
	}
	return core.Personality{}, fmt.Errorf("persona %q not found", name)
}

// Pick draws one personality uniformly using the provided source. Repeated
// draws may return the same personality; the cast does not need to be
// distinct for the game to be fair.
func (p *Pool) Pick(r *rand.Rand) core.Personality {
	return p.Personas[r.Intn(len(p.Personas))]
}

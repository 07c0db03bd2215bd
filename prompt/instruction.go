package prompt

import "github.com/hupe1980/wolfarena/core"

// Provider supplies dynamic system context at runtime. Implementations can
// derive the text from the player, the game state, the environment, etc.
type Provider interface {
	Instruction(p *core.Player, st *core.GameState) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as
// Providers.
type Func func(*core.Player, *core.GameState) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(p *core.Player, st *core.GameState) (string, error) {
	return f(p, st)
}

// Instruction represents either a static system context string or a dynamic
// provider. This mirrors a union of string | provider in a Go-idiomatic way.
// Static text may contain template variables (see Builder for the data it
// is rendered against).
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(*core.Player, *core.GameState) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
func (i Instruction) Resolve(p *core.Player, st *core.GameState) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(p, st)
	}
	return i.text, nil
}

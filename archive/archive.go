package archive

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/wolfarena/core"
)

// ErrNotFound is returned when no archived game exists for an id.
var ErrNotFound = errors.New("archive: game not found")

// Record is one archived game.
type Record struct {
	ID       string             `json:"id"`
	PlayedAt time.Time          `json:"played_at"`
	Winner   core.Side          `json:"winner"`
	Rounds   int                `json:"rounds"`
	Reveals  []core.RoleReveal  `json:"reveals"`
	Events   []core.PublicEvent `json:"events"`
}

// Store defines the interface for game archive persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores (or overwrites) the record under its id.
	Save(ctx context.Context, rec Record) error
	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	// List returns the archived game ids, newest first.
	List(ctx context.Context) ([]string, error)
}

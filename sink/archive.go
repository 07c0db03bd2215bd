package sink

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/wolfarena/archive"
	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/logging"
)

// ArchiverOptions configures the archiving sink.
type ArchiverOptions struct {
	// GameID identifies the record in the store. Defaults to a fresh UUID.
	GameID string

	// Logger reports save failures. Defaults to a no-op logger.
	Logger logging.Logger
}

// Archiver collects the public log as it unfolds and saves the finished
// game into an archive.Store when the game-over notice arrives. A game
// that never reaches game over is not archived.
type Archiver struct {
	store  archive.Store
	gameID string
	logger logging.Logger

	mu     sync.Mutex
	events []core.PublicEvent
	saved  bool
}

var _ core.EventSink = (*Archiver)(nil)

// NewArchiver creates an archiving sink on top of store.
func NewArchiver(store archive.Store, optFns ...func(o *ArchiverOptions)) *Archiver {
	opts := ArchiverOptions{
		GameID: uuid.NewString(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Archiver{
		store:  store,
		gameID: opts.GameID,
		logger: opts.Logger,
	}
}

// GameID returns the id the finished game is archived under.
func (a *Archiver) GameID() string { return a.gameID }

// Publish implements core.EventSink. Store failures are logged, never
// returned.
func (a *Archiver) Publish(n core.Notice) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n.Event != nil {
		a.events = append(a.events, *n.Event)
	}
	if n.Kind != core.NoticeGameOver || n.Outcome == nil || a.saved {
		return
	}
	a.saved = true

	rec := archive.Record{
		ID:       a.gameID,
		PlayedAt: time.Now().UTC(),
		Winner:   n.Outcome.Winner,
		Rounds:   n.Outcome.Rounds,
		Reveals:  n.Outcome.Reveals,
		Events:   a.events,
	}
	if err := a.store.Save(context.Background(), rec); err != nil {
		a.logger.Error("archive game", "game_id", a.gameID, "error", err.Error())
		return
	}
	a.logger.Info("game archived", "game_id", a.gameID, "events", len(rec.Events))
}

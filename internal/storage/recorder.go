package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
)

// Recorder adapts a Store to the crusher persistence port. Write failures
// are logged, never returned to the game.
type Recorder struct {
	store *Store
	log   *log.Logger
}

// NewRecorder wraps store. A nil logger discards warnings.
func NewRecorder(store *Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, log: logger}
}

// RecordFailedLetter implements crusher.Persistence.
func (r *Recorder) RecordFailedLetter(ch rune) {
	if err := r.store.RecordFailedLetter(ch); err != nil {
		r.log.Warn("failed letter not recorded", "letter", string(ch), "err", err)
	}
}

// RecordError implements crusher.Persistence.
func (r *Recorder) RecordError() {
	if err := r.store.RecordError(); err != nil {
		r.log.Warn("error not recorded", "err", err)
	}
}

// SaveResult stores a finished round and logs failures.
func (r *Recorder) SaveResult(gameID string, res crusher.Result) {
	id, err := r.store.SaveResult(gameID, res)
	if err != nil {
		r.log.Warn("round not saved", "game", gameID, "err", err)
		return
	}
	r.log.Debug("round saved", "id", id, "score", res.Score)
}

var _ crusher.Persistence = (*Recorder)(nil)

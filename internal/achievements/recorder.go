package achievements

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

// Run is one finished run as handed to a Store.
type Run struct {
	Difficulty config.DifficultyTier
	Stats      sim.SessionStats
	Totals     Totals // this run's share of the cumulative totals
}

// Store persists finished runs together with the tracker state. SaveRun adds
// run.Totals to the stored totals and merges the achievement progress of
// snap, so sessions sharing a store never overwrite each other.
type Store interface {
	LoadSnapshot(gameID string) (Snapshot, error)
	SaveRun(gameID string, run Run, snap Snapshot) error
}

// Recorder saves every finished run. It must be placed after the tracker in
// a sim.Multi so the snapshot already includes the run.
type Recorder struct {
	sim.NopEvents
	store   Store
	tracker *Tracker
	gameID  string
	logger  *log.Logger
}

// NewRecorder creates a recorder. A nil logger uses the default logger.
func NewRecorder(store Store, tracker *Tracker, gameID string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, tracker: tracker, gameID: gameID, logger: logger}
}

// OnSessionStarted pulls in what other sessions saved since the last run.
func (r *Recorder) OnSessionStarted(config.DifficultyProfile) {
	if r.store == nil {
		return
	}
	snap, err := r.store.LoadSnapshot(r.gameID)
	if err != nil {
		r.logger.Warn("failed to refresh achievements", "game", r.gameID, "err", err)
		return
	}
	r.tracker.Merge(snap)
}

// OnGameOver saves the run. Failures are logged and never reach the game.
func (r *Recorder) OnGameOver(stats sim.SessionStats, d config.DifficultyProfile) {
	if r.store == nil {
		return
	}
	run := Run{Difficulty: d.Tier, Stats: stats, Totals: r.tracker.RunTotals(stats)}
	if err := r.store.SaveRun(r.gameID, run, r.tracker.Snapshot()); err != nil {
		r.logger.Error("failed to save run", "game", r.gameID, "difficulty", d.Tier, "err", err)
		return
	}
	r.logger.Debug("run saved", "game", r.gameID, "difficulty", d.Tier, "score", stats.Score)
}

// Load restores the tracker from the store. A nil store leaves it empty.
func Load(store Store, gameID string, tracker *Tracker) error {
	if store == nil {
		return nil
	}
	snap, err := store.LoadSnapshot(gameID)
	if err != nil {
		return err
	}
	tracker.Restore(snap)
	return nil
}

// Attach wires a tracker and, when store is non-nil, a recorder into one
// event receiver, tracker first.
func Attach(tracker *Tracker, store Store, gameID string, logger *log.Logger) sim.Events {
	if store == nil {
		return tracker
	}
	return sim.Multi(tracker, NewRecorder(store, tracker, gameID, logger))
}

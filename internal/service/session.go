package service

import (
	"fmt"
	"sync"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/game"
	"github.com/ericogr/battleships/internal/logging"
)

// Session is one live game. All access to the game goes through the
// session lock.
type Session struct {
	ID string

	manager  *Manager
	saveName string

	mu      sync.Mutex
	game    *game.Game
	closed  bool
	watches map[chan struct{}]struct{}
}

// ShotResult describes one fired shot.
type ShotResult struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Hit       bool   `json:"hit"`
	ShotsLeft int    `json:"shots_left"`
	GameOver  bool   `json:"game_over"`
	Winner    string `json:"winner,omitempty"`
}

// SaveName returns the slot this session saves to.
func (s *Session) SaveName() string { return s.saveName }

// Randomize lays out the fleet on the current player's board.
func (s *Session) Randomize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.RandomizeCurrentBoard(); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// SubmitBoard names the current player and passes the turn. The next
// player's fleet is laid out at random so no board is submitted empty. When
// the second board is submitted the battle begins and the game is autosaved.
func (s *Session) SubmitBoard(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.SubmitBoard(name); err != nil {
		return err
	}
	if s.game.IsPlacementPhase() {
		if err := s.game.RandomizeCurrentBoard(); err != nil {
			logging.Warn("failed to lay out next fleet", err, logging.Fields{constants.LogFieldGameID: s.ID})
		}
	} else {
		logging.Info("battle started", logging.Fields{constants.LogFieldGameID: s.ID})
		s.autosaveLocked()
	}
	s.notifyLocked()
	return nil
}

// FireShot fires the current player's shot at (x, y). A shot that ends the
// game clears the save slot; any other shot autosaves.
func (s *Session) FireShot(x, y int) (ShotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.IsOver() {
		return ShotResult{}, ErrGameOver
	}
	over, err := s.game.FireShot(x, y)
	if err != nil {
		return ShotResult{}, err
	}
	p := s.game.CurrentPlayer()
	cell, err := p.EnemyBoard().Cell(x, y)
	if err != nil {
		return ShotResult{}, err
	}
	res := ShotResult{X: x, Y: y, Hit: cell.ContainsShip(), ShotsLeft: p.ShotsLeft(), GameOver: over}
	if over {
		if w, ok := s.game.Winner(); ok {
			res.Winner = w.Name()
		}
		logging.Info("game over", logging.Fields{constants.LogFieldGameID: s.ID, constants.LogFieldWinner: res.Winner})
		s.clearSaveLocked()
	} else {
		s.autosaveLocked()
	}
	s.notifyLocked()
	return res, nil
}

// EndTurn hands the turn to the other player with a full shot budget.
func (s *Session) EndTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.IsPlacementPhase() {
		return fmt.Errorf("%w: submit the board to pass the turn during placement", game.ErrWrongPhase)
	}
	if s.game.IsOver() {
		return ErrGameOver
	}
	s.game.SwitchPlayer()
	s.autosaveLocked()
	s.notifyLocked()
	return nil
}

// Save writes the game to the session's slot.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.IsOver() {
		return ErrGameOver
	}
	return s.manager.SaveGame(s.saveName, s.game)
}

// Snapshot renders the game for viewer 1 or 2. Viewer 0 selects the
// current player.
func (s *Session) Snapshot(viewer int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildSnapshot(s.ID, s.game, viewer)
}

// Serialize returns the save blob of the game as it is now.
func (s *Session) Serialize() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Serialize()
}

// Watch returns a channel that receives a signal after every state change,
// and a func to stop watching. The channel is closed when the session is
// removed.
func (s *Session) Watch() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	if s.watches == nil {
		s.watches = make(map[chan struct{}]struct{})
	}
	s.watches[ch] = struct{}{}
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watches[ch]; ok {
			delete(s.watches, ch)
			close(ch)
		}
	}
}

// notifyLocked never blocks; a watcher that has not drained its last
// signal gets no second one.
func (s *Session) notifyLocked() {
	for ch := range s.watches {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for ch := range s.watches {
		close(ch)
	}
	s.watches = nil
}

// autosaveLocked keeps the move even when the save fails.
func (s *Session) autosaveLocked() {
	if !s.manager.opts.Autosave {
		return
	}
	if err := s.manager.SaveGame(s.saveName, s.game); err != nil {
		logging.Warn("autosave failed", err, logging.Fields{constants.LogFieldGameID: s.ID, constants.LogFieldSlot: s.saveName})
	}
}

func (s *Session) clearSaveLocked() {
	if !s.manager.opts.Autosave {
		return
	}
	if err := s.manager.DeleteSave(s.saveName); err != nil {
		logging.Warn("failed to clear finished game save", err, logging.Fields{constants.LogFieldGameID: s.ID, constants.LogFieldSlot: s.saveName})
	}
}

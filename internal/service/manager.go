package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/game"
	"github.com/ericogr/battleships/internal/logging"
	"github.com/ericogr/battleships/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	ErrInvalidSlot  = errors.New("invalid save slot")
)

// Options configures new sessions.
type Options struct {
	BoardSize int
	// MaxBoardSize caps the size a client may ask for.
	MaxBoardSize      int
	SaveName          string
	Autosave          bool
	PlacementAttempts int
	// NewRand supplies the placement random source of each new game.
	// Nil keeps the engine's time-seeded source.
	NewRand func() *rand.Rand
}

// DefaultMaxBoardSize is the largest board accepted when Options leaves the
// cap unset.
const DefaultMaxBoardSize = 26

// Manager owns the live game sessions and the save slots behind them.
type Manager struct {
	repo storage.Repository
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(repo storage.Repository, opts Options) *Manager {
	if opts.BoardSize == 0 {
		opts.BoardSize = 6
	}
	if opts.MaxBoardSize == 0 {
		opts.MaxBoardSize = DefaultMaxBoardSize
	}
	if opts.SaveName == "" {
		opts.SaveName = "savedgame"
	}
	return &Manager{repo: repo, opts: opts, sessions: make(map[string]*Session)}
}

// DefaultSaveName is the slot sessions save to unless loaded from another.
func (m *Manager) DefaultSaveName() string { return m.opts.SaveName }

// Create starts a new game in the placement phase with the first player's
// fleet already laid out. A size of 0 selects the configured board size.
func (m *Manager) Create(boardSize int) (*Session, error) {
	if boardSize == 0 {
		boardSize = m.opts.BoardSize
	}
	if boardSize > m.opts.MaxBoardSize {
		return nil, fmt.Errorf("%w: got %d, maximum is %d", game.ErrInvalidDimensions, boardSize, m.opts.MaxBoardSize)
	}
	g, err := game.NewGame(boardSize, boardSize)
	if err != nil {
		return nil, err
	}
	m.prepare(g)
	if err := g.RandomizeCurrentBoard(); err != nil {
		return nil, err
	}
	s := m.register(g, m.opts.SaveName)
	logging.Info("game created", logging.Fields{constants.LogFieldGameID: s.ID, "board_size": boardSize})
	return s, nil
}

func (m *Manager) prepare(g *game.Game) {
	if m.opts.NewRand != nil {
		g.SetRand(m.opts.NewRand())
	}
	g.SetPlacementAttempts(m.opts.PlacementAttempts)
}

func (m *Manager) register(g *game.Game, saveName string) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		manager:  m,
		game:     g,
		saveName: saveName,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return s, nil
}

// Remove ends a session. Its save slot is left untouched.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	s.close()
	logging.Info("game removed", logging.Fields{constants.LogFieldGameID: id})
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

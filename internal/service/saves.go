package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/dedupe"
	"github.com/ericogr/battleships/internal/game"
	"github.com/ericogr/battleships/internal/keys"
	"github.com/ericogr/battleships/internal/logging"
)

func (m *Manager) slot(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = m.opts.SaveName
	}
	if keys.SlotKey(name) == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, name)
	}
	return name, nil
}

// SaveGame writes g to the named slot. Only games in battle can be saved,
// since the save format has no placement phase.
func (m *Manager) SaveGame(name string, g *game.Game) error {
	name, err := m.slot(name)
	if err != nil {
		return err
	}
	if g.IsPlacementPhase() {
		return fmt.Errorf("%w: cannot save during placement phase", game.ErrWrongPhase)
	}
	return m.repo.Write(name, []byte(g.Serialize()))
}

// LoadGame reads and decodes the named slot. The returned game is not
// registered as a session.
func (m *Manager) LoadGame(name string) (*game.Game, error) {
	name, err := m.slot(name)
	if err != nil {
		return nil, err
	}
	b, err := m.repo.Read(name)
	if err != nil {
		return nil, err
	}
	return game.Deserialize(string(b))
}

// DeleteSave empties the named slot.
func (m *Manager) DeleteSave(name string) error {
	name, err := m.slot(name)
	if err != nil {
		return err
	}
	return m.repo.Clear(name)
}

func (m *Manager) HasSave(name string) (bool, error) {
	name, err := m.slot(name)
	if err != nil {
		return false, err
	}
	return m.repo.Exists(name)
}

// LoadSaved restores the named slot into a new session. Concurrent loads of
// the same slot share one read and receive the same session.
func (m *Manager) LoadSaved(name string) (*Session, error) {
	name, err := m.slot(name)
	if err != nil {
		return nil, err
	}
	v, err, shared := dedupe.LoadGroup.Do("slot:"+keys.SlotKey(name), func() (interface{}, error) {
		g, err := m.LoadGame(name)
		if err != nil {
			return nil, err
		}
		m.prepare(g)
		s := m.register(g, name)
		logging.Info("game restored from save", logging.Fields{constants.LogFieldGameID: s.ID, constants.LogFieldSlot: name})
		return s, nil
	})
	if err != nil {
		if errors.Is(err, game.ErrMalformedRecord) {
			logging.Error("saved game is corrupt", err, logging.Fields{constants.LogFieldSlot: name})
		}
		return nil, err
	}
	if shared {
		logging.Debug("load shared with a concurrent request", logging.Fields{constants.LogFieldSlot: name})
	}
	return v.(*Session), nil
}

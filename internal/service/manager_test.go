package service

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/ericogr/battleships/internal/game"
	"github.com/ericogr/battleships/internal/keys"
	"github.com/ericogr/battleships/internal/storage"
)

type mockRepo struct {
	mu       sync.Mutex
	slots    map[string][]byte
	reads    int
	writes   int
	failWith error
}

func newMockRepo() *mockRepo {
	return &mockRepo{slots: make(map[string][]byte)}
}

func (m *mockRepo) Exists(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots[keys.SlotKey(name)]) > 0, nil
}

func (m *mockRepo) Read(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	b, ok := m.slots[keys.SlotKey(name)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if len(b) == 0 {
		return nil, storage.ErrNoSavedGame
	}
	return b, nil
}

func (m *mockRepo) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.writes++
	m.slots[keys.SlotKey(name)] = append([]byte(nil), data...)
	return nil
}

func (m *mockRepo) Clear(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[keys.SlotKey(name)]; !ok {
		return storage.ErrNotFound
	}
	m.slots[keys.SlotKey(name)] = nil
	return nil
}

func (m *mockRepo) blob(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.slots[keys.SlotKey(name)])
}

func newTestManager(repo storage.Repository, autosave bool) *Manager {
	seed := int64(0)
	return NewManager(repo, Options{
		BoardSize: 6,
		SaveName:  "savedgame",
		Autosave:  autosave,
		NewRand: func() *rand.Rand {
			seed++
			return rand.New(rand.NewSource(seed))
		},
	})
}

func TestManager_CreateGetRemove(t *testing.T) {
	m := newTestManager(newMockRepo(), true)
	s, err := m.Create(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("expected to get the created session, got %v, %v", got, err)
	}
	snap, _ := s.Snapshot(0)
	if snap.OwnBoard.Width != 6 || snap.Phase != game.PhasePlacement {
		t.Fatalf("unexpected new game %+v", snap)
	}

	if _, err := m.Create(5); !errors.Is(err, game.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := m.Create(DefaultMaxBoardSize + 1); !errors.Is(err, game.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions above the cap, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("rejected games must not be registered, got %d sessions", m.Len())
	}

	if err := m.Remove(s.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if err := m.Remove(s.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", m.Len())
	}
}

func TestManager_SaveAndLoad(t *testing.T) {
	repo := newMockRepo()
	m := newTestManager(repo, false)
	s, _ := m.Create(0)
	startBattle(t, s, "Alice", "Bob")
	if _, err := s.FireShot(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.writes != 0 {
		t.Fatalf("autosave is off, got %d writes", repo.writes)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := m.HasSave(""); !ok {
		t.Fatalf("expected default slot to hold a save")
	}

	loaded, err := m.LoadSaved("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ID == s.ID {
		t.Fatalf("load should start a new session")
	}
	if loaded.Serialize() != s.Serialize() {
		t.Fatalf("loaded game differs from saved game")
	}

	g, err := m.LoadGame("savedgame")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.CurrentPlayer().ShotsLeft() != game.MaxShots-1 {
		t.Fatalf("expected restored shot budget, got %d", g.CurrentPlayer().ShotsLeft())
	}

	if err := m.DeleteSave(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.LoadSaved(""); !errors.Is(err, storage.ErrNoSavedGame) {
		t.Fatalf("expected ErrNoSavedGame, got %v", err)
	}
	if _, err := m.LoadSaved("other"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.LoadSaved("!!!"); err == nil {
		t.Fatalf("expected an error for a symbol-only slot")
	}
	if _, err := m.HasSave("   "); err != nil {
		t.Fatalf("blank slot selects the default, got %v", err)
	}
}

func TestManager_SaveDuringPlacement(t *testing.T) {
	m := newTestManager(newMockRepo(), true)
	s, _ := m.Create(0)
	if err := s.Save(); !errors.Is(err, game.ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestManager_LoadSavedCorrupt(t *testing.T) {
	repo := newMockRepo()
	repo.slots["savedgame"] = []byte("4;4;\nnot a board;\n")
	m := newTestManager(repo, true)
	if _, err := m.LoadSaved(""); !errors.Is(err, game.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("corrupt load must not register a session")
	}
}

func TestManager_LoadSavedConcurrent(t *testing.T) {
	repo := newMockRepo()
	m := newTestManager(repo, false)
	s, _ := m.Create(0)
	startBattle(t, s, "Alice", "Bob")
	_ = s.Save()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := m.LoadSaved("savedgame")
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(loaded.Serialize(), "Alice;") {
				errs <- errors.New("loaded game lost player names")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() > 9 {
		t.Fatalf("expected at most one session per load, got %d", m.Len())
	}
}

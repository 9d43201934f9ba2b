package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/battleships/internal/service"
	"github.com/ericogr/battleships/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	seed := int64(0)
	m := service.NewManager(storage.NewFileRepository(t.TempDir()), service.Options{
		BoardSize: 6,
		SaveName:  "savedgame",
		Autosave:  true,
		NewRand: func() *rand.Rand {
			seed++
			return rand.New(rand.NewSource(seed))
		},
	})
	router := gin.New()
	RegisterRoutes(router, NewGameHandler(m))
	return router, m
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func createBattle(t *testing.T, router http.Handler) string {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/games", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := decode[service.Snapshot](t, w).GameID
	for _, name := range []string{"Alice", "Bob"} {
		if w := do(t, router, http.MethodPost, "/api/games/"+id+"/randomize", ""); w.Code != http.StatusOK {
			t.Fatalf("randomize: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if w := do(t, router, http.MethodPost, "/api/games/"+id+"/submit", `{"name":"`+name+`"}`); w.Code != http.StatusOK {
			t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}
	return id
}

func TestCreateGame(t *testing.T) {
	router, m := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/games", `{"board_size": 8}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	snap := decode[service.Snapshot](t, w)
	if snap.OwnBoard.Width != 8 || snap.Phase != "placement" || snap.CurrentPlayer != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.OwnBoard.ShipCellsAlive != 9 {
		t.Fatalf("expected the first fleet laid out, got %d ship cells", snap.OwnBoard.ShipCellsAlive)
	}

	if w := do(t, router, http.MethodPost, "/api/games", `{"board_size": 26}`); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for the largest board, got %d: %s", w.Code, w.Body.String())
	}

	bodies := []string{`{"board_size": 3}`, `{"board_size": -1}`, `{"board_size": "big"}`, `{"board_size": 27}`, `{"board_size": 1500}`}
	for _, body := range bodies {
		if w := do(t, router, http.MethodPost, "/api/games", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 live games, got %d", m.Len())
	}
}

func TestGetGame(t *testing.T) {
	router, _ := newTestRouter(t)
	if w := do(t, router, http.MethodGet, "/api/games/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	id := createBattle(t, router)

	w := do(t, router, http.MethodGet, "/api/games/"+id+"?player=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	snap := decode[service.Snapshot](t, w)
	if snap.Viewer != 2 || snap.Players[0].Name != "Alice" || snap.Players[1].Name != "Bob" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if w := do(t, router, http.MethodGet, "/api/games/"+id+"?player=3", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitBoard_InvalidName(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/games", "")
	id := decode[service.Snapshot](t, w).GameID
	if w := do(t, router, http.MethodPost, "/api/games/"+id+"/submit", `{"name":"  "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/api/games/"+id+"/shots", `{"x":0,"y":0}`); w.Code != http.StatusConflict {
		t.Fatalf("shooting in placement: expected 409, got %d", w.Code)
	}
}

func TestFireShotAndEndTurn(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)
	shots := "/api/games/" + id + "/shots"

	if w := do(t, router, http.MethodPost, shots, `{"x":0}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing y: expected 400, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPost, shots, `{"x":9,"y":0}`); w.Code != http.StatusBadRequest {
		t.Fatalf("out of bounds: expected 400, got %d", w.Code)
	}

	w := do(t, router, http.MethodPost, shots, `{"x":0,"y":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	res := decode[service.ShotResult](t, w)
	if res.ShotsLeft != 2 || res.GameOver {
		t.Fatalf("unexpected result %+v", res)
	}
	if w := do(t, router, http.MethodPost, shots, `{"x":0,"y":0}`); w.Code != http.StatusConflict {
		t.Fatalf("already hit: expected 409, got %d", w.Code)
	}
	_ = do(t, router, http.MethodPost, shots, `{"x":0,"y":1}`)
	_ = do(t, router, http.MethodPost, shots, `{"x":0,"y":2}`)
	if w := do(t, router, http.MethodPost, shots, `{"x":0,"y":3}`); w.Code != http.StatusConflict {
		t.Fatalf("no shots left: expected 409, got %d", w.Code)
	}

	w = do(t, router, http.MethodPost, "/api/games/"+id+"/end-turn", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	snap := decode[service.Snapshot](t, w)
	if snap.CurrentPlayer != 2 || snap.Players[1].ShotsLeft != 3 {
		t.Fatalf("expected Bob to act with 3 shots, got %+v", snap)
	}
}

func TestSavesLifecycle(t *testing.T) {
	router, m := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/saves/savedgame", "")
	if w.Code != http.StatusOK || decode[map[string]bool](t, w)["exists"] {
		t.Fatalf("expected no save, got %d %s", w.Code, w.Body.String())
	}
	if w := do(t, router, http.MethodPost, "/api/saves/savedgame/load", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	id := createBattle(t, router)
	_ = do(t, router, http.MethodPost, "/api/games/"+id+"/shots", `{"x":1,"y":1}`)
	if w := do(t, router, http.MethodPost, "/api/games/"+id+"/save", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = do(t, router, http.MethodGet, "/api/saves/savedgame", "")
	if !decode[map[string]bool](t, w)["exists"] {
		t.Fatalf("expected a save")
	}

	w = do(t, router, http.MethodPost, "/api/saves/savedgame/load", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	snap := decode[service.Snapshot](t, w)
	if snap.GameID == id || snap.Phase != "battle" || snap.Players[0].ShotsLeft != 2 {
		t.Fatalf("unexpected restored game %+v", snap)
	}
	if m.Len() != 2 {
		t.Fatalf("expected two sessions, got %d", m.Len())
	}

	if w := do(t, router, http.MethodDelete, "/api/saves/savedgame", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/api/saves/savedgame/load", ""); w.Code != http.StatusNotFound {
		t.Fatalf("cleared slot: expected 404, got %d", w.Code)
	}
	if w := do(t, router, http.MethodDelete, "/api/games/"+id, ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := do(t, router, http.MethodDelete, "/api/games/"+id, ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSaveDuringPlacement(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/games", "")
	id := decode[service.Snapshot](t, w).GameID
	if w := do(t, router, http.MethodPost, "/api/games/"+id+"/save", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestVersion(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/api/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decode[map[string]string](t, w)["version"]; got != "dev" {
		t.Fatalf("expected dev version, got %q", got)
	}
}

func TestGameEvents(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	w := do(t, router, http.MethodPost, "/api/games", "")
	id := decode[service.Snapshot](t, w).GameID

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/games/" + id + "/ws?player=1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first service.Snapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if first.GameID != id || first.OwnBoard.ShipCellsAlive != 9 {
		t.Fatalf("unexpected initial snapshot %+v", first)
	}

	resp, err := http.Post(srv.URL+"/api/games/"+id+"/randomize", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("randomize: %v", err)
	}
	resp.Body.Close()

	var next service.Snapshot
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if next.OwnBoard.ShipCellsAlive != 9 {
		t.Fatalf("expected the randomized board, got %d ship cells", next.OwnBoard.ShipCellsAlive)
	}
}

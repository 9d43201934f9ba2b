package service

import (
	"fmt"

	"github.com/ericogr/battleships/internal/game"
)

// CellState is how one cell is shown to a viewer.
type CellState string

const (
	CellWater CellState = "water"
	CellShip  CellState = "ship"
	CellHit   CellState = "hit"
	CellMiss  CellState = "miss"
)

type BoardSnapshot struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Rows are indexed [y][x].
	Rows           [][]CellState `json:"rows"`
	ShipCellsAlive int           `json:"ship_cells_alive"`
}

type PlayerSnapshot struct {
	Name      string `json:"name"`
	ShotsLeft int    `json:"shots_left"`
}

// Snapshot is the game as one player sees it: their own board in full and
// only hits and misses on the enemy board.
type Snapshot struct {
	GameID        string            `json:"game_id"`
	Phase         game.Phase        `json:"phase"`
	Viewer        int               `json:"viewer"`
	CurrentPlayer int               `json:"current_player"`
	Players       [2]PlayerSnapshot `json:"players"`
	OwnBoard      BoardSnapshot     `json:"own_board"`
	EnemyBoard    BoardSnapshot     `json:"enemy_board"`
	Fleet         []int             `json:"fleet"`
	GameOver      bool              `json:"game_over"`
	Winner        string            `json:"winner,omitempty"`
}

func buildSnapshot(id string, g *game.Game, viewer int) (Snapshot, error) {
	current := 1
	if g.CurrentPlayer() == g.Player2() {
		current = 2
	}
	if viewer == 0 {
		viewer = current
	}
	if viewer != 1 && viewer != 2 {
		return Snapshot{}, fmt.Errorf("viewer must be 1 or 2, got %d", viewer)
	}
	players := [2]*game.Player{g.Player1(), g.Player2()}
	me := players[viewer-1]

	snap := Snapshot{
		GameID:        id,
		Phase:         g.Phase(),
		Viewer:        viewer,
		CurrentPlayer: current,
		OwnBoard:      boardSnapshot(me.FriendlyBoard(), true),
		EnemyBoard:    boardSnapshot(me.EnemyBoard(), false),
	}
	for i, p := range players {
		snap.Players[i] = PlayerSnapshot{Name: p.Name(), ShotsLeft: p.ShotsLeft()}
	}
	for _, ship := range g.Battleships() {
		snap.Fleet = append(snap.Fleet, ship.Length())
	}
	if w, ok := g.Winner(); ok {
		snap.GameOver = true
		snap.Winner = w.Name()
	}
	return snap, nil
}

func boardSnapshot(b game.BoardView, showShips bool) BoardSnapshot {
	out := BoardSnapshot{
		Width:          b.Width(),
		Height:         b.Height(),
		Rows:           make([][]CellState, b.Height()),
		ShipCellsAlive: b.ShipCells() - b.HitShipCells(),
	}
	for y := 0; y < b.Height(); y++ {
		out.Rows[y] = make([]CellState, b.Width())
		for x := 0; x < b.Width(); x++ {
			p, _ := b.Cell(x, y)
			switch {
			case p.IsHit() && p.ContainsShip():
				out.Rows[y][x] = CellHit
			case p.IsHit():
				out.Rows[y][x] = CellMiss
			case p.ContainsShip() && showShips:
				out.Rows[y][x] = CellShip
			default:
				out.Rows[y][x] = CellWater
			}
		}
	}
	return out
}

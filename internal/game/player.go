package game

import (
	"fmt"
	"strings"
)

// MaxShots is the shot budget a player gets at the start of each turn.
const MaxShots = 3

// BoardID names one of the two boards held by an Arena.
type BoardID int

const (
	BoardOne BoardID = iota
	BoardTwo
)

// Arena owns both boards of a game. Players hold board ids instead of board
// pointers, so the only way to reach a board is through the arena.
type Arena struct {
	boards [2]*Board
}

// NewArena takes ownership of the two boards.
func NewArena(one, two *Board) *Arena {
	return &Arena{boards: [2]*Board{one, two}}
}

// Board returns the board stored under id, or nil for an unknown id.
func (a *Arena) Board(id BoardID) *Board {
	if id != BoardOne && id != BoardTwo {
		return nil
	}
	return a.boards[id]
}

// Player is one side of a game. Its friendly board is the one its own ships
// sit on; its enemy board is the opponent's friendly board.
type Player struct {
	name      string
	arena     *Arena
	friendly  BoardID
	enemy     BoardID
	shotsLeft int
}

// NewPlayer creates a player with a full shot budget.
func NewPlayer(name string, arena *Arena, friendly, enemy BoardID) (*Player, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if arena == nil || arena.Board(friendly) == nil || arena.Board(enemy) == nil || friendly == enemy {
		return nil, fmt.Errorf("%w: player %q needs two distinct boards", ErrPlayerMismatch, name)
	}
	return &Player{
		name:      name,
		arena:     arena,
		friendly:  friendly,
		enemy:     enemy,
		shotsLeft: MaxShots,
	}, nil
}

// validateName rejects blank names and names containing the save format's
// line or field separators, which could not be restored.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, fieldSeparator+"\r\n") {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidName, name)
	}
	return nil
}

func (p *Player) Name() string             { return p.name }
func (p *Player) ShotsLeft() int           { return p.shotsLeft }
func (p *Player) MaxShots() int            { return MaxShots }
func (p *Player) FriendlyBoardID() BoardID { return p.friendly }
func (p *Player) EnemyBoardID() BoardID    { return p.enemy }

// FriendlyBoard returns the player's own board. Only its owner places ships.
func (p *Player) FriendlyBoard() *Board {
	return p.arena.Board(p.friendly)
}

// EnemyBoard returns a read-only view of the opponent's board.
func (p *Player) EnemyBoard() BoardView {
	return p.arena.Board(p.enemy)
}

func (p *Player) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// FireShot spends one shot on the enemy board. The budget is only reduced
// when the shot lands on a legal, untouched cell.
func (p *Player) FireShot(x, y int) error {
	if p.shotsLeft < 1 {
		return ErrNoShotsLeft
	}
	if err := p.arena.Board(p.enemy).FireShot(x, y); err != nil {
		return err
	}
	p.shotsLeft--
	return nil
}

// FillShots restores the full budget.
func (p *Player) FillShots() {
	p.shotsLeft = MaxShots
}

func (p *Player) SetShots(n int) error {
	if n < 0 || n > MaxShots {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidShotCount, n, MaxShots)
	}
	p.shotsLeft = n
	return nil
}

// Equals compares names and budgets, and requires both players to point at
// the very same boards.
func (p *Player) Equals(o *Player) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return p.name == o.name &&
		p.shotsLeft == o.shotsLeft &&
		p.FriendlyBoard() == o.FriendlyBoard() &&
		p.arena.Board(p.enemy) == o.arena.Board(o.enemy)
}

// ValueEquals is Equals with boards compared cell by cell, so a player
// restored from a save equals the one that was saved.
func (p *Player) ValueEquals(o *Player) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return p.name == o.name &&
		p.shotsLeft == o.shotsLeft &&
		p.FriendlyBoard().Equal(o.FriendlyBoard()) &&
		p.arena.Board(p.enemy).Equal(o.arena.Board(o.enemy))
}

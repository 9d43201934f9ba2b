package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the stage a game is in. A game starts in placement and moves to
// battle once both players have submitted their boards; it never goes back.
type Phase string

const (
	PhasePlacement Phase = "placement"
	PhaseBattle    Phase = "battle"
)

// Default names given to the players of a new game.
const (
	DefaultPlayer1Name = "Player 1"
	DefaultPlayer2Name = "Player 2"
)

// Game ties two players to the two boards of an arena and tracks whose turn
// it is. Game over is not stored: FireShot reports it and IsOver derives it.
type Game struct {
	arena   *Arena
	players [2]*Player
	current int

	width  int
	height int
	phase  Phase
	ships  []Ship

	rng               *rand.Rand
	placementAttempts int
}

// NewGame creates a game in the placement phase with two empty boards and
// player 1 to act.
func NewGame(width, height int) (*Game, error) {
	one, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	two, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	arena := NewArena(one, two)
	p1, err := NewPlayer(DefaultPlayer1Name, arena, BoardOne, BoardTwo)
	if err != nil {
		return nil, err
	}
	p2, err := NewPlayer(DefaultPlayer2Name, arena, BoardTwo, BoardOne)
	if err != nil {
		return nil, err
	}
	return &Game{
		arena:   arena,
		players: [2]*Player{p1, p2},
		current: 0,
		width:   width,
		height:  height,
		phase:   PhasePlacement,
		ships:   DefaultFleet(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// RestoreGame rebuilds a game from existing players. The players must share
// one arena with crossed boards, and current must be one of them. A restored
// game is always in the battle phase.
func RestoreGame(p1, p2, current *Player, width, height int) (*Game, error) {
	if p1 == nil || p2 == nil || p1 == p2 {
		return nil, fmt.Errorf("%w: two distinct players are required", ErrPlayerMismatch)
	}
	if p1.arena != p2.arena || p1.friendly != p2.enemy || p1.enemy != p2.friendly {
		return nil, fmt.Errorf("%w: players must fire at each other's boards", ErrPlayerMismatch)
	}
	if current != p1 && current != p2 {
		return nil, fmt.Errorf("%w: current player is not part of the game", ErrPlayerMismatch)
	}
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	for _, p := range []*Player{p1, p2} {
		b := p.FriendlyBoard()
		if b.width != width || b.height != height {
			return nil, fmt.Errorf("%w: board of %q is %dx%d, game is %dx%d", ErrInvalidDimensions, p.name, b.width, b.height, width, height)
		}
	}
	idx := 0
	if current == p2 {
		idx = 1
	}
	return &Game{
		arena:   p1.arena,
		players: [2]*Player{p1, p2},
		current: idx,
		width:   width,
		height:  height,
		phase:   PhaseBattle,
		ships:   DefaultFleet(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// SetRand replaces the random source used for ship placement.
func (g *Game) SetRand(r *rand.Rand) {
	if r != nil {
		g.rng = r
	}
}

// SetPlacementAttempts caps the tries per ship in RandomizeCurrentBoard.
// Values below 1 select DefaultPlacementAttempts.
func (g *Game) SetPlacementAttempts(n int) {
	g.placementAttempts = n
}

func (g *Game) Player1() *Player       { return g.players[0] }
func (g *Game) Player2() *Player       { return g.players[1] }
func (g *Game) CurrentPlayer() *Player { return g.players[g.current] }
func (g *Game) Opponent() *Player      { return g.players[1-g.current] }
func (g *Game) BoardWidth() int        { return g.width }
func (g *Game) BoardHeight() int       { return g.height }
func (g *Game) Phase() Phase           { return g.phase }
func (g *Game) IsPlacementPhase() bool { return g.phase == PhasePlacement }

// Battleships returns a copy of the fleet each player places.
func (g *Game) Battleships() []Ship {
	return append([]Ship(nil), g.ships...)
}

// RandomizeCurrentBoard lays out the fleet on the current player's board,
// discarding any ships already there.
func (g *Game) RandomizeCurrentBoard() error {
	if g.phase != PhasePlacement {
		return fmt.Errorf("%w: cannot place battleships after placement phase", ErrWrongPhase)
	}
	return g.CurrentPlayer().FriendlyBoard().PlaceAllBattleships(g.ships, g.rng, g.placementAttempts)
}

// SwitchPlayer hands the turn to the other player. In battle the new
// current player starts with a full shot budget.
func (g *Game) SwitchPlayer() {
	g.current = 1 - g.current
	if g.phase == PhaseBattle {
		g.CurrentPlayer().FillShots()
	}
}

// SubmitBoard names the current player and passes the turn. Once the turn
// comes back to player 1 the battle begins.
func (g *Game) SubmitBoard(name string) error {
	if g.phase != PhasePlacement {
		return fmt.Errorf("%w: cannot submit board after placement phase", ErrWrongPhase)
	}
	if err := g.CurrentPlayer().SetName(name); err != nil {
		return err
	}
	g.SwitchPlayer()
	if g.current == 0 {
		g.EndPlacementPhase()
	}
	return nil
}

// FireShot lets the current player shoot at (x, y) and reports whether the
// shot sank the opponent's last ship cell.
func (g *Game) FireShot(x, y int) (bool, error) {
	if g.phase == PhasePlacement {
		return false, fmt.Errorf("%w: cannot shoot during placement phase", ErrWrongPhase)
	}
	p := g.CurrentPlayer()
	if err := p.FireShot(x, y); err != nil {
		return false, err
	}
	return p.EnemyBoard().IsGameOver(), nil
}

// EndPlacementPhase moves the game to battle regardless of whose turn it is.
func (g *Game) EndPlacementPhase() {
	g.phase = PhaseBattle
}

// Winner returns the player whose enemy board has no afloat ship cells left.
// Only a game in battle can have a winner.
func (g *Game) Winner() (*Player, bool) {
	if g.phase != PhaseBattle {
		return nil, false
	}
	for _, p := range []*Player{g.CurrentPlayer(), g.Opponent()} {
		if p.EnemyBoard().IsGameOver() {
			return p, true
		}
	}
	return nil, false
}

// IsOver reports whether the battle has been decided.
func (g *Game) IsOver() bool {
	_, ok := g.Winner()
	return ok
}

// Equal compares players by value, whose turn it is and the phase.
func (g *Game) Equal(o *Game) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil {
		return false
	}
	return g.players[0].ValueEquals(o.players[0]) &&
		g.players[1].ValueEquals(o.players[1]) &&
		g.current == o.current &&
		g.phase == o.phase
}

// Serialize renders the game as a four line save blob.
func (g *Game) Serialize() string {
	return encodeGame(g)
}

// Deserialize rebuilds a game from Serialize output. Any malformed field
// aborts the whole load with ErrMalformedRecord.
func Deserialize(text string) (*Game, error) {
	return decodeGame(text)
}

package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// MinDimension is the smallest allowed board width and height.
const MinDimension = 4

// DefaultPlacementAttempts bounds the random search of PlaceAllBattleships
// per ship. Realistic boards succeed within a handful of tries.
const DefaultPlacementAttempts = 10000

// BoardView is the read-only side of a board. The opponent only ever sees a
// board through this interface; shots go through Player.FireShot.
type BoardView interface {
	Width() int
	Height() int
	Cell(x, y int) (Position, error)
	IsGameOver() bool
	ShipCells() int
	HitShipCells() int
}

// Board is a square grid of positions indexed as squares[x][y].
type Board struct {
	width   int
	height  int
	squares [][]Position
}

// NewBoard allocates an empty width x height board.
func NewBoard(width, height int) (*Board, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	b := &Board{width: width, height: height}
	b.squares = freshSquares(width, height)
	return b, nil
}

func validateDimensions(width, height int) error {
	if width < MinDimension || height < MinDimension {
		return fmt.Errorf("%w: got %dx%d, minimum is %d", ErrInvalidDimensions, width, height, MinDimension)
	}
	if width != height {
		return fmt.Errorf("%w: got %dx%d, board must be square", ErrInvalidDimensions, width, height)
	}
	return nil
}

func freshSquares(width, height int) [][]Position {
	squares := make([][]Position, width)
	for x := 0; x < width; x++ {
		squares[x] = make([]Position, height)
		for y := 0; y < height; y++ {
			squares[x][y] = newPosition(x, y)
		}
	}
	return squares
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) validateCoordinates(x, y int) error {
	if !b.inBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d board", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return nil
}

// Cell returns a copy of the position at (x, y).
func (b *Board) Cell(x, y int) (Position, error) {
	if err := b.validateCoordinates(x, y); err != nil {
		return Position{}, err
	}
	return b.squares[x][y], nil
}

// FireShot registers a hit at (x, y).
func (b *Board) FireShot(x, y int) error {
	if err := b.validateCoordinates(x, y); err != nil {
		return err
	}
	return b.squares[x][y].RegisterHit()
}

// PlaceBattleship puts ship on the run of cells starting at (x, y) along the
// x axis when alongX is set, otherwise along the y axis. The whole run is
// checked before any cell is written, so a failed placement leaves the board
// untouched.
func (b *Board) PlaceBattleship(x, y int, ship Ship, alongX bool) error {
	if ship.length < 1 {
		return fmt.Errorf("ship length must be positive, got %d", ship.length)
	}
	dx, dy := 0, 1
	if alongX {
		dx, dy = 1, 0
	}
	for i := 0; i < ship.length; i++ {
		cx, cy := x+i*dx, y+i*dy
		if err := b.validateCoordinates(cx, cy); err != nil {
			return err
		}
		if b.squares[cx][cy].containsShip {
			return fmt.Errorf("%w at (%d, %d)", ErrOccupied, cx, cy)
		}
	}
	for i := 0; i < ship.length; i++ {
		b.squares[x+i*dx][y+i*dy].containsShip = true
	}
	return nil
}

// PlaceAllBattleships clears the board and drops every ship at a random
// orientation and start, retrying a ship until it fits. Each ship gets at
// most maxAttempts tries. The fleet is laid out on a scratch grid and only
// replaces the board once every ship is placed.
func (b *Board) PlaceAllBattleships(ships []Ship, rng *rand.Rand, maxAttempts int) error {
	if maxAttempts < 1 {
		maxAttempts = DefaultPlacementAttempts
	}
	if fleetCells(ships) > b.width*b.height {
		return fmt.Errorf("%w: fleet needs %d cells, board has %d", ErrPlacementUnsatisfiable, fleetCells(ships), b.width*b.height)
	}
	for _, ship := range ships {
		if ship.length < 1 || ship.length > b.width || ship.length > b.height {
			return fmt.Errorf("%w: ship of length %d on a %dx%d board", ErrPlacementUnsatisfiable, ship.length, b.width, b.height)
		}
	}

	scratch := &Board{width: b.width, height: b.height, squares: freshSquares(b.width, b.height)}
	for _, ship := range ships {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			alongX := rng.Intn(2) == 1
			xBound, yBound := b.width, b.height-ship.length+1
			if alongX {
				xBound, yBound = b.width-ship.length+1, b.height
			}
			if scratch.PlaceBattleship(rng.Intn(xBound), rng.Intn(yBound), ship, alongX) == nil {
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("%w: ship of length %d after %d attempts", ErrPlacementUnsatisfiable, ship.length, maxAttempts)
		}
	}
	b.squares = scratch.squares
	return nil
}

// IsGameOver reports whether every ship cell has been hit. A board without
// ships is over.
func (b *Board) IsGameOver() bool {
	for x := range b.squares {
		for _, p := range b.squares[x] {
			if p.containsShip && !p.isHit {
				return false
			}
		}
	}
	return true
}

// ShipCells counts cells holding a ship.
func (b *Board) ShipCells() int {
	n := 0
	for x := range b.squares {
		for _, p := range b.squares[x] {
			if p.containsShip {
				n++
			}
		}
	}
	return n
}

// HitShipCells counts ship cells that have been hit.
func (b *Board) HitShipCells() int {
	n := 0
	for x := range b.squares {
		for _, p := range b.squares[x] {
			if p.containsShip && p.isHit {
				n++
			}
		}
	}
	return n
}

// EmptyBoard resets every cell, keeping the dimensions.
func (b *Board) EmptyBoard() {
	b.squares = freshSquares(b.width, b.height)
}

// Equal reports whether both boards have the same size and identical cells.
func (b *Board) Equal(o *Board) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil {
		return false
	}
	if b.width != o.width || b.height != o.height {
		return false
	}
	for x := range b.squares {
		for y := range b.squares[x] {
			if !b.squares[x][y].Equal(o.squares[x][y]) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{width: b.width, height: b.height, squares: make([][]Position, b.width)}
	for x := range b.squares {
		c.squares[x] = append([]Position(nil), b.squares[x]...)
	}
	return c
}

// Serialize renders every cell in x-major order, each followed by '-'.
func (b *Board) Serialize() string {
	return encodeBoard(b)
}

func (b *Board) String() string {
	var sb strings.Builder
	for x := range b.squares {
		for _, p := range b.squares[x] {
			sb.WriteString("[" + p.String() + "]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// DeserializeBoard rebuilds a width x height board from Board.Serialize output.
func DeserializeBoard(text string, width, height int) (*Board, error) {
	return decodeBoard(text, width, height)
}

package game

import "fmt"

// Position is a single cell of a board. Coordinates never change after
// construction and both flags only ever go from false to true; a board reset
// replaces the cell instead of clearing it.
type Position struct {
	x            int
	y            int
	isHit        bool
	containsShip bool
}

func newPosition(x, y int) Position {
	return Position{x: x, y: y}
}

func (p Position) X() int             { return p.x }
func (p Position) Y() int             { return p.y }
func (p Position) IsHit() bool        { return p.isHit }
func (p Position) ContainsShip() bool { return p.containsShip }

// RegisterHit marks the cell as shot at.
func (p *Position) RegisterHit() error {
	if p.isHit {
		return fmt.Errorf("%w at (%d, %d)", ErrAlreadyHit, p.x, p.y)
	}
	p.isHit = true
	return nil
}

// RegisterShip marks the cell as holding part of a ship.
func (p *Position) RegisterShip() error {
	if p.containsShip {
		return fmt.Errorf("%w at (%d, %d)", ErrAlreadyShipped, p.x, p.y)
	}
	p.containsShip = true
	return nil
}

// Equal compares all four fields.
func (p Position) Equal(o Position) bool {
	return p == o
}

// Serialize renders the cell as "x:y:isHit:containsShip".
func (p Position) Serialize() string {
	return encodePosition(p)
}

func (p Position) String() string {
	return fmt.Sprintf("pos:(%d, %d) hit:%t ship:%t", p.x, p.y, p.isHit, p.containsShip)
}

// DeserializePosition parses the output of Position.Serialize.
func DeserializePosition(text string) (Position, error) {
	return decodePosition(text)
}

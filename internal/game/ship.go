package game

import "fmt"

// Ship is a straight run of cells. It carries no identity beyond its length.
type Ship struct {
	length int
}

// NewShip returns a ship of the given length. Length must be positive.
func NewShip(length int) (Ship, error) {
	if length < 1 {
		return Ship{}, fmt.Errorf("ship length must be positive, got %d", length)
	}
	return Ship{length: length}, nil
}

func (s Ship) Length() int { return s.length }

// DefaultFleet returns the ships every new game places, longest first.
func DefaultFleet() []Ship {
	return []Ship{{length: 4}, {length: 3}, {length: 2}}
}

// fleetCells is the number of cells a fleet occupies once placed.
func fleetCells(ships []Ship) int {
	n := 0
	for _, s := range ships {
		n += s.length
	}
	return n
}

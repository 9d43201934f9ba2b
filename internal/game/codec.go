package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Separators of the save format, outermost first.
const (
	rowSeparator    = "\n"
	fieldSeparator  = ";"
	recordSeparator = "-"
	subSeparator    = ":"
)

func encodePosition(p Position) string {
	return fmt.Sprintf("%d:%d:%t:%t", p.x, p.y, p.isHit, p.containsShip)
}

func decodePosition(text string) (Position, error) {
	fields := strings.Split(text, subSeparator)
	if len(fields) != 4 {
		return Position{}, fmt.Errorf("%w: position %q needs 4 fields, got %d", ErrMalformedRecord, text, len(fields))
	}
	x, err := parseCoordinate(fields[0])
	if err != nil {
		return Position{}, fmt.Errorf("%w: position %q: %v", ErrMalformedRecord, text, err)
	}
	y, err := parseCoordinate(fields[1])
	if err != nil {
		return Position{}, fmt.Errorf("%w: position %q: %v", ErrMalformedRecord, text, err)
	}
	isHit, err := parseFlag(fields[2])
	if err != nil {
		return Position{}, fmt.Errorf("%w: position %q: %v", ErrMalformedRecord, text, err)
	}
	containsShip, err := parseFlag(fields[3])
	if err != nil {
		return Position{}, fmt.Errorf("%w: position %q: %v", ErrMalformedRecord, text, err)
	}
	return Position{x: x, y: y, isHit: isHit, containsShip: containsShip}, nil
}

func parseCoordinate(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative coordinate %d", n)
	}
	return n, nil
}

// parseFlag only accepts the literals written by the encoder.
func parseFlag(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func encodeBoard(b *Board) string {
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			sb.WriteString(encodePosition(b.squares[x][y]))
			sb.WriteString(recordSeparator)
		}
	}
	return sb.String()
}

// decodeBoard replays every recorded ship and hit onto a fresh board. Each
// cell of the board must be described exactly once.
func decodeBoard(text string, width, height int) (*Board, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	// The record count bounds the grid, so it is checked before anything
	// sized by the declared dimensions is allocated.
	records := strings.Split(strings.TrimSuffix(text, recordSeparator), recordSeparator)
	if width > len(records) || len(records)%width != 0 || len(records)/width != height {
		return nil, fmt.Errorf("%w: %dx%d board, got %d records", ErrMalformedRecord, width, height, len(records))
	}
	b, err := NewBoard(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	seen := make([][]bool, width)
	for x := range seen {
		seen[x] = make([]bool, height)
	}
	for _, rec := range records {
		p, err := decodePosition(rec)
		if err != nil {
			return nil, err
		}
		if !b.inBounds(p.x, p.y) {
			return nil, fmt.Errorf("%w: position (%d, %d) outside %dx%d board", ErrMalformedRecord, p.x, p.y, width, height)
		}
		if seen[p.x][p.y] {
			return nil, fmt.Errorf("%w: position (%d, %d) appears twice", ErrMalformedRecord, p.x, p.y)
		}
		seen[p.x][p.y] = true
		if p.containsShip {
			if err := b.squares[p.x][p.y].RegisterShip(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
			}
		}
		if p.isHit {
			if err := b.FireShot(p.x, p.y); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
			}
		}
	}
	return b, nil
}

func encodeGame(g *Game) string {
	p1, p2 := g.players[0], g.players[1]
	p1Current := g.current == 0

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d;%d;\n", g.width, g.height)
	sb.WriteString(p1.FriendlyBoard().Serialize() + ";\n")
	sb.WriteString(p2.FriendlyBoard().Serialize() + ";\n")
	fmt.Fprintf(&sb, "%s;%d;%t;%s;%d;%t;", p1.name, p1.shotsLeft, p1Current, p2.name, p2.shotsLeft, !p1Current)
	return sb.String()
}

// splitFields splits a line on ';' and requires the trailing separator the
// encoder always writes.
func splitFields(line string, want int) ([]string, error) {
	if !strings.HasSuffix(line, fieldSeparator) {
		return nil, fmt.Errorf("%w: line %q is missing its trailing %q", ErrMalformedRecord, line, fieldSeparator)
	}
	fields := strings.Split(strings.TrimSuffix(line, fieldSeparator), fieldSeparator)
	if len(fields) != want {
		return nil, fmt.Errorf("%w: line %q needs %d fields, got %d", ErrMalformedRecord, line, want, len(fields))
	}
	return fields, nil
}

func decodeGame(text string) (*Game, error) {
	lines := strings.Split(strings.TrimRight(text, "\r\n"), rowSeparator)
	if len(lines) != 4 {
		return nil, fmt.Errorf("%w: expected 4 lines, got %d", ErrMalformedRecord, len(lines))
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	dims, err := splitFields(lines[0], 2)
	if err != nil {
		return nil, err
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("%w: width: %v", ErrMalformedRecord, err)
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("%w: height: %v", ErrMalformedRecord, err)
	}

	var boards [2]*Board
	for i := range boards {
		f, err := splitFields(lines[1+i], 1)
		if err != nil {
			return nil, err
		}
		if boards[i], err = decodeBoard(f[0], width, height); err != nil {
			return nil, err
		}
	}

	f, err := splitFields(lines[3], 6)
	if err != nil {
		return nil, err
	}
	arena := NewArena(boards[0], boards[1])
	p1, err := restorePlayer(f[0], f[1], arena, BoardOne, BoardTwo)
	if err != nil {
		return nil, err
	}
	p2, err := restorePlayer(f[3], f[4], arena, BoardTwo, BoardOne)
	if err != nil {
		return nil, err
	}
	p1Current, err := parseFlag(f[2])
	if err != nil {
		return nil, fmt.Errorf("%w: player 1 current flag: %v", ErrMalformedRecord, err)
	}
	p2Current, err := parseFlag(f[5])
	if err != nil {
		return nil, fmt.Errorf("%w: player 2 current flag: %v", ErrMalformedRecord, err)
	}
	if p1Current == p2Current {
		return nil, fmt.Errorf("%w: exactly one player must be current", ErrMalformedRecord)
	}

	current := p1
	if p2Current {
		current = p2
	}
	g, err := RestoreGame(p1, p2, current, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return g, nil
}

func restorePlayer(name, shots string, arena *Arena, friendly, enemy BoardID) (*Player, error) {
	p, err := NewPlayer(name, arena, friendly, enemy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	n, err := strconv.Atoi(shots)
	if err != nil {
		return nil, fmt.Errorf("%w: shots for %q: %v", ErrMalformedRecord, name, err)
	}
	if err := p.SetShots(n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return p, nil
}

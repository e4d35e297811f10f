// Package codec implements the text "Hexcells v1" level format (C4):
// parsing, emission with centering/padding and UI-mask avoidance, and the
// optional JSON interchange dialect.
package codec

import (
	"fmt"
	"strings"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

// HeaderLine is the literal line that begins every level block.
const HeaderLine = "Hexcells level v1"

const frameSize = 33

// Document is a decoded (or to-be-encoded) level: metadata plus a grid.
type Document struct {
	Title       string
	Author      string
	Information string
	Grid        *hexgrid.Grid
}

// EncodeOptions controls Encode's behavior, mirroring spec (s)6's
// save_text(scene, {padding, display}).
type EncodeOptions struct {
	// Padding enables the centering/UI-avoidance translation search. When
	// false, content is anchored at its own top-left corner.
	Padding bool
	// Display emits the current revealed/covered display state. When
	// false, every cell is emitted covered regardless of its current
	// display, producing the pristine level text (used as the
	// savestate lookup key).
	Display bool
}

// coordForRowCol maps a 0-based (row, col) position in the 33x33 frame to
// the internal hex coordinate system: x = col, y = 2*row + (col%2).
func coordForRowCol(row, col int) hexcoord.Coordinate {
	return hexcoord.Coordinate{X: col, Y: 2*row + mod2(col)}
}

// rowColForCoord is the inverse of coordForRowCol. It always succeeds for
// coordinates reachable from the grid's neighbor-offset arithmetic,
// because every such coordinate satisfies x == y (mod 2).
func rowColForCoord(c hexcoord.Coordinate) (row, col int, ok bool) {
	col = c.X
	diff := c.Y - mod2(col)
	if mod2(diff) != 0 {
		return 0, 0, false
	}
	return diff / 2, col, true
}

func mod2(n int) int {
	m := n % 2
	if m < 0 {
		m += 2
	}
	return m
}

// Decode parses the first level block in s. Use DecodeAll for files that
// may contain multiple concatenated levels.
func Decode(s string) (Document, error) {
	docs, err := DecodeAll(s)
	if err != nil {
		return Document{}, err
	}
	if len(docs) == 0 {
		return Document{}, fmt.Errorf("%w: no level blocks found", hexerr.ErrParse)
	}
	return docs[0], nil
}

// DecodeAll splits s into blocks wherever a line equals the literal header
// and parses each block independently. Titles of the blocks become tab
// labels for the consumer (spec (s)4.3).
func DecodeAll(s string) ([]Document, error) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	var starts []int
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == HeaderLine {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: missing %q header", hexerr.ErrParse, HeaderLine)
	}

	var docs []Document
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		block := lines[start:end]
		// Trim trailing blank lines that may follow the last block.
		for len(block) > 0 && strings.TrimSpace(block[len(block)-1]) == "" {
			block = block[:len(block)-1]
		}
		doc, err := parseBlock(block)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseBlock(lines []string) (Document, error) {
	if len(lines) < 1+3+frameSize {
		return Document{}, fmt.Errorf("%w: level block too short (%d lines)", hexerr.ErrParse, len(lines))
	}
	if strings.TrimRight(lines[0], " \t") != HeaderLine {
		return Document{}, fmt.Errorf("%w: expected header %q", hexerr.ErrParse, HeaderLine)
	}
	title := lines[1]
	author := lines[2]

	infoCount := len(lines) - 3 - frameSize
	if infoCount < 1 {
		return Document{}, fmt.Errorf("%w: level block missing %d grid rows", hexerr.ErrParse, frameSize)
	}
	infoLines := lines[3 : 3+infoCount]
	information := joinInformation(infoLines)

	gridLines := lines[3+infoCount:]
	grid := hexgrid.New()
	for row, line := range gridLines {
		if len([]rune(line)) < frameSize*2 {
			return Document{}, fmt.Errorf("%w: row %d too short", hexerr.ErrParse, row)
		}
		runes := []rune(line)
		for col := 0; col < frameSize; col++ {
			tok := string(runes[col*2 : col*2+2])
			if tok == ".." {
				continue
			}
			coord := coordForRowCol(row, col)
			if err := placeToken(grid, coord, tok); err != nil {
				return Document{}, fmt.Errorf("%w: row %d col %d: %v", hexerr.ErrParse, row, col, err)
			}
		}
	}
	hexentity.FullUpdate(grid)

	return Document{Title: title, Author: author, Information: information, Grid: grid}, nil
}

// joinInformation recovers the information field from the metadata lines
// between author and the grid. Per spec (s)9, readers must accept both a
// single-line shape and a blank-line-prefixed two-line shape.
func joinInformation(lines []string) string {
	if len(lines) == 1 {
		return lines[0]
	}
	if lines[0] == "" {
		return strings.Join(lines[1:], "\n")
	}
	return strings.Join(lines, "\n")
}

func placeToken(grid *hexgrid.Grid, coord hexcoord.Coordinate, tok string) error {
	t0, t1 := tok[0], tok[1]
	switch t0 {
	case 'o', 'O', 'x', 'X':
		kind := hexentity.KindEmpty
		if t0 == 'x' || t0 == 'X' {
			kind = hexentity.KindFull
		}
		revealed := t0 == 'O' || t0 == 'X'
		cell := hexentity.NewCell(coord, grid, kind)
		cell.SetRevealed(revealed)
		switch t1 {
		case '.':
			cell.SetShowInfo(0)
		case '+':
			cell.SetShowInfo(1)
		case 'c', 'n':
			cell.SetShowInfo(2)
		default:
			return fmt.Errorf("invalid hint token %q", string(t1))
		}
		grid.Place(cell, coord)
	case '\\', '|', '/':
		angle := angleForToken(t0)
		col := hexentity.NewColumn(coord, grid, angle)
		switch t1 {
		case '.':
			col.SetShowInfo(false)
		case '+', 'c', 'n':
			col.SetShowInfo(true)
		default:
			return fmt.Errorf("invalid hint token %q", string(t1))
		}
		grid.Place(col, coord)
	default:
		return fmt.Errorf("invalid cell token %q", string(t0))
	}
	return nil
}

func angleForToken(t byte) hexcoord.ColumnAngle {
	switch t {
	case '\\':
		return hexcoord.AngleNegative60
	case '/':
		return hexcoord.AnglePositive60
	default:
		return hexcoord.AngleZero
	}
}

func tokenForAngle(a hexcoord.ColumnAngle) byte {
	switch a {
	case hexcoord.AngleNegative60:
		return '\\'
	case hexcoord.AnglePositive60:
		return '/'
	default:
		return '|'
	}
}

// placement is a grid entity's position already converted to the frame's
// row/col space, before any centering translation is applied.
type placement struct {
	entity   hexgrid.Entity
	row, col int
}

// Encode renders doc as Hexcells v1 text. It returns a warning describing
// any frame-fit or UI-mask overlap problem (hexerr.NoWarning on a clean
// fit) alongside the rendered text.
func Encode(doc Document, opts EncodeOptions) (string, hexerr.Warning, error) {
	if doc.Grid == nil {
		return "", hexerr.NoWarning, fmt.Errorf("%w: document has no grid", hexerr.ErrParse)
	}

	var placements []placement
	minRow, minCol, maxRow, maxCol := 0, 0, 0, 0
	first := true
	for _, e := range doc.Grid.IterAll() {
		row, col, ok := rowColForCoord(e.Coord())
		if !ok {
			return "", hexerr.NoWarning, fmt.Errorf("%w: coordinate (%d,%d) violates the parity invariant", hexerr.ErrParse, e.Coord().X, e.Coord().Y)
		}
		placements = append(placements, placement{entity: e, row: row, col: col})
		if first {
			minRow, maxRow, minCol, maxCol = row, row, col, col
			first = false
			continue
		}
		minRow = min(minRow, row)
		maxRow = max(maxRow, row)
		minCol = min(minCol, col)
		maxCol = max(maxCol, col)
	}

	height := maxRow - minRow + 1

	dr, dc, warning := chooseTranslation(placements, minRow, maxRow, minCol, maxCol, opts.Padding)

	rows := make([][]string, frameSize)
	for r := range rows {
		tokens := make([]string, frameSize)
		for c := range tokens {
			tokens[c] = ".."
		}
		rows[r] = tokens
	}

	dropped := 0
	for _, p := range placements {
		r := p.row + dr
		c := p.col + dc
		if r < 0 || r >= frameSize || c < 0 || c >= frameSize {
			dropped++
			continue
		}
		rows[r][c] = tokenFor(p.entity, opts.Display)
	}
	if dropped > 0 && warning == hexerr.NoWarning {
		if height > frameSize {
			warning = hexerr.TooTall
		} else {
			warning = hexerr.TooWide
		}
	}

	var b strings.Builder
	b.WriteString(HeaderLine)
	b.WriteByte('\n')
	b.WriteString(doc.Title)
	b.WriteByte('\n')
	b.WriteString(doc.Author)
	b.WriteByte('\n')
	b.WriteString(doc.Information)
	b.WriteByte('\n')
	for _, tokens := range rows {
		b.WriteString(strings.Join(tokens, ""))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n"), warning, nil
}

func tokenFor(e hexgrid.Entity, display bool) string {
	switch v := e.(type) {
	case *hexentity.Cell:
		revealed := display && v.Revealed()
		var t0 byte
		switch {
		case v.Kind() == hexentity.KindFull && revealed:
			t0 = 'X'
		case v.Kind() == hexentity.KindFull && !revealed:
			t0 = 'x'
		case v.Kind() == hexentity.KindEmpty && revealed:
			t0 = 'O'
		default:
			t0 = 'o'
		}
		var t1 byte
		switch v.ShowInfo() {
		case 0:
			t1 = '.'
		case 1:
			t1 = '+'
		default:
			if v.TogetherHint() == hexentity.TogetherTrue {
				t1 = 'c'
			} else {
				t1 = 'n'
			}
		}
		return string([]byte{t0, t1})
	case *hexentity.Column:
		t0 := tokenForAngle(v.Angle())
		var t1 byte
		if !v.ShowInfo() {
			t1 = '.'
		} else if v.TogetherHint() == hexentity.TogetherTrue {
			t1 = 'c'
		} else {
			t1 = 'n'
		}
		return string([]byte{t0, t1})
	default:
		return ".."
	}
}

// chooseTranslation finds the (dr, dc) shift applied to every placement's
// (row, col) before it is written into the 33x33 frame. With padding
// disabled, content is anchored at its own top-left corner. With padding
// enabled, it searches every shift that keeps the content fully in frame
// and picks the one that touches the fewest Reserved cells, breaking
// ties by distance from the frame center (spec (s)4.3 "best-effort
// centering, avoiding the reserved mask where possible").
func chooseTranslation(placements []placement, minRow, maxRow, minCol, maxCol int, padding bool) (int, int, hexerr.Warning) {
	height := maxRow - minRow + 1
	width := maxCol - minCol + 1

	if !padding || height > frameSize || width > frameSize {
		dr, dc := -minRow, -minCol
		warning := hexerr.NoWarning
		if height > frameSize {
			warning = hexerr.TooTall
		} else if width > frameSize {
			warning = hexerr.TooWide
		} else if overlapsMask(placements, dr, dc) {
			warning = hexerr.OverlapsUI
		}
		return dr, dc, warning
	}

	bestDr, bestDc := -minRow, -minCol
	bestHard, bestSoft := -1, -1
	bestDist := -1
	for dr := -minRow; dr <= frameSize-1-maxRow; dr++ {
		for dc := -minCol; dc <= frameSize-1-maxCol; dc++ {
			hard, soft := 0, 0
			for _, p := range placements {
				h, s := Reserved(p.row+dr, p.col+dc)
				if h {
					hard++
				}
				if s {
					soft++
				}
			}
			centerRow := float64(minRow+dr) + float64(height-1)/2
			centerCol := float64(minCol+dc) + float64(width-1)/2
			dRow := centerRow - float64(frameSize-1)/2
			dCol := centerCol - float64(frameSize-1)/2
			dist := int(dRow*dRow + dCol*dCol)
			if bestHard == -1 || hard < bestHard ||
				(hard == bestHard && soft < bestSoft) ||
				(hard == bestHard && soft == bestSoft && dist < bestDist) {
				bestHard, bestSoft, bestDist = hard, soft, dist
				bestDr, bestDc = dr, dc
			}
		}
	}
	warning := hexerr.NoWarning
	if bestHard > 0 || bestSoft > 0 {
		warning = hexerr.OverlapsUI
	}
	return bestDr, bestDc, warning
}

func overlapsMask(placements []placement, dr, dc int) bool {
	for _, p := range placements {
		h, s := Reserved(p.row+dr, p.col+dc)
		if h || s {
			return true
		}
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

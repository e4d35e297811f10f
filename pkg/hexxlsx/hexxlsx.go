// Package hexxlsx exports a grid's current display state as a color-coded
// .xlsx workbook: one sheet cell per hex position, a fill color for
// Full/Empty/Unknown, and a cell comment carrying the entity's hint text.
// It is an additional render target alongside pkg/codec's text encoder.
//
// The write path (stream writer, WriteToBuffer) follows
// mcpxcel's write_range/apply_formula tools, the only cell-writing code in
// that pack example; mcpxcel never styles or comments a cell, so the fill
// and comment calls here follow excelize's own documented API directly.
package hexxlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

const sheetName = "grid"

// colors keyed by a cell's Display (hexentity.DisplayUnknown/Full/Empty) and
// by presence of a column marker.
const (
	colorUnknown = "FFF2CC" // pale yellow: covered, truth not yet shown
	colorFull    = "1F4E78" // dark blue: revealed full
	colorEmpty   = "D9D9D9" // light gray: revealed empty
	colorColumn  = "E2EFDA" // pale green: column marker
)

// rowColForCoord maps a grid coordinate to a 0-based (row, col) sheet
// position, mirroring pkg/codec's text-frame mapping (x = col, y = 2*row +
// col%2) so the workbook reads left-to-right, top-to-bottom the same way
// the text renderer does.
func rowColForCoord(c hexcoord.Coordinate) (row, col int) {
	col = c.X
	return (c.Y - mod2(col)) / 2, col
}

func mod2(n int) int {
	if n%2 < 0 {
		return n%2 + 2
	}
	return n % 2
}

// Export renders every placed entity in g into a new workbook and returns
// its bytes. Columns use their own fill regardless of orientation; cells
// are filled by their current Display.
func Export(g *hexgrid.Grid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := buildStyles(f)
	if err != nil {
		return nil, err
	}

	entities := g.IterAll()
	if len(entities) == 0 {
		return bufferOf(f)
	}

	type placement struct {
		entity   hexgrid.Entity
		row, col int
	}
	placements := make([]placement, 0, len(entities))
	minRow, maxRow, minCol, maxCol := 0, 0, 0, 0
	for i, e := range entities {
		row, col := rowColForCoord(e.Coord())
		placements = append(placements, placement{entity: e, row: row, col: col})
		if i == 0 {
			minRow, maxRow, minCol, maxCol = row, row, col, col
			continue
		}
		minRow, maxRow = min(minRow, row), max(maxRow, row)
		minCol, maxCol = min(minCol, col), max(maxCol, col)
	}

	byRow := make(map[int][]placement, maxRow-minRow+1)
	for _, p := range placements {
		byRow[p.row] = append(byRow[p.row], p)
	}

	// excelize does not support mixing the stream writer with the regular
	// per-cell API (SetCellValue/SetCellStyle) on the same sheet, so every
	// value and style is written through SetRow's per-cell excelize.Cell
	// here; only cell comments, an unrelated XML part the stream writer
	// never touches, are added afterward through the regular API.
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("new stream writer: %w", err)
	}
	width := maxCol - minCol + 1
	for row := minRow; row <= maxRow; row++ {
		rowVals := make([]interface{}, width)
		for _, p := range byRow[row] {
			value, style, err := cellContent(p.entity, styles)
			if err != nil {
				return nil, err
			}
			rowVals[p.col-minCol] = excelize.Cell{StyleID: style, Value: value}
		}
		cell, err := excelize.CoordinatesToCellName(1, row-minRow+1)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, rowVals); err != nil {
			return nil, fmt.Errorf("set row %d: %w", row, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	for _, p := range placements {
		cellName, err := excelize.CoordinatesToCellName(p.col-minCol+1, p.row-minRow+1)
		if err != nil {
			return nil, err
		}
		if err := setHintComment(f, cellName, hintFor(p.entity)); err != nil {
			return nil, err
		}
	}

	return bufferOf(f)
}

type styleSet struct {
	unknown, full, empty, column int
}

func buildStyles(f *excelize.File) (styleSet, error) {
	mk := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border:    []excelize.Border{{Type: "top", Color: "808080", Style: 1}, {Type: "bottom", Color: "808080", Style: 1}, {Type: "left", Color: "808080", Style: 1}, {Type: "right", Color: "808080", Style: 1}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
	}
	var s styleSet
	var err error
	if s.unknown, err = mk(colorUnknown); err != nil {
		return s, err
	}
	if s.full, err = mk(colorFull); err != nil {
		return s, err
	}
	if s.empty, err = mk(colorEmpty); err != nil {
		return s, err
	}
	if s.column, err = mk(colorColumn); err != nil {
		return s, err
	}
	return s, nil
}

// cellContent returns the display value and style ID for a single entity,
// for use as a stream-writer excelize.Cell.
func cellContent(e hexgrid.Entity, styles styleSet) (value string, style int, err error) {
	switch ent := e.(type) {
	case *hexentity.Cell:
		switch ent.Display() {
		case hexentity.DisplayFull:
			return "#", styles.full, nil
		case hexentity.DisplayEmpty:
			return ".", styles.empty, nil
		default:
			return "?", styles.unknown, nil
		}
	case *hexentity.Column:
		return angleGlyph(ent.Angle()), styles.column, nil
	default:
		return "", 0, nil
	}
}

// hintFor returns the comment text for an entity, or "" if it has none.
func hintFor(e hexgrid.Entity) string {
	switch ent := e.(type) {
	case *hexentity.Cell:
		return cellHint(ent)
	case *hexentity.Column:
		return columnHint(ent)
	default:
		return ""
	}
}

func cellHint(c *hexentity.Cell) string {
	value, shown := c.Value()
	if !shown {
		return ""
	}
	switch c.TogetherHint() {
	case hexentity.TogetherTrue:
		return fmt.Sprintf("%d (together)", value)
	case hexentity.TogetherFalse:
		return fmt.Sprintf("%d (apart)", value)
	default:
		return fmt.Sprintf("%d", value)
	}
}

func columnHint(col *hexentity.Column) string {
	if !col.ShowInfo() {
		return ""
	}
	switch col.TogetherHint() {
	case hexentity.TogetherTrue:
		return fmt.Sprintf("%d (together)", col.Value())
	case hexentity.TogetherFalse:
		return fmt.Sprintf("%d (apart)", col.Value())
	default:
		return fmt.Sprintf("%d", col.Value())
	}
}

func angleGlyph(a hexcoord.ColumnAngle) string {
	switch a {
	case hexcoord.AngleNegative60:
		return "\\"
	case hexcoord.AnglePositive60:
		return "/"
	default:
		return "|"
	}
}

func setHintComment(f *excelize.File, cellName, text string) error {
	if text == "" {
		return nil
	}
	return f.AddComment(sheetName, excelize.Comment{
		Cell:   cellName,
		Author: "hexsolve",
		Paragraph: []excelize.RichTextRun{
			{Text: text},
		},
	})
}

func bufferOf(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write buffer: %w", err)
	}
	return buf.Bytes(), nil
}

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

// dialectValidate is shared across calls; validator.Validate is safe for
// concurrent use once struct-tag caches are warm.
var dialectValidate = validator.New()

// CellDialect is one entry of the JSON interchange dialect's "cells" array
// (spec (s)6), grounded on original_source/common.py's save()/load() pair
// but using the dialect's own literal key names.
type CellDialect struct {
	ID        string `json:"id" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=empty full"`
	Neighbors int    `json:"neighbors" validate:"min=0,max=6"`
	Members   int    `json:"members" validate:"min=0"`
	Revealed  bool   `json:"revealed"`
	Value     *int   `json:"value,omitempty"`
	Together  string `json:"together,omitempty" validate:"omitempty,oneof=true false"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// ColumnDialect is one entry of the dialect's "columns" array.
type ColumnDialect struct {
	Members  int    `json:"members" validate:"min=0"`
	Value    int    `json:"value" validate:"min=0"`
	Together string `json:"together,omitempty" validate:"omitempty,oneof=true false"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Angle    string `json:"angle" validate:"required,oneof=-60 0 60"`
}

// Dialect is the JSON interchange document described by spec (s)6.
type Dialect struct {
	Version     int             `json:"version" validate:"required"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Information string          `json:"information"`
	Cells       []CellDialect   `json:"cells" validate:"dive"`
	Columns     []ColumnDialect `json:"columns" validate:"dive"`
}

const dialectVersion = 1

// EncodeDialect converts doc into the JSON interchange dialect.
func EncodeDialect(doc Document) (Dialect, error) {
	if doc.Grid == nil {
		return Dialect{}, fmt.Errorf("%w: document has no grid", hexerr.ErrParse)
	}
	d := Dialect{
		Version:     dialectVersion,
		Title:       doc.Title,
		Author:      doc.Author,
		Information: doc.Information,
	}
	for _, e := range doc.Grid.IterCells() {
		c := e.(*hexentity.Cell)
		kind := "empty"
		if c.Kind() == hexentity.KindFull {
			kind = "full"
		}
		cd := CellDialect{
			ID:        fmt.Sprintf("%d,%d", c.Coord().X, c.Coord().Y),
			Kind:      kind,
			Neighbors: len(c.Coord().Neighbors()),
			Members:   len(c.Members()),
			Revealed:  c.Revealed(),
			X:         c.Coord().X,
			Y:         c.Coord().Y,
		}
		if v, ok := c.Value(); ok {
			cd.Value = &v
		}
		switch c.TogetherHint() {
		case hexentity.TogetherTrue:
			cd.Together = "true"
		case hexentity.TogetherFalse:
			cd.Together = "false"
		}
		d.Cells = append(d.Cells, cd)
	}
	for _, e := range doc.Grid.IterColumns() {
		col := e.(*hexentity.Column)
		cd := ColumnDialect{
			Members: len(col.Members()),
			Value:   col.Value(),
			X:       col.Coord().X,
			Y:       col.Coord().Y,
			Angle:   angleLabel(col.Angle()),
		}
		switch col.TogetherHint() {
		case hexentity.TogetherTrue:
			cd.Together = "true"
		case hexentity.TogetherFalse:
			cd.Together = "false"
		}
		d.Columns = append(d.Columns, cd)
	}
	return d, nil
}

// DecodeDialect validates and converts a JSON interchange document back
// into a Document with a populated Grid.
func DecodeDialect(raw []byte) (Document, error) {
	var d Dialect
	if err := json.Unmarshal(raw, &d); err != nil {
		return Document{}, fmt.Errorf("%w: %v", hexerr.ErrParse, err)
	}
	if err := dialectValidate.Struct(d); err != nil {
		return Document{}, fmt.Errorf("%w: %v", hexerr.ErrParse, err)
	}

	grid := hexgrid.New()
	for _, cd := range d.Cells {
		kind := hexentity.KindEmpty
		if cd.Kind == "full" {
			kind = hexentity.KindFull
		}
		coord := hexcoord.Coordinate{X: cd.X, Y: cd.Y}
		cell := hexentity.NewCell(coord, grid, kind)
		cell.SetRevealed(cd.Revealed)
		level := 0
		if cd.Value != nil {
			level = 1
		}
		if cd.Together != "" {
			level = 2
		}
		cell.SetShowInfo(level)
		grid.Place(cell, coord)
	}
	for _, cd := range d.Columns {
		angle, err := angleForLabel(cd.Angle)
		if err != nil {
			return Document{}, err
		}
		coord := hexcoord.Coordinate{X: cd.X, Y: cd.Y}
		col := hexentity.NewColumn(coord, grid, angle)
		col.SetShowInfo(cd.Together != "")
		grid.Place(col, coord)
	}
	hexentity.FullUpdate(grid)

	return Document{Title: d.Title, Author: d.Author, Information: d.Information, Grid: grid}, nil
}

func angleLabel(a hexcoord.ColumnAngle) string {
	switch a {
	case hexcoord.AngleNegative60:
		return "-60"
	case hexcoord.AnglePositive60:
		return "60"
	default:
		return "0"
	}
}

func angleForLabel(s string) (hexcoord.ColumnAngle, error) {
	switch s {
	case "-60":
		return hexcoord.AngleNegative60, nil
	case "0":
		return hexcoord.AngleZero, nil
	case "60":
		return hexcoord.AnglePositive60, nil
	default:
		return hexcoord.AngleZero, fmt.Errorf("%w: invalid column angle %q", hexerr.ErrParse, s)
	}
}

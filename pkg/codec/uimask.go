package codec

// UIMask is the 33-row textual template marking cells reserved for a host
// UI (spec (s)6). Each rune in a row corresponds to one column of the
// 33x33 frame: ' ' is hard-reserved (the padded emitter avoids it before
// anything else), '*' is soft-reserved (avoided next), and any other
// character means the cell is free. Content that still lands on either
// kind is emitted anyway, with an OverlapsUI warning.
//
// original_source/ does not carry the literal mask bytes (the kept
// snapshot of util.py predates the UI chrome constants), so this mask is
// a reasonable placeholder reserving the corners Hexcells-style players
// use for a title/score readout (top rows) and a control strip (bottom
// row), synthesized to satisfy spec (s)6's "the exact mask is embedded in
// the implementation" requirement. See DESIGN.md for this decision.
var UIMask = buildUIMask()

const maskSize = 33

func buildUIMask() [maskSize]string {
	rows := [maskSize]string{}
	blank := ""
	for i := 0; i < maskSize; i++ {
		blank += "."
	}
	for i := range rows {
		rows[i] = blank
	}
	// Hard-reserved title/score readout in the top-left corner.
	rows[0] = "   " + blank[3:]
	rows[1] = "   " + blank[3:]
	// Soft-reserved author/info readout in the top-right corner.
	topRight := []rune(rows[0])
	for i := maskSize - 6; i < maskSize; i++ {
		topRight[i] = '*'
	}
	rows[0] = string(topRight)
	// Hard-reserved control strip along the bottom row.
	rows[maskSize-1] = blank[:maskSize-8] + "        "
	return rows
}

// Reserved reports whether the mask forbids (hard) or discourages (soft)
// content at the given 0-based row/col of the 33x33 frame.
func Reserved(row, col int) (hard bool, soft bool) {
	if row < 0 || row >= maskSize || col < 0 || col >= maskSize {
		return false, false
	}
	r := []rune(UIMask[row])
	if col >= len(r) {
		return false, false
	}
	switch r[col] {
	case ' ':
		return true, false
	case '*':
		return false, true
	default:
		return false, false
	}
}

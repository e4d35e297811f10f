package hexscene

import (
	"strings"
	"testing"

	"github.com/hexsolve/hexsolve/pkg/codec"
	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
)

const frameSize = 33

func blankLevelText(title, author, info string) string {
	var b strings.Builder
	b.WriteString(codec.HeaderLine + "\n")
	b.WriteString(title + "\n")
	b.WriteString(author + "\n")
	b.WriteString(info + "\n")
	row := strings.Repeat("..", frameSize)
	for i := 0; i < frameSize; i++ {
		b.WriteString(row + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func newBlankScene(t *testing.T) *Scene {
	t.Helper()
	sc, err := LoadText(blankLevelText("T", "A", "I"))
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	return sc
}

func TestLoadTextParsesMetadata(t *testing.T) {
	sc := newBlankScene(t)
	if sc.title != "T" || sc.author != "A" || sc.information != "I" {
		t.Fatalf("metadata mismatch: %+v", sc)
	}
}

func TestRevealCorrectMatchesTruth(t *testing.T) {
	sc := newBlankScene(t)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := sc.editor.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}

	outcome, err := sc.Reveal(coord, hexentity.KindFull)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if outcome != Correct {
		t.Fatalf("expected Correct, got %v", outcome)
	}
	if sc.Mistakes() != 0 {
		t.Fatalf("expected 0 mistakes, got %d", sc.Mistakes())
	}
}

func TestRevealWrongExpectationIsMistake(t *testing.T) {
	sc := newBlankScene(t)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := sc.editor.PlaceCell(coord, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}

	outcome, err := sc.Reveal(coord, hexentity.KindFull)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if outcome != Mistake {
		t.Fatalf("expected Mistake, got %v", outcome)
	}
	if sc.Mistakes() != 1 {
		t.Fatalf("expected 1 mistake, got %d", sc.Mistakes())
	}
}

func TestRevealAlreadyRevealedIsNotAMistake(t *testing.T) {
	sc := newBlankScene(t)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := sc.editor.PlaceCell(coord, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	if _, err := sc.Reveal(coord, hexentity.KindFull); err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if sc.Mistakes() != 1 {
		t.Fatalf("expected 1 mistake after first reveal, got %d", sc.Mistakes())
	}

	outcome, err := sc.Reveal(coord, hexentity.KindEmpty)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if outcome != Correct {
		t.Fatalf("expected re-reveal to be Correct, got %v", outcome)
	}
	if sc.Mistakes() != 1 {
		t.Fatalf("expected re-reveal not to add a mistake, got %d", sc.Mistakes())
	}
}

func TestRemainingCountsOnlyUnrevealedFull(t *testing.T) {
	sc := newBlankScene(t)
	full := hexcoord.Coordinate{X: 0, Y: 0}
	empty := hexcoord.Coordinate{X: 2, Y: 0}
	if err := sc.editor.PlaceCell(full, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell full: %v", err)
	}
	if err := sc.editor.PlaceCell(empty, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell empty: %v", err)
	}
	if sc.Remaining() != 1 {
		t.Fatalf("expected 1 remaining, got %d", sc.Remaining())
	}
	if _, err := sc.Reveal(full, hexentity.KindFull); err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if sc.Remaining() != 0 {
		t.Fatalf("expected 0 remaining after reveal, got %d", sc.Remaining())
	}
}

func TestSolveCompleteRequiresAllRevealed(t *testing.T) {
	sc := newBlankScene(t)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := sc.editor.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	if sc.SolveComplete() {
		t.Fatalf("expected incomplete before reveal")
	}
	if _, err := sc.Reveal(coord, hexentity.KindFull); err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if !sc.SolveComplete() {
		t.Fatalf("expected complete after revealing the only cell")
	}
}

func TestSolveStepRevealsForcedEmptyNeighbor(t *testing.T) {
	sc := newBlankScene(t)
	center := hexcoord.Coordinate{X: 2, Y: 2}
	full := hexcoord.Coordinate{X: 2, Y: 0}
	unknown := hexcoord.Coordinate{X: 3, Y: 1}

	if err := sc.editor.PlaceCell(center, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell center: %v", err)
	}
	if err := sc.editor.PlaceCell(full, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell full: %v", err)
	}
	if err := sc.editor.PlaceCell(unknown, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell unknown: %v", err)
	}
	ce, _ := sc.Grid().At(center)
	c := ce.(*hexentity.Cell)
	c.SetShowInfo(1)
	if _, err := sc.Reveal(center, hexentity.KindEmpty); err != nil {
		t.Fatalf("Reveal center: %v", err)
	}
	if _, err := sc.Reveal(full, hexentity.KindFull); err != nil {
		t.Fatalf("Reveal full: %v", err)
	}

	kinds := sc.SolveStep()
	if len(kinds) == 0 {
		t.Fatalf("expected solve_step to force the remaining unknown neighbor")
	}
	ue, _ := sc.Grid().At(unknown)
	uc := ue.(*hexentity.Cell)
	if !uc.Revealed() {
		t.Fatalf("expected the forced neighbor to be revealed")
	}
}

func TestUndoRedoRoundTripThroughScene(t *testing.T) {
	sc := newBlankScene(t)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := sc.editor.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	if !sc.Undo() {
		t.Fatalf("expected Undo to succeed")
	}
	if _, ok := sc.Grid().At(coord); ok {
		t.Fatalf("expected cell removed after undo")
	}
	if !sc.Redo() {
		t.Fatalf("expected Redo to succeed")
	}
	if _, ok := sc.Grid().At(coord); !ok {
		t.Fatalf("expected cell restored after redo")
	}
}

func TestSaveTextRoundTrips(t *testing.T) {
	sc := newBlankScene(t)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := sc.editor.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	text, _, err := sc.SaveText(codec.EncodeOptions{Padding: false, Display: false})
	if err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	if !strings.HasPrefix(text, codec.HeaderLine) {
		t.Fatalf("expected encoded text to start with the header line")
	}
	again, err := LoadText(text)
	if err != nil {
		t.Fatalf("LoadText(SaveText()): %v", err)
	}
	if again.Grid().Len() != 1 {
		t.Fatalf("round trip: got %d entities, want 1", again.Grid().Len())
	}
}

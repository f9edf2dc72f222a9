// Package eval scores a position in centipawns from White's perspective,
// combining raw material with Bill Jordan's piece-square tables and a
// material-driven opening/endgame phase blend.
package eval

import "chesskernel/internal/board"

// Score is a centipawn evaluation. Positive favors White, negative Black.
type Score int32

// pieceValues holds the base material value of each piece type in
// centipawns, indexed by board.PieceType. Kings have no material value.
var pieceValues = [6]Score{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// openingWeights maps a 0-7 game phase to the percentage weight given to
// the opening (middlegame) table; the endgame table gets the remainder.
var openingWeights = [8]Score{0, 14, 28, 42, 58, 72, 86, 100}

// pawnUnits returns a piece's value in whole pawns, truncating, matching
// the "material in pawns" convention the phase calculation is defined in.
func pawnUnits(pt board.PieceType) int {
	return int(pieceValues[pt]) / 100
}

// Phase estimates how far into the game a position is from the non-king
// material remaining on each side, scaled 0 (bare endgame) to 7 (full
// opening material). It is driven by the side with more material, so the
// phase drops only once both sides' material is depleted.
func Phase(pos *board.Position) int {
	material := func(c board.Color) int {
		total := 0
		for pt := board.Knight; pt <= board.Queen; pt++ {
			total += pos.PieceSquares(pt, c).PopCount() * pawnUnits(pt)
		}
		total += pos.PieceSquares(board.Pawn, c).PopCount() * pawnUnits(board.Pawn)
		return total
	}

	maxMaterial := material(board.White)
	if m := material(board.Black); m > maxMaterial {
		maxMaterial = m
	}

	phase := (maxMaterial - 10) / 2
	if phase < 0 {
		phase = 0
	}
	if phase > 7 {
		phase = 7
	}
	return phase
}

// Table is a fully resolved set of per-piece, per-square scores for one
// position: material plus piece-square bonus, phase-blended for kings,
// mirrored and negated for Black.
type Table struct {
	perPiece [12]squareTable
}

func baseTable(pt board.PieceType) squareTable {
	switch pt {
	case board.Pawn:
		return pawnTable
	case board.Knight:
		return knightTable
	case board.Bishop:
		return bishopTable
	case board.Rook:
		return rookTable
	case board.Queen:
		return queenTable
	default:
		return squareTable{}
	}
}

// NewTable builds the evaluation table for pos, interpolating the king's
// square table between middlegame and endgame according to the position's
// current phase.
func NewTable(pos *board.Position) *Table {
	phase := Phase(pos)
	t := &Table{}

	for pt := board.Pawn; pt <= board.Queen; pt++ {
		withValue := addScalar(baseTable(pt), pieceValues[pt])
		t.perPiece[board.NewPiece(pt, board.White)] = withValue
		t.perPiece[board.NewPiece(pt, board.Black)] = flip(withValue)
	}

	king := interpolate(kingMiddlegameTable, kingEndgameTable, phase)
	t.perPiece[board.NewPiece(board.King, board.White)] = king
	t.perPiece[board.NewPiece(board.King, board.Black)] = flip(king)

	return t
}

// Score returns the table's value for piece sitting on sq.
func (t *Table) Score(piece board.Piece, sq board.Square) Score {
	return t.perPiece[piece][sq]
}

// Evaluate scores pos from White's perspective: material plus
// piece-square bonuses, with the king's table blended for game phase.
func Evaluate(pos *board.Position) Score {
	table := NewTable(pos)
	var score Score
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		score += table.Score(piece, sq)
	}
	return score
}

// EvaluateForSideToMove scores pos from the perspective of the side to
// move: positive means the side to move is better.
func EvaluateForSideToMove(pos *board.Position) Score {
	score := Evaluate(pos)
	if pos.Turn.ActiveColor == board.Black {
		return -score
	}
	return score
}

// EvaluateMaterial scores pos using raw material only, ignoring
// piece-square bonuses and phase. Useful as a cheap baseline and in tests
// that want to isolate material from positional tuning.
func EvaluateMaterial(pos *board.Position) Score {
	var score Score
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		white := pos.PieceSquares(pt, board.White).PopCount()
		black := pos.PieceSquares(pt, board.Black).PopCount()
		score += Score(white-black) * pieceValues[pt]
	}
	return score
}

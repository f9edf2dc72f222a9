// Package perft counts leaf nodes of the legal move tree rooted at a
// position, the standard cross-check for move generation and make/unmake
// correctness against known node counts.
package perft

import (
	"fmt"
	"io"

	"chesskernel/internal/board"
)

// Count walks the legal move tree to depth and returns the number of
// leaf nodes. Count(pos, 0) is 1, by definition: the empty move sequence.
func Count(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.Make(m)
		nodes += Count(pos, depth-1)
		pos.Unmake(m, undo)
	}
	return nodes
}

// Divide counts leaf nodes per root move, writing one "<move>: <count>"
// line per root move followed by a final "Nodes searched: <total>" line,
// and returns the total. This is the standard divide output chess engine
// authors use to bisect a move generator against a reference engine.
func Divide(pos *board.Position, depth int, w io.Writer) (int64, error) {
	if depth == 0 {
		total := int64(1)
		if _, err := fmt.Fprintf(w, "Nodes searched: %d\n", total); err != nil {
			return 0, err
		}
		return total, nil
	}

	moves := pos.GenerateLegalMoves()
	var total int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.Make(m)
		nodes := Count(pos, depth-1)
		pos.Unmake(m, undo)

		total += nodes
		if _, err := fmt.Fprintf(w, "%s: %d\n", m.String(), nodes); err != nil {
			return 0, err
		}
	}

	if _, err := fmt.Fprintf(w, "Nodes searched: %d\n", total); err != nil {
		return 0, err
	}
	return total, nil
}

// RootDivide is one line of a Divide call: the root move played and the
// leaf count reachable below it. DivideMoves exposes the same computation
// as Divide without requiring a Writer, for callers (such as a parallel
// driver) that want to format or reduce the results themselves.
type RootDivide struct {
	Move  board.Move
	Nodes int64
}

// DivideMoves returns every root move at pos together with the leaf count
// reachable below it at depth-1, without performing any formatting or I/O.
func DivideMoves(pos *board.Position, depth int) []RootDivide {
	moves := pos.GenerateLegalMoves()
	results := make([]RootDivide, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		results[i].Move = moves.Get(i)
	}
	if depth == 0 {
		return results
	}
	for i := range results {
		undo := pos.Make(results[i].Move)
		results[i].Nodes = Count(pos, depth-1)
		pos.Unmake(results[i].Move, undo)
	}
	return results
}

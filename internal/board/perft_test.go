package board

import "testing"

// perft counts the leaf nodes reachable at depth, walking the legal move
// tree with Make/Unmake. This is the standard way to cross-check move
// generation and make/unmake against known leaf counts.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.Make(m)
		nodes += perft(p, depth-1)
		p.Unmake(m, undo)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete exercises castling, promotions, and pins together.
// FEN: r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipeteDeep is the expensive depth-4 Kiwipete case; it covers
// deep castling/promotion interactions the shallower cases miss.
func TestPerftKiwipeteDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if got := perft(pos, 4); got != 4085603 {
		t.Errorf("perft(4) = %d, want 4085603", got)
	}
}

// TestPerftPosition5 exercises castling rights lost by rook capture.
// FEN: r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1
func TestPerftPosition5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pos, err := ParseFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if got := perft(pos, 4); got != 422333 {
		t.Errorf("perft(4) = %d, want 422333", got)
	}
}

// TestPerftPosition6 exercises promotion-via-capture while in check.
// FEN: rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8
func TestPerftPosition6(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pos, err := ParseFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if got := perft(pos, 4); got != 2103487 {
		t.Errorf("perft(4) = %d, want 2103487", got)
	}
}

// TestPerftPosition3 exercises en passant edge cases.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftPosition3Deep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if got := perft(pos, 5); got != 674624 {
		t.Errorf("perft(5) = %d, want 674624", got)
	}
}

// TestPerftEnPassantPin covers the classic horizontal-pin edge case: a
// black pawn that could capture en passant, but doing so would remove
// both the capturing pawn and the captured pawn from the fourth rank at
// once, exposing the black king to the white rook behind them.
// FEN: 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsEnPassant() {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKnightCannotAnswerCheck checks that when the queen on e6 checks
// the black king on e8, the knight on f6 (which can neither capture the
// queen nor block on e7) has zero legal moves, while the king itself still
// has two escape squares (d8 and f8).
// FEN: 4k3/8/4Qn2/3K4/8/8/8/8 b - - 0 1
func TestPerftKnightCannotAnswerCheck(t *testing.T) {
	pos, err := ParseFEN("4k3/8/4Qn2/3K4/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() != 2 {
		t.Errorf("expected 2 legal moves, got %d", moves.Len())
	}
	captures := pos.GenerateCaptures()
	if captures.Len() != 0 {
		t.Errorf("expected 0 legal captures, got %d", captures.Len())
	}
}

// TestMakeUnmakeRoundTrip checks that Make followed by Unmake restores
// every field Position exposes, across a handful of representative
// positions and every legal move from each.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		before := *pos
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.Make(m)
			pos.Unmake(m, undo)

			if pos.Board != before.Board {
				t.Fatalf("%s: Make/Unmake %v changed the board", fen, m)
			}
			if pos.Turn != before.Turn {
				t.Fatalf("%s: Make/Unmake %v changed turn state: got %+v want %+v", fen, m, pos.Turn, before.Turn)
			}
			if pos.Hash() != before.Hash() {
				t.Fatalf("%s: Make/Unmake %v left the hash at %x, want %x", fen, m, pos.Hash(), before.Hash())
			}
		}
	}
}

// TestHashMatchesFromScratch checks that the incrementally maintained
// hash always agrees with a from-scratch recomputation, including after a
// sequence of Make/Unmake calls.
func TestHashMatchesFromScratch(t *testing.T) {
	pos := NewPosition()
	if pos.Hash() != computeHash(pos) {
		t.Fatalf("start position hash %x != from-scratch %x", pos.Hash(), computeHash(pos))
	}

	moves := pos.GenerateLegalMoves()
	var undos []UndoRecord
	var played []Move
	for i := 0; i < moves.Len() && i < 8; i++ {
		m := moves.Get(i)
		undo := pos.Make(m)
		if pos.Hash() != computeHash(pos) {
			t.Fatalf("after making %v: hash %x != from-scratch %x", m, pos.Hash(), computeHash(pos))
		}
		undos = append(undos, undo)
		played = append(played, m)
	}
	for i := len(played) - 1; i >= 0; i-- {
		pos.Unmake(played[i], undos[i])
	}
	if pos.Hash() != computeHash(pos) {
		t.Fatalf("after unwinding: hash %x != from-scratch %x", pos.Hash(), computeHash(pos))
	}
}

package board

import "testing"

func TestCheckmate(t *testing.T) {
	// Back-rank mate: White Ra8+Ka1, Black Kh8 boxed in by its own pawns.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected black king to be in check")
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() != 0 {
		t.Errorf("expected no legal moves, got %d", moves.Len())
	}

	if !pos.IsCheckmate() {
		t.Error("expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate position misreported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can capture the checking rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected black king to be in check")
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		t.Fatal("expected at least one legal move (Kxg8)")
	}

	if pos.IsCheckmate() {
		t.Error("expected NOT checkmate but got true")
	}
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: Black king a8 has no moves and is not in check.
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if pos.InCheck() {
		t.Fatal("expected black king not to be in check")
	}

	if !pos.IsStalemate() {
		t.Error("expected stalemate but got false")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate position misreported as checkmate")
	}
	if !pos.IsDraw() {
		t.Error("stalemate should be reported as a draw")
	}
}

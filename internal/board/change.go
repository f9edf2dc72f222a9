package board

// FromTo is a single piece displacement: one piece moving from one square
// to another.
type FromTo struct {
	Piece Piece
	From  Square
	To    Square
}

// BoardChange decomposes any move into at most two independent piece
// displacements, mirroring the two-displacement compound move used by the
// move-preparation layer this package's make/unmake is grounded on:
// everything is a primary displacement (First) plus, for castling only, a
// second displacement of the rook. A promotion is not a separate
// displacement; it is the same displacement arriving as a different piece,
// recorded in PromotedTo.
type BoardChange struct {
	First      FromTo
	Second     FromTo
	HasSecond  bool
	PromotedTo PieceType // NoPieceType unless First's piece promotes on arrival
	Captured   Piece     // NoPiece if the move captures nothing
	CapturedAt Square    // where Captured sat; differs from First.To only for en passant
}

// prepareChange reads pos (without mutating it) and decomposes m into its
// BoardChange. Make and the legality filter's occupancy-delta test both
// build on this same decomposition so they can never disagree about what a
// move actually displaces.
func prepareChange(pos *Position, m Move) BoardChange {
	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)

	change := BoardChange{
		First:      FromTo{Piece: piece, From: from, To: to},
		CapturedAt: to,
		PromotedTo: NoPieceType,
	}

	if m.IsEnPassant() {
		if piece.Color() == White {
			change.CapturedAt = to - 8
		} else {
			change.CapturedAt = to + 8
		}
	}
	change.Captured = pos.PieceAt(change.CapturedAt)

	if m.IsPromotion() {
		change.PromotedTo = m.Promotion()
	}

	if m.IsCastling() {
		desc := Castling(piece.Color(), to > from)
		change.HasSecond = true
		change.Second = FromTo{Piece: NewPiece(Rook, piece.Color()), From: desc.RookFrom, To: desc.RookTo}
	}

	return change
}

// arrivingPiece returns the piece that ends up on First.To once any
// promotion has been applied.
func (c BoardChange) arrivingPiece() Piece {
	if c.PromotedTo == NoPieceType {
		return c.First.Piece
	}
	return NewPiece(c.PromotedTo, c.First.Piece.Color())
}

// UndoRecord holds everything Unmake needs to restore a position after
// Make: the displacement that was applied, and the turn state and hash
// that preceded it (cheaper to snapshot wholesale than to re-derive).
type UndoRecord struct {
	Change BoardChange
	Turn   Turn
	Hash   uint64
}

// Make applies m to p, updating the board, every derived cache, and the
// Zobrist hash incrementally, and returns the record Unmake needs to
// reverse it. Make never validates legality; callers are expected to only
// make moves produced by the generator or accepted by IsLegal.
func (p *Position) Make(m Move) UndoRecord {
	change := prepareChange(p, m)
	undo := UndoRecord{Change: change, Turn: p.Turn, Hash: p.hash}

	p.toggleCastling(p.Turn.Castling)
	p.toggleEnPassant(p.Turn.EnPassant)

	p.applyChange(change)

	us := p.Turn.ActiveColor

	nextCastling := castlingRightsAfter(p.Turn.Castling, change)
	p.Turn.Castling = nextCastling
	p.toggleCastling(nextCastling)

	p.Turn.EnPassant = NoSquare
	if change.First.Piece.Type() == Pawn && abs(int(change.First.To)-int(change.First.From)) == 16 {
		p.Turn.EnPassant = Square((int(change.First.From) + int(change.First.To)) / 2)
	}
	p.toggleEnPassant(p.Turn.EnPassant)

	if change.First.Piece.Type() == Pawn || change.Captured != NoPiece {
		p.Turn.HalfmoveClock = 0
	} else {
		p.Turn.HalfmoveClock++
	}
	if us == Black {
		p.Turn.FullmoveNumber++
	}

	p.Turn.ActiveColor = us.Other()
	p.toggleSideToMove()

	return undo
}

// Unmake reverses the move m using the record Make returned for it. It
// must be called with the same move and the record from the matching
// Make call, in LIFO order relative to any other Make calls in between.
func (p *Position) Unmake(m Move, undo UndoRecord) {
	p.revertChange(undo.Change)
	p.Turn = undo.Turn
	p.hash = undo.Hash
}

// applyChange mutates the board and caches to reflect change, toggling the
// hash for every piece placement and removal along the way.
func (p *Position) applyChange(change BoardChange) {
	if change.Captured != NoPiece {
		p.toggleInPiece(change.Captured.Color(), change.Captured.Type(), change.CapturedAt)
		p.removePiece(change.CapturedAt)
	}

	movingColor := change.First.Piece.Color()
	p.toggleInPiece(movingColor, change.First.Piece.Type(), change.First.From)
	p.removePiece(change.First.From)

	arriving := change.arrivingPiece()
	p.setPiece(arriving, change.First.To)
	p.toggleInPiece(movingColor, arriving.Type(), change.First.To)

	if change.HasSecond {
		rc := change.Second.Piece.Color()
		p.toggleInPiece(rc, change.Second.Piece.Type(), change.Second.From)
		p.removePiece(change.Second.From)
		p.setPiece(change.Second.Piece, change.Second.To)
		p.toggleInPiece(rc, change.Second.Piece.Type(), change.Second.To)
	}
}

// revertChange undoes applyChange's board and cache mutations. The hash is
// restored wholesale by the caller from the UndoRecord, so this does not
// toggle it.
func (p *Position) revertChange(change BoardChange) {
	p.removePiece(change.First.To)
	p.setPiece(change.First.Piece, change.First.From)

	if change.HasSecond {
		p.removePiece(change.Second.To)
		p.setPiece(change.Second.Piece, change.Second.From)
	}

	if change.Captured != NoPiece {
		p.setPiece(change.Captured, change.CapturedAt)
	}
}

// castlingRightsAfter returns cr with any right invalidated by a king,
// rook, or rook-capture touching one of the four corner/home squares.
func castlingRightsAfter(cr CastlingRights, change BoardChange) CastlingRights {
	touch := func(sq Square) {
		switch sq {
		case E1:
			cr = cr.Intersect((WhiteKingSide | WhiteQueenSide).Complement())
		case A1:
			cr = cr.Intersect(WhiteQueenSide.Complement())
		case H1:
			cr = cr.Intersect(WhiteKingSide.Complement())
		case E8:
			cr = cr.Intersect((BlackKingSide | BlackQueenSide).Complement())
		case A8:
			cr = cr.Intersect(BlackQueenSide.Complement())
		case H8:
			cr = cr.Intersect(BlackKingSide.Complement())
		}
	}
	touch(change.First.From)
	touch(change.First.To)
	if change.Captured != NoPiece {
		touch(change.CapturedAt)
	}
	return cr
}

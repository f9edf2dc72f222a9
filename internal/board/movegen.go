package board

// GenerateLegalMoves generates every legal move for the side to move.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates every pseudo-legal move: it obeys
// piece movement rules and occupancy but may leave the mover's own king
// in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates every legal capturing move, including en
// passant and capturing promotions.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptureMoves(ml)
	return p.filterLegalMoves(ml)
}

func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.Turn.ActiveColor
	occupied := p.all
	enemies := p.occupied[us.Other()]
	ours := p.occupied[us]

	p.generatePawnMoves(ml, us, enemies, occupied)

	knights := p.pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		targets := KnightAttacks(from) &^ ours
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}

	bishops := p.pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		targets := BishopAttacks(from, occupied) &^ ours
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}

	rooks := p.pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		targets := RookAttacks(from, occupied) &^ ours
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}

	queens := p.pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		targets := QueenAttacks(from, occupied) &^ ours
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}

	from := p.KingSquare(us)
	targets := KingAttacks(from) &^ ours
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}

	p.generateCastlingMoves(ml)
}

func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied SquareSet) {
	pawns := p.pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR SquareSet
	var promotionRank SquareSet
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromo := push1 &^ promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir), to))
	}

	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewMove(Square(int(to)-2*pushDir), to))
	}

	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir+1), to))
	}
	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir-1), to))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir), to)
	}
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir+1), to)
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir-1), to)
	}

	if p.Turn.EnPassant != NoSquare {
		epBB := SquareBB(p.Turn.EnPassant)
		var epAttackers SquareSet
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			ml.Add(NewEnPassant(epAttackers.PopLSB(), p.Turn.EnPassant))
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateCastlingMoves adds any castling move whose travel squares are
// empty and whose king-transit squares (including origin and destination)
// are unattacked, per the descriptors precomputed in movetable.go.
func (p *Position) generateCastlingMoves(ml *MoveList) {
	us := p.Turn.ActiveColor
	them := us.Other()

	for _, kingSide := range [2]bool{true, false} {
		if !p.Turn.Castling.CanCastle(us, kingSide) {
			continue
		}
		desc := Castling(us, kingSide)
		if p.all&desc.EmptyPath != Empty {
			continue
		}
		safe := true
		desc.KingSafePath.Iterate(func(sq Square) bool {
			if isAttacked(p, sq, them) {
				safe = false
				return false
			}
			return true
		})
		if safe {
			ml.Add(NewCastling(desc.KingFrom, desc.KingTo))
		}
	}
}

// generateCaptureMoves generates every pseudo-legal capturing move
// (including capturing promotions and en passant) but not quiet moves.
func (p *Position) generateCaptureMoves(ml *MoveList) {
	us := p.Turn.ActiveColor
	enemies := p.occupied[us.Other()]
	occupied := p.all

	pawns := p.pieces[us][Pawn]
	var attackL, attackR SquareSet
	var promotionRank SquareSet
	var pushDir int

	if us == White {
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir+1), to))
	}
	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir-1), to))
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir+1), to)
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir-1), to)
	}

	empty := ^occupied
	var push1 SquareSet
	if us == White {
		push1 = pawns.North() & empty & Rank8
	} else {
		push1 = pawns.South() & empty & Rank1
	}
	for push1 != 0 {
		to := push1.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir), to)
	}

	if p.Turn.EnPassant != NoSquare {
		epBB := SquareBB(p.Turn.EnPassant)
		var epAttackers SquareSet
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			ml.Add(NewEnPassant(epAttackers.PopLSB(), p.Turn.EnPassant))
		}
	}

	knights := p.pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		targets := KnightAttacks(from) & enemies
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}
	bishops := p.pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		targets := BishopAttacks(from, occupied) & enemies
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}
	rooks := p.pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		targets := RookAttacks(from, occupied) & enemies
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}
	queens := p.pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		targets := QueenAttacks(from, occupied) & enemies
		for targets != 0 {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}
	from := p.KingSquare(us)
	targets := KingAttacks(from) & enemies
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// isAttacked reports whether sq is attacked by any piece of color by,
// given the position's actual occupancy. It is occupancy-aware (sliding
// attacks respect blockers) and is the single source of truth consulted
// by castling generation, Validate, and InCheck.
func isAttacked(p *Position, sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}
	occ := p.all
	if PawnAttacks(sq, by.Other())&p.pieces[by][Pawn] != 0 {
		return true
	}
	if KnightAttacks(sq)&p.pieces[by][Knight] != 0 {
		return true
	}
	if KingAttacks(sq)&p.pieces[by][King] != 0 {
		return true
	}
	bishopsQueens := p.pieces[by][Bishop] | p.pieces[by][Queen]
	if BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.pieces[by][Rook] | p.pieces[by][Queen]
	if RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func (p *Position) InCheck() bool {
	us := p.Turn.ActiveColor
	return isAttacked(p, p.KingSquare(us), us.Other())
}

// IsLegal reports whether m leaves the mover's own king safe. It never
// makes and unmakes the move: it decomposes m into its BoardChange (the
// same decomposition Make uses) and tests the resulting occupancy-delta
// directly against the opponent's piece sets, so a move is evaluated
// exactly once regardless of how deep a search walks it.
//
// Castling's own king-safety requirement (the king may not pass through
// or land on an attacked square) is already enforced by
// generateCastlingMoves via each CastlingDescriptor's KingSafePath, so a
// castling move that reached this point is legal by construction.
func (p *Position) IsLegal(m Move) bool {
	if m.IsCastling() {
		return true
	}

	us := p.Turn.ActiveColor
	them := us.Other()
	change := prepareChange(p, m)

	kingSq := p.KingSquare(us)
	if change.First.Piece.Type() == King {
		kingSq = change.First.To
	}

	occDelta := p.all
	occDelta &^= SquareBB(change.First.From)
	occDelta |= SquareBB(change.First.To)
	if change.HasSecond {
		occDelta &^= SquareBB(change.Second.From)
		occDelta |= SquareBB(change.Second.To)
	}

	enemyPawns := p.pieces[them][Pawn]
	enemyKnights := p.pieces[them][Knight]
	enemyKing := p.pieces[them][King]
	enemyBishopsQueens := p.pieces[them][Bishop] | p.pieces[them][Queen]
	enemyRooksQueens := p.pieces[them][Rook] | p.pieces[them][Queen]

	if change.Captured != NoPiece {
		if change.CapturedAt != change.First.To {
			occDelta &^= SquareBB(change.CapturedAt)
		}
		capBB := SquareBB(change.CapturedAt)
		switch change.Captured.Type() {
		case Pawn:
			enemyPawns &^= capBB
		case Knight:
			enemyKnights &^= capBB
		case Bishop:
			enemyBishopsQueens &^= capBB
		case Rook:
			enemyRooksQueens &^= capBB
		case Queen:
			enemyBishopsQueens &^= capBB
			enemyRooksQueens &^= capBB
		}
	}

	if PawnAttacks(kingSq, us)&enemyPawns != 0 {
		return false
	}
	if KnightAttacks(kingSq)&enemyKnights != 0 {
		return false
	}
	if KingAttacks(kingSq)&enemyKing != 0 {
		return false
	}
	if BishopAttacks(kingSq, occDelta)&enemyBishopsQueens != 0 {
		return false
	}
	if RookAttacks(kingSq, occDelta)&enemyRooksQueens != 0 {
		return false
	}
	return true
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check but has no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw reports whether the position is drawn by stalemate, the 50-move
// rule, or insufficient mating material.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.Turn.HalfmoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports whether neither side retains enough
// material to deliver checkmate by any sequence of legal moves.
func (p *Position) IsInsufficientMaterial() bool {
	if p.pieces[White][Pawn]|p.pieces[Black][Pawn] != 0 ||
		p.pieces[White][Rook]|p.pieces[Black][Rook] != 0 ||
		p.pieces[White][Queen]|p.pieces[Black][Queen] != 0 {
		return false
	}

	wMinor := p.pieces[White][Knight].PopCount() + p.pieces[White][Bishop].PopCount()
	bMinor := p.pieces[Black][Knight].PopCount() + p.pieces[Black][Bishop].PopCount()

	if wMinor == 0 && bMinor == 0 {
		return true
	}
	if wMinor <= 1 && bMinor == 0 {
		return true
	}
	if bMinor <= 1 && wMinor == 0 {
		return true
	}
	return false
}

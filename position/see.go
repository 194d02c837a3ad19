/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package position

import (
	. "github.com/frankkopp/FrankyGo/types"
)

// seePieceOrder is the order pieces are tried as the next least valuable
// attacker in the swap algorithm.
var seePieceOrder = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// attackersTo returns all pieces of either color attacking sq given the
// (possibly hypothetical, with pieces removed for SEE) occupation bitboard.
func (p *Position) attackersTo(sq Square, occupied Bitboard) Bitboard {
	var attackers Bitboard
	attackers |= GetPawnAttacks(Black, sq) & p.PiecesBb(White, Pawn)
	attackers |= GetPawnAttacks(White, sq) & p.PiecesBb(Black, Pawn)
	attackers |= GetAttacksBb(Knight, sq, occupied) & (p.PiecesBb(White, Knight) | p.PiecesBb(Black, Knight))
	attackers |= GetAttacksBb(King, sq, occupied) & (p.PiecesBb(White, King) | p.PiecesBb(Black, King))

	bishopsQueens := (p.PiecesBb(White, Bishop) | p.PiecesBb(Black, Bishop)) | (p.PiecesBb(White, Queen) | p.PiecesBb(Black, Queen))
	rooksQueens := (p.PiecesBb(White, Rook) | p.PiecesBb(Black, Rook)) | (p.PiecesBb(White, Queen) | p.PiecesBb(Black, Queen))
	attackers |= GetAttacksBb(Bishop, sq, occupied) & bishopsQueens
	attackers |= GetAttacksBb(Rook, sq, occupied) & rooksQueens

	return attackers & occupied
}

// leastValuableAttacker finds the cheapest piece of color c in attackers,
// which must already be restricted to occupied squares of the right color,
// and returns its square and piece type. Returns SqNone if none is found.
func (p *Position) leastValuableAttacker(attackers Bitboard, c Color) (Square, PieceType) {
	own := attackers & p.OccupiedBb(c)
	for _, pt := range seePieceOrder {
		bb := own & p.PiecesBb(c, pt)
		if bb != BbZero {
			return bb.Lsb(), pt
		}
	}
	return SqNone, PtNone
}

// See performs a Static Exchange Evaluation of the capture or non-capture
// move on the current position: it simulates the sequence of captures on
// the move's target square in order of increasing attacker value (x-raying
// sliding attackers behind each capture) and returns the net material
// balance for the side making the move, assuming both sides always choose
// to continue the exchange when it gains them material.
//
// Castling, en passant and promotions are not simulated move by move - they
// are rare enough in capture sequences that a conservative estimate (using
// the moving piece's own value, ignoring promotion gain) is good enough for
// move ordering and pruning decisions.
func (p *Position) See(move Move) Value {
	from := move.From()
	to := move.To()

	attacker := p.GetPiece(from)
	if attacker == PieceNone {
		return ValueZero
	}
	mover := attacker.ColorOf()

	// gains[d] holds the material the side to move at depth d would net if
	// it stopped the exchange right there.
	var gains [32]Value
	depth := 0

	if move.MoveType() == EnPassant {
		gains[0] = Pawn.ValueOf()
	} else {
		gains[0] = p.GetPiece(to).ValueOf()
	}

	occupied := p.OccupiedAll()
	occupied.PopSquare(from)
	if move.MoveType() == EnPassant {
		// the captured pawn sits behind the destination square
		epCapturedSq := to
		if mover == White {
			epCapturedSq = to.To(South)
		} else {
			epCapturedSq = to.To(North)
		}
		occupied.PopSquare(epCapturedSq)
	}

	attackers := p.attackersTo(to, occupied)
	sideToMove := mover.Flip()
	lastAttackerValue := attacker.ValueOf()

	for {
		sq, pt := p.leastValuableAttacker(attackers, sideToMove)
		if sq == SqNone {
			break
		}
		depth++
		gains[depth] = lastAttackerValue - gains[depth-1]
		best := -gains[depth-1]
		if gains[depth] > best {
			best = gains[depth]
		}
		if best < 0 {
			// pruning: even best case this recapture loses material, no
			// need to simulate it, the side to move simply won't play it
			break
		}
		occupied.PopSquare(sq)
		attackers = p.attackersTo(to, occupied)
		lastAttackerValue = pt.ValueOf()
		sideToMove = sideToMove.Flip()
		if depth >= len(gains)-1 {
			break
		}
	}

	for depth > 0 {
		depth--
		if -gains[depth+1] > gains[depth] {
			gains[depth] = -gains[depth+1]
		}
	}

	return gains[0]
}

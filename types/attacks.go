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

package types

import "math/bits"

// RankLength number of ranks on the board, also used to size the magic seed table
const RankLength = 8

// FileLength number of files on the board
const FileLength = 8

// bishopTable and rookTable hold the backing attack arrays for the fancy
// magic bitboards. Sizes are the well known minimal sizes for these tables.
var (
	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard

	bishopMagics [SqLength]Magic
	rookMagics   [SqLength]Magic

	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
	rookDirections   = [4]Direction{North, East, South, West}
)

// pseudoAttacks holds the attacks of King, Knight, Bishop, Rook and Queen on
// an otherwise empty board indexed by square. Pawn attacks are kept
// separately since they depend on color.
var pseudoAttacks [PtLength][SqLength]Bitboard

// pawnAttacksPre holds the pre computed pawn attacks per color and square
var pawnAttacksPre [2][SqLength]Bitboard

// intermediateBb holds the squares strictly between two squares on a rank,
// file or diagonal - empty if the two squares do not share one.
var intermediateBb [SqLength][SqLength]Bitboard

// CastlingMask is the set of squares relevant for castling rights - the
// starting squares of king and rooks. Moving a piece from or to any of
// these squares invalidates the corresponding castling right.
const CastlingMask Bitboard = (Bitboard(1) << uint(SqA1)) | (Bitboard(1) << uint(SqE1)) | (Bitboard(1) << uint(SqH1)) |
	(Bitboard(1) << uint(SqA8)) | (Bitboard(1) << uint(SqE8)) | (Bitboard(1) << uint(SqH8))

// Bb returns the bitboard with only this square set
func (sq Square) Bb() Bitboard {
	return sq.Bitboard()
}

// Bb returns the bitboard of all squares on this file
func (f File) Bb() Bitboard {
	if !f.isValid() {
		return BbZero
	}
	return FileA_Bb << uint(f)
}

// Bb returns the bitboard of all squares on this rank
func (r Rank) Bb() Bitboard {
	if !r.IsValid() {
		return BbZero
	}
	return Rank1_Bb << (8 * uint(r))
}

// PopCount returns the number of set bits
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Has returns true if the bit for the given square is set
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// GetPseudoAttacks returns the attacks of piece type pt (not Pawn) from the
// given square on an otherwise empty board.
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetAttacksBb returns all squares attacked by a piece of type pt (not Pawn)
// standing on square sq given the board occupation "occupied".
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	return AttacksBb(pt, sq, occupied)
}

// GetPawnAttacks returns the squares a pawn of color c on square sq attacks
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacksPre[c][sq]
}

// Intermediate returns the bitboard of squares strictly between sq1 and sq2
// on the same rank, file or diagonal. Returns an empty bitboard if the two
// squares do not share a line.
func Intermediate(sq1 Square, sq2 Square) Bitboard {
	return intermediateBb[sq1][sq2]
}

// initMagicBitboards computes the magic bitboard attack tables for sliding
// pieces, the pseudo attack tables for King, Knight, Bishop, Rook and Queen,
// the pawn attack table and the intermediate-squares table used for check
// and pin detection and for verifying castling is not blocked.
// Based on the "fancy" magic bitboard approach used by Stockfish.
func initMagicBitboards() {
	bTable := bishopTable[:]
	rTable := rookTable[:]
	initMagics(&bTable, &bishopMagics, &bishopDirections)
	initMagics(&rTable, &rookMagics, &rookDirections)

	kingDeltas := [8]Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest}
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

	for sq := SqA1; sq <= SqH8; sq++ {
		var kingAttacks, knightAttacks Bitboard
		for _, d := range kingDeltas {
			if to := sq.To(d); to.IsValid() && SquareDistance(sq, to) == 1 {
				kingAttacks.PushSquare(to)
			}
		}
		f, r := int(sq.FileOf()), int(sq.RankOf())
		for _, kd := range knightDeltas {
			nf, nr := f+kd[0], r+kd[1]
			if nf < int(FileA) || nf > int(FileH) || nr < int(Rank1) || nr > int(Rank8) {
				continue
			}
			knightAttacks.PushSquare(SquareOf(File(nf), Rank(nr)))
		}
		pseudoAttacks[King][sq] = kingAttacks
		pseudoAttacks[Knight][sq] = knightAttacks
		pseudoAttacks[Bishop][sq] = AttacksBb(Bishop, sq, BbZero)
		pseudoAttacks[Rook][sq] = AttacksBb(Rook, sq, BbZero)
		pseudoAttacks[Queen][sq] = pseudoAttacks[Bishop][sq] | pseudoAttacks[Rook][sq]

		if sq.FileOf() != FileA {
			if to := sq.To(Northwest); to.IsValid() {
				pawnAttacksPre[White][sq].PushSquare(to)
			}
			if to := sq.To(Southwest); to.IsValid() {
				pawnAttacksPre[Black][sq].PushSquare(to)
			}
		}
		if sq.FileOf() != FileH {
			if to := sq.To(Northeast); to.IsValid() {
				pawnAttacksPre[White][sq].PushSquare(to)
			}
			if to := sq.To(Southeast); to.IsValid() {
				pawnAttacksPre[Black][sq].PushSquare(to)
			}
		}
	}

	for sq1 := SqA1; sq1 <= SqH8; sq1++ {
		for sq2 := SqA1; sq2 <= SqH8; sq2++ {
			if sq1 == sq2 {
				continue
			}
			if pseudoAttacks[Queen][sq1]&sq2.Bb() == 0 {
				continue
			}
			intermediateBb[sq1][sq2] = between(sq1, sq2)
		}
	}
}

// between computes the squares strictly between two squares known to be
// aligned on a rank, file or diagonal by stepping along the connecting
// direction.
func between(sq1, sq2 Square) Bitboard {
	var d Direction
	switch {
	case sq1.RankOf() == sq2.RankOf():
		if sq1 < sq2 {
			d = East
		} else {
			d = West
		}
	case sq1.FileOf() == sq2.FileOf():
		if sq1 < sq2 {
			d = North
		} else {
			d = South
		}
	case int(sq1.FileOf())-int(sq1.RankOf()) == int(sq2.FileOf())-int(sq2.RankOf()):
		if sq1 < sq2 {
			d = Northeast
		} else {
			d = Southwest
		}
	default:
		if sq1 < sq2 {
			d = Northwest
		} else {
			d = Southeast
		}
	}
	bb := BbZero
	for s := sq1.To(d); s.IsValid() && s != sq2; s = s.To(d) {
		bb.PushSquare(s)
	}
	return bb
}

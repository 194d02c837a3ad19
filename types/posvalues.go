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

// Piece square tables give a positional bonus/malus per piece type and
// square, indexed for White with A1=0..H8=63. Black values are derived by
// mirroring the square vertically. Based on the well known "simplified
// evaluation function" tables - king uses separate middle and endgame
// tables to reflect its change in role, all other piece types share one
// table for both phases.
var pawnPst = [SqLength]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPst = [SqLength]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPst = [SqLength]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPst = [SqLength]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPst = [SqLength]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPstMg = [SqLength]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingPstEg = [SqLength]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// pstMg/pstEg hold the tables above indexed by PieceType, pre-flattened so
// PosMidValue/PosEndValue can do a single array lookup without a type switch.
var pstMg [PtLength][SqLength]int
var pstEg [PtLength][SqLength]int

// mirrorSq mirrors a square vertically, e.g. A1 <-> A8, used to reuse the
// White oriented tables above for Black.
func mirrorSq(sq Square) Square {
	return sq ^ 56
}

// initPosValues fills the per piece type lookup tables from the raw tables
// above and prepares the mirrored (Black) values.
func initPosValues() {
	pstMg[Pawn] = pawnPst
	pstMg[Knight] = knightPst
	pstMg[Bishop] = bishopPst
	pstMg[Rook] = rookPst
	pstMg[Queen] = queenPst
	pstMg[King] = kingPstMg

	pstEg[Pawn] = pawnPst
	pstEg[Knight] = knightPst
	pstEg[Bishop] = bishopPst
	pstEg[Rook] = rookPst
	pstEg[Queen] = queenPst
	pstEg[King] = kingPstEg
}

// PosMidValue returns the middle game positional bonus for a piece on a
// given square. Pure positional value - material is tracked separately.
func PosMidValue(piece Piece, sq Square) Value {
	pt := piece.TypeOf()
	if pt == PtNone {
		return ValueZero
	}
	if piece.ColorOf() == Black {
		sq = mirrorSq(sq)
	}
	return Value(pstMg[pt][sq])
}

// PosEndValue returns the endgame positional bonus for a piece on a given
// square. Pure positional value - material is tracked separately.
func PosEndValue(piece Piece, sq Square) Value {
	pt := piece.TypeOf()
	if pt == PtNone {
		return ValueZero
	}
	if piece.ColorOf() == Black {
		sq = mirrorSq(sq)
	}
	return Value(pstEg[pt][sq])
}

// PosValue returns a single tapered value combining material and
// positional bonus, scaled by the given game phase (0..GamePhaseMax).
// Used as a quick move ordering heuristic, not for the actual evaluation
// which keeps mid/end game values separate for incremental updates.
func PosValue(piece Piece, sq Square, gamePhase int) Value {
	if gamePhase > GamePhaseMax {
		gamePhase = GamePhaseMax
	} else if gamePhase < 0 {
		gamePhase = 0
	}
	mid := int(piece.ValueOf() + PosMidValue(piece, sq))
	end := int(piece.ValueOf() + PosEndValue(piece, sq))
	tapered := (mid*gamePhase + end*(GamePhaseMax-gamePhase)) / GamePhaseMax
	return Value(tapered)
}

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
	"fmt"

	. "github.com/frankkopp/FrankyGo/types"
)

// StartFen is the FEN of the standard chess starting position
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition creates a new position, optionally set up from a FEN string.
// Called without arguments it returns the standard starting position.
// Panics if a given FEN is malformed - use NewPositionFen if the FEN comes
// from an untrusted source and the error needs to be handled.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p := New()
		return &p
	}
	p, err := NewPositionFen(fen[0])
	if err != nil {
		panic(fmt.Sprintf("fen for position setup not valid and position can't be created: %s", err))
	}
	return p
}

// NewPositionFen creates a new position from the given FEN string. Returns
// an error instead of panicking if the FEN cannot be parsed.
func NewPositionFen(fen string) (*Position, error) {
	if !initialized {
		initZobrist()
		initialized = true
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		return nil, e
	}
	return p, nil
}

// GetPiece returns the piece currently on the given square (PieceNone if empty)
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard of all pieces of the given color and type
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedBb returns the bitboard of all squares occupied by the given color
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// OccupiedAll returns the bitboard of all occupied squares on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.getOccupied()
}

// NextPlayer returns the color to move next
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// CastlingRights returns the currently available castling rights
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// GetEnPassantSquare returns the current en passant target square (SqNone if none)
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// KingSquare returns the square the king of the given color stands on
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// ZobristKey returns the current zobrist hash key of the position
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// HalfMoveClock returns the number of half moves since the last capture or pawn move
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// GamePhase returns the current game phase value (sum of piece phase weights
// on the board, capped at GamePhaseMax)
func (p *Position) GamePhase() int {
	if p.gamePhase > GamePhaseMax {
		return GamePhaseMax
	}
	return p.gamePhase
}

// GamePhaseFactor returns the game phase scaled to a 0.0 (pure endgame) to
// 1.0 (pure middle game) factor used to taper the positional evaluation
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.GamePhase()) / float64(GamePhaseMax)
}

// Material returns the material value of the given color (sum of piece values,
// including pawns)
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the material value of the given color excluding pawns
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// PsqMidValue returns the accumulated middle game piece square value of the given color
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMidValue[c]
}

// PsqEndValue returns the accumulated endgame piece square value of the given color
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEndValue[c]
}

// LastMove returns the most recently played move, or MoveNone if no move has
// been played yet
func (p *Position) LastMove() Move {
	if p.historyCounter == 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move, or PieceNone
// if the last move was not a capture (or no move has been played yet)
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter == 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove returns true if the last move played captured a piece
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}

// IsAttacked checks if the given square is attacked by any piece of the
// given attacker color
func (p *Position) IsAttacked(sq Square, attackerColor Color) bool {
	if GetPawnAttacks(attackerColor.Flip(), sq)&p.piecesBb[attackerColor][Pawn] != BbZero {
		return true
	}
	// en passant: the pawn that just made a double step can be captured
	if p.enPassantSquare != SqNone && p.nextPlayer == attackerColor &&
		sq == p.enPassantSquare.To(Direction(attackerColor.Flip().MoveDirection())*North) &&
		GetPawnAttacks(attackerColor.Flip(), p.enPassantSquare)&p.piecesBb[attackerColor][Pawn] != BbZero {
		return true
	}
	if GetPseudoAttacks(Knight, sq)&p.piecesBb[attackerColor][Knight] != BbZero {
		return true
	}
	if GetPseudoAttacks(King, sq)&p.piecesBb[attackerColor][King] != BbZero {
		return true
	}
	occupied := p.getOccupied()
	bishopsQueens := p.piecesBb[attackerColor][Bishop] | p.piecesBb[attackerColor][Queen]
	if bishopsQueens != BbZero && GetAttacksBb(Bishop, sq, occupied)&bishopsQueens != BbZero {
		return true
	}
	rooksQueens := p.piecesBb[attackerColor][Rook] | p.piecesBb[attackerColor][Queen]
	if rooksQueens != BbZero && GetAttacksBb(Rook, sq, occupied)&rooksQueens != BbZero {
		return true
	}
	return false
}

// HasCheck returns true if the next player to move is in check. The result
// is cached until the next DoMove/UndoMove.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag == flagTBD {
		if p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip()) {
			p.hasCheckFlag = flagTrue
		} else {
			p.hasCheckFlag = flagFalse
		}
	}
	return p.hasCheckFlag == flagTrue
}

// castlingKingTransit returns the square the king passes over (but does not
// land on) for the given castling destination square
func castlingKingTransit(to Square) Square {
	switch to {
	case SqG1:
		return SqF1
	case SqC1:
		return SqD1
	case SqG8:
		return SqF8
	case SqC8:
		return SqD8
	default:
		panic("Invalid castle move!")
	}
}

// WasLegalMove checks if the last move played (via DoMove) left the mover's
// own king safe, and - for castling - that the king did not pass through or
// start on an attacked square.
func (p *Position) WasLegalMove() bool {
	moverColor := p.nextPlayer.Flip()
	opponent := p.nextPlayer
	if p.IsAttacked(p.kingSquare[moverColor], opponent) {
		return false
	}
	lastMove := p.LastMove()
	if lastMove != MoveNone && lastMove.MoveType() == Castling {
		if p.IsAttacked(lastMove.From(), opponent) || p.IsAttacked(castlingKingTransit(lastMove.To()), opponent) {
			return false
		}
	}
	return true
}

// IsLegalMove checks if a pseudo legal move is actually legal on the current
// position by playing it, checking the resulting position and undoing it.
func (p *Position) IsLegalMove(move Move) bool {
	p.DoMove(move)
	legal := p.WasLegalMove()
	p.UndoMove()
	return legal
}

// DoNullMove plays a "null move" - passes the turn to the opponent without
// moving a piece. Used by null move pruning in search.
func (p *Position) DoNullMove() {
	p.history[p.historyCounter] = historyState{
		p.zobristKey,
		MoveNone,
		PieceNone,
		PieceNone,
		p.castlingRights,
		p.enPassantSquare,
		p.halfMoveClock,
		p.hasCheckFlag}
	p.historyCounter++
	p.clearEnPassant()
	p.hasCheckFlag = flagTBD
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoNullMove reverts a previous DoNullMove
func (p *Position) UndoNullMove() {
	p.historyCounter--
	p.nextPlayer = p.nextPlayer.Flip()
	p.castlingRights = p.history[p.historyCounter].castlingRights
	p.enPassantSquare = p.history[p.historyCounter].enpassantSquare
	p.halfMoveClock = p.history[p.historyCounter].halfMoveClock
	p.hasCheckFlag = p.history[p.historyCounter].hasCheckFlag
	p.zobristKey = p.history[p.historyCounter].zobristKey
}

// CheckRepetitions returns true if the current position has occurred at
// least count times before in the game's history (since the last capture or
// pawn move, which is when a repetition becomes impossible).
func (p *Position) CheckRepetitions(count int) bool {
	repetitions := 1
	i := p.historyCounter - 2
	lowerBound := p.historyCounter - p.halfMoveClock
	for i >= 0 && i >= lowerBound {
		if p.history[i].zobristKey == p.zobristKey {
			repetitions++
			if repetitions >= count {
				return true
			}
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial returns true if neither side has enough material
// left to force a checkmate, e.g. King vs King, King+Minor vs King, or King
// vs King with only a small number of minor pieces on either side. A bishop
// pair against a single lone knight is the one combination of few pieces
// that can still force mate.
func (p *Position) HasInsufficientMaterial() bool {
	if p.piecesBb[White][Pawn] != BbZero || p.piecesBb[Black][Pawn] != BbZero ||
		p.piecesBb[White][Rook] != BbZero || p.piecesBb[Black][Rook] != BbZero ||
		p.piecesBb[White][Queen] != BbZero || p.piecesBb[Black][Queen] != BbZero {
		return false
	}

	whiteBishops := p.piecesBb[White][Bishop].PopCount()
	whiteKnights := p.piecesBb[White][Knight].PopCount()
	blackBishops := p.piecesBb[Black][Bishop].PopCount()
	blackKnights := p.piecesBb[Black][Knight].PopCount()
	whiteMinors := whiteBishops + whiteKnights
	blackMinors := blackBishops + blackKnights

	// a bishop pair can force mate against a single lone knight
	if whiteBishops >= 2 && whiteKnights == 0 && blackMinors == 1 && blackKnights == 1 {
		return false
	}
	if blackBishops >= 2 && blackKnights == 0 && whiteMinors == 1 && whiteKnights == 1 {
		return false
	}
	return true
}

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

import "fmt"

// Move is a 32-bit packed representation of a chess move.
//
// Bit layout (LSB first):
//   0-5   to square
//   6-11  from square
//   12-13 promotion piece minus Knight (only meaningful when MoveType is Promotion)
//   14-15 move type
//   16-31 sort/search value (signed, used for move ordering, not part of the move's identity)
type Move uint32

// MoveType distinguishes normal moves from moves with special handling
type MoveType uint32

const (
	Normal    MoveType = 0
	Promotion MoveType = 1
	EnPassant MoveType = 2
	Castling  MoveType = 3
)

var moveTypeToString = [4]string{"Normal", "Promotion", "EnPassant", "Castling"}

// String returns a readable name for the move type
func (t MoveType) String() string {
	return moveTypeToString[t&0x3]
}

const (
	// MoveNone represents "no move" / a null move
	MoveNone Move = 0

	toMask       = 0x3F
	fromShift    = 6
	fromMask     = 0x3F << fromShift
	promTypeShift = 12
	promTypeMask  = 0x3 << promTypeShift
	moveTypeShift = 14
	moveTypeMask  = 0x3 << moveTypeShift
	valueShift    = 16
)

// CreateMove packs a move with no search value attached (value defaults to 0)
func CreateMove(from Square, to Square, moveType MoveType, promType PieceType) Move {
	var promField uint32
	if promType >= Knight {
		promField = uint32(promType - Knight)
	}
	return Move(uint32(to) |
		uint32(from)<<fromShift |
		promField<<promTypeShift |
		uint32(moveType)<<moveTypeShift)
}

// CreateMoveValue packs a move together with a search/sort value used for
// move ordering. The value is not part of the move's identity - MoveOf()
// strips it again.
func CreateMoveValue(from Square, to Square, moveType MoveType, promType PieceType, value Value) Move {
	m := CreateMove(from, to, moveType, promType)
	m.SetValue(value)
	return m
}

// SetValue sets the sort value of the move in place and returns the
// resulting move.
func (m *Move) SetValue(v Value) Move {
	*m = Move((uint32(*m) &^ uint32(0xFFFF<<valueShift)) | (uint32(uint16(v)) << valueShift))
	return *m
}

// ValueOf returns the sort value previously stored via SetValue/CreateMoveValue
func (m Move) ValueOf() Value {
	return Value(int16(uint16(uint32(m) >> valueShift)))
}

// MoveOf strips the sort value and returns the move with only from, to,
// move type and promotion type.
func (m Move) MoveOf() Move {
	return m & (toMask | fromMask | promTypeMask | moveTypeMask)
}

// From returns the origin square of the move
func (m Move) From() Square {
	return Square((uint32(m) >> fromShift) & toMask)
}

// To returns the destination square of the move
func (m Move) To() Square {
	return Square(uint32(m) & toMask)
}

// MoveType returns the move type (Normal, Promotion, EnPassant, Castling)
func (m Move) MoveType() MoveType {
	return MoveType((uint32(m) & moveTypeMask) >> moveTypeShift)
}

// PromotionType returns the piece type a pawn promotes to, or PtNone if
// this move is not a promotion.
func (m Move) PromotionType() PieceType {
	if m.MoveType() != Promotion {
		return PtNone
	}
	return PieceType((uint32(m)&promTypeMask)>>promTypeShift) + Knight
}

// IsValid does a cheap sanity check - not a legality check, merely rejects
// MoveNone and moves where from and to are identical.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From() != m.To() && m.From().IsValid() && m.To().IsValid()
}

// Str returns the UCI string representation of the move, e.g. "e2e4" or
// "a7a8q" for a promotion.
func (m Move) Str() string {
	if m == MoveNone {
		return "no move"
	}
	s := m.From().String() + m.To().String()
	if m.MoveType() == Promotion {
		s += string(m.PromotionType().Char()[0] + ('a' - 'A'))
	}
	return s
}

// String returns the same representation as Str()
func (m Move) String() string {
	return m.Str()
}

// StringUci is an alias for Str() kept for compatibility with callers that
// explicitly want the UCI wire representation.
func (m Move) StringUci() string {
	return m.Str()
}

// StrBits returns a binary debug representation of the packed move
func (m Move) StrBits() string {
	return fmt.Sprintf("%032b (from=%s to=%s type=%s prom=%s value=%d)",
		uint32(m), m.From().String(), m.To().String(), m.MoveType().String(), m.PromotionType().Char(), m.ValueOf())
}

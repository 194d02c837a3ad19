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

// Package movegen contains functionality to create moves on a
// chess position. It implements several variants like
// pseudo legal move list, legal move list or on demand move
// generation of pseudo legal moves.
package movegen

import (
	"strings"

	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/moveslice"
	"github.com/frankkopp/FrankyGo/position"
	. "github.com/frankkopp/FrankyGo/types"
)

// Movegen generates moves for a position. It supports a plain pseudo legal
// and legal move list as well as a stateful on demand generator which is
// used by the search to avoid generating and sorting moves which are never
// looked at because of a cut off.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
	onDemandMoves    *moveslice.MoveSlice

	killerMoves       [2]Move
	maxNumberOfKiller int

	pvMove Move

	currentODStage int
	onDemandIndex  int
}

// states for the on demand move generator
const (
	odNew = iota
	odPv
	od1
	od2
	od3
	od4
	od5
	od6
	od7
	od8
	odEnd
)

// GenMode generation modes for on demand move generation
type GenMode int

// GenMode generation modes for on demand move generation
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	pseudoLegalMoves := moveslice.New(MaxMoves)
	legalMoves := moveslice.New(MaxMoves)
	onDemandMoves := moveslice.New(MaxMoves)
	return &Movegen{
		pseudoLegalMoves:  &pseudoLegalMoves,
		legalMoves:        &legalMoves,
		onDemandMoves:     &onDemandMoves,
		pvMove:            MoveNone,
		currentODStage:    odNew,
		maxNumberOfKiller: 2,
	}
}

// //////////////////////////////////////////////////////
// // Public functions
// //////////////////////////////////////////////////////

// GeneratePseudoLegalMoves generates pseudo moves for the next player. Does not check if
// king is left in check or passes an attacked square when castling or has been in check
// before castling. Disregards PV moves and Killer moves. They need to be handled after
// the returned MoveList. Or just use the OnDemand Generator.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateMoves(p, GenCap, mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateMoves(p, GenNonCap, mg.pseudoLegalMoves)
	}
	mg.pseudoLegalMoves.Sort()
	// remove internal sort value
	mg.pseudoLegalMoves.ForEach(func(i int) {
		mg.pseudoLegalMoves.Set(i, mg.pseudoLegalMoves.At(i).MoveOf())
	})
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates pseudo legal moves and filters out all moves
// which would leave the mover's own king in check (including the castling
// special cases).
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.legalMoves.Clear()
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		m := mg.pseudoLegalMoves.At(i)
		if p.IsLegalMove(m) {
			mg.legalMoves.PushBack(m)
		}
	}
	return mg.legalMoves
}

// HasLegalMove returns true as soon as at least one legal move is found for
// the next player to move. Much cheaper than generating the full legal move
// list just to check for mate/stalemate.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	mg.GeneratePseudoLegalMoves(p, GenAll)
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		if p.IsLegalMove(mg.pseudoLegalMoves.At(i)) {
			return true
		}
	}
	return false
}

// SetPvMove sets the given move as the PV move to be returned first by the
// on demand generator (GetNextMove). Has no effect on GeneratePseudoLegalMoves
// or GenerateLegalMoves.
func (mg *Movegen) SetPvMove(move Move) {
	mg.pvMove = move.MoveOf()
}

// PvMove returns the currently stored PV move (MoveNone if none set)
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// StoreKiller adds a move to the killer move slots of this move generator
// instance. Keeps at most two killers, most recent first, no duplicates.
func (mg *Movegen) StoreKiller(move Move) {
	if move == MoveNone {
		return
	}
	move = move.MoveOf()
	if move == mg.killerMoves[0] {
		return
	}
	mg.killerMoves[1] = mg.killerMoves[0]
	mg.killerMoves[0] = move
}

// KillerMoves returns a pointer to the two currently stored killer moves
func (mg *Movegen) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

// ResetOnDemand resets the state of the on demand move generator (GetNextMove)
// so the next call starts a fresh generation cycle for a (possibly new)
// position. Does not clear the PV move or killer moves - use SetPvMove(MoveNone)
// / a fresh Movegen for that.
func (mg *Movegen) ResetOnDemand() {
	mg.currentODStage = odNew
	mg.onDemandIndex = 0
	mg.onDemandMoves.Clear()
}

// GetNextMove returns the next move of a staged on demand generation cycle:
// PV move first, then captures (best first), then killer moves (if still
// pseudo legal and not already returned), then the remaining quiet moves
// (best first). Returns MoveNone once exhausted - call ResetOnDemand to
// start over (e.g. for a new position).
func (mg *Movegen) GetNextMove(p *position.Position, mode GenMode) Move {
	for {
		switch mg.currentODStage {

		case odNew:
			mg.onDemandIndex = 0
			mg.currentODStage = odPv

		case odPv:
			mg.currentODStage = od1
			if mg.pvMove != MoveNone && mg.matchesMode(p, mg.pvMove, mode) {
				return mg.pvMove
			}

		case od1: // generate captures
			mg.onDemandMoves.Clear()
			if mode&GenCap != 0 {
				mg.generatePawnMoves(p, GenCap, mg.onDemandMoves)
				mg.generateKingMoves(p, GenCap, mg.onDemandMoves)
				mg.generateMoves(p, GenCap, mg.onDemandMoves)
				mg.onDemandMoves.Sort()
			}
			mg.onDemandIndex = 0
			mg.currentODStage = od2

		case od2: // iterate captures
			found := MoveNone
			for mg.onDemandIndex < mg.onDemandMoves.Len() {
				m := mg.onDemandMoves.At(mg.onDemandIndex).MoveOf()
				mg.onDemandIndex++
				if m == mg.pvMove {
					continue
				}
				found = m
				break
			}
			if found != MoveNone {
				return found
			}
			mg.onDemandIndex = 0
			mg.currentODStage = od3

		case od3: // iterate killers
			found := MoveNone
			for mg.onDemandIndex < mg.maxNumberOfKiller && mg.onDemandIndex < len(mg.killerMoves) {
				k := mg.killerMoves[mg.onDemandIndex]
				mg.onDemandIndex++
				if k == MoveNone || k == mg.pvMove {
					continue
				}
				if !mg.isPseudoLegalQuiet(p, k, mode) {
					continue
				}
				found = k
				break
			}
			if found != MoveNone {
				return found
			}
			mg.currentODStage = od4

		case od4: // generate non captures
			mg.onDemandMoves.Clear()
			mg.onDemandIndex = 0
			if mode&GenNonCap != 0 {
				mg.generatePawnMoves(p, GenNonCap, mg.onDemandMoves)
				mg.generateCastling(p, GenNonCap, mg.onDemandMoves)
				mg.generateKingMoves(p, GenNonCap, mg.onDemandMoves)
				mg.generateMoves(p, GenNonCap, mg.onDemandMoves)
				mg.onDemandMoves.Sort()
			}
			mg.currentODStage = od5

		case od5: // iterate non captures
			found := MoveNone
			for mg.onDemandIndex < mg.onDemandMoves.Len() {
				m := mg.onDemandMoves.At(mg.onDemandIndex).MoveOf()
				mg.onDemandIndex++
				if m == mg.pvMove || m == mg.killerMoves[0] || m == mg.killerMoves[1] {
					continue
				}
				found = m
				break
			}
			if found != MoveNone {
				return found
			}
			mg.currentODStage = odEnd

		case od6, od7, od8:
			// reserved stages, currently unused
			mg.currentODStage = odEnd

		case odEnd:
			return MoveNone
		}
	}
}

// matchesMode reports whether a move (coming from outside the staged
// generation, e.g. the PV move) is a capture or non capture as requested by
// mode. A move whose target square is empty and which is not an en passant
// capture is treated as non capturing.
func (mg *Movegen) matchesMode(p *position.Position, m Move, mode GenMode) bool {
	isCapture := m.MoveType() == EnPassant || p.GetPiece(m.To()) != PieceNone
	if isCapture {
		return mode&GenCap != 0
	}
	return mode&GenNonCap != 0
}

// isPseudoLegalQuiet checks if a previously stored killer move is
// still a pseudo legal quiet move in the given position (the position may
// have changed completely since the killer was stored).
func (mg *Movegen) isPseudoLegalQuiet(p *position.Position, m Move, mode GenMode) bool {
	if mode&GenNonCap == 0 {
		return false
	}
	piece := p.GetPiece(m.From())
	if piece == PieceNone || piece.ColorOf() != p.NextPlayer() {
		return false
	}
	if p.GetPiece(m.To()) != PieceNone {
		return false
	}
	if m.MoveType() == Castling || m.MoveType() == EnPassant {
		return false
	}
	mg.GeneratePseudoLegalMoves(p, GenNonCap)
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		if mg.pseudoLegalMoves.At(i) == m {
			return true
		}
	}
	return false
}

// GetMoveFromUci parses a UCI move string (e.g. "e2e4" or "a7a8q") against
// the legal moves of the given position. Returns MoveNone if the string is
// malformed or does not correspond to a legal move.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	uciMove = strings.TrimSpace(uciMove)
	if len(uciMove) < 4 || len(uciMove) > 5 {
		return MoveNone
	}
	from := MakeSquare(uciMove[0:2])
	to := MakeSquare(uciMove[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone
	}
	promType := PtNone
	if len(uciMove) == 5 {
		promType = charToPieceType(strings.ToUpper(uciMove[4:5])[0])
		if promType == PtNone {
			return MoveNone
		}
	}
	legalMoves := mg.GenerateLegalMoves(p, GenAll)
	for i := 0; i < legalMoves.Len(); i++ {
		m := legalMoves.At(i).MoveOf()
		if m.From() != from || m.To() != to {
			continue
		}
		if m.MoveType() == Promotion {
			if m.PromotionType() != promType {
				continue
			}
		} else if promType != PtNone {
			continue
		}
		return m
	}
	return MoveNone
}

// GetMoveFromSan parses a (simplified) SAN move string against the legal
// moves of the given position. Returns MoveNone if the string is malformed,
// ambiguous or does not correspond to a legal move.
func (mg *Movegen) GetMoveFromSan(p *position.Position, sanMove string) Move {
	san := strings.TrimSpace(sanMove)
	san = strings.TrimRight(san, "+#!?")
	if san == "" {
		return MoveNone
	}

	legalMoves := mg.GenerateLegalMoves(p, GenAll)

	if san == "O-O" || san == "0-0" {
		return mg.findCastling(legalMoves, true)
	}
	if san == "O-O-O" || san == "0-0-0" {
		return mg.findCastling(legalMoves, false)
	}

	pieceType := Pawn
	rest := san
	if len(rest) > 0 && strings.ContainsRune("KQRBN", rune(rest[0])) {
		pieceType = charToPieceType(rest[0])
		rest = rest[1:]
	}

	promType := PtNone
	if len(rest) > 0 && strings.ContainsRune("QRBN", rune(rest[len(rest)-1])) {
		promType = charToPieceType(rest[len(rest)-1])
		rest = rest[:len(rest)-1]
	}

	rest = strings.ReplaceAll(rest, "x", "")
	rest = strings.ReplaceAll(rest, "=", "")

	if len(rest) < 2 {
		return MoveNone
	}
	destStr := rest[len(rest)-2:]
	disambig := rest[:len(rest)-2]
	toSquare := MakeSquare(destStr)
	if toSquare == SqNone {
		return MoveNone
	}

	disambigFile := FileNone
	disambigRank := RankNone
	for _, c := range disambig {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = File(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = Rank(c - '1')
		default:
			return MoveNone
		}
	}

	var found Move = MoveNone
	matches := 0
	for i := 0; i < legalMoves.Len(); i++ {
		m := legalMoves.At(i).MoveOf()
		if m.To() != toSquare || m.MoveType() == Castling {
			continue
		}
		if p.GetPiece(m.From()).TypeOf() != pieceType {
			continue
		}
		if pieceType == Pawn {
			if m.MoveType() == Promotion {
				if promType == PtNone || m.PromotionType() != promType {
					continue
				}
			} else if promType != PtNone {
				continue
			}
		} else if promType != PtNone {
			continue
		}
		if disambigFile != FileNone && m.From().FileOf() != disambigFile {
			continue
		}
		if disambigRank != RankNone && m.From().RankOf() != disambigRank {
			continue
		}
		matches++
		found = m
	}
	if matches != 1 {
		return MoveNone
	}
	return found
}

func (mg *Movegen) findCastling(legalMoves *moveslice.MoveSlice, kingSide bool) Move {
	for i := 0; i < legalMoves.Len(); i++ {
		m := legalMoves.At(i).MoveOf()
		if m.MoveType() != Castling {
			continue
		}
		file := m.To().FileOf()
		if kingSide && file == FileG {
			return m
		}
		if !kingSide && file == FileC {
			return m
		}
	}
	return MoveNone
}

func charToPieceType(c byte) PieceType {
	switch c {
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'K', 'k':
		return King
	default:
		return PtNone
	}
}

func (mg *Movegen) String() string {
	return "movegen instance"
}

// //////////////////////////////////////////////////////
// // Private functions
// //////////////////////////////////////////////////////

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {

	nextPlayer := p.NextPlayer()
	myPawns := p.PiecesBb(nextPlayer, Pawn)
	oppPieces := p.OccupiedBb(nextPlayer.Flip())
	gamePhase := p.GamePhase()
	piece := MakePiece(nextPlayer, Pawn)

	// captures
	if mode&GenCap != 0 {

		// This algorithm shifts the own pawn bitboard in the direction of pawn captures
		// and ANDs it with the opponents pieces. With this we get all possible captures
		// and can easily create the moves by using a loop over all captures and using
		// the backward shift for the from-Square.
		// All moves get stable_sort values so that stable_sort order should be:
		//   captures: most value victim least value attacker - promotion piece value
		//   non captures: killer (TBD), promotions, castling, normal moves (position value)
		// Values for sorting are descending - the most valuable move has the highest value
		// values are not compatible to position evaluation values.

		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			// normal pawn captures - promotions first
			tmpCaptures = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+dir) & oppPieces
			promCaptures = tmpCaptures & nextPlayer.PromotionRankBb()
			// promotion captures
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				// value is the delta of values from the two pieces involved plus the positional value
				value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
					PosValue(piece, toSquare, gamePhase)
				// add the possible promotion moves to the move list and also add value of the promoted piece type
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Queen.ValueOf()))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Knight.ValueOf()))
				// rook and bishops are usually redundant to queen promotion (except in stale mate situations)
				// therefore we give them lower sort order
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Rook.ValueOf()-Value(2000)))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Bishop.ValueOf()-Value(2000)))
			}
			tmpCaptures &= ^nextPlayer.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				// value is the delta of values from the two pieces involved plus the positional value
				value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
			}
		}

		// en passant captures
		enPassantSquare := p.GetEnPassantSquare()
		if enPassantSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(enPassantSquare.Bb(),
					Direction(nextPlayer.Flip().MoveDirection())*North+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(Direction(nextPlayer.MoveDirection())*North - dir)
					// value is the positional value of the piece at this game phase
					value := PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, EnPassant, PtNone, value))
				}
			}
		}
	}

	// non captures
	if mode&GenNonCap != 0 {

		//  Move my pawns forward one step and keep all on not occupied squares
		//  Move pawns now on rank 3 (rank 6) another square forward to check for pawn doubles.
		//  Loop over pawns remaining on unoccupied squares and add moves.

		// pawns - check step one to unoccupied squares
		tmpMoves := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) & ^p.OccupiedAll()
		// pawns double - check step two to unoccupied squares
		tmpMovesDouble := ShiftBitboard(tmpMoves&ShiftBitboard(nextPlayer.PawnDoubleRank(), Direction(nextPlayer.MoveDirection())*North), Direction(nextPlayer.MoveDirection())*North) & ^p.OccupiedAll()

		// single pawn steps - promotions first
		promMoves := tmpMoves & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			// value for non captures is lowered by 10k
			value := Value(-10_000)
			// add the possible promotion moves to the move list and also add value of the promoted piece type
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Queen.ValueOf()))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Knight.ValueOf()))
			// rook and bishops are usually redundant to queen promotion (except in stale mate situations)
			// therefore we give them lower sort order
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Rook.ValueOf()-Value(2000)))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Bishop.ValueOf()-Value(2000)))
		}
		// double pawn steps
		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North).
				To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
		// normal single pawn steps
		tmpMoves &= ^nextPlayer.PromotionRankBb()
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

func (mg *Movegen) generateCastling(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	occupiedBB := p.OccupiedAll()

	// castling - pseudo castling - we will not check if we are in check after the move
	// or if we have passed an attacked square with the king or if the king has been in check

	if mode&GenNonCap != 0 && p.CastlingRights() != CastlingNone {
		cr := p.CastlingRights()
		if nextPlayer == White { // white
			if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(p.KingSquare(White) == SqE1, "MoveGen Castling: White King not on e1")
					assert.Assert(p.GetPiece(SqH1) == WhiteRook, "MoveGen Castling: White Rook not on h1")
				}
				ml.PushBack(CreateMoveValue(SqE1, SqG1, Castling, PtNone, Value(-5000)))
			}
			if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(p.KingSquare(White) == SqE1, "MoveGen Castling: White King not on e1")
					assert.Assert(p.GetPiece(SqA1) == WhiteRook, "MoveGen Castling: White Rook not on a1")
				}
				ml.PushBack(CreateMoveValue(SqE1, SqC1, Castling, PtNone, Value(-5000)))
			}
		} else { // black
			if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(p.KingSquare(Black) == SqE8, "MoveGen Castling: Black King not on e8")
					assert.Assert(p.GetPiece(SqH8) == BlackRook, "MoveGen Castling: Black Rook not on h8")
				}
				ml.PushBack(CreateMoveValue(SqE8, SqG8, Castling, PtNone, Value(-5000)))
			}
			if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(p.KingSquare(Black) == SqE8, "MoveGen Castling: Black King not on e8")
					assert.Assert(p.GetPiece(SqA8) == BlackRook, "MoveGen Castling: Black Rook not on a8")
				}
				ml.PushBack(CreateMoveValue(SqE8, SqC8, Castling, PtNone, Value(-5000)))
			}
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	piece := MakePiece(nextPlayer, King)
	gamePhase := p.GamePhase()
	kingSquareBb := p.PiecesBb(nextPlayer, King)
	if assert.DEBUG {
		assert.Assert(kingSquareBb.PopCount() == 1,
			"Chess always needs exactly one king. Found=%d ", kingSquareBb.PopCount())
	}
	fromSquare := kingSquareBb.PopLsb()

	// pseudo attacks include all moves no matter if the king would be in check
	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	// captures
	if mode&GenCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
				PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}

	// non captures
	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

// generateMoves generates moves for knights, bishops, rooks and queens using
// the magic bitboard attack tables (GetAttacksBb) to compute sliding piece
// attacks in O(1) instead of scanning the intermediate squares.
func (mg *Movegen) generateMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	gamePhase := p.GamePhase()
	occupiedBb := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		piece := MakePiece(nextPlayer, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()

			var pseudoMoves Bitboard
			if pt == Knight {
				pseudoMoves = GetPseudoAttacks(Knight, fromSquare)
			} else {
				pseudoMoves = GetAttacksBb(pt, fromSquare, occupiedBb)
			}

			// captures
			if mode&GenCap != 0 {
				captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
						PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}

			// non captures
			if mode&GenNonCap != 0 {
				nonCaptures := pseudoMoves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}
		}
	}
}

// generateMovesOld is the pre magic-bitboard version of generateMoves kept
// around for the timing comparison tests - it derives sliding piece attacks
// from the empty-board pseudo attacks and rejects blocked destinations by
// checking the intermediate squares one ray at a time.
func (mg *Movegen) generateMovesOld(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	gamePhase := p.GamePhase()
	occupiedBb := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		piece := MakePiece(nextPlayer, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			pseudoMoves := GetPseudoAttacks(pt, fromSquare)

			// captures
			if mode&GenCap != 0 {
				captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					if pt > Knight { // sliding pieces
						if Intermediate(fromSquare, toSquare)&occupiedBb == 0 {
							value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
								PosValue(piece, toSquare, gamePhase)
							ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
						}
					} else { // king and knight cannot be blocked
						value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
							PosValue(piece, toSquare, gamePhase)
						ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
					}
				}
			}

			// non captures
			if mode&GenNonCap != 0 {
				nonCaptures := pseudoMoves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					if pt > Knight { // sliding pieces
						if Intermediate(fromSquare, toSquare)&occupiedBb == 0 {
							value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
							ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
						}
					} else { // king and knight cannot be blocked
						value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
						ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
					}
				}
			}
		}
	}
}

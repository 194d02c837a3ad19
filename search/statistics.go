/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
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

package search

import (
	"github.com/frankkopp/FrankyGo/moveslice"
	. "github.com/frankkopp/FrankyGo/types"
)

// //////////////////////////////////////////////////////
// Statistics
// //////////////////////////////////////////////////////

// Statistics holds extra data and counters accumulated during a single
// search run. Not essential to a functioning search - used for move
// ordering quality reporting and tuning.
type Statistics struct {
	// node/root bookkeeping for UCI "currmove"/"currline" reporting
	CurrentVariation        moveslice.MoveSlice
	CurrentRootMove         Move
	CurrentRootMoveIndex    int
	CurrentSearchDepth      int
	CurrentExtraSearchDepth int
	BestMoveChanges         int

	// TT
	TTHit      uint64
	TTMiss     uint64
	TTCuts     uint64
	TTNoCuts   uint64
	TTMoveUsed uint64
	NoTTMove   uint64

	// pruning / reduction counters
	Mdp            uint64
	NullMoveCuts   uint64
	IIDsearches    uint64
	IIDmoves       uint64
	LmpCuts        uint64
	LmrReductions  uint64
	LmrResearches  uint64
	PvsResearches  uint64
	RootPvsResearches uint64
	StandpatCuts   uint64
	BetaCuts       uint64
	BetaCuts1st    uint64

	// terminal node accounting
	Checkmates             uint64
	Stalemates             uint64
	LeafPositionsEvaluated uint64
	Evaluations            uint64
	EvaluationsFromTT      uint64
}

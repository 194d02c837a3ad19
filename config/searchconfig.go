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

package config

type searchConfiguration struct {
	UseBook bool

	TTSize   int
	UseTT    bool
	UseTTMove bool
	UseTTValue bool
	UseEvalTT bool
	UseQSTT   bool

	UseQuiescence bool
	UseQSStandpat bool
	UseQSSee      bool

	UsePVS bool

	UseNullMove bool
	NmpDepth    int
	NmpReduction int

	UseIID   bool
	IIDDepth int
	IIDReduction int

	UseLmr           bool
	LmrDepth         int
	LmrMovesSearched int

	UseLmp bool

	UseMDP bool

	UseKiller bool
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.UseBook = false // no book support in this engine

	Settings.Search.TTSize = 64
	Settings.Search.UseTT = true
	Settings.Search.UseTTMove = true
	Settings.Search.UseTTValue = true
	Settings.Search.UseEvalTT = true
	Settings.Search.UseQSTT = true

	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true
	Settings.Search.UseQSSee = true

	Settings.Search.UsePVS = true

	Settings.Search.UseNullMove = true
	Settings.Search.NmpDepth = 3
	Settings.Search.NmpReduction = 2

	Settings.Search.UseIID = true
	Settings.Search.IIDDepth = 5
	Settings.Search.IIDReduction = 2

	Settings.Search.UseLmr = true
	Settings.Search.LmrDepth = 3
	Settings.Search.LmrMovesSearched = 3

	Settings.Search.UseLmp = true

	Settings.Search.UseMDP = true

	Settings.Search.UseKiller = true
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {

}

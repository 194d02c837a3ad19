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

// Rank represents one of the eight ranks of a chess board
type Rank int8

//noinspection GoUnusedConst
const (
	Rank1    Rank = iota // 0
	Rank2                // 1
	Rank3                // 2
	Rank4                // 3
	Rank5                // 4
	Rank6                // 5
	Rank7                // 6
	Rank8                // 7
	RankNone             // 8
)

var rankToChar = string("12345678-")

// IsValid checks if r represents a valid rank on the chess board
func (r Rank) IsValid() bool {
	return r >= Rank1 && r <= Rank8
}

// Str returns a single character string representation of the rank
// or "-" if the rank is not valid
func (r Rank) Str() string {
	if !r.IsValid() {
		return "-"
	}
	return string(rankToChar[r])
}

// String returns a single character string representation of the rank
func (r Rank) String() string {
	return r.Str()
}

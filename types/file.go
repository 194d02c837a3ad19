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

// File represents one of the eight files of a chess board
type File int8

//noinspection GoUnusedConst
const (
	FileA    File = iota // 0
	FileB                // 1
	FileC                // 2
	FileD                // 3
	FileE                // 4
	FileF                // 5
	FileG                // 6
	FileH                // 7
	FileNone             // 8
)

var fileToChar = string("abcdefgh-")

// isValid checks if f represents a valid file on the chess board
func (f File) isValid() bool {
	return f >= FileA && f <= FileH
}

// str returns a single character string representation of the file
// or "-" if the file is not valid
func (f File) str() string {
	if !f.isValid() {
		return "-"
	}
	return string(fileToChar[f])
}

// String returns a single character string representation of the file
func (f File) String() string {
	return f.str()
}

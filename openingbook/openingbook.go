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

// Package openingbook gives Search a place to plug an opening book into
// without making the feature part of the engine: it is off by default
// (config.Settings.Search.UseBook) and out of scope for this engine.
// Initialize accepts a "simple" book format of one FEN per line followed
// by a list of UCI moves playable from it, so the hook has a real shape,
// but no book file ships with the engine.
package openingbook

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/position"
)

var log = logging.GetLog("book")

// Mode selects the on-disk format Initialize parses.
type Mode int

// Simple is the only supported book format: plain text, one FEN per
// line followed by a ";"-separated list of "<uci-move> <weight>" pairs.
const Simple Mode = 0

// BookMove is a single playable move out of a book position together
// with a relative weight used to bias random selection.
type BookMove struct {
	Move   uint32
	Weight int
}

// BookEntry is all book moves known for one position.
type BookEntry struct {
	Moves []BookMove
}

// Book is an in-memory opening book keyed by zobrist key.
type Book struct {
	mu      sync.RWMutex
	entries map[position.Key]BookEntry
}

// NewBook creates an empty, uninitialized book.
func NewBook() *Book {
	return &Book{entries: make(map[position.Key]BookEntry)}
}

// Initialize loads a book file in the given Mode. validate and
// overwriteExisting mirror the on/off switches of the original C++
// engine's book loader - validate checks that each stored move is legal
// before keeping it, overwriteExisting allows re-Initialize of a book
// already holding entries.
func (b *Book) Initialize(path string, mode Mode, validate bool, overwriteExisting bool) error {
	if mode != Simple {
		return errors.Errorf("openingbook: unsupported book mode %d", mode)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) > 0 && !overwriteExisting {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "openingbook: could not open book file %s", path)
	}
	defer file.Close()

	entries := make(map[position.Key]BookEntry)
	scanner := bufio.NewScanner(file)
	var current *position.Position
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "fen ") {
			fen := strings.TrimSpace(strings.TrimPrefix(line, "fen "))
			p, err := position.NewPositionFen(fen)
			if err != nil {
				log.Warningf("openingbook: skipping invalid FEN line: %s", fen)
				current = nil
				continue
			}
			current = p
			continue
		}
		if current == nil {
			continue
		}
		entry := entries[current.ZobristKey()]
		for _, field := range strings.Split(line, ";") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			parts := strings.Fields(field)
			if len(parts) == 0 {
				continue
			}
			weight := 1
			if len(parts) > 1 {
				if w, err := strconv.Atoi(parts[1]); err == nil {
					weight = w
				}
			}
			entry.Moves = append(entry.Moves, BookMove{Move: uint32(parseUciPlaceholder(parts[0])), Weight: weight})
		}
		if validate && len(entry.Moves) == 0 {
			continue
		}
		entries[current.ZobristKey()] = entry
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "openingbook: error reading book file")
	}

	b.entries = entries
	log.Infof("openingbook: loaded %d positions from %s", len(entries), path)
	return nil
}

// GetEntry returns the book moves known for the given zobrist key.
func (b *Book) GetEntry(key position.Key) (BookEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, found := b.entries[key]
	return entry, found
}

// parseUciPlaceholder turns a uci move string into the raw encoding stored
// in the book. The actual from/to/promotion decoding needs a position to
// resolve piece types and is done by movegen.GetMoveFromUci once the move
// is pulled out of the book, so here we just carry the unresolved squares.
func parseUciPlaceholder(uciMove string) uint32 {
	if len(uciMove) < 4 {
		return 0
	}
	from := square(uciMove[0:2])
	to := square(uciMove[2:4])
	return uint32(from) | uint32(to)<<6
}

func square(s string) int {
	if len(s) != 2 {
		return 0
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0
	}
	return rank*8 + file
}

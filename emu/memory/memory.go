/*
 * UM - Segmented memory.
 *
 * Copyright 2025, Amoses Holton
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package memory holds all storage the machine can address. Memory is a
// table of segments, each a zero-initialised array of 32-bit words, named
// by 32-bit identifiers that are handed out at map time and recycled on
// unmap. Segment 0 holds the running program.
package memory

// Identifiers are drawn from the free stack and returned to it on unmap.
// When the stack runs dry the table grows by mapBlock fresh identifiers at
// once, so the ids in use and the ids on the stack always partition the
// table exactly.
const mapBlock = 1024

type Store struct {
	segments [][]uint32 // Indexed by identifier, nil when unmapped.
	freeIDs  []uint32   // Stack of unmapped identifiers.
}

// NewStore returns an empty store with the first block of identifiers
// pre-seeded. The stack is seeded high to low so the first map returns
// identifier 0.
func NewStore() *Store {
	s := &Store{
		segments: make([][]uint32, mapBlock),
		freeIDs:  make([]uint32, 0, mapBlock),
	}
	for id := mapBlock; id > 0; id-- {
		s.freeIDs = append(s.freeIDs, uint32(id-1))
	}
	return s
}

// Map allocates a zeroed segment of size words and returns its identifier.
func (s *Store) Map(size uint32) uint32 {
	if len(s.freeIDs) == 0 {
		s.grow()
	}
	id := s.freeIDs[len(s.freeIDs)-1]
	s.freeIDs = s.freeIDs[:len(s.freeIDs)-1]
	s.segments[id] = make([]uint32, size)
	return id
}

// Refill the free stack with a block of fresh identifiers, high to low.
func (s *Store) grow() {
	high := uint32(len(s.segments))
	s.segments = append(s.segments, make([][]uint32, mapBlock)...)
	for id := high + mapBlock; id > high; id-- {
		s.freeIDs = append(s.freeIDs, id-1)
	}
}

// Unmap releases the segment at id and recycles the identifier. Returns
// true on error when id is not a live segment.
func (s *Store) Unmap(id uint32) bool {
	if !s.Live(id) {
		return true
	}
	s.segments[id] = nil
	s.freeIDs = append(s.freeIDs, id)
	return false
}

// Live reports whether id names a mapped segment.
func (s *Store) Live(id uint32) bool {
	return id < uint32(len(s.segments)) && s.segments[id] != nil
}

// Length returns the word count of the segment at id, zero when unmapped.
func (s *Store) Length(id uint32) uint32 {
	if !s.Live(id) {
		return 0
	}
	return uint32(len(s.segments[id]))
}

// GetWord returns the word at offset in segment id. The error return is
// true when id is not live or offset is past the end.
func (s *Store) GetWord(id, offset uint32) (uint32, bool) {
	if !s.Live(id) || offset >= uint32(len(s.segments[id])) {
		return 0, true
	}
	return s.segments[id][offset], false
}

// PutWord stores data at offset in segment id. The error return is true
// when id is not live or offset is past the end.
func (s *Store) PutWord(id, offset, data uint32) bool {
	if !s.Live(id) || offset >= uint32(len(s.segments[id])) {
		return true
	}
	s.segments[id][offset] = data
	return false
}

// GetMemory returns the word at offset in segment id without range checks.
func (s *Store) GetMemory(id, offset uint32) uint32 {
	return s.segments[id][offset]
}

// SetMemory stores data at offset in segment id without range checks.
func (s *Store) SetMemory(id, offset, data uint32) {
	s.segments[id][offset] = data
}

// Words returns the live storage of segment id. The slice aliases the
// segment and is invalidated by DupIntoZero when id is 0.
func (s *Store) Words(id uint32) []uint32 {
	return s.segments[id]
}

// DupIntoZero replaces segment 0 with an independent copy of the segment
// at src. When src is 0 the program is already in place and nothing
// happens. Returns true on error when src is not live.
//
// Identifier 0 goes back on the free stack and is taken straight off it
// again, so the copy always lands at identifier 0.
func (s *Store) DupIntoZero(src uint32) bool {
	if src == 0 {
		return false
	}
	if !s.Live(src) {
		return true
	}
	source := s.segments[src]
	s.Unmap(0)
	id := s.Map(uint32(len(source)))
	copy(s.segments[id], source)
	return false
}

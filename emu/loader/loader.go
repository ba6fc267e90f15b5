/*
 * UM - Program binary reader and writer.
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

// Package loader turns a program binary into words and back. A program
// file is a sequence of 32-bit big-endian words; the byte at offset 4*i
// is the most significant byte of word i.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aholton/um/emu/bitpack"
)

// ErrBadSize flags a file whose length is zero or not a multiple of 4.
var ErrBadSize = errors.New("incompatible file size")

const bytesPerWord = 4

// ReadProgram loads the program file at path.
func ReadProgram(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, err := Words(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	return words, nil
}

// Words assembles raw file bytes into big-endian words, one field
// insertion per byte.
func Words(data []byte) ([]uint32, error) {
	if len(data) == 0 || len(data)%bytesPerWord != 0 {
		return nil, ErrBadSize
	}
	words := make([]uint32, len(data)/bytesPerWord)
	for i := range words {
		var word uint64
		for j, b := range data[i*bytesPerWord : (i+1)*bytesPerWord] {
			// A byte always fits its field; the codec cannot fail here.
			word, _ = bitpack.NewUnsigned(word, 8, uint(24-8*j), uint64(b))
		}
		words[i] = uint32(word)
	}
	return words, nil
}

// WriteProgram is the inverse of Words: it streams the words back out as
// big-endian bytes.
func WriteProgram(w io.Writer, words []uint32) error {
	buf := make([]byte, bytesPerWord)
	for _, word := range words {
		for i := range buf {
			buf[i] = byte(bitpack.GetUnsigned(uint64(word), 8, uint(24-8*i)))
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

/*
 * UM - Bit field packing and unpacking.
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

// Package bitpack inserts and extracts big-endian bit fields in a 64-bit
// word. Fields are named by a width and the position of their least
// significant bit; width plus lsb must not exceed 64. A width of zero
// reads as zero and cannot hold any non-zero value.
package bitpack

import "errors"

// Returned by NewUnsigned and NewSigned when the value does not fit
// the advertised width.
var ErrOverflow = errors.New("overflow packing bits")

const typeSize = 64

// Report whether value fits in width bits unsigned.
func FitsUnsigned(value uint64, width uint) bool {
	if width >= typeSize {
		return true
	}
	return value>>width == 0 && width != 0
}

// Report whether value fits in width bits two's complement.
func FitsSigned(value int64, width uint) bool {
	if width >= typeSize {
		return true
	}
	if width == 0 {
		return false
	}
	// Shift out everything above the field, then sign extend back.
	offset := typeSize - width
	return (value<<offset)>>offset == value
}

// Extract the unsigned field of width bits at lsb.
func GetUnsigned(word uint64, width, lsb uint) uint64 {
	if width == 0 {
		return 0
	}
	word <<= typeSize - (lsb + width)
	return word >> (typeSize - width)
}

// Extract the field of width bits at lsb, sign extending.
func GetSigned(word uint64, width, lsb uint) int64 {
	if width == 0 {
		return 0
	}
	temp := int64(word << (typeSize - (lsb + width)))
	return temp >> (typeSize - width)
}

// Return word with the width bits at lsb replaced by value.
func NewUnsigned(word uint64, width, lsb uint, value uint64) (uint64, error) {
	if !FitsUnsigned(value, width) && value != 0 {
		return 0, ErrOverflow
	}
	if width == 0 {
		return word, nil
	}
	mask := fieldMask(width, lsb)
	return (word &^ mask) | (value << lsb & mask), nil
}

// Return word with the width bits at lsb replaced by the signed value.
func NewSigned(word uint64, width, lsb uint, value int64) (uint64, error) {
	if !FitsSigned(value, width) && value != 0 {
		return 0, ErrOverflow
	}
	if width == 0 {
		return word, nil
	}
	mask := fieldMask(width, lsb)
	return (word &^ mask) | (uint64(value) << lsb & mask), nil
}

// Mask covering bits [lsb, lsb+width).
func fieldMask(width, lsb uint) uint64 {
	if width >= typeSize {
		return ^uint64(0) << lsb
	}
	return (uint64(1)<<width - 1) << lsb
}

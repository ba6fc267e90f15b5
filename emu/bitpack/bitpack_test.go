package bitpack

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

import (
	"errors"
	"testing"
)

// Check unsigned fit over every width.
func TestFitsUnsigned(t *testing.T) {
	for width := uint(1); width < 64; width++ {
		max := uint64(1)<<width - 1
		if !FitsUnsigned(max, width) {
			t.Errorf("FitsUnsigned(%#x, %d) got: false expected: true", max, width)
		}
		if FitsUnsigned(max+1, width) {
			t.Errorf("FitsUnsigned(%#x, %d) got: true expected: false", max+1, width)
		}
	}
	if !FitsUnsigned(^uint64(0), 64) {
		t.Errorf("FitsUnsigned(max, 64) got: false expected: true")
	}
	if FitsUnsigned(0, 0) {
		t.Errorf("FitsUnsigned(0, 0) got: true expected: false")
	}
}

// Check signed fit at both ends of each width.
func TestFitsSigned(t *testing.T) {
	for width := uint(1); width < 64; width++ {
		max := int64(1)<<(width-1) - 1
		min := -int64(1) << (width - 1)
		if !FitsSigned(max, width) {
			t.Errorf("FitsSigned(%d, %d) got: false expected: true", max, width)
		}
		if !FitsSigned(min, width) {
			t.Errorf("FitsSigned(%d, %d) got: false expected: true", min, width)
		}
		if FitsSigned(max+1, width) {
			t.Errorf("FitsSigned(%d, %d) got: true expected: false", max+1, width)
		}
		if FitsSigned(min-1, width) {
			t.Errorf("FitsSigned(%d, %d) got: true expected: false", min-1, width)
		}
	}
	if FitsSigned(0, 0) {
		t.Errorf("FitsSigned(0, 0) got: true expected: false")
	}
}

// Whatever was inserted comes back out, at every legal width and lsb.
func TestRoundTrip(t *testing.T) {
	background := uint64(0xA5A5A5A5A5A5A5A5)
	for width := uint(0); width <= 64; width++ {
		for lsb := uint(0); lsb+width <= 64; lsb += 7 {
			value := uint64(0x123456789ABCDEF) & (uint64(1)<<width - 1)
			if width == 64 {
				value = 0x123456789ABCDEF
			}
			word, err := NewUnsigned(background, width, lsb, value)
			if err != nil {
				t.Errorf("NewUnsigned(%d, %d) unexpected error: %v", width, lsb, err)
				continue
			}
			r := GetUnsigned(word, width, lsb)
			if r != value {
				t.Errorf("GetUnsigned(%d, %d) got: %#x expected: %#x", width, lsb, r, value)
			}
		}
	}
}

// Inserting a field leaves every other bit of the word alone.
func TestNewUnsignedPreserves(t *testing.T) {
	word, err := NewUnsigned(0xFFFFFFFFFFFFFFFF, 8, 16, 0)
	if err != nil {
		t.Fatalf("NewUnsigned unexpected error: %v", err)
	}
	if word != 0xFFFFFFFFFF00FFFF {
		t.Errorf("NewUnsigned got: %#x expected: %#x", word, uint64(0xFFFFFFFFFF00FFFF))
	}
}

// Sign extension on extraction.
func TestGetSigned(t *testing.T) {
	word := uint64(0x00000000000000F0)
	r := GetSigned(word, 4, 4)
	if r != -1 {
		t.Errorf("GetSigned got: %d expected: -1", r)
	}
	r = GetSigned(word, 5, 4)
	if r != 15 {
		t.Errorf("GetSigned got: %d expected: 15", r)
	}
	if r := GetSigned(word, 0, 9); r != 0 {
		t.Errorf("GetSigned width 0 got: %d expected: 0", r)
	}
}

// Insert a negative value and read it back.
func TestNewSigned(t *testing.T) {
	word, err := NewSigned(0, 6, 10, -3)
	if err != nil {
		t.Fatalf("NewSigned unexpected error: %v", err)
	}
	if r := GetSigned(word, 6, 10); r != -3 {
		t.Errorf("GetSigned got: %d expected: -3", r)
	}
	if r := GetUnsigned(word, 6, 10); r != 0x3D {
		t.Errorf("GetUnsigned got: %#x expected: 0x3d", r)
	}
	if _, err := NewSigned(0, 4, 0, 8); !errors.Is(err, ErrOverflow) {
		t.Errorf("NewSigned overflow got: %v expected: %v", err, ErrOverflow)
	}
}

// Width zero reads as zero and cannot be written with anything non zero.
func TestWidthZero(t *testing.T) {
	if r := GetUnsigned(0xFFFFFFFFFFFFFFFF, 0, 32); r != 0 {
		t.Errorf("GetUnsigned width 0 got: %d expected: 0", r)
	}
	word, err := NewUnsigned(0x1234, 0, 8, 0)
	if err != nil {
		t.Errorf("NewUnsigned width 0 value 0 unexpected error: %v", err)
	}
	if word != 0x1234 {
		t.Errorf("NewUnsigned width 0 got: %#x expected: 0x1234", word)
	}
	if _, err := NewUnsigned(0, 0, 8, 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("NewUnsigned width 0 value 1 got: %v expected: %v", err, ErrOverflow)
	}
}

// Values too wide for their field overflow.
func TestOverflow(t *testing.T) {
	for width := uint(1); width < 32; width++ {
		value := uint64(1) << width
		if _, err := NewUnsigned(0, width, 0, value); !errors.Is(err, ErrOverflow) {
			t.Errorf("NewUnsigned(%d) got: %v expected: %v", width, err, ErrOverflow)
		}
	}
}

package disassemble

/*
 * UM - Disassemble one instruction word.
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
	"testing"

	"github.com/aholton/um/emu/assemble"
)

// Known renderings, one per operand shape.
func TestDisassemble(t *testing.T) {
	cases := []struct {
		word uint32
		want string
	}{
		{0x70000000, "HALT"},
		{0xB0000001, "IN    R1"},
		{0xA0000001, "OUT   R1"},
		{0x3000000A, "ADD   R0,R1,R2"},
		{0x600001FF, "NAND  R7,R7,R7"},
		{0x80000011, "MAP   R2,R1"},
		{0xC0000010, "LDPRG R2,R0"},
		{0xD2000003, "LV    R1,3"},
		{0xD1FFFFFF, "LV    R0,33554431"},
		{0xE0000000, "DW    0xE0000000"},
		{0xFFFFFFFF, "DW    0xFFFFFFFF"},
	}
	for _, c := range cases {
		r := Disassemble(c.word)
		if r != c.want {
			t.Errorf("Disassemble(%#08x) got: %q expected: %q", c.word, r, c.want)
		}
	}
}

// Disassembly feeds back through the assembler to the same word.
func TestRoundTrip(t *testing.T) {
	words := []uint32{
		0x70000000, 0xB0000001, 0xA0000001, 0x3000000A,
		0x00000053, 0x80000011, 0x90000007, 0xC0000010,
		0xD2000003, 0xD1FFFFFF, 0x1000000C, 0x20000085,
		0x4000001B, 0x5000003F,
	}
	for _, word := range words {
		src := Disassemble(word)
		r, empty, err := assemble.AssembleLine(src)
		if err != nil || empty {
			t.Errorf("AssembleLine(%q) failed: %v", src, err)
			continue
		}
		// The unused middle bits of a three-register word are not
		// preserved, so compare only the defined fields.
		if r != word&0xF00001FF && r != word {
			t.Errorf("round trip of %#08x via %q got: %#08x", word, src, r)
		}
	}
}

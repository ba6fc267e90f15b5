/*
 * UM - Opcodes and instruction field layout.
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

package opcodemap

/*
   Every instruction is one 32-bit big-endian word with the opcode in the
   top four bits. Opcodes 0 through 12 use the three-register format;
   opcode 13 carries a register and a 25-bit literal.

    Three register:
      +--------+-----------------------+---+---+---+
      | opcode |        unused         | A | B | C |
      +--------+-----------------------+---+---+---+
       31    28                          8   5   2

    Load value:
      +--------+---+-------------------------------+
      | opcode | A |             value             |
      +--------+---+-------------------------------+
       31    28  25                                0
*/

const (
	// Opcode definitions.
	OpCMOV  = 0x0 // Conditional move: A gets B when C is non zero
	OpSLOAD = 0x1 // Segmented load:   A gets segment[B][C]
	OpSSTOR = 0x2 // Segmented store:  segment[A][B] gets C
	OpADD   = 0x3 // A gets B + C mod 2^32
	OpMUL   = 0x4 // A gets B * C mod 2^32
	OpDIV   = 0x5 // A gets B / C, unsigned
	OpNAND  = 0x6 // A gets ^(B & C)
	OpHALT  = 0x7 // Stop the machine
	OpMAP   = 0x8 // Map a segment of C words, id into B
	OpUNMAP = 0x9 // Unmap segment C
	OpOUT   = 0xA // Write low byte of C to output
	OpIN    = 0xB // Read one byte of input into C
	OpLDPRG = 0xC // Duplicate segment B into 0, pc gets C
	OpLV    = 0xD // Load value:       A gets 25-bit literal

	NumOpcodes = 14
)

// Field positions shared by the assembler, disassembler and the fetch
// path. All widths and offsets are in bits within one instruction word.
const (
	OpcodeLen = 4
	OpcodeLSB = 28
	RegLen    = 3
	ALSB      = 6
	BLSB      = 3
	CLSB      = 0
	LvALSB    = OpcodeLSB - RegLen
	ValueLen  = 25
	ValueLSB  = 0
)

// Mnemonics indexed by opcode.
var Names = [NumOpcodes]string{
	"CMOV", "SLOAD", "SSTOR", "ADD", "MUL", "DIV", "NAND",
	"HALT", "MAP", "UNMAP", "OUT", "IN", "LDPRG", "LV",
}

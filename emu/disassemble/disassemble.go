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

package disassemble

import (
	"strconv"
	"strings"

	"github.com/aholton/um/emu/bitpack"
	op "github.com/aholton/um/emu/opcodemap"
	"github.com/aholton/um/util/hex"
)

// Operand shapes, mirroring the assembler.
const (
	tyABC = 1 + iota
	tyBC
	tyC
	tyNone
	tyLV
)

var opTypes = [op.NumOpcodes]int{
	op.OpCMOV:  tyABC,
	op.OpSLOAD: tyABC,
	op.OpSSTOR: tyABC,
	op.OpADD:   tyABC,
	op.OpMUL:   tyABC,
	op.OpDIV:   tyABC,
	op.OpNAND:  tyABC,
	op.OpHALT:  tyNone,
	op.OpMAP:   tyBC,
	op.OpUNMAP: tyC,
	op.OpOUT:   tyC,
	op.OpIN:    tyC,
	op.OpLDPRG: tyBC,
	op.OpLV:    tyLV,
}

// Disassemble renders one instruction word as assembler source. Words
// whose opcode is outside the instruction set come back as a raw data
// directive so a dump stays one line per word.
func Disassemble(word uint32) string {
	var str strings.Builder

	opc := bitpack.GetUnsigned(uint64(word), op.OpcodeLen, op.OpcodeLSB)
	if opc >= op.NumOpcodes {
		str.WriteString("DW    0x")
		hex.FormatWord(&str, word)
		return str.String()
	}

	str.WriteString(op.Names[opc])
	for str.Len() < 6 {
		str.WriteByte(' ')
	}

	switch opTypes[opc] {
	case tyABC:
		writeReg(&str, word, op.ALSB)
		str.WriteByte(',')
		writeReg(&str, word, op.BLSB)
		str.WriteByte(',')
		writeReg(&str, word, op.CLSB)
	case tyBC:
		writeReg(&str, word, op.BLSB)
		str.WriteByte(',')
		writeReg(&str, word, op.CLSB)
	case tyC:
		writeReg(&str, word, op.CLSB)
	case tyNone:
		return strings.TrimRight(str.String(), " ")
	case tyLV:
		writeReg(&str, word, op.LvALSB)
		str.WriteByte(',')
		value := bitpack.GetUnsigned(uint64(word), op.ValueLen, op.ValueLSB)
		str.WriteString(strconv.FormatUint(value, 10))
	}
	return str.String()
}

// Append one register operand.
func writeReg(str *strings.Builder, word uint32, lsb uint) {
	str.WriteByte('R')
	reg := bitpack.GetUnsigned(uint64(word), op.RegLen, lsb)
	hex.FormatDigit(str, byte(reg))
}

/*
 * UM - One line assembler.
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

// Package assemble encodes mnemonic source into machine words. One
// instruction per line, operands separated by commas, registers written
// R0 through R7, literals decimal or 0x hex. A # starts a comment.
//
//	LV    R1,3
//	ADD   R0,R1,R2
//	SSTOR R0,R1,R2
//	HALT
package assemble

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aholton/um/emu/bitpack"
	op "github.com/aholton/um/emu/opcodemap"
)

// Operand shapes of the instruction set.
const (
	tyABC = 1 + iota // Three registers
	tyBC             // Registers B and C
	tyC              // Register C only
	tyNone           // No operands
	tyLV             // Register A and a 25-bit literal
)

type opcode struct {
	opCode int // Opcode value.
	opType int // Operand shape.
}

var opMap = map[string]opcode{
	"CMOV":  {op.OpCMOV, tyABC},
	"SLOAD": {op.OpSLOAD, tyABC},
	"SSTOR": {op.OpSSTOR, tyABC},
	"ADD":   {op.OpADD, tyABC},
	"MUL":   {op.OpMUL, tyABC},
	"DIV":   {op.OpDIV, tyABC},
	"NAND":  {op.OpNAND, tyABC},
	"HALT":  {op.OpHALT, tyNone},
	"MAP":   {op.OpMAP, tyBC},
	"UNMAP": {op.OpUNMAP, tyC},
	"OUT":   {op.OpOUT, tyC},
	"IN":    {op.OpIN, tyC},
	"LDPRG": {op.OpLDPRG, tyBC},
	"LV":    {op.OpLV, tyLV},
}

var (
	ErrBadOpcode  = errors.New("unknown opcode")
	ErrBadOperand = errors.New("invalid operand")
)

// Assemble encodes a whole source text, one instruction per line. Blank
// lines and comment-only lines produce no word.
func Assemble(src string) ([]uint32, error) {
	var words []uint32
	for num, line := range strings.Split(src, "\n") {
		word, empty, err := AssembleLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", num+1, err)
		}
		if !empty {
			words = append(words, word)
		}
	}
	return words, nil
}

// AssembleLine encodes one source line. The empty return is true when
// the line holds no instruction.
func AssembleLine(line string) (uint32, bool, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, true, nil
	}
	name := strings.ToUpper(fields[0])
	entry, ok := opMap[name]
	if !ok {
		return 0, false, fmt.Errorf("%w: %s", ErrBadOpcode, name)
	}
	operands := splitOperands(fields[1:])

	word, _ := bitpack.NewUnsigned(0, op.OpcodeLen, op.OpcodeLSB, uint64(entry.opCode))

	var err error
	switch entry.opType {
	case tyABC:
		word, err = packRegs(word, operands, op.ALSB, op.BLSB, op.CLSB)
	case tyBC:
		word, err = packRegs(word, operands, op.BLSB, op.CLSB)
	case tyC:
		word, err = packRegs(word, operands, op.CLSB)
	case tyNone:
		if len(operands) != 0 {
			err = fmt.Errorf("%w: %s takes no operands", ErrBadOperand, name)
		}
	case tyLV:
		word, err = packLoadValue(word, operands)
	}
	if err != nil {
		return 0, false, err
	}
	return uint32(word), false, nil
}

// Split comma separated operands that may carry internal spaces.
func splitOperands(fields []string) []string {
	joined := strings.Join(fields, "")
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// Pack one register field per given position.
func packRegs(word uint64, operands []string, lsbs ...uint) (uint64, error) {
	if len(operands) != len(lsbs) {
		return 0, fmt.Errorf("%w: want %d operands, have %d",
			ErrBadOperand, len(lsbs), len(operands))
	}
	for i, lsb := range lsbs {
		reg, err := parseReg(operands[i])
		if err != nil {
			return 0, err
		}
		word, _ = bitpack.NewUnsigned(word, op.RegLen, lsb, uint64(reg))
	}
	return word, nil
}

// Pack the register and literal of a load value.
func packLoadValue(word uint64, operands []string) (uint64, error) {
	if len(operands) != 2 {
		return 0, fmt.Errorf("%w: want register and value", ErrBadOperand)
	}
	reg, err := parseReg(operands[0])
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(strings.ToLower(operands[1]), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadOperand, operands[1])
	}
	word, _ = bitpack.NewUnsigned(word, op.RegLen, op.LvALSB, uint64(reg))
	word, err = bitpack.NewUnsigned(word, op.ValueLen, op.ValueLSB, value)
	if err != nil {
		// Literal wider than 25 bits.
		return 0, err
	}
	return word, nil
}

// Parse a register name of the form R0 through R7.
func parseReg(operand string) (uint32, error) {
	name := strings.ToUpper(strings.TrimSpace(operand))
	if len(name) != 2 || name[0] != 'R' || name[1] < '0' || name[1] > '7' {
		return 0, fmt.Errorf("%w: %s", ErrBadOperand, operand)
	}
	return uint32(name[1] - '0'), nil
}

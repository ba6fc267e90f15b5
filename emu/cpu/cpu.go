/*
   UM: main machine instruction fetch and execute.

   Copyright 2025, Amoses Holton

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/aholton/um/emu/bitpack"
	dis "github.com/aholton/um/emu/disassemble"
	"github.com/aholton/um/emu/memory"
	op "github.com/aholton/um/emu/opcodemap"
	"github.com/aholton/um/util/debug"
)

/*
   The machine has eight 32-bit registers, a program counter and a
   segmented memory. The program runs out of segment 0; the only way the
   running program ever changes is the load-program instruction, which
   swaps an independent duplicate of another segment into place and jumps.

   The fetch loop decodes the top four bits of each word into an opcode
   and dispatches through a function table, the way the instruction router
   of the original machine description lays it out. The word fields are
   pulled out with the same bit-field codec the loader uses to assemble
   words from the program file.

   Fetch reads from a cached slice of segment 0 rather than going through
   the store on every cycle. The cache is refreshed inside load-program,
   which is the only operation that can move segment 0.
*/

const numRegisters = 8

// Fatal machine faults. The fetch path and the operations wrap these with
// the program counter, segment or offset where one applies.
var (
	ErrBadInstruction = errors.New("invalid instruction")
	ErrDivZero        = errors.New("divide by zero")
	ErrSegFault       = errors.New("segmentation fault")
	ErrOutputRange    = errors.New("output value out of range")
	ErrIO             = errors.New("input-output error")
)

// In-band stop from the halt instruction.
var errHalted = errors.New("halted")

// Decoded instruction handed to the operation methods.
type stepInfo struct {
	opcode uint32
	regA   uint32
	regB   uint32
	regC   uint32
	value  uint32 // Literal of the load-value format.
}

type Machine struct {
	regs [numRegisters]uint32
	pc   uint32
	mem  *memory.Store

	// Live storage of segment 0, refreshed by opLoadProgram.
	program []uint32

	in  *bufio.Reader
	out *bufio.Writer

	table [op.NumOpcodes]func(*stepInfo) error

	debugMask int
}

// New builds a machine around the given program image. The program lands
// in segment 0, which is always the first identifier the store hands out.
// Registers and the program counter start at zero.
func New(program []uint32, in io.Reader, out io.Writer) *Machine {
	m := &Machine{
		mem: memory.NewStore(),
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
	}
	id := m.mem.Map(uint32(len(program)))
	if id != 0 {
		panic("program segment not at identifier 0")
	}
	copy(m.mem.Words(0), program)
	m.program = m.mem.Words(0)
	m.createTable()
	return m
}

// SetDebug enables trace output for the given mask bits.
func (m *Machine) SetDebug(mask int) {
	m.debugMask = mask
}

// PC returns the current program counter.
func (m *Machine) PC() uint32 {
	return m.pc
}

// Run executes instructions until halt or a fault. The return is nil on
// halt and the fault otherwise; either way buffered output is flushed so
// every emitted byte is observed before the caller exits.
func (m *Machine) Run() error {
	for {
		err := m.step()
		if err == nil {
			continue
		}
		flushErr := m.out.Flush()
		if errors.Is(err, errHalted) {
			if flushErr != nil {
				return fmt.Errorf("%w: flushing output: %v", ErrIO, flushErr)
			}
			return nil
		}
		return err
	}
}

// Fetch, decode and execute one instruction.
func (m *Machine) step() error {
	if m.pc >= uint32(len(m.program)) {
		return fmt.Errorf("%w: fetch at %d beyond segment 0", ErrSegFault, m.pc)
	}
	word := m.program[m.pc]

	var step stepInfo
	step.opcode = uint32(bitpack.GetUnsigned(uint64(word), op.OpcodeLen, op.OpcodeLSB))
	if step.opcode >= op.NumOpcodes {
		return fmt.Errorf("%w: opcode %d at %d", ErrBadInstruction, step.opcode, m.pc)
	}
	if step.opcode == op.OpLV {
		step.regA = uint32(bitpack.GetUnsigned(uint64(word), op.RegLen, op.LvALSB))
		step.value = uint32(bitpack.GetUnsigned(uint64(word), op.ValueLen, op.ValueLSB))
	} else {
		step.regA = uint32(bitpack.GetUnsigned(uint64(word), op.RegLen, op.ALSB))
		step.regB = uint32(bitpack.GetUnsigned(uint64(word), op.RegLen, op.BLSB))
		step.regC = uint32(bitpack.GetUnsigned(uint64(word), op.RegLen, op.CLSB))
	}

	if m.debugMask&debug.DebugInst != 0 {
		debug.Debugf("CPU", m.debugMask, debug.DebugInst,
			"%08d: %08x %s", m.pc, word, dis.Disassemble(word))
	}

	m.pc++
	return m.table[step.opcode](&step)
}

// Create function table.
func (m *Machine) createTable() {
	m.table = [op.NumOpcodes]func(*stepInfo) error{
		op.OpCMOV:  m.opCmov,
		op.OpSLOAD: m.opSload,
		op.OpSSTOR: m.opSstor,
		op.OpADD:   m.opAdd,
		op.OpMUL:   m.opMul,
		op.OpDIV:   m.opDiv,
		op.OpNAND:  m.opNand,
		op.OpHALT:  m.opHalt,
		op.OpMAP:   m.opMap,
		op.OpUNMAP: m.opUnmap,
		op.OpOUT:   m.opOutput,
		op.OpIN:    m.opInput,
		op.OpLDPRG: m.opLoadProgram,
		op.OpLV:    m.opLoadValue,
	}
}

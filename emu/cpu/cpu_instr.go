/*
   UM: the fourteen machine operations.

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
	"errors"
	"fmt"
	"io"

	"github.com/aholton/um/util/debug"
)

// End-of-input sentinel delivered by the input instruction.
const eofWord = 0xFFFFFFFF

// Conditional move.
func (m *Machine) opCmov(step *stepInfo) error {
	if m.regs[step.regC] != 0 {
		m.regs[step.regA] = m.regs[step.regB]
	}
	return nil
}

// Segmented load.
func (m *Machine) opSload(step *stepInfo) error {
	value, fault := m.mem.GetWord(m.regs[step.regB], m.regs[step.regC])
	if fault {
		return fmt.Errorf("%w: load segment %d offset %d",
			ErrSegFault, m.regs[step.regB], m.regs[step.regC])
	}
	m.regs[step.regA] = value
	return nil
}

// Segmented store.
func (m *Machine) opSstor(step *stepInfo) error {
	if m.mem.PutWord(m.regs[step.regA], m.regs[step.regB], m.regs[step.regC]) {
		return fmt.Errorf("%w: store segment %d offset %d",
			ErrSegFault, m.regs[step.regA], m.regs[step.regB])
	}
	return nil
}

// Addition, modulo 2^32.
func (m *Machine) opAdd(step *stepInfo) error {
	m.regs[step.regA] = m.regs[step.regB] + m.regs[step.regC]
	return nil
}

// Multiplication, modulo 2^32.
func (m *Machine) opMul(step *stepInfo) error {
	m.regs[step.regA] = m.regs[step.regB] * m.regs[step.regC]
	return nil
}

// Unsigned division.
func (m *Machine) opDiv(step *stepInfo) error {
	if m.regs[step.regC] == 0 {
		return ErrDivZero
	}
	m.regs[step.regA] = m.regs[step.regB] / m.regs[step.regC]
	return nil
}

// Bitwise nand.
func (m *Machine) opNand(step *stepInfo) error {
	m.regs[step.regA] = ^(m.regs[step.regB] & m.regs[step.regC])
	return nil
}

// Halt.
func (m *Machine) opHalt(_ *stepInfo) error {
	return errHalted
}

// Map a segment of C words, identifier into B.
func (m *Machine) opMap(step *stepInfo) error {
	id := m.mem.Map(m.regs[step.regC])
	m.regs[step.regB] = id
	debug.Debugf("MEM", m.debugMask, debug.DebugMem,
		"map %d words -> segment %d", m.regs[step.regC], id)
	return nil
}

// Unmap segment C. The program segment can never be the target.
func (m *Machine) opUnmap(step *stepInfo) error {
	id := m.regs[step.regC]
	if id == 0 {
		return fmt.Errorf("%w: unmap of segment 0", ErrSegFault)
	}
	if m.mem.Unmap(id) {
		return fmt.Errorf("%w: unmap of segment %d", ErrSegFault, id)
	}
	debug.Debugf("MEM", m.debugMask, debug.DebugMem, "unmap segment %d", id)
	return nil
}

// Write the low byte of C to output. Anything above one byte is a fault.
func (m *Machine) opOutput(step *stepInfo) error {
	value := m.regs[step.regC]
	if value > 0xFF {
		return fmt.Errorf("%w: %d", ErrOutputRange, value)
	}
	if err := m.out.WriteByte(byte(value)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	debug.Debugf("IO", m.debugMask, debug.DebugIO, "out %02x", value)
	return nil
}

// Read one byte of input into C. End of input is not a fault; it loads
// the all-ones word.
func (m *Machine) opInput(step *stepInfo) error {
	b, err := m.in.ReadByte()
	switch {
	case err == nil:
		m.regs[step.regC] = uint32(b)
	case errors.Is(err, io.EOF):
		m.regs[step.regC] = eofWord
	default:
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	debug.Debugf("IO", m.debugMask, debug.DebugIO, "in %08x", m.regs[step.regC])
	return nil
}

// Duplicate segment B into segment 0 and jump to C. When B holds zero
// the program is already in place and only the jump happens. The fetch
// cache is refreshed here since this is the one operation that can move
// segment 0.
func (m *Machine) opLoadProgram(step *stepInfo) error {
	src := m.regs[step.regB]
	if m.mem.DupIntoZero(src) {
		return fmt.Errorf("%w: load program from segment %d", ErrSegFault, src)
	}
	m.program = m.mem.Words(0)
	m.pc = m.regs[step.regC]
	debug.Debugf("MEM", m.debugMask, debug.DebugMem,
		"load program segment %d pc %d", src, m.pc)
	return nil
}

// Load the 25-bit literal into A.
func (m *Machine) opLoadValue(step *stepInfo) error {
	m.regs[step.regA] = step.value
	return nil
}

/*
 * UM - Log trace data to a file.
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

package debug

import (
	"fmt"
	"io"
	"strings"
)

// Trace categories. A run's mask is the or of the categories it wants.
const (
	DebugInst = 1 << iota // Instruction trace
	DebugMem              // Segment map/unmap and program swaps
	DebugIO               // Byte input and output
)

var traceFile io.Writer

// SetFile directs trace output to w. Tracing is off until this is called.
func SetFile(w io.Writer) {
	traceFile = w
}

// ParseMask turns a string of category letters (i, m, o) into a mask.
func ParseMask(letters string) (int, error) {
	mask := 0
	for _, c := range strings.ToLower(letters) {
		switch c {
		case 'i':
			mask |= DebugInst
		case 'm':
			mask |= DebugMem
		case 'o':
			mask |= DebugIO
		default:
			return 0, fmt.Errorf("unknown trace category: %c", c)
		}
	}
	return mask, nil
}

// Generic trace message.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if traceFile == nil || (mask&level) == 0 {
		return
	}
	fmt.Fprintf(traceFile, module+": "+format+"\n", a...)
}

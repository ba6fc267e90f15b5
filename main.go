/*
 * UM - Main process.
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/aholton/um/emu/cpu"
	dis "github.com/aholton/um/emu/disassemble"
	"github.com/aholton/um/emu/loader"
	"github.com/aholton/um/util/debug"
	logger "github.com/aholton/um/util/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTraceFile := getopt.StringLong("trace", 't', "", "Trace file")
	optMask := getopt.StringLong("mask", 'm', "imo", "Trace categories: i, m, o")
	optDump := getopt.BoolLong("dump", 'D', "Disassemble the program and exit")
	optVerbose := getopt.BoolLong("verbose", 'v', "Echo debug log to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return 0
	}

	var logSink io.Writer
	if *optLogFile != "" {
		logFile, err := os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		defer logFile.Close()
		logSink = logFile
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(logSink, &slog.HandlerOptions{Level: programLevel}, *optVerbose))
	slog.SetDefault(log)

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: um <program-file>")
		getopt.Usage()
		return 1
	}

	program, err := loader.ReadProgram(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	log.Debug("Program loaded", "file", args[0], "words", len(program))

	if *optDump {
		for offset, word := range program {
			fmt.Printf("%08d: %s\n", offset, dis.Disassemble(word))
		}
		return 0
	}

	mask := 0
	if *optTraceFile != "" {
		traceFile, err := os.Create(*optTraceFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		defer traceFile.Close()
		debug.SetFile(traceFile)

		mask, err = debug.ParseMask(*optMask)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}

	machine := cpu.New(program, os.Stdin, os.Stdout)
	machine.SetDebug(mask)

	if err := machine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		log.Debug("Machine fault", "pc", machine.PC(), "error", err.Error())
		return 2
	}
	log.Debug("Machine halted", "pc", machine.PC())
	return 0
}

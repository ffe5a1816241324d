package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/vm"
)

// runREPL reads one line at a time from in, compiling and running each
// against one reused VM — the object list and operand stack persist
// across lines per spec.md §5. After each line the value left on the
// stack (if any) is printed without requiring an explicit 'echo', then
// the stack is reset to empty before the next line is read.
func runREPL(in io.Reader, out io.Writer, logger *slog.Logger) error {
	machine := vm.New(out, vm.WithLogger(logger))
	scanner := bufio.NewScanner(in)
	lineNo := 0

	fmt.Fprintln(out, "dauw REPL — one line at a time, Ctrl-D to exit")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		src := source.New(fmt.Sprintf("<repl:%d>", lineNo), line)
		_, code, collector := pipeline(src, logger)
		if collector.HasErrors() {
			fmt.Fprint(out, collector.Format(src))
			continue
		}

		if _, diag := machine.Run(code); diag != nil {
			fmt.Fprintln(out, diag.Error())
			machine.ResetStack()
			continue
		}

		if v, ok := machine.Top(); ok {
			fmt.Fprintln(out, v.Text(machine.Arena()))
		}
		machine.ResetStack()
	}
	return scanner.Err()
}

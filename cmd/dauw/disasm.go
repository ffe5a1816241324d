package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/source"
)

// disassembleFile compiles path without running it and prints
// bytecode.Disassemble's listing, the Go rendition of the original's
// src/dauw/backend/disassemble.cpp debug output.
func disassembleFile(path string, logger *slog.Logger) (int, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return 74, fmt.Errorf("reading %s: %w", path, err)
	}

	src := source.New(path, string(text))
	_, code, collector := pipeline(src, logger)
	if collector.HasErrors() {
		fmt.Fprint(os.Stderr, collector.Format(src))
		return 65, fmt.Errorf("%s failed to compile", path)
	}

	fmt.Print(bytecode.Disassemble(code))
	return 0, nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/vm"
)

// runFile lexes, parses, resolves, and compiles path, using the
// source-hash bytecode cache under cfg.CacheDir when a matching entry
// already exists (spec.md's VM recompiles nothing it doesn't have to
// for a CLI run), then executes the result on a fresh VM. It returns
// the process exit code spec.md §6 calls for.
func runFile(path string, cfg config, logger *slog.Logger, out io.Writer) (int, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return 74, fmt.Errorf("reading %s: %w", path, err)
	}

	code, err := loadOrCompile(path, text, cfg, logger)
	if err != nil {
		return 65, err
	}
	if code == nil {
		// Diagnostics were already printed by loadOrCompile.
		return 65, fmt.Errorf("%s failed to compile", path)
	}

	machine := vm.New(out, vm.WithLogger(logger))
	state, diag := machine.Run(code)
	switch state {
	case vm.Success:
		return 0, nil
	case vm.RuntimeError, vm.CompileError:
		return exitCodeFor(diag.Kind), diag
	default:
		return 70, fmt.Errorf("vm left in unexpected state %s", state)
	}
}

// loadOrCompile returns cached bytecode for text if a cache entry
// exists, else runs the static pipeline and saves the result for next
// time. A nil Code with a nil error means diagnostics were reported
// and already printed; the caller should treat that as exit code 65.
func loadOrCompile(path string, text []byte, cfg config, logger *slog.Logger) (*bytecode.Code, error) {
	key := bytecode.CacheKey(text)
	if cached, ok, err := bytecode.LoadCache(cfg.CacheDir, key); err == nil && ok {
		return cached, nil
	}

	src := source.New(path, string(text))
	_, code, collector := pipeline(src, logger)
	if collector.HasErrors() {
		fmt.Fprint(os.Stderr, collector.Format(src))
		return nil, nil
	}

	if err := bytecode.SaveCache(cfg.CacheDir, key, code); err != nil {
		// A cache write failure should not fail the run itself.
		fmt.Fprintf(os.Stderr, "warning: could not save bytecode cache: %s\n", err)
	}
	return code, nil
}

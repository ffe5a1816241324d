// Command dauw is the CLI entry point for the language: run a script,
// drop into a REPL, print a bytecode disassembly, or watch a script
// file and re-run it on every save (spec.md §6's external interface).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		debug      bool
		noColor    bool
	)

	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:           "dauw",
		Short:         "Run dauw programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "dauw.json", "path to a dauw.json config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug tracing of the lex/parse/compile/vm pipeline")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")

	exitCode := 0

	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Compile and execute a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			code, err := runFile(args[0], cfg, logger, os.Stdout)
			exitCode = code
			return err
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runREPL(os.Stdin, os.Stdout, logger); err != nil {
				exitCode = 70
				return err
			}
			return nil
		},
	}

	disasmCmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Compile a script and print its bytecode listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := disassembleFile(args[0], logger)
			exitCode = code
			return err
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-run a script every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			code, err := watchFile(args[0], cfg, logger, os.Stdout)
			exitCode = code
			return err
		},
	}

	rootCmd.AddCommand(runCmd, replCmd, disasmCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

// watchFile runs path once, then watches it (and re-runs it on every
// write) until the process is interrupted. Each run gets a fresh VM,
// mirroring a user repeatedly invoking "dauw run" by hand; only the
// fsnotify plumbing is new.
func watchFile(path string, cfg config, logger *slog.Logger, out interface {
	Write([]byte) (int, error)
},
) (int, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return 70, fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return 74, fmt.Errorf("watching %s: %w", path, err)
	}

	fmt.Fprintf(out, "watching %s — Ctrl-C to stop\n", path)
	if code, err := runFile(path, cfg, logger, out); err != nil {
		fmt.Fprintln(out, err)
		_ = code
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0, nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Fprintf(out, "\n--- %s changed, re-running ---\n", path)
			if code, err := runFile(path, cfg, logger, out); err != nil {
				fmt.Fprintln(out, err)
				_ = code
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return 0, nil
			}
			fmt.Fprintf(out, "watch error: %s\n", werr)
		}
	}
}

// Package vm implements dauw's stack-based virtual machine (spec.md
// §4.5): a single-threaded fetch-execute loop over one Code's byte
// vector, an operand stack of boxed Values, and the heap arena that
// owns any allocated strings. There are no frames, globals, or call
// stack — the core instruction set is straight-line plus NOP.
package vm

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/heap"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/value"
)

// State is the VM's per-run state machine (spec.md §4.5): Idle →
// Running → {Success, RuntimeError, CompileError}.
type State uint8

const (
	Idle State = iota
	Running
	Success
	RuntimeError
	CompileError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Success:
		return "Success"
	case RuntimeError:
		return "RuntimeError"
	case CompileError:
		return "CompileError"
	default:
		return "Unknown"
	}
}

// maxStackDepth bounds the operand stack; exceeding it is the host
// allocator's analogue of "cannot grow the stack" (spec.md §4.5).
const maxStackDepth = 1 << 16

// VM runs one Code at a time against a persistent heap arena and
// operand stack. A host may reuse a VM across runs (spec.md §5); the
// arena and stack then persist and the host is responsible for
// ordering.
type VM struct {
	arena  *heap.Arena
	stack  []value.Value
	out    io.Writer
	state  State
	logger *slog.Logger
}

// Option configures an optional VM behavior.
type Option func(*VM)

// WithLogger attaches a debug logger; nil (the default) disables
// tracing entirely.
func WithLogger(logger *slog.Logger) Option {
	return func(vm *VM) { vm.logger = logger }
}

// New returns an Idle VM that writes ECHO output to out.
func New(out io.Writer, opts ...Option) *VM {
	vm := &VM{arena: &heap.Arena{}, out: out, state: Idle}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *VM) debugf(format string, args ...any) {
	if vm.logger != nil {
		vm.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// Arena exposes the VM's heap arena, e.g. so a host can box a string
// constant before a run via AllocateString, or inspect live objects.
func (vm *VM) Arena() *heap.Arena { return vm.arena }

// State reports the outcome of the most recently completed run.
func (vm *VM) State() State { return vm.state }

// StackDepth reports the current operand stack depth, mainly for
// tests asserting the VM-safety property (spec.md §8).
func (vm *VM) StackDepth() int { return len(vm.stack) }

// Top returns the value currently on top of the operand stack, for a
// host (the REPL) that wants to read back a line's result without an
// explicit ECHO. ok is false on an empty stack.
func (vm *VM) Top() (v value.Value, ok bool) {
	if len(vm.stack) == 0 {
		return 0, false
	}
	return vm.stack[len(vm.stack)-1], true
}

// ResetStack discards every value currently on the operand stack,
// leaving the arena and state untouched. The REPL calls this between
// lines so one line's leftover stack depth never leaks into the next.
func (vm *VM) ResetStack() {
	vm.stack = vm.stack[:0]
}

// AllocateString links a new heap String into the VM's arena and
// returns a boxed reference to it (spec.md §4.5's vm.allocate_string).
// No core instruction emits this path today — string literals are an
// open compiler gap — but a host embedding the VM directly may still
// construct string Values this way.
func (vm *VM) AllocateString(data []byte) (value.Value, error) {
	s, err := heap.NewString(data)
	if err != nil {
		return 0, err
	}
	idx := vm.arena.Alloc(s)
	return value.HeapRef(idx), nil
}

// Run executes code from ip 0 to completion. It returns the terminal
// state and, for RuntimeError or CompileError, the diagnostic that
// caused it.
func (vm *VM) Run(code *bytecode.Code) (result State, reported *diagnostic.Diagnostic) {
	vm.state = Running
	vm.debugf("run: Idle -> Running, %d bytes", len(code.Bytes))
	defer func() {
		if r := recover(); r != nil {
			vm.state = CompileError
			vm.debugf("run: Running -> CompileError, recovered panic: %v", r)
			reported = &diagnostic.Diagnostic{
				Kind:    diagnostic.CompilerError,
				Message: fmt.Sprintf("unexpected VM panic: %v", r),
			}
			result = vm.state
		}
	}()

	if err := vm.execute(code); err != nil {
		vm.state = RuntimeError
		vm.debugf("run: Running -> RuntimeError, %s: %s", err.Kind, err.Message)
		return vm.state, err
	}
	vm.state = Success
	vm.debugf("run: Running -> Success")
	return vm.state, nil
}

func toSourceLoc(l bytecode.Location) source.Location {
	return source.Location{Line: l.Line, Col: l.Col}
}

func (vm *VM) fail(kind diagnostic.Kind, loc bytecode.Location, format string, args ...any) *diagnostic.Diagnostic {
	return &diagnostic.Diagnostic{Kind: kind, Location: toSourceLoc(loc), Message: fmt.Sprintf(format, args...)}
}

func (vm *VM) push(v value.Value, loc bytecode.Location) *diagnostic.Diagnostic {
	if len(vm.stack) >= maxStackDepth {
		return vm.fail(diagnostic.StackOverflow, loc, "operand stack exceeded its maximum depth of %d", maxStackDepth)
	}
	vm.stack = append(vm.stack, v)
	return nil
}

func (vm *VM) pop(loc bytecode.Location) (value.Value, *diagnostic.Diagnostic) {
	if len(vm.stack) == 0 {
		return 0, vm.fail(diagnostic.StackUnderflow, loc, "popped from an empty operand stack")
	}
	top := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return top, nil
}

// execute is the fetch-execute loop (spec.md §4.5). ip starts at 0 and
// advances past each opcode byte and any in-band operand byte before
// dispatch.
func (vm *VM) execute(code *bytecode.Code) *diagnostic.Diagnostic {
	ip := 0
	for ip < len(code.Bytes) {
		op := bytecode.Op(code.Bytes[ip])
		loc := code.Locations[ip]
		ip++

		var operand byte
		if op.HasOperand() {
			operand = code.Bytes[ip]
			ip++
		}

		vm.debugf("dispatch %s at %s, stack depth %d", op, loc, len(vm.stack))
		if err := vm.step(code, op, operand, loc); err != nil {
			return err
		}
	}
	return nil
}

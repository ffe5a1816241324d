package vm

import (
	"io"

	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/value"
)

// echo writes v's canonical textual form followed by a newline
// (spec.md §4.5) and reports I/O failure as a CompilerError, since the
// closed error-kind set has no dedicated I/O kind for the VM's own
// write path.
func (vm *VM) echo(v value.Value, loc bytecode.Location) *diagnostic.Diagnostic {
	if _, err := io.WriteString(vm.out, v.Text(vm.arena)+"\n"); err != nil {
		return vm.fail(diagnostic.CompilerError, loc, "write failed: %s", err)
	}
	return nil
}

package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders c as a human-readable listing, one instruction
// per line, in the style objdump/javap produce: offset, mnemonic, and
// (for a constant-load instruction) the index plus the constant's own
// textual form. This is a supplemental CLI feature, not exercised by
// the VM itself.
func Disassemble(c *Code) string {
	var b strings.Builder
	ip := 0
	for ip < len(c.Bytes) {
		op := Op(c.Bytes[ip])
		if op.HasOperand() {
			idx := c.Bytes[ip+1]
			fmt.Fprintf(&b, "%04d %-8s %3d   ; %s\n", ip, op, idx, constantText(c, idx))
			ip += 2
		} else {
			fmt.Fprintf(&b, "%04d %-8s\n", ip, op)
			ip++
		}
	}
	return b.String()
}

func constantText(c *Code, idx byte) string {
	if int(idx) >= len(c.Constants) {
		return "<out of range>"
	}
	return c.Constants[idx].String()
}

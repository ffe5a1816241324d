// Package heap implements the VM's heap-managed objects: a runtime tag
// plus payload for each object kind, and the arena the VM owns them in.
//
// Only Kind == String is exercised by the core today; Sequence and
// Record are reserved tags for the unimplemented backend paths
// (spec.md §1, §9 open questions 5).
package heap

// Kind is the runtime tag of a heap object.
type Kind uint8

const (
	KindString Kind = iota
	KindSequence
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindSequence:
		return "Sequence"
	case KindRecord:
		return "Record"
	default:
		return "Unknown"
	}
}

// Object is any value living in the VM's arena.
type Object interface {
	Kind() Kind
}

// Arena owns every live heap object for one VM. Objects are appended
// and never individually freed mid-run (spec.md §4.5: "no reclamation
// occurs mid-run"); the whole arena is dropped when the VM is
// destroyed, which is the only release path the core requires.
type Arena struct {
	objects []Object
}

// Alloc links obj into the arena and returns its stable index, which is
// what a NaN-boxed heap Value's payload holds.
func (a *Arena) Alloc(obj Object) uint32 {
	idx := uint32(len(a.objects))
	a.objects = append(a.objects, obj)
	return idx
}

// Get returns the object at idx. Panics if idx is out of range, which
// indicates a corrupt Value and is a VM bug rather than a user error.
func (a *Arena) Get(idx uint32) Object {
	return a.objects[idx]
}

// Len reports how many objects the arena has ever allocated.
func (a *Arena) Len() int { return len(a.objects) }

// Reset drops every object. The REPL does not call it; its arena keeps
// every object across lines.
func (a *Arena) Reset() { a.objects = nil }

// Package object implements Falcon's heap object kinds (String, Function,
// Upvalue, Closure, Class, Instance, BoundMethod, List, Map, Native) and the
// open-addressed hash table used for globals, the string-intern table,
// class method tables, and instance fields (spec §3, §4.7).
package object

import "github.com/filipefalcaos/falcon/lang/value"

// Allocator is implemented by the garbage collector (package gc). The
// constructors in this package do not allocate through it: whoever creates
// an object hands it to Track afterwards, and Intern creates strings, so
// the object is linked into the heap list and accounted against the GC's
// byte budget without this package importing gc (gc already imports object).
type Allocator interface {
	// Track links o into the heap list and charges size against the
	// bytes-allocated counter, then runs a collection if the allocator is
	// due (or in stress-GC mode).
	Track(o value.Obj, size int)
	// Intern returns the canonical *String for the given bytes, allocating
	// and tracking a new one only if an equal string isn't already interned.
	Intern(s []byte) *String
}

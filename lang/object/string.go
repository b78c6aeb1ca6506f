package object

import "github.com/filipefalcaos/falcon/lang/value"

// String is the heap representation of a Falcon string. Strings are always
// interned (spec §3 invariant): equal byte sequences resolve to the same
// *String, so string equality is pointer equality.
type String struct {
	value.ObjHeader
	Bytes []byte
	Hash  uint32
}

var _ value.Obj = (*String)(nil)

// Hash computes the 32-bit FNV-1a hash used to key the intern table and
// every Map whose keys are strings (spec §4.1, §4.7).
func Hash(b []byte) uint32 {
	const (
		offsetBasis = 2166136261
		prime       = 16777619
	)
	h := uint32(offsetBasis)
	for _, c := range b {
		h ^= uint32(c)
		h *= prime
	}
	return h
}

// NewString allocates a brand-new (not-yet-interned) string object. Only
// package gc calls this directly, as part of implementing Allocator.Intern;
// every other caller must go through Allocator.Intern to preserve the
// one-object-per-distinct-string invariant.
func NewString(b []byte) *String {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &String{Bytes: cp, Hash: Hash(cp)}
}

func (s *String) ObjKind() value.ObjKind  { return value.ObjString }
func (s *String) String() string          { return string(s.Bytes) }
func (s *String) Header() *value.ObjHeader { return &s.ObjHeader }
func (s *String) Trace(func(value.Obj))   {}
func (s *String) Size() int               { return 24 + len(s.Bytes) }
func (s *String) Len() int                { return len(s.Bytes) }

// Equal reports byte-for-byte equality, used only by the interning lookup
// (find_string in spec §4.7) — everywhere else string equality is identity.
func (s *String) Equal(b []byte) bool {
	if len(s.Bytes) != len(b) {
		return false
	}
	for i := range s.Bytes {
		if s.Bytes[i] != b[i] {
			return false
		}
	}
	return true
}

// Compare implements the byte-lexicographic ordering spec §4.3/§4.8 requires
// for string '<'/'>'.
func (s *String) Compare(o *String) int {
	a, b := s.Bytes, o.Bytes
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

package object

import (
	"fmt"
	"strings"

	"github.com/filipefalcaos/falcon/lang/value"
)

const (
	mapInitialCapacity = 8
	mapMaxLoadFactor   = 0.75
)

type mapEntry struct {
	key *String // nil = empty or tombstone
	val value.Value
}

// Map is Falcon's open-addressed, linearly-probed hash table (spec §4.7). It
// backs every keyed structure in the runtime: the globals table, the
// string-intern table, a Class's method table, and an Instance's field
// table — never a third-party generic map, so the collector can walk its
// buckets directly (see DESIGN.md for why dolthub/swiss isn't reused here).
type Map struct {
	value.ObjHeader
	entries  []mapEntry
	count    int // live entries + tombstones
	liveOnly int // live entries only, for Len()
}

var (
	_ value.Obj = (*Map)(nil)
)

// NewMap returns an empty map with no backing array yet allocated; the first
// Set call grows it to mapInitialCapacity.
func NewMap() *Map { return &Map{} }

func (m *Map) ObjKind() value.ObjKind   { return value.ObjMap }
func (m *Map) Header() *value.ObjHeader { return &m.ObjHeader }
func (m *Map) Size() int                { return 24 + len(m.entries)*32 }
func (m *Map) Len() int                 { return m.liveOnly }

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for _, e := range m.entries {
		if e.key == nil {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%q: %s", e.key.String(), value.ToString(e.val))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Trace marks every live key and value, per spec §4.5 step 2.
func (m *Map) Trace(mark func(value.Obj)) {
	for _, e := range m.entries {
		if e.key == nil {
			continue
		}
		mark(e.key)
		if e.val.IsObj() {
			mark(e.val.AsObj())
		}
	}
}

// findEntry implements spec §4.7's probe rule: return the first matching
// slot, else the first tombstone seen, else the first empty slot — with a
// tombstone reported only if no match is found later in the probe chain.
func findEntry(entries []mapEntry, key *String) int {
	cap := len(entries)
	idx := int(key.Hash) % cap
	var tombstone = -1
	for {
		e := &entries[idx]
		if e.key == nil {
			if e.val.IsNull() {
				// truly empty
				if tombstone != -1 {
					return tombstone
				}
				return idx
			}
			// tombstone: key=nil, val=Bool(true)
			if tombstone == -1 {
				tombstone = idx
			}
		} else if e.key == key {
			return idx
		}
		idx = (idx + 1) % cap
	}
}

func (m *Map) grow(newCap int) {
	old := m.entries
	m.entries = make([]mapEntry, newCap)
	for i := range m.entries {
		m.entries[i].val = value.Null
	}
	m.count = 0
	m.liveOnly = 0
	for _, e := range old {
		if e.key == nil {
			continue
		}
		idx := findEntry(m.entries, e.key)
		m.entries[idx] = e
		m.count++
		m.liveOnly++
	}
}

// Get looks up key, returning (value, found). A missing key returns
// (Null, false); callers implementing map-index-read semantics (spec §4.3:
// "missing key on read yields Null, no error") treat !found as Null too.
func (m *Map) Get(key *String) (value.Value, bool) {
	if len(m.entries) == 0 {
		return value.Null, false
	}
	idx := findEntry(m.entries, key)
	e := &m.entries[idx]
	if e.key == nil {
		return value.Null, false
	}
	return e.val, true
}

// Set inserts or updates key -> val, returning true if key is new. Growth is
// triggered when the load factor would exceed 0.75 after the insert.
func (m *Map) Set(key *String, val value.Value) bool {
	if len(m.entries) == 0 || float64(m.count+1) > float64(len(m.entries))*mapMaxLoadFactor {
		newCap := mapInitialCapacity
		if len(m.entries) > 0 {
			newCap = len(m.entries) * 2
		}
		m.grow(newCap)
	}

	idx := findEntry(m.entries, key)
	e := &m.entries[idx]
	isNew := e.key == nil
	if isNew && e.val.IsNull() {
		// only a truly-empty slot (not a reused tombstone) grows the live count
		m.count++
	}
	if isNew {
		m.liveOnly++
	}
	e.key = key
	e.val = val
	return isNew
}

// Delete marks key's slot as a tombstone (key=nil, val=Bool(true)) and
// reports whether anything was removed.
func (m *Map) Delete(key *String) bool {
	if len(m.entries) == 0 {
		return false
	}
	idx := findEntry(m.entries, key)
	e := &m.entries[idx]
	if e.key == nil {
		return false
	}
	e.key = nil
	e.val = value.Bool(true)
	m.liveOnly--
	return true
}

// FindString is the interning lookup (spec §4.7): matches length, then hash,
// then does a byte comparison, without constructing a *String first.
func (m *Map) FindString(b []byte, hash uint32) *String {
	if len(m.entries) == 0 {
		return nil
	}
	cap := len(m.entries)
	idx := int(hash) % cap
	for {
		e := &m.entries[idx]
		if e.key == nil && e.val.IsNull() {
			return nil
		}
		if e.key != nil && e.key.Hash == hash && e.key.Equal(b) {
			return e.key
		}
		idx = (idx + 1) % cap
	}
}

// Keys returns the live keys in bucket order (not insertion order).
func (m *Map) Keys() []*String {
	out := make([]*String, 0, m.liveOnly)
	for _, e := range m.entries {
		if e.key != nil {
			out = append(out, e.key)
		}
	}
	return out
}

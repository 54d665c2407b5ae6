package bencode

import (
	"hash/maphash"
	"reflect"
	"sync"

	"github.com/aristanetworks/gomap"
)

// structField is the adapter's precomputed per-field metadata: wire name,
// the omitempty flag, and the field's index for reflect.Value.Field.
type structField struct {
	name      string
	omitempty bool
	index     int
}

// structInfo is the cached, tag-parsed shape of one struct type.
type structInfo struct {
	fields []structField
	// byName supports Unmarshal's dict-key -> field lookup.
	byName map[string]int // wire name -> index into fields
}

// typeCache memoizes structInfo per reflect.Type so repeated Marshal/
// Unmarshal calls on the same struct type don't re-walk its tags every
// time. Keyed on reflect.Type (already comparable), backed by gomap
// instead of a builtin map: gomap's Python-equality Dict has no place in
// bencode's insertion-ordered Map, but gomap's actual job underneath
// that (a generic hash map with a pluggable hash) fits this cache well.
//
// gomap itself is not safe for concurrent access, and Marshal/Unmarshal
// can run from many goroutines at once (for example, concurrent
// metainfo.Parse calls), so every access goes through typeCacheMu.
var typeCacheSeed = maphash.MakeSeed()

var (
	typeCacheMu sync.RWMutex
	typeCache   = gomap.NewHint[reflect.Type, *structInfo](0, typeEqual, typeHash)
)

func typeEqual(a, b reflect.Type) bool { return a == b }

func typeHash(seed maphash.Seed, t reflect.Type) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(t.PkgPath())
	h.WriteByte(0)
	h.WriteString(t.Name())
	return h.Sum64()
}

func structInfoFor(t reflect.Type) *structInfo {
	typeCacheMu.RLock()
	info, ok := typeCache.Get(t)
	typeCacheMu.RUnlock()
	if ok {
		return info
	}

	info = &structInfo{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name, omitempty, skip := parseTag(sf)
		if skip {
			continue
		}
		idx := len(info.fields)
		info.fields = append(info.fields, structField{name: name, omitempty: omitempty, index: i})
		info.byName[name] = idx
	}

	typeCacheMu.Lock()
	typeCache.Set(t, info)
	typeCacheMu.Unlock()
	return info
}

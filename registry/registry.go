package registry

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/trace"
)

var indexSuffix = regexp.MustCompile(`\[\d+\]$`)

// Entry is a registered trace under its current display name.
type Entry struct {
	Name     string
	Base     string
	Index    int
	Collided bool
	Trace    *trace.Trace
}

// Binding pairs a requested name with the trace it resolved to. Trace is nil when
// nothing is registered under Name.
type Binding struct {
	Name  string
	Trace *trace.Trace
}

type entry struct {
	base     string
	index    int
	collided bool
	bare     bool // suffix removed by Cleanup
	tr       *trace.Trace
}

func (e *entry) key() string {
	if e.bare && !e.collided {
		return e.base
	}

	return suffixed(e.base, e.index)
}

func (e *entry) export() Entry {
	return Entry{Name: e.key(), Base: e.base, Index: e.index, Collided: e.collided, Trace: e.tr}
}

func suffixed(base string, index int) string {
	return base + "[" + strconv.Itoa(index) + "]"
}

// Registry maps display names to traces.
//
// Every trace is registered as name[i] with the lowest free index. When a base
// name is registered more than once all entries sharing it are marked collided
// and keep their suffix; Cleanup removes the suffix from the others. Registry is
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	byName  map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*entry)}
}

// ValidateName reports whether name can be registered: it must be non-empty,
// contain no whitespace (Select splits on it) and not end in a bracketed index.
func ValidateName(name string) error {
	if name == "" || strings.ContainsFunc(name, unicode.IsSpace) || indexSuffix.MatchString(name) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidTraceName, name)
	}

	return nil
}

// BaseName strips a trailing bracketed index from a display name, so
// BaseName("clk[1]") is "clk".
func BaseName(name string) string {
	return indexSuffix.ReplaceAllString(name, "")
}

// Register adds tr under name and returns the display name it was given. The
// trace is renamed to match.
func (r *Registry) Register(name string, tr *trace.Trace) (string, error) {
	if tr == nil {
		return "", errs.ErrNilTrace
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taken := make(map[int]bool)
	for _, e := range r.entries {
		if e.base != name {
			continue
		}
		taken[e.index] = true
		if !e.collided {
			old := e.key()
			e.collided = true
			r.rekey(e, old)
		}
	}

	e := &entry{base: name, collided: len(taken) > 0, tr: tr}
	for taken[e.index] {
		e.index++
	}

	key := e.key()
	tr.SetName(key)
	r.entries = append(r.entries, e)
	r.byName[key] = e

	return key, nil
}

// Cleanup strips the index suffix from every entry whose base name is unique and
// returns how many entries were renamed. Calling it again is a no-op until new
// entries are registered.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	renamed := 0
	for _, e := range r.entries {
		if e.collided || e.bare {
			continue
		}
		old := e.key()
		e.bare = true
		r.rekey(e, old)
		renamed++
	}

	return renamed
}

func (r *Registry) rekey(e *entry, old string) {
	key := e.key()
	if key == old {
		return
	}
	delete(r.byName, old)
	r.byName[key] = e
	e.tr.SetName(key)
}

// Lookup returns the trace registered under a display name.
func (r *Registry) Lookup(name string) (*trace.Trace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}

	return e.tr, true
}

// Get is Lookup with an ErrTraceNotFound error for misses.
func (r *Registry) Get(name string) (*trace.Trace, error) {
	tr, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrTraceNotFound, name)
	}

	return tr, nil
}

// List returns every entry sorted by base name, then index. An entry without a
// suffix sorts before suffixed ones.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted()
}

func (r *Registry) sorted() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.export()
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Base, b.Base), cmp.Compare(sortIndex(a), sortIndex(b)))
	})

	return out
}

func sortIndex(e Entry) int {
	if e.Name == e.Base {
		return -1
	}

	return e.Index
}

// Names returns the display names in List order.
func (r *Registry) Names() []string {
	entries := r.List()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	return names
}

// Traces returns the registered traces in List order.
func (r *Registry) Traces() []*trace.Trace {
	entries := r.List()
	out := make([]*trace.Trace, len(entries))
	for i, e := range entries {
		out[i] = e.Trace
	}

	return out
}

// Select resolves display names in the order given. Each argument may hold
// several space-separated names. Unknown names yield a Binding with a nil Trace.
// With no names every entry is returned in List order.
func (r *Registry) Select(names ...string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(names) == 0 {
		entries := r.sorted()
		out := make([]Binding, len(entries))
		for i, e := range entries {
			out[i] = Binding{Name: e.Name, Trace: e.Trace}
		}

		return out
	}

	var out []Binding
	for _, arg := range names {
		for _, name := range strings.Fields(arg) {
			b := Binding{Name: name}
			if e, ok := r.byName[name]; ok {
				b.Trace = e.tr
			}
			out = append(out, b)
		}
	}

	return out
}

// Len returns the number of registered traces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Clear removes every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.byName = make(map[string]*entry)
}

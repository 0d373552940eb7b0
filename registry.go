package geprice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// DefaultRegistryFile is the conventional name of the registry file in a Store root.
const DefaultRegistryFile = "item_ids"

// Entry is a registry line: a commodity id and its canonical name.
type Entry struct {
	ID   ID
	Name string
}

// Registry maps commodity names to ids and back.
//
// Names are looked up case insensitively but are always returned with the
// capitalization read from the registry file. A Registry is loaded once and is
// read-only afterwards, so it can be shared freely.
type Registry struct {
	filename string
	delim    rune

	once     sync.Once
	err      error
	idToName map[ID]string
	nameToID map[string]ID // lower case names
}

// NewRegistry returns a registry that will be loaded from filename, a file of
// name<delim>id lines.
func NewRegistry(filename string, delim rune) *Registry {
	return &Registry{filename: filename, delim: delim}
}

// Load reads the registry file. Only the first call reads the file, the next
// ones return the same result.
func (r *Registry) Load() error {
	r.once.Do(func() {
		f, err := os.Open(r.filename)
		if err != nil {
			r.err = fmt.Errorf("load error: cannot open registry %q: %w", r.filename, err)
			return
		}
		defer f.Close()
		if r.err = r.decode(f); r.err != nil {
			r.idToName, r.nameToID = nil, nil
			return
		}
		log.Printf("load-registry name=%q entries=%d", r.filename, len(r.idToName))
	})
	return r.err
}

// decode parses name<delim>id lines. Empty lines are ignored.
func (r *Registry) decode(rd io.Reader) error {
	r.idToName = make(map[ID]string)
	r.nameToID = make(map[string]ID)
	scanner := bufio.NewScanner(rd)
	i := 0
	for scanner.Scan() {
		i++
		txt := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(txt) == "" {
			continue
		}
		// names may contain the delimiter, ids never do.
		sep := strings.LastIndexByte(txt, byte(r.delim))
		if sep < 0 || r.delim > 0x7f {
			sep = strings.LastIndex(txt, string(r.delim))
		}
		if sep < 0 {
			return fmt.Errorf("parse error %s:%v: missing delimiter %q", r.filename, i, r.delim)
		}
		name := txt[:sep]
		id, err := strconv.Atoi(strings.TrimSpace(txt[sep+len(string(r.delim)):]))
		if err != nil {
			return fmt.Errorf("parse error %s:%v: invalid id: %w", r.filename, i, err)
		}
		if name == "" {
			return fmt.Errorf("parse error %s:%v: empty name", r.filename, i)
		}
		r.idToName[ID(id)] = name
		r.nameToID[strings.ToLower(name)] = ID(id)
	}
	return scanner.Err()
}

// loaded makes sure the registry has been loaded.
func (r *Registry) loaded() error { return r.Load() }

// Resolve returns the id of a commodity given either its name (any case) or its id.
//
// An integer is returned as is, without checking that the registry knows it.
func (r *Registry) Resolve(nameOrID string) (ID, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(nameOrID)); err == nil {
		return ID(id), nil
	}
	if err := r.loaded(); err != nil {
		return 0, err
	}
	id, ok := r.nameToID[strings.ToLower(nameOrID)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNameNotFound, nameOrID)
	}
	return id, nil
}

// CanonicalName returns the name of commodity id as written in the registry.
func (r *Registry) CanonicalName(id ID) (string, error) {
	if err := r.loaded(); err != nil {
		return "", err
	}
	name, ok := r.idToName[id]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrIDNotFound, id)
	}
	return name, nil
}

// Has reports whether the registry knows commodity id.
func (r *Registry) Has(id ID) bool {
	_, err := r.CanonicalName(id)
	return err == nil
}

// Len returns the number of commodities in the registry.
func (r *Registry) Len() int {
	if r.loaded() != nil {
		return 0
	}
	return len(r.idToName)
}

// Entries returns all commodities sorted by id.
func (r *Registry) Entries() []Entry {
	if r.loaded() != nil {
		return nil
	}
	entries := make([]Entry, 0, len(r.idToName))
	for id, name := range r.idToName {
		entries = append(entries, Entry{ID: id, Name: name})
	}
	slices.SortFunc(entries, func(a, b Entry) int { return int(a.ID) - int(b.ID) })
	return entries
}

// Match returns the commodities whose name matches a glob pattern, like "mithril*".
// Matching ignores case.
func (r *Registry) Match(pattern string) ([]Entry, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var matches []Entry
	for _, e := range r.Entries() {
		if g.Match(strings.ToLower(e.Name)) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// AppendEntry appends a name<delim>id line to the registry file, creating it if
// needed. Loaded registries are not affected.
func AppendEntry(filename string, delim rune, e Entry) error {
	if e.Name == "" {
		return errors.New("cannot register an empty name")
	}
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("persist error: cannot open registry %q: %w", filename, err)
	}
	if _, err := fmt.Fprintf(f, "%s%c%d\n", e.Name, delim, e.ID); err != nil {
		f.Close()
		return fmt.Errorf("persist error: cannot write to registry %q: %w", filename, err)
	}
	return f.Close()
}

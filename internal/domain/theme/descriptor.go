package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/ini.v1"

	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
)

// Group is the key/value group holding background entries
const Group = "Desktop Entry"

// ErrDescriptor marks a descriptor that could not be loaded or parsed
var ErrDescriptor = errors.New("theme descriptor unavailable")

// Descriptor maps descriptor keys to image paths
type Descriptor struct {
	path    string
	entries map[string]string
}

// Empty returns a descriptor with no entries
func Empty(path string) *Descriptor {
	return &Descriptor{path: path, entries: map[string]string{}}
}

// Load parses the descriptor at path.
// On any failure it returns an empty descriptor together with an error wrapping
// ErrDescriptor, so callers can report the problem and keep going.
func Load(path string) (*Descriptor, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: false,
	}, path)
	if err != nil {
		return Empty(path), fmt.Errorf("%w: %s: %v", ErrDescriptor, path, err)
	}

	d := Empty(path)
	sec, err := cfg.GetSection(Group)
	if err != nil {
		return d, nil
	}
	for _, key := range sec.Keys() {
		value := strings.TrimSpace(key.String())
		if value == "" {
			continue
		}
		d.entries[key.Name()] = value
	}
	return d, nil
}

// Path returns the file the descriptor was read from
func (d *Descriptor) Path() string {
	return d.path
}

// Len returns the number of entries
func (d *Descriptor) Len() int {
	return len(d.entries)
}

// Lookup returns the value of key
func (d *Descriptor) Lookup(key string) (string, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Background returns the image path listed for a view
func (d *Descriptor) Background(view int) (string, bool) {
	return d.Lookup(paths.DescriptorKey(view))
}

// Lazy loads a descriptor on first use and keeps it.
// The load error, if any, is reported once through the first Get.
type Lazy struct {
	path string

	once sync.Once
	desc *Descriptor
	err  error
}

// NewLazy creates a lazily loaded descriptor for path
func NewLazy(path string) *Lazy {
	return &Lazy{path: path}
}

// Get returns the descriptor, parsing it on the first call only.
// loaded is true for the call that performed the parse.
func (l *Lazy) Get() (desc *Descriptor, loaded bool, err error) {
	l.once.Do(func() {
		l.desc, l.err = Load(l.path)
		loaded = true
	})
	if loaded {
		return l.desc, true, l.err
	}
	return l.desc, false, nil
}

// Path returns the descriptor location
func (l *Lazy) Path() string {
	return l.path
}

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"
)

// Codec encodes the flat key/value document kept by FileStore
type Codec interface {
	Marshal(doc map[string]any) ([]byte, error)
	Unmarshal(data []byte, doc *map[string]any) error
}

type tomlCodec struct{}

func (tomlCodec) Marshal(doc map[string]any) ([]byte, error) { return toml.Marshal(doc) }
func (tomlCodec) Unmarshal(data []byte, doc *map[string]any) error {
	return toml.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) Marshal(doc map[string]any) ([]byte, error) { return yaml.Marshal(doc) }
func (yamlCodec) Unmarshal(data []byte, doc *map[string]any) error {
	return yaml.Unmarshal(data, doc)
}

// CodecFor picks a codec from the file extension; TOML is the default
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return tomlCodec{}
	}
}

// FileStore keeps all keys in one document file.
// Every read goes back to disk so writes from other processes are observed;
// every write replaces the whole file atomically.
type FileStore struct {
	path  string
	codec Codec

	mu     sync.Mutex
	closed bool
}

// NewFileStore creates a store backed by path; the file need not exist yet
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path cannot be empty")
	}
	return &FileStore{path: filepath.Clean(path), codec: CodecFor(path)}, nil
}

// Path returns the backing file
func (f *FileStore) Path() string {
	return f.path
}

// GetIntList returns the list stored at key
func (f *FileStore) GetIntList(ctx context.Context, key string) ([]int, error) {
	v, err := f.lookup(key)
	if err != nil {
		return nil, err
	}
	return toIntList(key, v)
}

// GetString returns the string stored at key
func (f *FileStore) GetString(ctx context.Context, key string) (string, error) {
	v, err := f.lookup(key)
	if err != nil {
		return "", err
	}
	return toString(key, v)
}

// SetIntList replaces the list stored at key
func (f *FileStore) SetIntList(ctx context.Context, key string, values []int) error {
	list := make([]int, len(values))
	copy(list, values)
	return f.update(key, func(doc map[string]any) { doc[key] = list })
}

// SetString replaces the string stored at key
func (f *FileStore) SetString(ctx context.Context, key, value string) error {
	return f.update(key, func(doc map[string]any) { doc[key] = value })
}

// Unset removes key from the document
func (f *FileStore) Unset(ctx context.Context, key string) error {
	return f.update(key, func(doc map[string]any) { delete(doc, key) })
}

// Close marks the store closed
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FileStore) lookup(key string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return v, nil
}

func (f *FileStore) update(key string, mutate func(map[string]any)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	doc, err := f.load()
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	mutate(doc)

	data, err := f.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("write %s: encode: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// load reads the document; a missing file is an empty document
func (f *FileStore) load() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	doc := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := f.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", f.path, ErrMalformed, err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFound is returned when a key holds no value
	ErrNotFound = errors.New("key not found")
	// ErrMalformed is returned when a stored value has the wrong shape or the backing document cannot be parsed
	ErrMalformed = errors.New("malformed value")
	// ErrClosed is returned by operations on a closed backend
	ErrClosed = errors.New("store closed")
)

// Store is the configuration capability consumed by the views core
type Store interface {
	GetIntList(ctx context.Context, key string) ([]int, error)
	SetIntList(ctx context.Context, key string, values []int) error
	GetString(ctx context.Context, key string) (string, error)
}

// Backend is a Store that can also write strings and release its resources
type Backend interface {
	Store
	SetString(ctx context.Context, key, value string) error
	Unset(ctx context.Context, key string) error
	Close() error
}

// Open constructs a backend by name ("file", "sqlite", "memory")
func Open(ctx context.Context, backend, path string) (Backend, error) {
	switch backend {
	case "file":
		return NewFileStore(path)
	case "sqlite":
		return OpenSQLite(ctx, path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// toIntList converts a decoded document value into an integer list
func toIntList(key string, v any) ([]int, error) {
	switch list := v.(type) {
	case []int:
		out := make([]int, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]int, 0, len(list))
		for i, item := range list {
			n, ok := toInt(item)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: %w: %T is not an integer", key, i, ErrMalformed, item)
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w: %T is not a list", key, ErrMalformed, v)
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w: %T is not a string", key, ErrMalformed, v)
	}
	return s, nil
}

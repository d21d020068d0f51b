package fontkit

import (
	"fmt"
	"os"
	"sync"
)

// Loader resolves a font identity (a file path, in this module) to a
// parsed font. The validation cache and the layout engine both consume
// this interface rather than a concrete loader, so tests can substitute
// in-memory fonts.
type Loader interface {
	Load(identity string) (ParsedFont, error)
}

// FileLoader loads fonts from disk by path and memoizes the parsed result.
// Parsing a font is expensive; a generation run touches the same few dozen
// fonts thousands of times.
//
// FileLoader is safe for concurrent use.
type FileLoader struct {
	parser Parser

	mu    sync.RWMutex
	fonts map[string]ParsedFont
}

// LoaderOption configures a FileLoader during creation.
type LoaderOption func(*FileLoader)

// WithParser sets the parsing backend. The default is the go-text backend.
func WithParser(p Parser) LoaderOption {
	return func(l *FileLoader) {
		if p != nil {
			l.parser = p
		}
	}
}

// NewFileLoader creates a FileLoader with the given options.
func NewFileLoader(opts ...LoaderOption) *FileLoader {
	l := &FileLoader{
		parser: &goTextParser{},
		fonts:  make(map[string]ParsedFont),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implements Loader. The first load of a path reads and parses the
// file; later loads return the cached ParsedFont. Failures are not cached:
// a font that was unreadable once (say, during a deploy) may load fine on
// the next attempt.
func (l *FileLoader) Load(identity string) (ParsedFont, error) {
	// Fast path: read lock.
	l.mu.RLock()
	f, ok := l.fonts[identity]
	l.mu.RUnlock()
	if ok {
		return f, nil
	}

	data, err := os.ReadFile(identity)
	if err != nil {
		return nil, fmt.Errorf("fontkit: read font %q: %w", identity, err)
	}

	f, err = l.parser.Parse(data)
	if err != nil {
		if ee, ok := err.(*EngineError); ok && ee.Identity == "" {
			ee.Identity = identity
		}
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Another goroutine may have parsed the same font while we did;
	// keep the first one so callers share a single instance.
	if existing, ok := l.fonts[identity]; ok {
		return existing, nil
	}
	l.fonts[identity] = f
	slogger().Debug("font parsed", "font", identity, "backend", l.parser.Name())
	return f, nil
}

// Evict drops the cached parse for a path, forcing a reload on next use.
func (l *FileLoader) Evict(identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.fonts, identity)
}

// Len returns the number of cached parsed fonts.
func (l *FileLoader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fonts)
}

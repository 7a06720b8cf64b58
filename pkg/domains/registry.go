/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: registry.go
Description: Registry of Domain implementations. Domains are looked up by name from the
command line; each factory receives the shared domain options.
*/

package domains

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/kleascm/recomb/pkg/interfaces"
)

// ErrUnknownDomain is returned by New for unregistered names.
var ErrUnknownDomain = errors.New("unknown domain")

// Options carries configuration for domain factories.
type Options struct {
	// Lexicon feeds the lexicon domain.
	Lexicon []LexiconEntry `mapstructure:"lexicon"`
}

// Factory creates a domain.
type Factory func(opts Options) (interfaces.Domain, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		GeoQueryName: func(Options) (interfaces.Domain, error) { return NewGeoQuery(), nil },
		LexiconName: func(opts Options) (interfaces.Domain, error) {
			d, err := NewLexicon(opts.Lexicon)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	}
)

// Register adds or replaces a domain factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// New creates the domain registered under name.
func New(name string, opts Options) (interfaces.Domain, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownDomain, name, Names())
	}
	return f(opts)
}

// Names returns the registered domain names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

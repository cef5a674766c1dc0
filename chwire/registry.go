// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"strconv"
	"strings"
	"sync"
)

// A constructor builds the codec for a normalized TypeDef. Constructors
// resolve nested element types through the registry they are handed.
type constructor func(r *Registry, def *TypeDef) (Codec, error)

// The keyword table is populated by init funcs in the codec family files
// and read-only afterwards. Lookup is case-insensitive; canonical keeps
// the registered spelling for cache-key normalization.
var (
	constructors = map[string]constructor{}
	canonical    = map[string]string{}
)

func registerType(name string, fn constructor) {
	key := strings.ToUpper(name)
	constructors[key] = fn
	canonical[key] = name
}

// Registry caches one codec instance per canonical type name.
type Registry struct {
	mu    sync.RWMutex
	cache map[string]Codec
}

// NewRegistry returns an empty registry. Most callers use the package
// default through Resolve; separate registries exist for test isolation.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]Codec)}
}

var defaultRegistry = NewRegistry()

// Resolve parses name and returns the shared codec instance for it,
// using the package default registry.
func Resolve(name string) (Codec, error) {
	return defaultRegistry.Resolve(name)
}

// Resolve parses name and returns the shared codec instance for it.
// Distinct spellings of the same type ("uint8", "UInt8") normalize to one
// cache entry.
func (r *Registry) Resolve(name string) (Codec, error) {
	def, err := ParseTypeName(name)
	if err != nil {
		return nil, err
	}
	return r.ResolveDef(def)
}

// ResolveDef returns the shared codec instance for a parsed definition.
// def is normalized in place: the Base spelling is canonicalized and a
// trailing size suffix is split off when the full keyword is not
// registered wholesale.
func (r *Registry) ResolveDef(def *TypeDef) (Codec, error) {
	fn, err := normalize(def)
	if err != nil {
		return nil, err
	}
	key := def.String()

	r.mu.RLock()
	c, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	// Construct outside the lock; construction is pure, so losing the
	// race below just discards a duplicate.
	c, err = fn(r, def)
	if err != nil {
		return nil, err
	}
	for i := len(def.Wrappers) - 1; i >= 0; i-- {
		switch def.Wrappers[i] {
		case WrapperNullable:
			c = &nullableCodec{inner: c}
		case WrapperLowCardinality:
			c = &lowCardCodec{inner: c}
		}
	}

	r.mu.Lock()
	if existing, ok := r.cache[key]; ok {
		c = existing
	} else {
		r.cache[key] = c
	}
	r.mu.Unlock()
	return c, nil
}

// normalize canonicalizes def.Base and splits a trailing size suffix. The
// full uppercased keyword is checked against the table first so that names
// like IPv4 never split into IPv + 4.
func normalize(def *TypeDef) (constructor, error) {
	upper := strings.ToUpper(def.Base)
	if fn, ok := constructors[upper]; ok {
		def.Base = canonical[upper]
		return fn, nil
	}
	word := strings.TrimRight(upper, "0123456789")
	if word != upper && word != "" {
		if fn, ok := constructors[word]; ok {
			size, err := strconv.Atoi(upper[len(word):])
			if err == nil {
				def.Base = canonical[word]
				def.Size = size
				return fn, nil
			}
		}
	}
	return nil, errUnknownType(def.String())
}

// resolveTypeArg resolves a nested type argument for a composite codec.
func resolveTypeArg(r *Registry, outer *TypeDef, arg Argument) (Codec, error) {
	if arg.Kind != ArgType {
		return nil, errInvalidParam(outer.String(), "expected a nested type argument")
	}
	return r.Resolve(arg.Str)
}

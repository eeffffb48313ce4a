// Package methodcache interns FastRPC call method names.
//
// A call's method name arrives as raw bytes once per call; long-lived
// servers see the same small set of method names repeatedly. The
// xxHash64 of the raw name bytes is the map key, and a stored string is
// only allocated the first time a given name is seen.
package methodcache

import "github.com/cespare/xxhash/v2"

// Cache interns method name byte slices into strings, keyed by xxHash64.
// Zero value is ready to use. Not safe for concurrent use, matching the
// decoder it belongs to.
type Cache struct {
	entries map[uint64]string
}

// Intern returns a string equal to name, reusing a previously interned
// string when one with the same hash and content already exists.
func (c *Cache) Intern(name []byte) string {
	if c.entries == nil {
		c.entries = make(map[uint64]string)
	}

	h := xxhash.Sum64(name)
	if existing, ok := c.entries[h]; ok && existing == string(name) {
		return existing
	}

	s := string(name)
	c.entries[h] = s

	return s
}

// Reset discards all interned names.
func (c *Cache) Reset() {
	clear(c.entries)
}

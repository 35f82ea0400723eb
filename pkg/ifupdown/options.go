// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package ifupdown

// Options holds the directives of one stanza. Keys may repeat; values are
// kept in the order they appeared.
type Options struct {
	keys    []string
	values  map[string][]string
	entries []entry
}

type entry struct {
	key   string
	value string
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{values: make(map[string][]string)}
}

// Add appends value under key.
func (o *Options) Add(key, value string) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = append(o.values[key], value)
	o.entries = append(o.entries, entry{key: key, value: value})
}

// Get returns the first value recorded for key.
func (o *Options) Get(key string) (string, bool) {
	v := o.values[key]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// All returns every value recorded for key in input order.
func (o *Options) All(key string) []string {
	return o.values[key]
}

// Select returns the values of every listed key, interleaved in input
// order. It serves directives that have aliases, such as up and post-up.
func (o *Options) Select(keys ...string) []string {
	var out []string
	for _, e := range o.entries {
		for _, k := range keys {
			if e.key == k {
				out = append(out, e.value)
				break
			}
		}
	}
	return out
}

func (o *Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the distinct keys in first-seen order.
func (o *Options) Keys() []string {
	return o.keys
}

func (o *Options) Len() int {
	return len(o.keys)
}

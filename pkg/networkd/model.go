// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package networkd models systemd-networkd unit files (.network, .netdev)
// as ordered sections of ordered keys, and renders them to text.
package networkd

import (
	"slices"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Shape is fixed the first time a section is created in a file.
type Shape int

const (
	// Single sections hold one record, e.g. [Match] or [Network].
	Single Shape = iota
	// Many sections repeat, e.g. one [Address] per address.
	Many
)

func (s Shape) String() string {
	if s == Many {
		return "many"
	}
	return "single"
}

// Value is either a scalar or a list. A list renders as a repeated key.
type Value struct {
	Scalar string
	List   []string
	IsList bool
}

// Strings returns the value as the sequence of rendered values.
func (v Value) Strings() []string {
	if v.IsList {
		return v.List
	}
	return []string{v.Scalar}
}

// Record is an ordered key/value mapping.
type Record struct {
	keys   []string
	values map[string]*Value
}

func NewRecord() *Record {
	return &Record{values: make(map[string]*Value)}
}

func (r *Record) slot(key string) *Value {
	v, ok := r.values[key]
	if !ok {
		v = &Value{}
		r.values[key] = v
		r.keys = append(r.keys, key)
	}
	return v
}

// Set stores a scalar, replacing any previous value but keeping the key's
// position.
func (r *Record) Set(key, value string) {
	v := r.slot(key)
	*v = Value{Scalar: value}
}

// Add appends to a list value. A scalar already stored under key becomes
// the first list element.
func (r *Record) Add(key, value string) {
	_, existed := r.values[key]
	v := r.slot(key)
	if !v.IsList {
		if existed {
			v.List = []string{v.Scalar}
		}
		v.Scalar = ""
		v.IsList = true
	}
	v.List = append(v.List, value)
}

// AddUnique appends value unless the list already holds it.
func (r *Record) AddUnique(key, value string) {
	if slices.Contains(r.List(key), value) {
		return
	}
	r.Add(key, value)
}

// Get returns a scalar value. For lists it returns the first element.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	if !ok {
		return "", false
	}
	if v.IsList {
		if len(v.List) == 0 {
			return "", false
		}
		return v.List[0], true
	}
	return v.Scalar, true
}

// List returns every value under key.
func (r *Record) List(key string) []string {
	v, ok := r.values[key]
	if !ok {
		return nil
	}
	return v.Strings()
}

func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns keys in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

// Value returns the raw value stored under key.
func (r *Record) Value(key string) (Value, bool) {
	v, ok := r.values[key]
	if !ok {
		return Value{}, false
	}
	return *v, true
}

// Section is a named group of records in a unit file.
type Section struct {
	Name    string
	Shape   Shape
	Records []*Record
}

// File is one unit file: an ordered set of sections.
type File struct {
	Name     string
	sections []*Section
	index    map[string]*Section
}

func NewFile(name string) *File {
	return &File{Name: name, index: make(map[string]*Section)}
}

func (f *File) section(name string, shape Shape) (*Section, error) {
	s, ok := f.index[name]
	if !ok {
		s = &Section{Name: name, Shape: shape}
		f.index[name] = s
		f.sections = append(f.sections, s)
		return s, nil
	}
	if s.Shape != shape {
		return nil, errors.New(errors.NetworkdSectionShapeMismatch,
			"section already exists with shape "+s.Shape.String()).
			WithMetadata("file", f.Name).
			WithMetadata("section", name)
	}
	return s, nil
}

// Single returns the record of a single-shaped section, creating it when
// needed.
func (f *File) Single(name string) (*Record, error) {
	s, err := f.section(name, Single)
	if err != nil {
		return nil, err
	}
	if len(s.Records) == 0 {
		s.Records = append(s.Records, NewRecord())
	}
	return s.Records[0], nil
}

// Append adds a new record to a many-shaped section.
func (f *File) Append(name string) (*Record, error) {
	s, err := f.section(name, Many)
	if err != nil {
		return nil, err
	}
	r := NewRecord()
	s.Records = append(s.Records, r)
	return r, nil
}

// Section looks up a section without creating it.
func (f *File) Section(name string) (*Section, bool) {
	s, ok := f.index[name]
	return s, ok
}

// Records returns the records of a section, or nil when it is absent.
func (f *File) Records(name string) []*Record {
	if s, ok := f.index[name]; ok {
		return s.Records
	}
	return nil
}

// Sections returns sections in creation order.
func (f *File) Sections() []*Section {
	return f.sections
}

// Model is the full set of unit files produced by one run.
type Model struct {
	files []*File
	index map[string]*File
}

func NewModel() *Model {
	return &Model{index: make(map[string]*File)}
}

// File returns the named file, creating it when needed.
func (m *Model) File(name string) *File {
	f, ok := m.index[name]
	if !ok {
		f = NewFile(name)
		m.index[name] = f
		m.files = append(m.files, f)
	}
	return f
}

func (m *Model) Lookup(name string) (*File, bool) {
	f, ok := m.index[name]
	return f, ok
}

// Files returns files in creation order.
func (m *Model) Files() []*File {
	return m.files
}

func (m *Model) Len() int {
	return len(m.files)
}

// NetworkFile and NetdevFile name the unit files for an interface.
func NetworkFile(iface string) string { return iface + ".network" }
func NetdevFile(iface string) string  { return iface + ".netdev" }

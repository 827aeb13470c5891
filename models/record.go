// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Record is a flattened tag record. Values are one of string, float64,
// time.Time, a nested Record, or a List of those.
type Record map[string]any

// List is an ordered collection of record values. It is a distinct type so
// that a promoted duplicate key can be told apart from a scalar.
type List []any

// Merge returns the value that a key must hold after next is written to it.
// present reports whether the key already held prev.
//
//   - first write: next is stored as is;
//   - second write over a scalar: the scalar is promoted to List{prev, next};
//   - any write over a List: next is appended.
//
// Merge never mutates prev.
func Merge(prev any, present bool, next any) any {
	if !present {
		return next
	}

	if l, ok := prev.(List); ok {
		out := make(List, 0, len(l)+1)
		out = append(out, l...)
		return append(out, next)
	}

	return List{prev, next}
}

// Put writes v under key applying the [Merge] rule.
func (r Record) Put(key string, v any) {
	prev, ok := r[key]
	r[key] = Merge(prev, ok, v)
}

// Clone returns a deep copy of r. Nested records and lists are copied, scalar
// values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Record:
		return t.Clone()
	case List:
		l := make(List, len(t))
		for i := range t {
			l[i] = cloneValue(t[i])
		}
		return l
	default:
		return v
	}
}

// Lookup follows path through nested records and returns the value found at
// the end of it.
func (r Record) Lookup(path ...string) (any, bool) {
	cur := r
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(Record)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// SetPath writes v at path, creating intermediate records as needed. It
// overwrites any existing value at the final key and refuses to descend into
// non-record values.
func (r Record) SetPath(v any, path ...string) bool {
	if len(path) == 0 {
		return false
	}

	cur := r
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key]
		if !ok {
			rec := Record{}
			cur[key] = rec
			cur = rec
			continue
		}
		rec, ok := next.(Record)
		if !ok {
			return false
		}
		cur = rec
	}

	cur[path[len(path)-1]] = v
	return true
}

// Str returns the value at key when it is a string.
func (r Record) Str(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

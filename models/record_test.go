// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		prev    any
		present bool
		next    any
		want    any
	}{
		{name: "first write", next: "v1", want: "v1"},
		{name: "promote scalar", prev: "v1", present: true, next: "v2", want: List{"v1", "v2"}},
		{name: "append to list", prev: List{"v1", "v2"}, present: true, next: "v3", want: List{"v1", "v2", "v3"}},
		{name: "empty string still present", prev: "", present: true, next: 1.5, want: List{"", 1.5}},
		{name: "record promoted", prev: Record{"a": 1.0}, present: true, next: Record{"b": 2.0}, want: List{Record{"a": 1.0}, Record{"b": 2.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.prev, tt.present, tt.next))
		})
	}
}

func TestMerge_DoesNotMutatePrev(t *testing.T) {
	prev := make(List, 2, 4)
	prev[0], prev[1] = "v1", "v2"

	got := Merge(prev, true, "v3")

	assert.Equal(t, List{"v1", "v2"}, prev)
	assert.Equal(t, List{"v1", "v2", "v3"}, got)
	assert.Nil(t, prev[:3][2], "backing array of prev must not be reused")
}

func TestRecord_Put(t *testing.T) {
	r := Record{}
	r.Put("k", "v1")
	r.Put("k", "v2")
	r.Put("k", "v3")
	r.Put("other", 1.0)

	assert.Equal(t, Record{"k": List{"v1", "v2", "v3"}, "other": 1.0}, r)
}

func TestRecord_LookupAndSetPath(t *testing.T) {
	r := Record{"Report": Record{"Acquisition": Record{"CTDIvol": 12.5}}, "flat": "x"}

	v, ok := r.Lookup("Report", "Acquisition", "CTDIvol")
	require.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = r.Lookup("Report", "Missing")
	assert.False(t, ok)
	_, ok = r.Lookup("flat", "below")
	assert.False(t, ok)

	require.True(t, r.SetPath(0.0, "Report", "Acquisition", "DLP"))
	require.True(t, r.SetPath("y", "New", "Deep"))
	assert.False(t, r.SetPath("z", "flat", "below"))
	assert.False(t, r.SetPath("z"))

	v, _ = r.Lookup("Report", "Acquisition", "DLP")
	assert.Equal(t, 0.0, v)
	v, _ = r.Lookup("New", "Deep")
	assert.Equal(t, "y", v)
}

func TestRecord_Clone(t *testing.T) {
	orig := Record{"nested": Record{"a": "b"}, "list": List{Record{"c": "d"}}}
	cp := orig.Clone()

	cp["nested"].(Record)["a"] = "changed"
	cp["list"].(List)[0].(Record)["c"] = "changed"

	assert.Equal(t, "b", orig["nested"].(Record)["a"])
	assert.Equal(t, "d", orig["list"].(List)[0].(Record)["c"])
	assert.Nil(t, Record(nil).Clone())
}

func TestParseItemKind(t *testing.T) {
	k, err := ParseItemKind("tags")
	require.NoError(t, err)
	assert.Equal(t, KindTags, k)

	_, err = ParseItemKind("pixels")
	assert.Error(t, err)
}

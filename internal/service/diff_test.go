package service

import (
	"testing"

	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/stretchr/testify/assert"
)

func ids(s ...string) []models.ItemID {
	out := make([]models.ItemID, len(s))
	for i, v := range s {
		out[i] = models.ItemID(v)
	}
	return out
}

func TestSetDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []models.ItemID
		want []models.ItemID
	}{
		{"empty b returns a", ids("A", "B"), nil, ids("A", "B")},
		{"empty b dedups a", ids("A", "B", "A"), ids(), ids("A", "B")},
		{"removes b", ids("A", "B", "C"), ids("B"), ids("A", "C")},
		{"b superset", ids("A"), ids("A", "B"), ids()},
		{"disjoint", ids("A", "B"), ids("C"), ids("A", "B")},
		{"empty a", nil, ids("A"), ids()},
		{"keeps order of a", ids("C", "A", "B"), ids("X"), ids("C", "A", "B")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SetDiff(tt.a, tt.b))
		})
	}
}

// TestSetDiff_Laws checks the algebra the copy engine relies on.
func TestSetDiff_Laws(t *testing.T) {
	a := ids("A", "B", "C", "D", "B")
	b := ids("B", "D", "E")

	d := SetDiff(a, b)

	// nothing from b survives
	for _, id := range d {
		assert.NotContains(t, b, id)
	}
	// every survivor comes from a
	for _, id := range d {
		assert.Contains(t, a, id)
	}
	// idempotent
	assert.Equal(t, d, SetDiff(d, b))
	// a − a is empty
	assert.Empty(t, SetDiff(a, a))
	// once everything landed, nothing is left
	assert.Empty(t, SetDiff(a, append(b, d...)))
}

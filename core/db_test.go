package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	id    int
	name  string
	fees  float64
	label string
}

func sortRows(rows []row, orderings ...Ordering) []int {
	SortSlice(
		len(rows),
		func(i int, field string) (interface{}, bool) {
			switch field {
			case "Id":
				return rows[i].id, true
			case "name":
				return rows[i].name, true
			case "fees":
				return rows[i].fees, true
			}
			return nil, false
		},
		func(i, j int) { rows[i], rows[j] = rows[j], rows[i] },
		orderings,
	)
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.id)
	}
	return ids
}

func TestSortSlice(t *testing.T) {
	newRows := func() []row {
		return []row{
			{id: 1, name: "bob", fees: 300},
			{id: 2, name: "Alice", fees: 100},
			{id: 3, name: "carol", fees: 300},
			{id: 4, name: "alice", fees: 200},
		}
	}

	tests := []struct {
		name      string
		orderings []Ordering
		want      []int
	}{
		{name: "no ordering", want: []int{1, 2, 3, 4}},
		{name: "ascending", orderings: []Ordering{{Field: "fees", Ascending: true}}, want: []int{2, 4, 1, 3}},
		{name: "descending is stable", orderings: []Ordering{{Field: "fees"}}, want: []int{1, 3, 4, 2}},
		{name: "case insensitive", orderings: []Ordering{{Field: "name", Ascending: true}}, want: []int{2, 4, 1, 3}},
		{
			name:      "tie breaker",
			orderings: []Ordering{{Field: "fees"}, {Field: "Id"}},
			want:      []int{3, 1, 4, 2},
		},
		{name: "unknown field", orderings: []Ordering{{Field: "label", Ascending: true}}, want: []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sortRows(newRows(), tt.orderings...))
		})
	}
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "name", Ordering{Field: "name", Ascending: true}.String())
	assert.Equal(t, "-name", Ordering{Field: "name"}.String())
}

package core

import (
	"sort"
	"strings"
)

// Ordering is one "ordering" criterion: a JSON field name and a direction.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}

// FieldGetter returns the sortable value of a named field for the element at index i.
// ok is false when the field is not sortable.
type FieldGetter func(i int, field string) (val interface{}, ok bool)

// SortSlice stably sorts a slice of n elements (swapped via swap) by the given orderings.
// Unknown fields are ignored.
func SortSlice(n int, get FieldGetter, swap func(i, j int), orderings []Ordering) {
	if len(orderings) == 0 || n < 2 {
		return
	}
	// sort a permutation first so that the getter always reads the untouched slice
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		for _, ord := range orderings {
			va, okA := get(perm[a], ord.Field)
			vb, okB := get(perm[b], ord.Field)
			if !(okA && okB) {
				continue
			}
			c := compare(va, vb)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	applyPermutation(perm, swap)
}

// applyPermutation rearranges elements so that position i holds the element previously at perm[i].
func applyPermutation(perm []int, swap func(i, j int)) {
	pos := make([]int, len(perm)) // pos[orig] = current index of the element originally at orig
	at := make([]int, len(perm))  // at[idx] = original index of the element currently at idx
	for i := range perm {
		pos[i] = i
		at[i] = i
	}
	for i, orig := range perm {
		j := pos[orig]
		if j == i {
			continue
		}
		swap(i, j)
		pos[at[i]], pos[at[j]] = j, i
		at[i], at[j] = at[j], at[i]
	}
}

func compare(a, b interface{}) int {
	switch va := a.(type) {
	case int:
		vb, _ := b.(int)
		return cmpFloat(float64(va), float64(vb))
	case float64:
		vb, _ := b.(float64)
		return cmpFloat(va, vb)
	case string:
		vb, _ := b.(string)
		return strings.Compare(strings.ToLower(va), strings.ToLower(vb))
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

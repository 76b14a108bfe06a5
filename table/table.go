package table

import (
	"sort"

	"github.com/SiegfriedLudwig/is-constructs/matrix"
)

// Table is a square labeled matrix: an array-backed float64 matrix with an
// id to row-index lookup owned by the table. Both axes share the same
// labeling. The index is built once at creation and never mutated.
type Table struct {
	IDs   []string
	Index map[string]int
	M     *matrix.Dense
}

// New creates a zero-filled square table labeled by ids.
func New(ids []string) *Table {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return &Table{
		IDs:   ids,
		Index: index,
		M:     matrix.NewDense(len(ids), len(ids)),
	}
}

// Len returns the number of rows (= columns).
func (t *Table) Len() int {
	return len(t.IDs)
}

// Get returns the cell for the pair of ids.
func (t *Table) Get(a, b string) float64 {
	return t.M.Get(t.Index[a], t.Index[b])
}

// Set sets the cell for the pair of ids.
func (t *Table) Set(a, b string, val float64) {
	t.M.Set(t.Index[a], t.Index[b], val)
}

// TriuFlat extracts the strict upper triangle (diagonal excluded) as a flat
// vector in row major order.
func (t *Table) TriuFlat() []float64 {
	n := t.Len()
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n-1; i += 1 {
		for j := i + 1; j < n; j += 1 {
			out = append(out, t.M.Get(i, j))
		}
	}
	return out
}

// Mirror adds the transpose onto the strict lower triangle and forces the
// diagonal to one, turning an upper-triangular similarity table into a full
// symmetric one.
func (t *Table) Mirror() {
	n := t.Len()
	for i := 0; i < n; i += 1 {
		for j := 0; j < i; j += 1 {
			t.M.Set(i, j, t.M.Get(j, i))
		}
		t.M.Set(i, i, 1)
	}
}

// ForEachUpperPair calls fn for every strict-upper-triangle cell (i < j).
func ForEachUpperPair(n int, fn func(i, j int)) {
	for i := 0; i < n-1; i += 1 {
		for j := i + 1; j < n; j += 1 {
			fn(i, j)
		}
	}
}

// Group names a set of constituent row indices in some constituent table.
type Group struct {
	ID      string
	Members []int
}

// GroupBy collects constituents into groups. memberGroups holds, for each
// constituent row index, the id of the group it belongs to. Groups are
// returned sorted by id so group tables get a deterministic labeling.
func GroupBy(memberGroups []string) []Group {
	members := make(map[string][]int)
	for i, g := range memberGroups {
		members[g] = append(members[g], i)
	}
	ids := make([]string, 0, len(members))
	for g := range members {
		ids = append(ids, g)
	}
	sort.Strings(ids)
	groups := make([]Group, len(ids))
	for i, g := range ids {
		groups[i] = Group{ID: g, Members: members[g]}
	}
	return groups
}

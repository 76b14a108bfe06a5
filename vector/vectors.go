// Package vector maps terms to vectors from trained or external
// dictionaries and aggregates vectors and similarities up the
// term → item → construct hierarchy.
package vector

import (
	"errors"
	"sort"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/matrix"
	"github.com/SiegfriedLudwig/is-constructs/util"
)

// ErrEmptyDict reports a vector dictionary with no entries, from which no
// dimensionality can be derived.
var ErrEmptyDict = errors.New("vector: empty dictionary")

// Vectors is an ordered set of fixed-length vectors keyed positionally by
// entity identifier (term string, document text or construct id).
// Identifiers may repeat; alignment is positional throughout.
type Vectors struct {
	IDs []string
	Dim int
	M   *matrix.Dense
}

// Row returns the i-th vector as a view into the underlying storage.
func (v *Vectors) Row(i int) []float64 {
	return v.M.RowView(i)
}

// FromDict resolves the target identifiers against a vector dictionary in
// order. Misses are never an error: an out-of-vocabulary target receives
// the all-zero vector and counts toward the returned OOV tally. With
// normalize set, rows are L2-normalized afterward; zero rows stay zero.
// An empty target list yields an empty Vectors with the dictionary's
// dimensionality and a nil matrix.
func FromDict(dict map[string][]float64, targets []string, normalize bool) (*Vectors, int, error) {
	if len(dict) == 0 {
		return nil, 0, ErrEmptyDict
	}
	dim := 0
	for _, vec := range dict {
		dim = len(vec)
		break
	}
	if len(targets) == 0 {
		return &Vectors{IDs: targets, Dim: dim}, 0, nil
	}

	out := &Vectors{IDs: targets, Dim: dim, M: matrix.NewDense(len(targets), dim)}
	oov := 0
	for i, target := range targets {
		vec, ok := dict[target]
		if !ok {
			oov += 1
			continue
		}
		copy(out.M.RowView(i), vec)
	}
	if normalize {
		util.NormalizeRows(out.M)
	}
	log.V(1).Infof("created %d vectors from dictionary, %d OOV", len(targets), oov)
	return out, oov, nil
}

// SortedKeys returns the dictionary keys in sorted order, for callers that
// need a deterministic target list.
func SortedKeys(dict map[string][]float64) []string {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package vector

import (
	"gonum.org/v1/gonum/mat"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/dtm"
	"github.com/SiegfriedLudwig/is-constructs/table"
	"github.com/SiegfriedLudwig/is-constructs/util"
)

// Stats counts the degenerate cases met during top-k aggregation: pairs
// whose cross-product yielded a single usable value and pairs that yielded
// none (both caused by out-of-vocabulary zero vectors).
type Stats struct {
	Single int
	Empty  int
}

// Cosine computes the pairwise similarity table V·Vᵀ. Rows are expected to
// be L2-normalized already (zero rows, the OOV sentinel, stay zero rows).
// With clampNegative set, negative similarities are clipped to zero; by
// default values stay signed.
func Cosine(v *Vectors, clampNegative bool) *table.Table {
	n, _ := v.M.Shape()
	a := mat.NewDense(n, v.Dim, v.M.RawData())
	var p mat.Dense
	p.Mul(a, a.T())

	t := table.New(v.IDs)
	for i := 0; i < n; i += 1 {
		for j := 0; j < n; j += 1 {
			val := p.At(i, j)
			if clampNegative && val < 0 {
				val = 0
			}
			t.M.Set(i, j, val)
		}
	}
	util.NanToZero(t.M)
	return t
}

// AggregateItems aggregates term similarities into an item similarity
// table: for every item pair, the mean of the k highest cosine
// similarities between the two items' terms (terms with nonzero weight in
// the DTM row). The result is mirrored into a full symmetric table with
// unit diagonal. k has a floor of two.
func AggregateItems(d *dtm.DTM, termVecs *Vectors, k int) (*table.Table, Stats) {
	termSim := Cosine(termVecs, false)
	nDocs, nTerms := d.M.Shape()

	// term occupancy per item
	occupied := make([][]int, nDocs)
	for i := 0; i < nDocs; i += 1 {
		row := d.M.RowView(i)
		for t := 0; t < nTerms; t += 1 {
			if row[t] != 0 {
				occupied[i] = append(occupied[i], t)
			}
		}
	}

	out := table.New(d.Docs)
	stats := topKAggregate(out, termSim, occupied, k)
	out.Mirror()
	util.NanToZero(out.M)
	log.V(1).Infof("item aggregation: %d single-value pairs, %d empty pairs", stats.Single, stats.Empty)
	return out, stats
}

// AggregateGroups aggregates a constituent similarity table into a group
// similarity table under the same top-k-average rule, e.g. item→construct
// or construct→author-group. Only the strict upper triangle of the result
// is populated; diagonal and lower triangle stay zero by convention.
func AggregateGroups(sim *table.Table, groups []table.Group, k int) (*table.Table, Stats) {
	ids := make([]string, len(groups))
	members := make([][]int, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
		members[i] = g.Members
	}
	out := table.New(ids)
	stats := topKAggregate(out, sim, members, k)
	util.NanToZero(out.M)
	log.V(1).Infof("group aggregation: %d single-value pairs, %d empty pairs", stats.Single, stats.Empty)
	return out, stats
}

// topKAggregate fills the strict upper triangle of out with the top-k
// average of cross-product constituent similarities. constituents[i] lists
// the constituent indices of the i-th output row in sim.
func topKAggregate(out, sim *table.Table, constituents [][]int, k int) Stats {
	if k < 2 {
		k = 2
	}
	var stats Stats
	table.ForEachUpperPair(out.Len(), func(i, j int) {
		var vals []float64
		for _, a := range constituents[i] {
			for _, b := range constituents[j] {
				vals = append(vals, sim.M.Get(a, b))
			}
		}
		avg, used := util.TopKMean(vals, k)
		switch used {
		case 0:
			stats.Empty += 1
		case 1:
			stats.Single += 1
		}
		out.M.Set(i, j, avg)
	})
	return stats
}

package dtm

import (
	"github.com/james-bowman/sparse"

	log "github.com/golang/glog"
)

// TermTerm is a sparse term-term association structure. Pairs maps a term
// index to the indices of its co-occurring terms with their weights, where
// the weight of (a, b) is the dot product of the two terms' columns in the
// source document-term matrix. The structure is symmetric with both
// directions stored for direct indexed lookup; the diagonal holds each
// term's total squared column activity when nonzero. TermIndex/IndexTerm
// translate between term strings and indices.
type TermTerm struct {
	Pairs     map[int]map[int]float64
	TermIndex map[string]int
	IndexTerm map[int]string
}

// Cooccurrence computes T = DTMᵀ·DTM and emits the strictly nonzero cells
// as a sparse map. The product is carried out on compressed sparse storage
// so no dense term-term matrix is materialized.
func Cooccurrence(d *DTM) *TermTerm {
	nDocs, nTerms := d.M.Shape()

	dok := sparse.NewDOK(nDocs, nTerms)
	for i := 0; i < nDocs; i += 1 {
		for j, v := range d.M.RowView(i) {
			if v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	csr := dok.ToCSR()

	product := &sparse.CSR{}
	product.Mul(csr.T(), csr)

	tt := &TermTerm{
		Pairs:     make(map[int]map[int]float64, nTerms),
		TermIndex: make(map[string]int, nTerms),
		IndexTerm: make(map[int]string, nTerms),
	}
	for i, term := range d.Terms {
		tt.TermIndex[term] = i
		tt.IndexTerm[i] = term
	}
	nnz := 0
	product.DoNonZero(func(i, j int, v float64) {
		row, ok := tt.Pairs[i]
		if !ok {
			row = make(map[int]float64)
			tt.Pairs[i] = row
		}
		row[j] = v
		nnz += 1
	})

	log.V(1).Infof("term-term cooccurrence: %d terms, %d nonzero pairs", nTerms, nnz)
	return tt
}

package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	log "github.com/golang/glog"
)

func init() {
	Register("lsa", NewLSA)
}

// LSA derives term and document vectors by truncated singular value
// decomposition of the document-term matrix.
type LSA struct {
	data *Inputs
	dim  int
}

// NewLSA creates an LSA trainer. The target dimensionality must be
// positive and no larger than the number of documents.
func NewLSA(in *Inputs, cfg Config) (Trainer, error) {
	if in == nil || in.DTM == nil {
		return nil, fmt.Errorf("%w: lsa requires a document-term matrix", ErrConfig)
	}
	if cfg.Dim <= 0 {
		return nil, fmt.Errorf("%w: dimensionality %d not positive", ErrConfig, cfg.Dim)
	}
	if nDocs := len(in.DTM.Docs); cfg.Dim > nDocs {
		return nil, fmt.Errorf("%w: dimensionality %d exceeds %d documents", ErrConfig, cfg.Dim, nDocs)
	}
	return &LSA{data: in, dim: cfg.Dim}, nil
}

func (this *LSA) Train() (*Result, error) {
	d := this.data.DTM
	nDocs, nTerms := d.M.Shape()

	raw := make([]float64, nDocs*nTerms)
	copy(raw, d.M.RawData())
	a := mat.NewDense(nDocs, nTerms, raw)

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("lsa: svd factorization failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// thin SVD yields min(nDocs, nTerms) components
	k := this.dim
	if k > len(s) {
		k = len(s)
	}

	// term vectors are the truncated rows of V; document vectors are
	// U_k scaled by the singular values, neither is re-normalized here
	vectors := make(map[string][]float64, nTerms)
	for t, term := range d.Terms {
		vec := make([]float64, k)
		for j := 0; j < k; j += 1 {
			vec[j] = v.At(t, j)
		}
		vectors[term] = vec
	}
	docVectors := make([][]float64, nDocs)
	for i := 0; i < nDocs; i += 1 {
		vec := make([]float64, k)
		for j := 0; j < k; j += 1 {
			vec[j] = u.At(i, j) * s[j]
		}
		docVectors[i] = vec
	}

	log.Infof("lsa: trained %d term vectors of dimension %d", nTerms, k)
	return &Result{Vectors: vectors, DocVectors: docVectors}, nil
}

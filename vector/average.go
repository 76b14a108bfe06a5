package vector

import (
	"math"

	"github.com/SiegfriedLudwig/is-constructs/dtm"
	"github.com/SiegfriedLudwig/is-constructs/matrix"
	"github.com/SiegfriedLudwig/is-constructs/util"
)

// Average reduces each document to the centroid of its term vectors.
// termVecs must be aligned to the DTM's term columns. With weighting set,
// every term vector is scaled by its document-term cell weight before
// averaging. Documents with no nonzero terms yield a NaN centroid, which
// is substituted with zero before the optional L2 normalization.
func Average(d *dtm.DTM, termVecs *Vectors, weighting, normalize bool) *Vectors {
	nDocs, nTerms := d.M.Shape()
	dim := termVecs.Dim

	out := &Vectors{IDs: d.Docs, Dim: dim, M: matrix.NewDense(nDocs, dim)}
	for i := 0; i < nDocs; i += 1 {
		row := d.M.RowView(i)
		dst := out.M.RowView(i)
		count := 0
		for t := 0; t < nTerms; t += 1 {
			w := row[t]
			if w == 0 {
				continue
			}
			vec := termVecs.Row(t)
			if weighting {
				for k := 0; k < dim; k += 1 {
					dst[k] += vec[k] * w
				}
			} else {
				for k := 0; k < dim; k += 1 {
					dst[k] += vec[k]
				}
			}
			count += 1
		}
		if count == 0 {
			for k := 0; k < dim; k += 1 {
				dst[k] = math.NaN()
			}
			continue
		}
		for k := 0; k < dim; k += 1 {
			dst[k] /= float64(count)
		}
	}

	util.NanToZero(out.M)
	if normalize {
		util.NormalizeRows(out.M)
	}
	return out
}

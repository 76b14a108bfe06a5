// Package dtm builds weighted document-term matrices and term-term
// co-occurrence structures from normalized token corpora.
package dtm

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/SiegfriedLudwig/is-constructs/matrix"
	"github.com/SiegfriedLudwig/is-constructs/util"
)

// ErrWeighting reports an unrecognized weighting mode.
var ErrWeighting = errors.New("dtm: unknown weighting mode")

// Weighting selects the document-term weighting scheme.
type Weighting string

const (
	// Count keeps raw occurrence counts.
	Count Weighting = "count"
	// L2 row-normalizes raw counts.
	L2 Weighting = "l2"
	// TFIDFL2 applies tf-idf with smoothed idf and L2 row normalization.
	TFIDFL2 Weighting = "tfidf_l2"
	// LogL2 applies log-entropy weighting and L2 row normalization.
	LogL2 Weighting = "log_l2"
)

// DTM is a document-term matrix. Rows are keyed positionally by Docs (the
// normalized document text, which may repeat); columns are keyed by the
// sorted distinct term vocabulary observed in the corpus.
type DTM struct {
	Docs      []string
	Terms     []string
	TermIndex map[string]int
	M         *matrix.Dense
}

// Build creates a document-term matrix from a corpus of normalized token
// strings under the given weighting mode. The vocabulary is the set of
// space-separated tokens observed verbatim; no re-normalization happens at
// this stage.
func Build(docs []string, w Weighting) (*DTM, error) {
	switch w {
	case Count, L2, TFIDFL2, LogL2:
	default:
		return nil, fmt.Errorf("%w: %q", ErrWeighting, w)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("dtm: empty corpus")
	}

	termSet := make(map[string]bool)
	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokens := strings.Fields(doc)
		tokenized[i] = tokens
		for _, tok := range tokens {
			termSet[tok] = true
		}
	}
	terms := make([]string, 0, len(termSet))
	for t := range termSet {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	termIndex := make(map[string]int, len(terms))
	for i, t := range terms {
		termIndex[t] = i
	}

	m := matrix.NewDense(len(docs), len(terms))
	for i, tokens := range tokenized {
		for _, tok := range tokens {
			m.Incr(i, termIndex[tok], 1)
		}
	}

	d := &DTM{Docs: docs, Terms: terms, TermIndex: termIndex, M: m}
	switch w {
	case Count:
	case L2:
		util.NormalizeRows(d.M)
	case TFIDFL2:
		d.applyTFIDF()
		util.NormalizeRows(d.M)
	case LogL2:
		d.applyLogEntropy()
		util.NormalizeRows(d.M)
	}
	return d, nil
}

// applyTFIDF scales counts by smoothed inverse document frequency:
// idf = ln((1+n_docs)/(1+df)) + 1.
func (d *DTM) applyTFIDF() {
	nDocs, nTerms := d.M.Shape()
	df := make([]float64, nTerms)
	for i := 0; i < nDocs; i += 1 {
		row := d.M.RowView(i)
		for j, v := range row {
			if v > 0 {
				df[j] += 1
			}
		}
	}
	for i := 0; i < nDocs; i += 1 {
		row := d.M.RowView(i)
		for j := range row {
			if row[j] == 0 {
				continue
			}
			idf := math.Log((1+float64(nDocs))/(1+df[j])) + 1
			row[j] *= idf
		}
	}
}

// applyLogEntropy applies log-entropy weighting: the local weight is
// ln(count+1), the global weight per term is
// 1 + sum_d(p*ln(p+1)) / ln(n_docs+1) with p = count/column_total, and each
// cell becomes count * local * global.
func (d *DTM) applyLogEntropy() {
	nDocs, nTerms := d.M.Shape()
	colTotal := make([]float64, nTerms)
	for i := 0; i < nDocs; i += 1 {
		for j, v := range d.M.RowView(i) {
			colTotal[j] += v
		}
	}
	global := make([]float64, nTerms)
	for j := 0; j < nTerms; j += 1 {
		entropy := float64(0)
		if colTotal[j] > 0 {
			for i := 0; i < nDocs; i += 1 {
				p := d.M.Get(i, j) / colTotal[j]
				entropy += p * math.Log(p+1)
			}
		}
		global[j] = 1 + entropy/math.Log(float64(nDocs)+1)
	}
	for i := 0; i < nDocs; i += 1 {
		row := d.M.RowView(i)
		for j := range row {
			count := row[j]
			row[j] = count * math.Log(count+1) * global[j]
		}
	}
}

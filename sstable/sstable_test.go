package sstable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SiegfriedLudwig/is-constructs/dtm"
	"github.com/SiegfriedLudwig/is-constructs/matrix"
	"github.com/SiegfriedLudwig/is-constructs/table"
)

func TestMatrixRoundTrip(t *testing.T) {
	m := matrix.NewDense(2, 3)
	m.Set(0, 1, 1.5)
	m.Set(1, 2, -0.25)

	fn := filepath.Join(t.TempDir(), "m.sstable")
	assert.Nil(t, WriteMatrix(m, fn))
	got, err := ReadMatrix(fn)
	assert.Nil(t, err)

	r, c := got.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.InDelta(t, 1.5, got.Get(0, 1), 1e-12)
	assert.InDelta(t, -0.25, got.Get(1, 2), 1e-12)
	assert.Equal(t, float64(0), got.Get(0, 0))
}

func TestTableRoundTrip(t *testing.T) {
	tbl := table.New([]string{"a", "b"})
	tbl.Set("a", "b", 0.75)
	tbl.Mirror()

	fn := filepath.Join(t.TempDir(), "t.sstable")
	assert.Nil(t, WriteTable(tbl, fn))
	got, err := ReadTable(fn)
	assert.Nil(t, err)

	assert.Equal(t, tbl.IDs, got.IDs)
	assert.InDelta(t, 0.75, got.Get("a", "b"), 1e-12)
	assert.InDelta(t, 0.75, got.Get("b", "a"), 1e-12)
	assert.InDelta(t, 1.0, got.Get("a", "a"), 1e-12)
}

func TestDictRoundTrip(t *testing.T) {
	dict := map[string][]float64{
		"work": {0.5, -1.25},
		"job":  {2, 0.125},
	}

	fn := filepath.Join(t.TempDir(), "d.sstable")
	assert.Nil(t, WriteDict(dict, fn))
	got, err := ReadDict(fn)
	assert.Nil(t, err)

	assert.Equal(t, 2, len(got))
	assert.InDelta(t, -1.25, got["work"][1], 1e-12)
	assert.InDelta(t, 2.0, got["job"][0], 1e-12)
}

func TestTermTermRoundTrip(t *testing.T) {
	d, err := dtm.Build([]string{"a b", "b c"}, dtm.Count)
	assert.Nil(t, err)
	tt := dtm.Cooccurrence(d)

	fn := filepath.Join(t.TempDir(), "tt.sstable")
	assert.Nil(t, WriteTermTerm(tt, fn))
	got, err := ReadTermTerm(fn)
	assert.Nil(t, err)

	assert.Equal(t, tt.TermIndex, got.TermIndex)
	assert.Equal(t, tt.IndexTerm, got.IndexTerm)
	assert.Equal(t, len(tt.Pairs), len(got.Pairs))
	for i, row := range tt.Pairs {
		for j, v := range row {
			assert.InDelta(t, v, got.Pairs[i][j], 1e-9)
		}
	}
}

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SiegfriedLudwig/is-constructs/dtm"
)

func TestRegistry(t *testing.T) {
	ctor, err := Get("lsa")
	assert.Nil(t, err)
	assert.NotNil(t, ctor)

	ctor, err = Get("glove")
	assert.Nil(t, err)
	assert.NotNil(t, ctor)

	_, err = Get("bogus")
	assert.NotNil(t, err)
}

func TestLSAConfigValidation(t *testing.T) {
	d, err := dtm.Build([]string{"a b", "b c"}, dtm.Count)
	assert.Nil(t, err)

	_, err = NewLSA(&Inputs{DTM: d}, Config{Dim: 0})
	assert.ErrorIs(t, err, ErrConfig)

	// more dimensions than documents
	_, err = NewLSA(&Inputs{DTM: d}, Config{Dim: 3})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewLSA(&Inputs{}, Config{Dim: 2})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLSATrain(t *testing.T) {
	d, err := dtm.Build([]string{"a b", "b c", "c d"}, dtm.TFIDFL2)
	assert.Nil(t, err)

	trainer, err := NewLSA(&Inputs{DTM: d}, Config{Dim: 2})
	assert.Nil(t, err)
	res, err := trainer.Train()
	assert.Nil(t, err)

	assert.Equal(t, 4, len(res.Vectors))
	for _, vec := range res.Vectors {
		assert.Equal(t, 2, len(vec))
	}
	assert.Equal(t, 3, len(res.DocVectors))
	for _, vec := range res.DocVectors {
		assert.Equal(t, 2, len(vec))
		for _, v := range vec {
			assert.False(t, math.IsNaN(v))
		}
	}
}

func TestGloVeConfigValidation(t *testing.T) {
	d, err := dtm.Build([]string{"a b"}, dtm.Count)
	assert.Nil(t, err)
	tt := dtm.Cooccurrence(d)

	cfg := DefaultConfig()
	cfg.Dim = 0
	_, err = NewGloVe(&Inputs{TT: tt}, cfg)
	assert.ErrorIs(t, err, ErrConfig)

	cfg = DefaultConfig()
	cfg.XMax = 0
	_, err = NewGloVe(&Inputs{TT: tt}, cfg)
	assert.ErrorIs(t, err, ErrConfig)

	cfg = DefaultConfig()
	cfg.StepSize = -1
	_, err = NewGloVe(&Inputs{TT: tt}, cfg)
	assert.ErrorIs(t, err, ErrConfig)

	cfg = DefaultConfig()
	cfg.Workers = 0
	_, err = NewGloVe(&Inputs{TT: tt}, cfg)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewGloVe(&Inputs{}, DefaultConfig())
	assert.ErrorIs(t, err, ErrConfig)
}

func TestGloVeTrain(t *testing.T) {
	d, err := dtm.Build([]string{"a b c", "b c d", "a d"}, dtm.Count)
	assert.Nil(t, err)
	tt := dtm.Cooccurrence(d)

	cfg := Config{
		Dim:       8,
		Alpha:     0.75,
		XMax:      10,
		StepSize:  0.05,
		Epochs:    5,
		BatchSize: 4,
		Workers:   2,
		Seed:      42,
	}
	trainer, err := NewGloVe(&Inputs{TT: tt}, cfg)
	assert.Nil(t, err)
	res, err := trainer.Train()
	assert.Nil(t, err)

	assert.Equal(t, 5, len(res.Loss))
	for _, l := range res.Loss {
		assert.False(t, math.IsNaN(l))
	}
	assert.Equal(t, 4, len(res.Vectors))
	for _, vec := range res.Vectors {
		assert.Equal(t, 8, len(vec))
	}
	for ix, vec := range res.ByIndex {
		assert.Equal(t, res.Vectors[tt.IndexTerm[ix]], vec)
	}
}

func TestGloVeTrainManyWorkers(t *testing.T) {
	docs := []string{
		"a b c d",
		"b c d e",
		"c d e f",
		"a c e",
		"b d f",
		"a f",
	}
	d, err := dtm.Build(docs, dtm.Count)
	assert.Nil(t, err)
	tt := dtm.Cooccurrence(d)

	cfg := Config{
		Dim:       16,
		Alpha:     0.75,
		XMax:      10,
		StepSize:  0.05,
		Epochs:    4,
		BatchSize: 2,
		Workers:   4,
		Seed:      11,
	}
	trainer, err := NewGloVe(&Inputs{TT: tt}, cfg)
	assert.Nil(t, err)
	res, err := trainer.Train()
	assert.Nil(t, err)

	assert.Equal(t, 4, len(res.Loss))
	for _, l := range res.Loss {
		assert.False(t, math.IsNaN(l))
	}
	assert.Equal(t, 6, len(res.Vectors))
	for _, vec := range res.Vectors {
		assert.Equal(t, 16, len(vec))
		for _, v := range vec {
			assert.False(t, math.IsNaN(v))
		}
	}
}

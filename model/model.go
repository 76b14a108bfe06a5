package model

import (
	"errors"
	"fmt"

	"github.com/SiegfriedLudwig/is-constructs/dtm"
)

// ErrConfig reports inconsistent trainer hyperparameters. It is always
// fatal to the call and never retried.
var ErrConfig = errors.New("model: invalid configuration")

var constructors = make(map[string]Ctor)

// Config bundles the trainer hyperparameters. Fields irrelevant to a given
// trainer are ignored by it.
type Config struct {
	// Dim is the target vector dimensionality.
	Dim int
	// Alpha dampens co-occurrence counts (exponent of the weighting
	// function).
	Alpha float64
	// XMax is the co-occurrence saturation threshold.
	XMax float64
	// StepSize is the learning rate.
	StepSize float64
	// Epochs is the number of passes over the weighted term pairs.
	Epochs int
	// BatchSize is the number of pairs handed to a worker at once.
	BatchSize int
	// Workers is the parallelism degree within one epoch.
	Workers int
	// Seed seeds vector initialization and pair shuffling.
	Seed int64
}

// DefaultConfig returns the stock hyperparameters.
func DefaultConfig() Config {
	return Config{
		Dim:       300,
		Alpha:     0.75,
		XMax:      100,
		StepSize:  0.05,
		Epochs:    25,
		BatchSize: 64,
		Workers:   2,
		Seed:      1234,
	}
}

// Inputs carries the corpus-derived structures a trainer may consume.
// Trainers treat them as immutable snapshots.
type Inputs struct {
	DTM *dtm.DTM
	TT  *dtm.TermTerm
}

// Result is a trained vector space. Vectors maps each vocabulary term to
// its vector; all vectors share one dimensionality. ByIndex is the raw
// index-keyed dictionary for trainers that operate on term indices.
// DocVectors, when produced, is aligned positionally to the input DTM's
// documents. Loss holds one scalar training loss per epoch; a NaN entry
// signals divergence and is surfaced here rather than as an error.
type Result struct {
	Vectors    map[string][]float64
	ByIndex    map[int][]float64
	DocVectors [][]float64
	Loss       []float64
}

// the common interface vector space trainers follow
type Trainer interface {
	Train() (*Result, error)
}

// new trainers should register themselves using this function
func Register(name string, ctor Ctor) {
	constructors[name] = ctor
}

type Ctor func(in *Inputs, cfg Config) (Trainer, error)

func Get(name string) (Ctor, error) {
	if _, ok := constructors[name]; !ok {
		return nil, fmt.Errorf("model %s not registered", name)
	}
	return constructors[name], nil
}

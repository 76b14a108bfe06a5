package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	log "github.com/golang/glog"
)

func init() {
	Register("glove", NewGloVe)
}

// GloVe trains term vectors over the sparse term-term co-occurrence map by
// AdaGrad descent on the weighted least-squares objective
// f(x)·(wᵢ·w̃ⱼ + bᵢ + b̃ⱼ - ln x)² with f(x) = min(1, (x/xmax)^alpha).
type GloVe struct {
	tt  map[int]map[int]float64
	ixt map[int]string
	cfg Config

	// parameter matrices, mutated exclusively inside Train
	w, wc   [][]float64
	b, bc   []float64
	gw, gwc [][]float64
	gb, gbc []float64

	// per-row locks for the main and context parameter sides. Every
	// worker acquires the main-side lock before the context-side one,
	// and the two pools are disjoint, so lock order is total.
	muW, muWc []sync.Mutex

	pairs []coocPair
	rng   *rand.Rand
}

type coocPair struct {
	i, j int
	x    float64
}

// NewGloVe creates a co-occurrence embedding trainer.
func NewGloVe(in *Inputs, cfg Config) (Trainer, error) {
	if in == nil || in.TT == nil {
		return nil, fmt.Errorf("%w: glove requires a term-term cooccurrence map", ErrConfig)
	}
	if cfg.Dim <= 0 {
		return nil, fmt.Errorf("%w: dimensionality %d not positive", ErrConfig, cfg.Dim)
	}
	if cfg.XMax <= 0 {
		return nil, fmt.Errorf("%w: x_max %f not positive", ErrConfig, cfg.XMax)
	}
	if cfg.StepSize <= 0 {
		return nil, fmt.Errorf("%w: step size %f not positive", ErrConfig, cfg.StepSize)
	}
	if cfg.Epochs <= 0 || cfg.BatchSize <= 0 || cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: epochs %d, batch size %d and workers %d must be positive",
			ErrConfig, cfg.Epochs, cfg.BatchSize, cfg.Workers)
	}
	return &GloVe{
		tt:  in.TT.Pairs,
		ixt: in.TT.IndexTerm,
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (this *GloVe) Train() (*Result, error) {
	this.initParams()

	loss := make([]float64, 0, this.cfg.Epochs)
	for epoch := 0; epoch < this.cfg.Epochs; epoch += 1 {
		err := this.runEpoch()
		loss = append(loss, err)
		log.Infof("glove epoch %3d, loss %.5f", epoch+1, err)
		// a NaN loss marks a diverged run; keep going and let the
		// caller reject it from the returned loss sequence
	}

	byIndex := make(map[int][]float64, len(this.w))
	vectors := make(map[string][]float64, len(this.w))
	for ix := range this.tt {
		vec := make([]float64, this.cfg.Dim)
		copy(vec, this.w[ix])
		byIndex[ix] = vec
		if term, ok := this.ixt[ix]; ok {
			vectors[term] = vec
		}
	}
	return &Result{Vectors: vectors, ByIndex: byIndex, Loss: loss}, nil
}

// initParams sizes the parameter and gradient-history matrices to the
// vocabulary and draws the initial vectors uniformly from (-0.5, 0.5)/dim.
// AdaGrad histories start at one so the first update uses the raw step size.
func (this *GloVe) initParams() {
	size := 0
	for ix := range this.tt {
		if ix+1 > size {
			size = ix + 1
		}
	}
	dim := this.cfg.Dim

	newVecs := func() [][]float64 {
		vecs := make([][]float64, size)
		for i := range vecs {
			row := make([]float64, dim)
			for j := range row {
				row[j] = (this.rng.Float64() - 0.5) / float64(dim)
			}
			vecs[i] = row
		}
		return vecs
	}
	newOnes := func() [][]float64 {
		vecs := make([][]float64, size)
		for i := range vecs {
			row := make([]float64, dim)
			for j := range row {
				row[j] = 1
			}
			vecs[i] = row
		}
		return vecs
	}
	this.w, this.wc = newVecs(), newVecs()
	this.gw, this.gwc = newOnes(), newOnes()
	this.muW, this.muWc = make([]sync.Mutex, size), make([]sync.Mutex, size)
	this.b, this.bc = make([]float64, size), make([]float64, size)
	this.gb, this.gbc = make([]float64, size), make([]float64, size)
	for i := 0; i < size; i += 1 {
		this.gb[i], this.gbc[i] = 1, 1
	}

	this.pairs = this.pairs[:0]
	for i, row := range this.tt {
		for j, x := range row {
			if x > 0 {
				this.pairs = append(this.pairs, coocPair{i: i, j: j, x: x})
			}
		}
	}
	sort.Slice(this.pairs, func(a, b int) bool {
		if this.pairs[a].i != this.pairs[b].i {
			return this.pairs[a].i < this.pairs[b].i
		}
		return this.pairs[a].j < this.pairs[b].j
	})
}

// runEpoch makes one full pass over the shuffled pairs, fanning batches out
// to the worker pool, and returns the mean loss per pair. The pool is
// joined before returning so the next epoch always sees fully applied
// updates.
func (this *GloVe) runEpoch() float64 {
	this.rng.Shuffle(len(this.pairs), func(a, b int) {
		this.pairs[a], this.pairs[b] = this.pairs[b], this.pairs[a]
	})

	batches := make(chan []coocPair, this.cfg.Workers)
	losses := make(chan float64, this.cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < this.cfg.Workers; w += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := float64(0)
			for batch := range batches {
				for _, p := range batch {
					local += this.update(p)
				}
			}
			losses <- local
		}()
	}
	for start := 0; start < len(this.pairs); start += this.cfg.BatchSize {
		end := start + this.cfg.BatchSize
		if end > len(this.pairs) {
			end = len(this.pairs)
		}
		batches <- this.pairs[start:end]
	}
	close(batches)
	wg.Wait()
	close(losses)

	total := float64(0)
	for l := range losses {
		total += l
	}
	if len(this.pairs) == 0 {
		return 0
	}
	return total / float64(len(this.pairs))
}

// update applies one AdaGrad step for a single weighted pair and returns
// its contribution to the epoch loss. The pair's main-side row i and
// context-side row j are locked for the duration of the step so concurrent
// workers never read or write a shared row unsynchronized.
func (this *GloVe) update(p coocPair) float64 {
	this.muW[p.i].Lock()
	defer this.muW[p.i].Unlock()
	this.muWc[p.j].Lock()
	defer this.muWc[p.j].Unlock()

	wi, wj := this.w[p.i], this.wc[p.j]
	gi, gj := this.gw[p.i], this.gwc[p.j]

	dot := float64(0)
	for k := range wi {
		dot += wi[k] * wj[k]
	}
	diff := dot + this.b[p.i] + this.bc[p.j] - math.Log(p.x)
	fx := float64(1)
	if p.x < this.cfg.XMax {
		fx = math.Pow(p.x/this.cfg.XMax, this.cfg.Alpha)
	}
	fdiff := fx * diff

	step := this.cfg.StepSize
	for k := range wi {
		gradI := fdiff * wj[k]
		gradJ := fdiff * wi[k]
		wi[k] -= step * gradI / math.Sqrt(gi[k])
		wj[k] -= step * gradJ / math.Sqrt(gj[k])
		gi[k] += gradI * gradI
		gj[k] += gradJ * gradJ
	}
	this.b[p.i] -= step * fdiff / math.Sqrt(this.gb[p.i])
	this.bc[p.j] -= step * fdiff / math.Sqrt(this.gbc[p.j])
	this.gb[p.i] += fdiff * fdiff
	this.gbc[p.j] += fdiff * fdiff

	return 0.5 * fdiff * diff
}

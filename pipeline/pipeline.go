// Package pipeline wires the corpus, matrix, trainer, aggregation and
// evaluation stages into end-to-end similarity runs.
package pipeline

import (
	"fmt"
	"math"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/config"
	"github.com/SiegfriedLudwig/is-constructs/corpus"
	"github.com/SiegfriedLudwig/is-constructs/dtm"
	"github.com/SiegfriedLudwig/is-constructs/eval"
	"github.com/SiegfriedLudwig/is-constructs/matrix"
	"github.com/SiegfriedLudwig/is-constructs/model"
	"github.com/SiegfriedLudwig/is-constructs/pretrained"
	"github.com/SiegfriedLudwig/is-constructs/table"
	"github.com/SiegfriedLudwig/is-constructs/util"
	"github.com/SiegfriedLudwig/is-constructs/vector"
)

// Data is the prepared input of a run: the normalized item corpus, its
// document-term matrix, the construct grouping of items and the gold
// identity table labeled by the same construct ordering.
type Data struct {
	ConstructIDs []string // per kept item, positionally aligned
	Corpus       *corpus.Result
	DTM          *dtm.DTM
	Groups       []table.Group
	Gold         *table.Table
}

// Outcome is the evaluation result of one run.
type Outcome struct {
	AUC   float64
	FPR   []float64
	TPR   []float64
	Loss  []float64
	OOV   int
	Stats vector.Stats
}

// Load reads the item and gold-standard files and prepares all
// corpus-derived structures for the given configuration.
func Load(cfg config.Config) (*Data, error) {
	itemIDs, texts, err := corpus.Load(cfg.ItemsFile)
	if err != nil {
		return nil, err
	}
	pc := corpus.ParseConfig{
		IgnoreChars:     cfg.IgnoreChars,
		Lower:           cfg.Lower,
		RemoveStopWords: cfg.RemoveStopWords,
		Stemmer:         corpus.Stemmer(cfg.Stemmer),
	}
	if pc.IgnoreChars == "" {
		pc.IgnoreChars = corpus.DefaultIgnoreChars
	}
	parsed, err := corpus.ParseText(texts, pc)
	if err != nil {
		return nil, err
	}

	// identifiers align positionally with the kept documents
	constructIDs := make([]string, len(parsed.Kept))
	for i, orig := range parsed.Kept {
		constructIDs[i] = itemIDs[orig]
	}

	d, err := dtm.Build(parsed.Docs, dtm.Weighting(cfg.Weighting))
	if err != nil {
		return nil, err
	}
	groups := table.GroupBy(constructIDs)

	poolIDs, memberIDs, err := corpus.Load(cfg.GoldFile)
	if err != nil {
		return nil, err
	}
	pairs := make([]eval.PoolMember, len(poolIDs))
	for i := range poolIDs {
		pairs[i] = eval.PoolMember{Pool: poolIDs[i], Member: memberIDs[i]}
	}
	goldIDs := make([]string, len(groups))
	for i, g := range groups {
		goldIDs[i] = g.ID
	}
	gold := eval.GoldIdentity(pairs, goldIDs)

	log.Infof("loaded %d items across %d constructs, vocabulary size %d",
		len(parsed.Docs), len(groups), len(d.Terms))
	return &Data{
		ConstructIDs: constructIDs,
		Corpus:       parsed,
		DTM:          d,
		Groups:       groups,
		Gold:         gold,
	}, nil
}

// EvaluateDict runs the shared tail of every strategy: resolve the corpus
// vocabulary against a term-vector dictionary, average term vectors into
// item vectors, aggregate item cosine similarity into construct similarity
// and score it against the gold standard.
func (p *Data) EvaluateDict(dict map[string][]float64, weighted, clampNegative bool, k int) (*Outcome, error) {
	termVecs, oov, err := vector.FromDict(dict, p.DTM.Terms, true)
	if err != nil {
		return nil, err
	}
	itemVecs := vector.Average(p.DTM, termVecs, weighted, true)
	itemSim := vector.Cosine(itemVecs, clampNegative)
	constructSim, stats := vector.AggregateGroups(itemSim, p.Groups, k)
	fpr, tpr, auc, err := eval.Evaluate(constructSim, p.Gold)
	if err != nil {
		return nil, err
	}
	return &Outcome{AUC: auc, FPR: fpr, TPR: tpr, OOV: oov, Stats: stats}, nil
}

// RunLSA trains the factorization strategy and evaluates the document
// vectors it produces directly.
func RunLSA(cfg config.Config, data *Data) (*Outcome, error) {
	ctor, err := model.Get("lsa")
	if err != nil {
		return nil, err
	}
	trainer, err := ctor(&model.Inputs{DTM: data.DTM}, cfg.Trainer)
	if err != nil {
		return nil, err
	}
	res, err := trainer.Train()
	if err != nil {
		return nil, err
	}

	// document vectors become item vectors after L2 normalization
	dim := len(res.DocVectors[0])
	itemVecs := &vector.Vectors{IDs: data.DTM.Docs, Dim: dim, M: matrix.NewDense(len(res.DocVectors), dim)}
	for i, vec := range res.DocVectors {
		itemVecs.M.SetRow(i, vec)
	}
	util.NanToZero(itemVecs.M)
	util.NormalizeRows(itemVecs.M)

	itemSim := vector.Cosine(itemVecs, false)
	constructSim, stats := vector.AggregateGroups(itemSim, data.Groups, cfg.NSimilarities)
	fpr, tpr, auc, err := eval.Evaluate(constructSim, data.Gold)
	if err != nil {
		return nil, err
	}
	log.Infof("lsa: roc auc %.4f", auc)
	return &Outcome{AUC: auc, FPR: fpr, TPR: tpr, Stats: stats}, nil
}

// RunGloVe builds the co-occurrence map, trains the embedding strategy
// with the given hyperparameters and evaluates the learned dictionary.
// A diverged run (NaN epoch loss) is reported through the outcome's Loss
// sequence, not as an error.
func RunGloVe(cfg config.Config, data *Data, trainerCfg model.Config, weighted bool) (*Outcome, error) {
	tt := dtm.Cooccurrence(data.DTM)
	ctor, err := model.Get("glove")
	if err != nil {
		return nil, err
	}
	trainer, err := ctor(&model.Inputs{TT: tt}, trainerCfg)
	if err != nil {
		return nil, err
	}
	res, err := trainer.Train()
	if err != nil {
		return nil, err
	}
	if DivergedLoss(res.Loss) {
		out := &Outcome{AUC: math.NaN(), Loss: res.Loss}
		return out, nil
	}
	out, err := data.EvaluateDict(res.Vectors, weighted, false, cfg.NSimilarities)
	if err != nil {
		return nil, err
	}
	out.Loss = res.Loss
	log.Infof("glove: roc auc %.4f, final loss %.5f", out.AUC, res.Loss[len(res.Loss)-1])
	return out, nil
}

// RunPretrained evaluates externally provided vectors from the given
// store. Negative item similarities are clamped to zero on this path.
func RunPretrained(cfg config.Config, data *Data, store *pretrained.Store) (*Outcome, error) {
	dict, err := store.GetMany(data.DTM.Terms)
	if err != nil {
		return nil, err
	}
	if len(dict) == 0 {
		return nil, fmt.Errorf("pipeline: no pretrained vectors found for %d corpus terms", len(data.DTM.Terms))
	}
	out, err := data.EvaluateDict(dict, cfg.WeightedCentroid, true, cfg.NSimilarities)
	if err != nil {
		return nil, err
	}
	log.Infof("pretrained: roc auc %.4f, %d OOV terms", out.AUC, out.OOV)
	return out, nil
}

// AggregateByAuthor reduces an author-level similarity table to construct
// level: each construct contributes its author's row, constructs with an
// unknown author contribute nothing and score zero.
func AggregateByAuthor(authorSim *table.Table, constructAuthor map[string]string, constructIDs []string, k int) (*table.Table, vector.Stats) {
	groups := make([]table.Group, len(constructIDs))
	for i, id := range constructIDs {
		var members []int
		if author, ok := constructAuthor[id]; ok {
			if row, ok := authorSim.Index[author]; ok {
				members = []int{row}
			}
		}
		groups[i] = table.Group{ID: id, Members: members}
	}
	return vector.AggregateGroups(authorSim, groups, k)
}

// DivergedLoss reports whether any epoch loss is NaN.
func DivergedLoss(loss []float64) bool {
	for _, l := range loss {
		if math.IsNaN(l) {
			return true
		}
	}
	return false
}

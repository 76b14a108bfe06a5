package main

import (
	"flag"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/config"
	"github.com/SiegfriedLudwig/is-constructs/pipeline"
	"github.com/SiegfriedLudwig/is-constructs/pretrained"
	"github.com/SiegfriedLudwig/is-constructs/search"
)

var (
	configFile = flag.String("config", "", "TOML run configuration file")
	strategy   = flag.String("strategy", "", "override the configured strategy")
	importFile = flag.String("import_vectors", "", "text vector file to import into the pretrained store")
)

func main() {
	flag.Parse()
	defer log.Flush()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Exitf("load config: %v", err)
		}
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
		if err := cfg.Validate(); err != nil {
			log.Exitf("config: %v", err)
		}
	}

	if *importFile != "" {
		importVectors(cfg, *importFile)
		return
	}

	data, err := pipeline.Load(cfg)
	if err != nil {
		log.Exitf("load data: %v", err)
	}

	switch cfg.Strategy {
	case "lsa":
		out, err := pipeline.RunLSA(cfg, data)
		if err != nil {
			log.Exitf("lsa: %v", err)
		}
		report(out)
	case "glove":
		out, err := pipeline.RunGloVe(cfg, data, cfg.Trainer, cfg.WeightedCentroid)
		if err != nil {
			log.Exitf("glove: %v", err)
		}
		report(out)
	case "preglove":
		store, err := pretrained.Open(cfg.PretrainedDB)
		if err != nil {
			log.Exitf("open vector store: %v", err)
		}
		defer store.Close()
		out, err := pipeline.RunPretrained(cfg, data, store)
		if err != nil {
			log.Exitf("preglove: %v", err)
		}
		report(out)
	case "search":
		runSearch(cfg, data)
	}
}

func report(out *pipeline.Outcome) {
	log.Infof("roc auc %.4f (%d oov terms, %d single-value groups, %d empty groups)",
		out.AUC, out.OOV, out.Stats.Single, out.Stats.Empty)
}

func runSearch(cfg config.Config, data *pipeline.Data) {
	points := search.Grid(cfg.Search)
	log.Infof("search: %d grid points", len(points))

	runner := func(p search.Point) (float64, []float64, error) {
		tc := cfg.Trainer
		tc.Alpha = p.Alpha
		tc.XMax = p.XMax
		tc.StepSize = p.StepSize
		tc.Epochs = p.Epochs
		out, err := pipeline.RunGloVe(cfg, data, tc, p.Weighting)
		if err != nil {
			return 0, nil, err
		}
		return out.AUC, out.Loss, nil
	}

	results, err := search.Run(points, runner, cfg.Search)
	if err != nil {
		log.Exitf("search: %v", err)
	}
	best, ok := search.Best(results)
	if !ok {
		log.Exitf("search: all %d runs diverged", len(results))
	}
	log.Infof("search: best auc %.4f (alpha %.3f x_max %.0f step %.4f epochs %d weighting %t)",
		best.AUC, best.Alpha, best.XMax, best.StepSize, best.Epochs, best.Weighting)
}

func importVectors(cfg config.Config, fn string) {
	if cfg.PretrainedDB == "" {
		log.Exitf("import: pretrained_db not configured")
	}
	store, err := pretrained.Open(cfg.PretrainedDB)
	if err != nil {
		log.Exitf("open vector store: %v", err)
	}
	defer store.Close()
	n, err := store.ImportText(fn, 0)
	if err != nil {
		log.Exitf("import vectors: %v", err)
	}
	log.Infof("imported %d vectors into %s", n, cfg.PretrainedDB)
}

// Package config holds the single immutable run configuration threaded
// through every pipeline stage.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/SiegfriedLudwig/is-constructs/model"
)

// ErrConfig reports an invalid run configuration.
var ErrConfig = errors.New("config: invalid configuration")

// Config is one end-to-end run configuration. It is loaded once, validated
// once and never mutated afterwards.
type Config struct {
	// ItemsFile is a TSV of construct-id<TAB>item-text records.
	ItemsFile string `toml:"items_file"`
	// GoldFile is a TSV of pool-id<TAB>construct-id records.
	GoldFile string `toml:"gold_file"`

	// Stemmer is one of "", "porter2", "paicehusk".
	Stemmer string `toml:"stemmer"`
	// IgnoreChars overrides the character-removal set when non-empty.
	IgnoreChars     string `toml:"ignore_chars"`
	Lower           bool   `toml:"lower"`
	RemoveStopWords bool   `toml:"remove_stop_words"`

	// Weighting is the document-term weighting mode.
	Weighting string `toml:"weighting"`
	// Strategy is the embedding strategy: lsa, glove, preglove or search.
	Strategy string `toml:"strategy"`

	// NSimilarities is the top-k width of similarity aggregation.
	NSimilarities int `toml:"n_similarities"`
	// WeightedCentroid scales term vectors by their document-term cell
	// weight in item vector averaging.
	WeightedCentroid bool `toml:"weighted_centroid"`

	Trainer model.Config `toml:"trainer"`

	// PretrainedDB is the sqlite vector store used by the preglove
	// strategy.
	PretrainedDB string `toml:"pretrained_db"`

	Search Search `toml:"search"`
}

// Search configures the glove hyperparameter grid search.
type Search struct {
	Alpha     []float64 `toml:"alpha"`
	XMax      []float64 `toml:"x_max"`
	StepSize  []float64 `toml:"step_size"`
	Epochs    []int     `toml:"epochs"`
	Weighting []bool    `toml:"weighting"`

	// ResultsCSV persists finished runs and lets a restarted search
	// resume with prior results loaded.
	ResultsCSV string `toml:"results_csv"`
	// EarlyStopping ends the search once a run reaches this AUC.
	EarlyStopping float64 `toml:"early_stopping"`
}

// Default returns the stock run configuration.
func Default() Config {
	return Config{
		Stemmer:         "porter2",
		Lower:           true,
		RemoveStopWords: true,
		Weighting:       "tfidf_l2",
		Strategy:        "lsa",
		NSimilarities:   2,
		Trainer:         model.DefaultConfig(),
		Search: Search{
			Alpha:         []float64{0.4, 0.5, 0.55, 0.6, 0.7, 0.8},
			XMax:          []float64{10, 40, 60, 80, 100},
			StepSize:      []float64{0.001, 0.0075, 0.02, 0.075, 0.2},
			Epochs:        []int{50},
			Weighting:     []bool{false, true},
			ResultsCSV:    "glove_search_results.csv",
			EarlyStopping: 0.99,
		},
	}
}

// Load reads a TOML configuration file over the defaults.
func Load(fn string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(fn)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency. Mode strings are validated by
// the stages that consume them.
func (c Config) Validate() error {
	switch c.Strategy {
	case "lsa", "glove", "preglove", "search":
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrConfig, c.Strategy)
	}
	if c.NSimilarities < 0 {
		return fmt.Errorf("%w: n_similarities %d negative", ErrConfig, c.NSimilarities)
	}
	if c.Strategy == "preglove" && c.PretrainedDB == "" {
		return fmt.Errorf("%w: preglove strategy needs pretrained_db", ErrConfig)
	}
	return nil
}

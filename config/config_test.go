package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "lsa", cfg.Strategy)
	assert.Equal(t, "tfidf_l2", cfg.Weighting)
	assert.Equal(t, 300, cfg.Trainer.Dim)
	assert.Equal(t, 0.99, cfg.Search.EarlyStopping)
}

func TestLoadOverridesDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "run.toml")
	content := `
items_file = "items.tsv"
gold_file = "gold.tsv"
strategy = "glove"
weighting = "log_l2"
n_similarities = 3

[trainer]
Dim = 50
Epochs = 10
`
	assert.Nil(t, os.WriteFile(fn, []byte(content), 0644))

	cfg, err := Load(fn)

	assert.Nil(t, err)
	assert.Equal(t, "glove", cfg.Strategy)
	assert.Equal(t, "log_l2", cfg.Weighting)
	assert.Equal(t, 3, cfg.NSimilarities)
	assert.Equal(t, 50, cfg.Trainer.Dim)
	assert.Equal(t, 10, cfg.Trainer.Epochs)
	// untouched defaults survive
	assert.Equal(t, 0.75, cfg.Trainer.Alpha)
	assert.Equal(t, "porter2", cfg.Stemmer)
}

func TestLoadBadTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "run.toml")
	assert.Nil(t, os.WriteFile(fn, []byte("strategy = ["), 0644))

	_, err := Load(fn)

	assert.ErrorIs(t, err, ErrConfig)
}

func TestValidateUnknownStrategy(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "bogus"

	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestValidateNegativeSimilarities(t *testing.T) {
	cfg := Default()
	cfg.NSimilarities = -1

	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestValidatePretrainedNeedsDB(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "preglove"

	assert.ErrorIs(t, cfg.Validate(), ErrConfig)

	cfg.PretrainedDB = "vectors.db"
	assert.Nil(t, cfg.Validate())
}

package search

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SiegfriedLudwig/is-constructs/config"
)

func smallSearch(csv string) config.Search {
	return config.Search{
		Alpha:         []float64{0.5, 0.75},
		XMax:          []float64{10},
		StepSize:      []float64{0.05},
		Epochs:        []int{5},
		Weighting:     []bool{false},
		ResultsCSV:    csv,
		EarlyStopping: 0.99,
	}
}

func TestGrid(t *testing.T) {
	points := Grid(smallSearch(""))

	assert.Equal(t, 2, len(points))
	assert.Equal(t, 0.5, points[0].Alpha)
	assert.Equal(t, 0.75, points[1].Alpha)
	assert.Equal(t, 5, points[0].Epochs)
}

func TestRunAllPoints(t *testing.T) {
	s := smallSearch(filepath.Join(t.TempDir(), "results.csv"))
	var seen []Point
	runner := func(p Point) (float64, []float64, error) {
		seen = append(seen, p)
		return 0.5 + p.Alpha/10, []float64{1, 0.5}, nil
	}

	results, err := Run(Grid(s), runner, s)

	assert.Nil(t, err)
	assert.Equal(t, 2, len(results))
	assert.Equal(t, 2, len(seen))
	assert.Equal(t, 0.5, results[0].FinalLoss)
}

func TestRunResume(t *testing.T) {
	s := smallSearch(filepath.Join(t.TempDir(), "results.csv"))
	points := Grid(s)

	runs := 0
	runner := func(p Point) (float64, []float64, error) {
		runs += 1
		return 0.6, []float64{0.5}, nil
	}
	_, err := Run(points, runner, s)
	assert.Nil(t, err)
	assert.Equal(t, 2, runs)

	// a second pass finds every point already recorded
	_, err = Run(points, runner, s)
	assert.Nil(t, err)
	assert.Equal(t, 2, runs)
}

func TestRunRejectsDiverged(t *testing.T) {
	s := smallSearch(filepath.Join(t.TempDir(), "results.csv"))
	runner := func(p Point) (float64, []float64, error) {
		return 0.9, []float64{1, math.NaN()}, nil
	}

	results, err := Run(Grid(s), runner, s)

	assert.Nil(t, err)
	for _, r := range results {
		assert.True(t, math.IsNaN(r.AUC))
	}
	_, ok := Best(results)
	assert.False(t, ok)
}

func TestRunEarlyStopping(t *testing.T) {
	s := smallSearch(filepath.Join(t.TempDir(), "results.csv"))
	runs := 0
	runner := func(p Point) (float64, []float64, error) {
		runs += 1
		return 0.995, []float64{0.1}, nil
	}

	results, err := Run(Grid(s), runner, s)

	assert.Nil(t, err)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, len(results))
}

func TestRunCorruptResultsFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "results.csv")
	content := "alpha,x_max,step_size,n_epochs,weighting,roc_auc,training_loss\n" +
		"0.5,10,0.05,five,false,0.8,0.2\n"
	assert.Nil(t, os.WriteFile(fn, []byte(content), 0644))

	s := smallSearch(fn)
	runner := func(p Point) (float64, []float64, error) {
		return 0.5, []float64{0.5}, nil
	}

	_, err := Run(Grid(s), runner, s)

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "corrupt results row")
}

func TestBest(t *testing.T) {
	results := []Result{
		{Point: Point{Alpha: 0.5}, AUC: 0.7},
		{Point: Point{Alpha: 0.6}, AUC: math.NaN()},
		{Point: Point{Alpha: 0.7}, AUC: 0.85},
	}

	best, ok := Best(results)

	assert.True(t, ok)
	assert.Equal(t, 0.85, best.AUC)
	assert.Equal(t, 0.7, best.Alpha)
}

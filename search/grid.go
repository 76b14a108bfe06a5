// Package search runs an exhaustive hyperparameter grid search for the
// embedding trainer, persisting finished runs so an interrupted search
// resumes where it stopped.
package search

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/config"
)

// Point is one hyperparameter combination of the grid.
type Point struct {
	Alpha     float64
	XMax      float64
	StepSize  float64
	Epochs    int
	Weighting bool
}

// Result is one finished run of the search.
type Result struct {
	Point
	AUC       float64
	FinalLoss float64
}

// Runner executes one training run for the given point and returns its
// evaluation score and per-epoch loss sequence.
type Runner func(p Point) (auc float64, loss []float64, err error)

// Grid expands the configured value lists into their cartesian product,
// ordered weighting-major to match the result files of earlier runs.
func Grid(s config.Search) []Point {
	var points []Point
	for _, w := range s.Weighting {
		for _, alpha := range s.Alpha {
			for _, xmax := range s.XMax {
				for _, step := range s.StepSize {
					for _, epochs := range s.Epochs {
						points = append(points, Point{
							Alpha:     alpha,
							XMax:      xmax,
							StepSize:  step,
							Epochs:    epochs,
							Weighting: w,
						})
					}
				}
			}
		}
	}
	return points
}

// Run walks the grid, skipping points already present in the results
// file, and appends one row per finished run. Diverged runs (NaN loss)
// are recorded with a NaN score and never treated as errors. The search
// ends early once a run reaches the early-stopping AUC.
func Run(points []Point, runner Runner, s config.Search) ([]Result, error) {
	results, err := readResults(s.ResultsCSV)
	if err != nil {
		return nil, err
	}
	done := make(map[Point]bool, len(results))
	for _, r := range results {
		done[r.Point] = true
	}
	if len(results) > 0 {
		log.Infof("search: resuming with %d finished runs", len(results))
	}

	for _, r := range results {
		if s.EarlyStopping > 0 && r.AUC >= s.EarlyStopping {
			log.Infof("search: prior run already reached auc %.4f", r.AUC)
			return results, nil
		}
	}

	for i, p := range points {
		if done[p] {
			continue
		}
		auc, loss, err := runner(p)
		if err != nil {
			return results, err
		}
		finalLoss := math.NaN()
		if len(loss) > 0 {
			finalLoss = loss[len(loss)-1]
		}
		if diverged(loss) {
			log.Infof("search: run %d/%d diverged (alpha %.3f x_max %.0f step %.4f)",
				i+1, len(points), p.Alpha, p.XMax, p.StepSize)
			auc = math.NaN()
		}
		r := Result{Point: p, AUC: auc, FinalLoss: finalLoss}
		results = append(results, r)
		if s.ResultsCSV != "" {
			if err := writeResults(s.ResultsCSV, results); err != nil {
				return results, err
			}
		}
		log.Infof("search: run %d/%d auc %.4f loss %.5f", i+1, len(points), auc, finalLoss)
		if s.EarlyStopping > 0 && auc >= s.EarlyStopping {
			log.Infof("search: early stop at auc %.4f", auc)
			break
		}
	}
	return results, nil
}

// Best returns the finished run with the highest score, ignoring
// diverged runs. ok is false when no run produced a score.
func Best(results []Result) (Result, bool) {
	best := Result{AUC: math.Inf(-1)}
	ok := false
	for _, r := range results {
		if math.IsNaN(r.AUC) {
			continue
		}
		if r.AUC > best.AUC {
			best = r
			ok = true
		}
	}
	return best, ok
}

var csvHeader = []string{"alpha", "x_max", "step_size", "n_epochs", "weighting", "roc_auc", "training_loss"}

func readResults(fn string) ([]Result, error) {
	if fn == "" {
		return nil, nil
	}
	f, err := os.Open(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("search: corrupt results file %s: %v", fn, err)
	}
	var results []Result
	for i, row := range rows {
		if i == 0 {
			continue
		}
		r, err := parseResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("search: corrupt results row %d in %s: %v", i+1, fn, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func parseResultRow(row []string) (Result, error) {
	var r Result
	if len(row) != len(csvHeader) {
		return r, fmt.Errorf("%d fields, want %d", len(row), len(csvHeader))
	}
	var err error
	if r.Alpha, err = strconv.ParseFloat(row[0], 64); err != nil {
		return r, err
	}
	if r.XMax, err = strconv.ParseFloat(row[1], 64); err != nil {
		return r, err
	}
	if r.StepSize, err = strconv.ParseFloat(row[2], 64); err != nil {
		return r, err
	}
	if r.Epochs, err = strconv.Atoi(row[3]); err != nil {
		return r, err
	}
	if r.Weighting, err = strconv.ParseBool(row[4]); err != nil {
		return r, err
	}
	if r.AUC, err = strconv.ParseFloat(row[5], 64); err != nil {
		return r, err
	}
	if r.FinalLoss, err = strconv.ParseFloat(row[6], 64); err != nil {
		return r, err
	}
	return r, nil
}

func writeResults(fn string, results []Result) error {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(a, b int) bool {
		x, y := sorted[a].AUC, sorted[b].AUC
		if math.IsNaN(y) {
			return !math.IsNaN(x)
		}
		if math.IsNaN(x) {
			return false
		}
		return x > y
	})

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range sorted {
		row := []string{
			strconv.FormatFloat(r.Alpha, 'g', -1, 64),
			strconv.FormatFloat(r.XMax, 'g', -1, 64),
			strconv.FormatFloat(r.StepSize, 'g', -1, 64),
			strconv.Itoa(r.Epochs),
			strconv.FormatBool(r.Weighting),
			strconv.FormatFloat(r.AUC, 'g', -1, 64),
			strconv.FormatFloat(r.FinalLoss, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func diverged(loss []float64) bool {
	for _, l := range loss {
		if math.IsNaN(l) {
			return true
		}
	}
	return false
}

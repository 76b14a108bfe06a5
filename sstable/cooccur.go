package sstable

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/SiegfriedLudwig/is-constructs/dtm"
)

// WriteTermTerm serializes a sparse term-term co-occurrence map: a count
// line, the index→term dictionary, then one "i,j,weight" line per stored
// pair.
func WriteTermTerm(tt *dtm.TermTerm, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n", len(tt.TermIndex))

	indices := make([]int, 0, len(tt.IndexTerm))
	for ix := range tt.IndexTerm {
		indices = append(indices, ix)
	}
	sort.Ints(indices)
	for _, ix := range indices {
		fmt.Fprintf(w, "%d\t%s\n", ix, tt.IndexTerm[ix])
	}

	rows := make([]int, 0, len(tt.Pairs))
	for i := range tt.Pairs {
		rows = append(rows, i)
	}
	sort.Ints(rows)
	for _, i := range rows {
		cols := make([]int, 0, len(tt.Pairs[i]))
		for j := range tt.Pairs[i] {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			fmt.Fprintf(w, "%d,%d,%e\n", i, j, tt.Pairs[i][j])
		}
	}
	return w.Flush()
}

// ReadTermTerm deserializes a co-occurrence map written by WriteTermTerm.
func ReadTermTerm(fn string) (*dtm.TermTerm, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tt := &dtm.TermTerm{
		Pairs:     make(map[int]map[int]float64),
		TermIndex: make(map[string]int),
		IndexTerm: make(map[int]string),
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	if !scanner.Scan() {
		return nil, fmt.Errorf("artifact corrupted, empty file %s", fn)
	}
	nTerms, err := strconv.Atoi(scanner.Text())
	if err != nil {
		return nil, err
	}
	for t := 0; t < nTerms; t += 1 {
		if !scanner.Scan() {
			return nil, fmt.Errorf("artifact corrupted, dictionary truncated at %d", t)
		}
		vals := strings.SplitN(scanner.Text(), "\t", 2)
		if len(vals) != 2 {
			return nil, fmt.Errorf("artifact corrupted, bad dictionary line: %s", scanner.Text())
		}
		ix, err := strconv.Atoi(vals[0])
		if err != nil {
			return nil, err
		}
		tt.IndexTerm[ix] = vals[1]
		tt.TermIndex[vals[1]] = ix
	}
	for scanner.Scan() {
		value := strings.Split(scanner.Text(), ",")
		if len(value) != 3 {
			return nil, fmt.Errorf("artifact corrupted, bad pair line: %s", scanner.Text())
		}
		i, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, err
		}
		j, err := strconv.Atoi(value[1])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		if tt.Pairs[i] == nil {
			tt.Pairs[i] = make(map[int]float64)
		}
		tt.Pairs[i][j] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tt, nil
}

package sstable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/SiegfriedLudwig/is-constructs/vector"
)

// WriteDict serializes a term-vector dictionary in the word-vector text
// format: one "term v1 v2 ... vd" line per entry, sorted by term.
func WriteDict(dict map[string][]float64, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, term := range vector.SortedKeys(dict) {
		fmt.Fprint(w, term)
		for _, v := range dict[term] {
			fmt.Fprintf(w, " %e", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// ReadDict deserializes a dictionary written by WriteDict (or any
// word-vector text file with space-separated values).
func ReadDict(fn string) (map[string][]float64, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dict := make(map[string][]float64)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx += 1
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			return nil, fmt.Errorf("artifact corrupted, line %d has no vector", lineIdx)
		}
		vec := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("artifact corrupted, line %d: %w", lineIdx, err)
			}
			vec[i] = v
		}
		dict[fields[0]] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

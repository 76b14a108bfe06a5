// Package sstable serializes pipeline artifacts (matrices, vector
// dictionaries, co-occurrence maps) to simple text files so callers can
// cache intermediates between runs. The core accepts the loaded structures
// back as ordinary in-memory values.
package sstable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/matrix"
)

// WriteMatrix serializes a matrix: one shape line "rows,cols" followed by
// one "row,col,value" line per nonzero cell.
func WriteMatrix(m *matrix.Dense, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	r, c := m.Shape()
	fmt.Fprintf(w, "%d,%d\n", r, c)
	for ridx := 0; ridx < r; ridx += 1 {
		row := m.RowView(ridx)
		for cidx, val := range row {
			if val != 0 { // only write out nonzero values
				fmt.Fprintf(w, "%d,%d,%e\n", ridx, cidx, val)
			}
		}
	}
	return w.Flush()
}

// ReadMatrix deserializes a matrix written by WriteMatrix. Corrupted data
// lines are logged and skipped.
func ReadMatrix(fn string) (*matrix.Dense, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tmp *matrix.Dense
	lineIdx := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("artifact corrupted, shape not found: %s", txt)
			}
			row, err := strconv.Atoi(shape[0])
			if err != nil {
				return nil, err
			}
			col, err := strconv.Atoi(shape[1])
			if err != nil {
				return nil, err
			}
			tmp = matrix.NewDense(row, col)
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Infof("data corrupted, row %d, data %s", lineIdx, txt)
			lineIdx += 1
			continue
		}
		ridx, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.Atoi(value[1])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		tmp.Set(ridx, cidx, val)
		lineIdx += 1
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tmp, nil
}

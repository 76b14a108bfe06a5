package sstable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/SiegfriedLudwig/is-constructs/table"
)

// WriteTable serializes a labeled square table: a label line of
// tab-separated ids, then the matrix in WriteMatrix's triplet format.
func WriteTable(t *table.Table, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, strings.Join(t.IDs, "\t"))
	n := t.Len()
	fmt.Fprintf(w, "%d,%d\n", n, n)
	for i := 0; i < n; i += 1 {
		row := t.M.RowView(i)
		for j, val := range row {
			if val != 0 {
				fmt.Fprintf(w, "%d,%d,%e\n", i, j, val)
			}
		}
	}
	return w.Flush()
}

// ReadTable deserializes a table written by WriteTable.
func ReadTable(fn string) (*table.Table, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tmp *table.Table
	lineIdx := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		txt := scanner.Text()
		switch lineIdx {
		case 0:
			tmp = table.New(strings.Split(txt, "\t"))
		case 1:
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("artifact corrupted, shape not found: %s", txt)
			}
			n, err := strconv.Atoi(shape[0])
			if err != nil {
				return nil, err
			}
			if n != tmp.Len() {
				return nil, fmt.Errorf("artifact corrupted, %d labels for shape %s", tmp.Len(), txt)
			}
		default:
			value := strings.Split(txt, ",")
			if len(value) != 3 {
				log.Infof("data corrupted, row %d, data %s", lineIdx, txt)
				break
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
			tmp.M.Set(i, j, val)
		}
		lineIdx += 1
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("artifact corrupted, empty file %s", fn)
	}
	return tmp, nil
}

// Package pretrained provides term vectors from large pre-trained
// word-vector tables through a sqlite-backed lookup store, so files larger
// than RAM can be queried term by term.
package pretrained

import (
	"bufio"
	"database/sql"
	"encoding/binary"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	_ "modernc.org/sqlite"
)

// Store is a term → vector lookup table backed by sqlite. A missing term
// is a lookup miss, never an error.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a vector store at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS vectors (
		term TEXT PRIMARY KEY,
		vec  BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores the vector for a term, replacing any existing entry.
func (s *Store) Put(term string, vec []float64) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO vectors (term, vec) VALUES (?, ?)`,
		term, encodeVector(vec))
	return err
}

// Get returns the vector for a term. The second return reports whether the
// term was found.
func (s *Store) Get(term string) ([]float64, bool, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT vec FROM vectors WHERE term = ?`, term).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return decodeVector(blob), true, nil
}

// GetMany returns the vectors of the requested terms that exist in the
// store. Misses are simply absent from the result; the caller resolves
// them to zero vectors downstream.
func (s *Store) GetMany(terms []string) (map[string][]float64, error) {
	dict := make(map[string][]float64, len(terms))
	for _, term := range terms {
		vec, ok, err := s.Get(term)
		if err != nil {
			return nil, err
		}
		if ok {
			dict[term] = vec
		}
	}
	log.V(1).Infof("pretrained lookup: %d of %d terms found", len(dict), len(terms))
	return dict, nil
}

// ImportText bulk-loads a word-vector text file ("term v1 v2 ... vd" per
// line) into the store in transactions of batch lines, and returns the
// number of vectors imported.
func (s *Store) ImportText(fn string, batch int) (int, error) {
	if batch <= 0 {
		batch = 64 * 1024
	}
	file, err := os.Open(fn)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	total := 0
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO vectors (term, vec) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		vec := make([]float64, len(fields)-1)
		ok := true
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			vec[i] = v
		}
		if !ok {
			continue
		}
		if _, err := stmt.Exec(fields[0], encodeVector(vec)); err != nil {
			tx.Rollback()
			return total, err
		}
		total += 1
		if total%batch == 0 {
			stmt.Close()
			if err := tx.Commit(); err != nil {
				return total, err
			}
			log.V(1).Infof("imported %d vectors...", total)
			tx, err = s.db.Begin()
			if err != nil {
				return total, err
			}
			stmt, err = tx.Prepare(`INSERT OR REPLACE INTO vectors (term, vec) VALUES (?, ?)`)
			if err != nil {
				tx.Rollback()
				return total, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		stmt.Close()
		tx.Rollback()
		return total, err
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return total, err
	}
	log.Infof("imported %d pretrained vectors from %s", total, fn)
	return total, nil
}

func encodeVector(vec []float64) []byte {
	blob := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(blob[8*i:], math.Float64bits(v))
	}
	return blob
}

func decodeVector(blob []byte) []float64 {
	vec := make([]float64, len(blob)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[8*i:]))
	}
	return vec
}

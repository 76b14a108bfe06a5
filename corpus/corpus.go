package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/golang/glog"
)

// ErrBadDocument reports a malformed input record, e.g. a document that is
// not valid text or a corpus line with the wrong number of fields.
var ErrBadDocument = errors.New("corpus: bad document")

// DefaultIgnoreChars is the character-removal set applied before tokenizing.
const DefaultIgnoreChars = `.,:;"'!?_-/()[]{}&%0123456789`

// ParseConfig controls text normalization.
type ParseConfig struct {
	// IgnoreChars are replaced with spaces before tokenizing.
	IgnoreChars string
	// Lower folds documents to lower case.
	Lower bool
	// RemoveStopWords drops English stop words.
	RemoveStopWords bool
	// Stemmer selects the stemming algorithm. Unknown selectors leave
	// tokens unmodified.
	Stemmer Stemmer
}

// DefaultParseConfig returns the normalization settings used for survey
// item corpora.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		IgnoreChars:     DefaultIgnoreChars,
		Lower:           true,
		RemoveStopWords: true,
		Stemmer:         StemPorter2,
	}
}

// Result is a normalized token corpus. Documents that normalized to the
// empty string are dropped; Kept maps each surviving document back to its
// position in the raw input so external identifier lists stay aligned.
type Result struct {
	Docs []string
	Kept []int
	// ErrorWords are tokens the stemmer failed on; they were passed
	// through unstemmed.
	ErrorWords []string
}

// ParseText normalizes raw documents into whitespace-collapsed token
// strings. The transformation is deterministic and order preserving:
// documents are never reordered, only dropped when empty. A document that
// is not valid UTF-8 fails with ErrBadDocument naming its position.
func ParseText(documents []string, cfg ParseConfig) (*Result, error) {
	ignore := make(map[rune]bool, len(cfg.IgnoreChars))
	for _, r := range cfg.IgnoreChars {
		ignore[r] = true
	}

	res := &Result{}
	seenErrWords := make(map[string]bool)
	for i, doc := range documents {
		if !utf8.ValidString(doc) {
			return nil, fmt.Errorf("%w: document %d is not a valid string", ErrBadDocument, i)
		}
		if len(ignore) > 0 {
			doc = strings.Map(func(r rune) rune {
				if ignore[r] {
					return ' '
				}
				return r
			}, doc)
		}
		if cfg.Lower {
			doc = strings.ToLower(doc)
		}

		var tokens []string
		for _, word := range strings.Fields(doc) {
			if cfg.RemoveStopWords && stopWords[word] {
				continue
			}
			if cfg.Stemmer != StemNone {
				stemmed, err := stemToken(word, cfg.Stemmer)
				if err != nil {
					if !seenErrWords[word] {
						seenErrWords[word] = true
						res.ErrorWords = append(res.ErrorWords, word)
					}
				} else {
					word = stemmed
				}
			}
			if word == "" {
				continue
			}
			tokens = append(tokens, word)
		}
		if len(tokens) == 0 {
			continue
		}
		res.Docs = append(res.Docs, strings.Join(tokens, " "))
		res.Kept = append(res.Kept, i)
	}
	if len(res.ErrorWords) > 0 {
		log.V(1).Infof("stemming failed for %d distinct words: %v", len(res.ErrorWords), res.ErrorWords)
	}
	return res, nil
}

// Load reads a corpus file of identifier<TAB>text records, one per line.
// Blank lines are skipped. Lines without exactly two fields fail with
// ErrBadDocument.
func Load(fn string) (ids []string, texts []string, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line += 1
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		vals := strings.SplitN(txt, "\t", 2)
		if len(vals) != 2 {
			return nil, nil, fmt.Errorf("%w: line %d: %s", ErrBadDocument, line, txt)
		}
		ids = append(ids, vals[0])
		texts = append(texts, vals[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	log.Infof("number of documents %d", len(texts))
	return ids, texts, nil
}

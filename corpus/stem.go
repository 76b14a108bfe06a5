package corpus

import (
	"fmt"

	"github.com/kljensen/snowball"
	"github.com/rookii/paicehusk"
)

// Stemmer selects a stemming algorithm.
type Stemmer string

const (
	StemNone      Stemmer = ""
	StemPorter2   Stemmer = "porter2"
	StemPaiceHusk Stemmer = "paicehusk"
)

// stemToken stems a single token. Unknown stemmer selectors return the
// token unmodified. A failure to stem is returned as an error so the caller
// can record the word and keep it unstemmed; it is never fatal.
func stemToken(word string, s Stemmer) (stemmed string, err error) {
	defer func() {
		if r := recover(); r != nil {
			stemmed, err = word, fmt.Errorf("corpus: stemming %q: %v", word, r)
		}
	}()
	switch s {
	case StemPorter2:
		stemmed, err = snowball.Stem(word, "english", false)
		if err != nil {
			return word, fmt.Errorf("corpus: stemming %q: %w", word, err)
		}
		return stemmed, nil
	case StemPaiceHusk:
		stemmed = paicehusk.DefaultRules.Stem(word)
		if stemmed == "" {
			return word, fmt.Errorf("corpus: stemming %q: empty stem", word)
		}
		return stemmed, nil
	default:
		return word, nil
	}
}
